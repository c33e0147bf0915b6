package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNightlyRate(t *testing.T) {
	// 2025-06-13 is a Friday, 2025-06-14 a Saturday
	assert.Equal(t, 125.0, NightlyRate(100, date(2025, 6, 13)))
	assert.Equal(t, 125.0, NightlyRate(100, date(2025, 6, 14)))
	// Sunday night is a regular night
	assert.Equal(t, 100.0, NightlyRate(100, date(2025, 6, 15)))
	assert.Equal(t, 100.0, NightlyRate(100, date(2025, 6, 16)))
}

func TestForStay(t *testing.T) {
	t.Run("weeknights only", func(t *testing.T) {
		// Mon-Wed checkout: nights of Mon and Tue
		q, err := ForStay(100, date(2025, 6, 9), date(2025, 6, 11), 1)
		require.NoError(t, err)

		assert.Equal(t, 2, q.Nights)
		assert.InDelta(t, 200.0, q.Subtotal, 0.001)
		assert.InDelta(t, 20.0, q.ServiceFee, 0.001)
		assert.InDelta(t, 220.0, q.Total, 0.001)
		assert.False(t, q.HasWeekend)
	})

	t.Run("weekend nights carry the multiplier", func(t *testing.T) {
		// Fri-Sun checkout: nights of Fri and Sat, both at 125
		q, err := ForStay(100, date(2025, 6, 13), date(2025, 6, 15), 1)
		require.NoError(t, err)

		assert.Equal(t, 2, q.Nights)
		assert.InDelta(t, 250.0, q.Subtotal, 0.001)
		assert.InDelta(t, 275.0, q.Total, 0.001)
		assert.True(t, q.HasWeekend)
	})

	t.Run("checkout day is not charged", func(t *testing.T) {
		// Thu-Fri checkout: only Thursday night, no weekend rate
		q, err := ForStay(100, date(2025, 6, 12), date(2025, 6, 13), 1)
		require.NoError(t, err)

		assert.Equal(t, 1, q.Nights)
		assert.False(t, q.HasWeekend)
	})

	t.Run("units multiply the subtotal", func(t *testing.T) {
		q, err := ForStay(100, date(2025, 6, 9), date(2025, 6, 11), 3)
		require.NoError(t, err)

		assert.InDelta(t, 600.0, q.Subtotal, 0.001)
		assert.InDelta(t, 660.0, q.Total, 0.001)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := ForStay(0, date(2025, 6, 9), date(2025, 6, 11), 1)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = ForStay(100, date(2025, 6, 9), date(2025, 6, 11), 0)
		assert.ErrorIs(t, err, ErrInvalidUnits)

		_, err = ForStay(100, date(2025, 6, 11), date(2025, 6, 9), 1)
		assert.ErrorIs(t, err, ErrInvalidRange)

		_, err = ForStay(100, date(2025, 6, 9), date(2025, 6, 9), 1)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}
