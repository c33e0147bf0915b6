package pricing

import (
	"net/http"
	"time"

	"github.com/darlink/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidRange = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrInvalidUnits = apperror.New(http.StatusBadRequest, "units must be at least 1")
	ErrInvalidPrice = apperror.New(http.StatusBadRequest, "price per night must be positive")
)

// WeekendMultiplier is applied to Friday and Saturday nights.
const WeekendMultiplier = 1.25

// ServiceFeeRate is the marketplace fee charged on top of the subtotal.
const ServiceFeeRate = 0.10

// Quote is the price breakdown for a stay of nights [Start, End).
type Quote struct {
	Nights     int
	Subtotal   float64
	ServiceFee float64
	Total      float64
	HasWeekend bool
}

// ForStay prices a half-open stay: every night in [start, end) is charged,
// the checkout day is not. Friday and Saturday nights carry the weekend rate.
func ForStay(pricePerNight float64, start, end time.Time, units int) (Quote, error) {
	if pricePerNight <= 0 {
		return Quote{}, ErrInvalidPrice
	}
	if units < 1 {
		return Quote{}, ErrInvalidUnits
	}
	if !end.After(start) {
		return Quote{}, ErrInvalidRange
	}

	var q Quote
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		night := NightlyRate(pricePerNight, d)
		if night > pricePerNight {
			q.HasWeekend = true
		}
		q.Subtotal += night
		q.Nights++
	}

	q.Subtotal *= float64(units)
	q.ServiceFee = q.Subtotal * ServiceFeeRate
	q.Total = q.Subtotal + q.ServiceFee
	return q, nil
}

// NightlyRate returns the rate for a single night starting on day.
func NightlyRate(pricePerNight float64, day time.Time) float64 {
	switch day.Weekday() {
	case time.Friday, time.Saturday:
		return pricePerNight * WeekendMultiplier
	default:
		return pricePerNight
	}
}
