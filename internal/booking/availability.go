package booking

import (
	"sort"
	"time"
)

// The calculations in this file are pure: they take a room's unit count and
// the bookings already fetched for it, and derive per-night occupancy. All
// date arithmetic is done on UTC midnights with half-open semantics, so a
// booking [June 10, June 12) occupies the nights of the 10th and the 11th
// and leaves the 12th free.

// Day truncates t to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night. Adjacent ranges do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// NightlyLoad accumulates, per calendar night, the units consumed by the
// given bookings. Bookings in a non-consuming status (cancelled, rejected)
// are skipped regardless of what the caller fetched.
func NightlyLoad(bookings []*Booking) map[time.Time]int {
	load := make(map[time.Time]int)
	for _, b := range bookings {
		if !b.Status.ConsumesCapacity() {
			continue
		}
		units := b.UnitsBooked
		if units < 1 {
			units = 1
		}
		for d := Day(b.StartDate); d.Before(Day(b.EndDate)); d = d.AddDate(0, 0, 1) {
			load[d] += units
		}
	}
	return load
}

// BlockedNights returns, sorted ascending, every night on which the given
// bookings consume all unitsCount units of the room. The caller layers its
// own "no past dates" rule on top; that rule is unconditional and not a
// property of occupancy.
func BlockedNights(bookings []*Booking, unitsCount int) []time.Time {
	if unitsCount < 1 {
		unitsCount = 1
	}

	var blocked []time.Time
	for night, units := range NightlyLoad(bookings) {
		if units >= unitsCount {
			blocked = append(blocked, night)
		}
	}

	sort.Slice(blocked, func(i, j int) bool { return blocked[i].Before(blocked[j]) })
	return blocked
}

// UnitsRemaining returns the number of units still free on every night of
// the half-open range [start, end): the room's unit count minus the peak
// nightly load over the range, floored at zero.
func UnitsRemaining(bookings []*Booking, unitsCount int, start, end time.Time) int {
	if unitsCount < 1 {
		unitsCount = 1
	}

	load := NightlyLoad(bookings)
	peak := 0
	for d := Day(start); d.Before(Day(end)); d = d.AddDate(0, 0, 1) {
		if load[d] > peak {
			peak = load[d]
		}
	}

	remaining := unitsCount - peak
	if remaining < 0 {
		return 0
	}
	return remaining
}
