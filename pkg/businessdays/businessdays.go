// Package businessdays computes business-day arithmetic over the French
// public-holiday calendar. A business day is a weekday that is not a French
// public holiday. All computations are done in UTC.
package businessdays

import (
	"sync"
	"time"
)

// FiringHourUTC is the time-of-day every scheduled date is normalized to.
// 01:00 UTC keeps followup firings outside business hours for downstream
// systems.
const FiringHourUTC = 1

var (
	holidayCacheMu sync.RWMutex
	holidayCache   = make(map[int]map[time.Time]struct{})
)

// Holidays returns the set of French public holidays for a year: the eight
// fixed dates plus Easter Monday, Ascension and Pentecost Monday. Keys are
// midnight-UTC dates. The result is cached per year and must not be mutated.
func Holidays(year int) map[time.Time]struct{} {
	holidayCacheMu.RLock()
	if cached, ok := holidayCache[year]; ok {
		holidayCacheMu.RUnlock()
		return cached
	}
	holidayCacheMu.RUnlock()

	holidays := make(map[time.Time]struct{}, 11)

	fixed := [][2]int{
		{1, 1},   // Jour de l'an
		{5, 1},   // Fete du travail
		{5, 8},   // Victoire 1945
		{7, 14},  // Fete nationale
		{8, 15},  // Assomption
		{11, 1},  // Toussaint
		{11, 11}, // Armistice
		{12, 25}, // Noel
	}
	for _, md := range fixed {
		holidays[time.Date(year, time.Month(md[0]), md[1], 0, 0, 0, 0, time.UTC)] = struct{}{}
	}

	easter := easterSunday(year)
	holidays[easter.AddDate(0, 0, 1)] = struct{}{}  // Lundi de Paques
	holidays[easter.AddDate(0, 0, 39)] = struct{}{} // Ascension
	holidays[easter.AddDate(0, 0, 50)] = struct{}{} // Lundi de Pentecote

	holidayCacheMu.Lock()
	holidayCache[year] = holidays
	holidayCacheMu.Unlock()

	return holidays
}

// easterSunday computes Easter Sunday with the Meeus/Jones/Butcher algorithm
// (Gregorian calendar).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// IsBusinessDay reports whether t falls on a business day. Only the UTC date
// of t is considered.
func IsBusinessDay(t time.Time) bool {
	t = t.UTC()
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	_, holiday := Holidays(t.Year())[date]
	return !holiday
}

// NextBusinessDay returns the first business day on or after t, preserving
// the time-of-day of t.
func NextBusinessDay(t time.Time) time.Time {
	t = t.UTC()
	for !IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances t by |n| business days, forward when n is
// positive and backward when n is negative. The result is always a business
// day, normalized to 01:00:00 UTC. For n = 0 it returns the next business
// day on or after t, at 01:00 UTC.
func AddBusinessDays(t time.Time, n int) time.Time {
	current := t.UTC()

	if n == 0 {
		current = NextBusinessDay(current)
		return atFiringHour(current)
	}

	step := 1
	remaining := n
	if n < 0 {
		step = -1
		remaining = -n
	}

	for remaining > 0 {
		current = current.AddDate(0, 0, step)
		if IsBusinessDay(current) {
			remaining--
		}
	}

	return atFiringHour(current)
}

func atFiringHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), FiringHourUTC, 0, 0, 0, time.UTC)
}
