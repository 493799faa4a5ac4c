package businessdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHolidays_CountAndFixedDates(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		holidays := Holidays(year)
		assert.Len(t, holidays, 11, "year %d should have 11 distinct holidays", year)

		assert.Contains(t, holidays, date(year, time.January, 1))
		assert.Contains(t, holidays, date(year, time.May, 1))
		assert.Contains(t, holidays, date(year, time.May, 8))
		assert.Contains(t, holidays, date(year, time.July, 14))
		assert.Contains(t, holidays, date(year, time.August, 15))
		assert.Contains(t, holidays, date(year, time.November, 1))
		assert.Contains(t, holidays, date(year, time.November, 11))
		assert.Contains(t, holidays, date(year, time.December, 25))
	}
}

func TestEasterSunday_KnownDates(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
		{2000, date(2000, time.April, 23)},
		{1999, date(1999, time.April, 4)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, easterSunday(tt.year), "easter %d", tt.year)
	}
}

func TestHolidays_EasterDerived2024(t *testing.T) {
	holidays := Holidays(2024)

	// Easter 2024 is March 31.
	assert.Contains(t, holidays, date(2024, time.April, 1))  // Easter Monday
	assert.Contains(t, holidays, date(2024, time.May, 9))    // Ascension
	assert.Contains(t, holidays, date(2024, time.May, 20))   // Pentecost Monday
}

func TestHolidays_Cached(t *testing.T) {
	first := Holidays(2042)
	second := Holidays(2042)
	// Same map instance comes back from the cache.
	assert.Equal(t, len(first), len(second))
	for d := range first {
		assert.Contains(t, second, d)
	}
}

func TestIsBusinessDay(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"regular monday", date(2024, time.January, 8), true},
		{"saturday", date(2024, time.January, 6), false},
		{"sunday", date(2024, time.January, 7), false},
		{"christmas", date(2024, time.December, 25), false},
		{"easter monday 2024", date(2024, time.April, 1), false},
		{"day after easter monday", date(2024, time.April, 2), true},
		{"bastille day on weekday", date(2025, time.July, 14), false},
		{"mid-day timestamp still checks date", time.Date(2024, time.December, 25, 15, 30, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBusinessDay(tt.t))
		})
	}
}

func TestAddBusinessDays_NormalizesToFiringHour(t *testing.T) {
	sent := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC) // Monday

	got := AddBusinessDays(sent, 3)

	assert.Equal(t, time.Date(2024, time.January, 11, 1, 0, 0, 0, time.UTC), got)
	assert.True(t, IsBusinessDay(got))
}

func TestAddBusinessDays_FullScheduleFromMonday(t *testing.T) {
	// Spec scenario: send Monday 2024-01-08, offsets {3,7,10}.
	sent := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.January, 11, 1, 0, 0, 0, time.UTC), AddBusinessDays(sent, 3))
	assert.Equal(t, time.Date(2024, time.January, 17, 1, 0, 0, 0, time.UTC), AddBusinessDays(sent, 7))
	assert.Equal(t, time.Date(2024, time.January, 22, 1, 0, 0, 0, time.UTC), AddBusinessDays(sent, 10))

	longTerm := AddBusinessDays(sent, 180)
	assert.True(t, IsBusinessDay(longTerm))
	assert.Equal(t, 1, longTerm.Hour())
	assert.Equal(t, 0, longTerm.Minute())
}

func TestAddBusinessDays_SkipsChristmas(t *testing.T) {
	// Friday before Christmas 2024. J+3 counts Mon 23 and Tue 24, skips
	// Dec 25 (Wednesday holiday) and lands on Thu 26.
	sent := time.Date(2024, time.December, 20, 9, 0, 0, 0, time.UTC)

	got := AddBusinessDays(sent, 3)

	assert.Equal(t, time.Date(2024, time.December, 26, 1, 0, 0, 0, time.UTC), got)
	assert.False(t, IsBusinessDay(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)))
}

func TestAddBusinessDays_CrossesYearBoundary(t *testing.T) {
	// Monday Dec 30, 2024. Tue 31 counts, Jan 1 is a holiday, Thu Jan 2 counts.
	sent := time.Date(2024, time.December, 30, 12, 0, 0, 0, time.UTC)

	got := AddBusinessDays(sent, 2)

	assert.Equal(t, time.Date(2025, time.January, 2, 1, 0, 0, 0, time.UTC), got)
}

func TestAddBusinessDays_Negative(t *testing.T) {
	// Friday Dec 27, 2024 minus 3 business days: Thu 26, skip Wed 25
	// (holiday), Tue 24, Mon 23.
	start := time.Date(2024, time.December, 27, 1, 0, 0, 0, time.UTC)

	got := AddBusinessDays(start, -3)

	assert.Equal(t, time.Date(2024, time.December, 23, 1, 0, 0, 0, time.UTC), got)
	assert.True(t, IsBusinessDay(got))
}

func TestAddBusinessDays_Zero(t *testing.T) {
	t.Run("already a business day", func(t *testing.T) {
		got := AddBusinessDays(time.Date(2024, time.January, 8, 14, 0, 0, 0, time.UTC), 0)
		assert.Equal(t, time.Date(2024, time.January, 8, 1, 0, 0, 0, time.UTC), got)
	})

	t.Run("saturday rolls to monday", func(t *testing.T) {
		got := AddBusinessDays(time.Date(2024, time.January, 6, 14, 0, 0, 0, time.UTC), 0)
		assert.Equal(t, time.Date(2024, time.January, 8, 1, 0, 0, 0, time.UTC), got)
	})

	t.Run("holiday rolls forward", func(t *testing.T) {
		got := AddBusinessDays(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC), 0)
		assert.Equal(t, time.Date(2024, time.December, 26, 1, 0, 0, 0, time.UTC), got)
	})
}

func TestAddBusinessDays_RoundTripSameBusinessDay(t *testing.T) {
	starts := []time.Time{
		time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 20, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 17, 16, 45, 0, 0, time.UTC),
	}

	for _, start := range starts {
		for _, n := range []int{1, 5, 10, 42} {
			forward := AddBusinessDays(start, n)
			back := AddBusinessDays(forward, -n)

			require.True(t, IsBusinessDay(back))
			// Same business day as the normalized start; time-of-day is 01:00
			// by contract, not the original hour.
			wantDay := AddBusinessDays(start, 0)
			assert.Equal(t, wantDay, back, "start %s n %d", start, n)
		}
	}
}

func TestNextBusinessDay_PreservesTimeOfDay(t *testing.T) {
	sat := time.Date(2024, time.January, 6, 9, 30, 0, 0, time.UTC)

	got := NextBusinessDay(sat)

	assert.Equal(t, time.Date(2024, time.January, 8, 9, 30, 0, 0, time.UTC), got)
}
