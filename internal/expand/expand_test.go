package expand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/timerange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateRange(earliest, latest time.Time) *timerange.DateRange {
	return &timerange.DateRange{Earliest: &earliest, Latest: &latest}
}

func timeRange(earliest, latest timerange.TimeOfDay) *timerange.TimeRange {
	return &timerange.TimeRange{Earliest: &earliest, Latest: &latest}
}

func fptr(v float64) *float64 { return &v }

func TestCitiesCrossProduct(t *testing.T) {
	r := models.CityRange{
		Airports:       []string{"LHR"},
		ArrivalDates:   dateRange(date(2026, 9, 1), date(2026, 9, 2)),
		DepartureDates: dateRange(date(2026, 9, 3), date(2026, 9, 4)),
		Filter:         models.DefaultFilter(),
	}

	cities := Cities(r)
	assert.Len(t, cities, 4)
	for _, c := range cities {
		require.NotNil(t, c.ArrivalDate)
		require.NotNil(t, c.DepartureDate)
		assert.False(t, c.ArrivalDate.After(*c.DepartureDate))
	}
}

func TestCitiesRejectsArrivalAfterDeparture(t *testing.T) {
	r := models.CityRange{
		Airports:       []string{"LHR"},
		ArrivalDates:   dateRange(date(2026, 9, 5), date(2026, 9, 6)),
		DepartureDates: dateRange(date(2026, 9, 4), date(2026, 9, 5)),
		Filter:         models.DefaultFilter(),
	}

	for _, c := range Cities(r) {
		assert.False(t, c.ArrivalDate.After(*c.DepartureDate))
	}
}

func TestCitiesUnboundedRangeBecomesAbsent(t *testing.T) {
	earliest := date(2026, 9, 1)
	r := models.CityRange{
		Airports:     []string{"LHR"},
		ArrivalDates: &timerange.DateRange{Earliest: &earliest},
		Filter:       models.DefaultFilter(),
	}

	cities := Cities(r)
	require.Len(t, cities, 1)
	assert.Nil(t, cities[0].ArrivalDate)
	assert.Nil(t, cities[0].DepartureDate)
}

func TestCitiesMinStayRejectsShortWindows(t *testing.T) {
	// Arrive earliest 10:00, depart latest 18:00 on the same day:
	// at most 8 hours of stay, under the 24-hour minimum.
	r := models.CityRange{
		Airports:       []string{"YYZ"},
		MinStayHours:   fptr(24),
		ArrivalDates:   dateRange(date(2026, 9, 1), date(2026, 9, 1)),
		ArrivalTimes:   timeRange(timerange.TimeOfDay{Hour: 10}, timerange.TimeOfDay{Hour: 12}),
		DepartureDates: dateRange(date(2026, 9, 1), date(2026, 9, 2)),
		DepartureTimes: timeRange(timerange.TimeOfDay{Hour: 16}, timerange.TimeOfDay{Hour: 18}),
		Filter:         models.DefaultFilter(),
	}

	cities := Cities(r)
	// Only departure on Sep 2 leaves at least 24 hours.
	require.Len(t, cities, 1)
	assert.Equal(t, date(2026, 9, 2), *cities[0].DepartureDate)
}

func TestCitiesMaxStayRejectsLongWindows(t *testing.T) {
	r := models.CityRange{
		Airports:       []string{"YYZ"},
		MaxStayHours:   fptr(30),
		ArrivalDates:   dateRange(date(2026, 9, 1), date(2026, 9, 1)),
		DepartureDates: dateRange(date(2026, 9, 1), date(2026, 9, 5)),
		Filter:         models.DefaultFilter(),
	}

	cities := Cities(r)
	// Whole-day difference stands in for the stay when no time
	// windows exist; Sep 3 onward exceeds 30 hours.
	require.Len(t, cities, 2)
}

func TestCitiesSingleWindowLeavesStayUnchecked(t *testing.T) {
	// With only one time window the stay cannot be computed, so the
	// bound does not reject any date pair.
	r := models.CityRange{
		Airports:       []string{"YYZ"},
		MinStayHours:   fptr(1000),
		ArrivalDates:   dateRange(date(2026, 9, 1), date(2026, 9, 1)),
		ArrivalTimes:   timeRange(timerange.TimeOfDay{Hour: 10}, timerange.TimeOfDay{Hour: 12}),
		DepartureDates: dateRange(date(2026, 9, 2), date(2026, 9, 2)),
		Filter:         models.DefaultFilter(),
	}

	assert.Len(t, Cities(r), 1)
}

func TestSequenceSingleConfiguration(t *testing.T) {
	template := []models.CityRange{
		{
			Airports:       []string{"LHR"},
			DepartureDates: dateRange(date(2026, 9, 1), date(2026, 9, 1)),
			Filter:         models.DefaultFilter(),
		},
		{
			Airports:     []string{"YYZ"},
			ArrivalDates: dateRange(date(2026, 9, 1), date(2026, 9, 1)),
			Filter:       models.DefaultFilter(),
		},
	}

	seq := NewSequence(template)
	first, ok := seq.Next()
	require.True(t, ok)
	require.Len(t, first, 2)

	_, ok = seq.Next()
	assert.False(t, ok)
}

func TestSequenceFiltersDateInconsistentItineraries(t *testing.T) {
	template := []models.CityRange{
		{
			Airports:       []string{"LHR"},
			DepartureDates: dateRange(date(2026, 9, 3), date(2026, 9, 4)),
			Filter:         models.DefaultFilter(),
		},
		{
			Airports:     []string{"YYZ"},
			ArrivalDates: dateRange(date(2026, 9, 2), date(2026, 9, 3)),
			Filter:       models.DefaultFilter(),
		},
	}

	seq := NewSequence(template)
	count := 0
	for {
		cities, ok := seq.Next()
		if !ok {
			break
		}
		count++
		require.False(t, cities[0].DepartureDate.After(*cities[1].ArrivalDate))
	}
	// Departures 3,4 x arrivals 2,3: only (3,3) is consistent.
	assert.Equal(t, 1, count)
}

func TestSequenceIsRestartable(t *testing.T) {
	template := []models.CityRange{
		{
			Airports:       []string{"LHR"},
			DepartureDates: dateRange(date(2026, 9, 1), date(2026, 9, 2)),
			Filter:         models.DefaultFilter(),
		},
		{
			Airports:     []string{"YYZ"},
			ArrivalDates: dateRange(date(2026, 9, 1), date(2026, 9, 2)),
			Filter:       models.DefaultFilter(),
		},
	}

	seq := NewSequence(template)
	var firstPass int
	for {
		if _, ok := seq.Next(); !ok {
			break
		}
		firstPass++
	}

	seq.Reset()
	var secondPass int
	for {
		if _, ok := seq.Next(); !ok {
			break
		}
		secondPass++
	}

	assert.Positive(t, firstPass)
	assert.Equal(t, firstPass, secondPass)
}

func TestSequenceEmptyRangeEmptiesProduct(t *testing.T) {
	// A min-stay no window can satisfy leaves the middle range with
	// zero configurations, removing the whole template.
	template := []models.CityRange{
		{
			Airports:       []string{"LHR"},
			DepartureDates: dateRange(date(2026, 9, 1), date(2026, 9, 1)),
			Filter:         models.DefaultFilter(),
		},
		{
			Airports:       []string{"YYZ"},
			MinStayHours:   fptr(1000),
			ArrivalDates:   dateRange(date(2026, 9, 1), date(2026, 9, 1)),
			DepartureDates: dateRange(date(2026, 9, 2), date(2026, 9, 2)),
			Filter:         models.DefaultFilter(),
		},
		{
			Airports:     []string{"LHR"},
			ArrivalDates: dateRange(date(2026, 9, 2), date(2026, 9, 2)),
			Filter:       models.DefaultFilter(),
		},
	}

	seq := NewSequence(template)
	_, ok := seq.Next()
	assert.False(t, ok)
}
