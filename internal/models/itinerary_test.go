package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlight(role FlightRole, from, to string, departure time.Time, legs ...FlightLeg) *FlightInfo {
	if len(legs) == 0 {
		legs = []FlightLeg{{
			Airline:          "BA",
			FlightNumber:     "101",
			DepartureAirport: from,
			ArrivalAirport:   to,
			DepartureTime:    departure,
			ArrivalTime:      departure.Add(8 * time.Hour),
			DurationMinutes:  480,
		}}
	}
	return NewFlightInfo(FlightOffer{
		Legs:            legs,
		Price:           500,
		DurationMinutes: 480,
	}, role)
}

func testDay(day, hour int) time.Time {
	return time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
}

func TestNewFlightItineraryRejectsEmpty(t *testing.T) {
	_, err := NewFlightItinerary(nil)
	assert.Error(t, err)
}

func TestNewFlightItineraryRejectsUnresolvedParents(t *testing.T) {
	returning := testFlight(RoleRoundTripReturning, "YYZ", "LHR", testDay(5, 9))
	returning.ParentIDs = []string{"a", "b"}

	_, err := NewFlightItinerary([]*FlightInfo{returning})
	assert.Error(t, err)
}

func TestNewFlightItineraryRejectsUnmatchedParent(t *testing.T) {
	departing := testFlight(RoleRoundTripDeparting, "LHR", "YYZ", testDay(1, 9))
	returning := testFlight(RoleRoundTripReturning, "YYZ", "LHR", testDay(5, 9))
	returning.ParentIDs = []string{"not the departing flight"}

	_, err := NewFlightItinerary([]*FlightInfo{departing, returning})
	assert.Error(t, err)
}

func TestGroupIDsPairRoundTripHalves(t *testing.T) {
	departing := testFlight(RoleRoundTripDeparting, "LHR", "YYZ", testDay(1, 9))
	middle := testFlight(RoleOneWay, "YYZ", "LAX", testDay(2, 9))
	returning := testFlight(RoleRoundTripReturning, "LAX", "LHR", testDay(5, 9))
	returning.ParentIDs = []string{departing.ID()}

	it, err := NewFlightItinerary([]*FlightInfo{departing, middle, returning})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1}, it.GroupIDs())
}

func TestItineraryAggregates(t *testing.T) {
	out := testFlight(RoleOneWay, "LHR", "YYZ", testDay(1, 9))
	out.Price = 300
	out.Stops = 1
	out.Legs = []FlightLeg{
		{
			Airline: "BA", FlightNumber: "101",
			DepartureAirport: "LHR", ArrivalAirport: "CDG",
			DepartureTime: testDay(1, 9), ArrivalTime: testDay(1, 10),
			DurationMinutes: 60,
		},
		{
			Airline: "BA", FlightNumber: "202",
			DepartureAirport: "CDG", ArrivalAirport: "YYZ",
			DepartureTime: testDay(1, 12), ArrivalTime: testDay(1, 19),
			DurationMinutes: 420,
		},
	}
	back := testFlight(RoleOneWay, "YYZ", "LHR", testDay(5, 9))
	back.Price = 400

	it, err := NewFlightItinerary([]*FlightInfo{out, back})
	require.NoError(t, err)

	assert.Equal(t, 700.0, it.TotalPrice())
	assert.Equal(t, 960, it.TotalDurationMinutes())
	assert.Equal(t, 120.0, it.TotalLayoverMinutes())
	assert.Equal(t, 1, it.TotalStops())
	assert.Equal(t, testDay(1, 9), it.DepartureTime())
	assert.Equal(t, testDay(5, 17), it.ReturnTime())
}

func TestItineraryCityNames(t *testing.T) {
	out := testFlight(RoleOneWay, "LHR", "YYZ", testDay(1, 9))
	back := testFlight(RoleOneWay, "YYZ", "LHR", testDay(5, 9))

	it, err := NewFlightItinerary([]*FlightInfo{out, back})
	require.NoError(t, err)

	assert.Equal(t, "London", it.StartCity())
	assert.Equal(t, "London", it.EndCity())
	assert.Equal(t, []string{"Toronto"}, it.StopoverCities())
}

func TestItineraryStopoverMinutes(t *testing.T) {
	out := testFlight(RoleOneWay, "LHR", "YYZ", testDay(1, 9))  // lands 17:00
	back := testFlight(RoleOneWay, "YYZ", "LHR", testDay(3, 9)) // 40h later

	it, err := NewFlightItinerary([]*FlightInfo{out, back})
	require.NoError(t, err)
	assert.Equal(t, []float64{40 * 60}, it.StopoverMinutes())
}

func TestItineraryResultFields(t *testing.T) {
	out := testFlight(RoleOneWay, "LHR", "YYZ", testDay(1, 9))
	out.Price = 300
	back := testFlight(RoleOneWay, "YYZ", "LHR", testDay(5, 9))
	back.Price = 400

	it, err := NewFlightItinerary([]*FlightInfo{out, back})
	require.NoError(t, err)

	result := it.Result()
	assert.Equal(t, 700.0, result.TotalPrice)
	assert.Equal(t, 16.0, result.TotalFlightHours)
	assert.Equal(t, "London", result.StartCity)
	assert.Equal(t, "London", result.EndCity)
	assert.Equal(t, []string{"Toronto"}, result.StopoverCities)
	assert.Equal(t, "2026-09-01T09:00:00Z", result.DepartureDatetime)
	assert.Equal(t, "2026-09-05T17:00:00Z", result.ReturningDatetime)
	assert.NotEmpty(t, result.FormattedString)
}

func TestItineraryStringRendering(t *testing.T) {
	out := testFlight(RoleOneWay, "LHR", "YYZ", testDay(1, 9))
	back := testFlight(RoleOneWay, "YYZ", "LHR", testDay(5, 9))

	it, err := NewFlightItinerary([]*FlightInfo{out, back})
	require.NoError(t, err)

	s := it.String()
	assert.True(t, strings.HasSuffix(s, "London | END"))
	assert.Contains(t, s, "London | START")
	assert.Contains(t, s, "[FLIGHT 1]:")
	assert.Contains(t, s, "[FLIGHT 2]:")
	assert.Contains(t, s, "Toronto |")
}

func TestTopNClipsRankedCollection(t *testing.T) {
	mk := func(hour int) *FlightItinerary {
		it, err := NewFlightItinerary([]*FlightInfo{testFlight(RoleOneWay, "LHR", "YYZ", testDay(1, hour))})
		require.NoError(t, err)
		return it
	}
	all := FlightItineraries{Itineraries: []*FlightItinerary{mk(6), mk(9), mk(12)}}

	assert.Len(t, all.TopN(2).Itineraries, 2)
	assert.Len(t, all.TopN(0).Itineraries, 3)
	assert.Len(t, all.TopN(10).Itineraries, 3)
	assert.Len(t, all.Results(), 3)
}
