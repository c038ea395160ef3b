package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/dispatch"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/providers"
	"github.com/dharmasatrya/tripplanner/internal/timerange"
)

// syntheticProvider fabricates one offer per one-way query and one
// pair per round-trip query, so the pipeline has something to
// assemble without touching a real backend.
type syntheticProvider struct {
	fail bool
}

func (p *syntheticProvider) Name() string { return "synthetic" }

func (p *syntheticProvider) Search(_ context.Context, q models.FlightQuery) (*providers.SearchResult, error) {
	if p.fail {
		return nil, errors.New("synthetic outage")
	}

	offerFor := func(seg models.FlightSegment, price float64) models.FlightOffer {
		departure := seg.TravelDate.Add(9 * time.Hour)
		return models.FlightOffer{
			Legs: []models.FlightLeg{{
				Airline:          "BA",
				FlightNumber:     "101",
				DepartureAirport: seg.DepartureAirports[0],
				ArrivalAirport:   seg.ArrivalAirports[0],
				DepartureTime:    departure,
				ArrivalTime:      departure.Add(8 * time.Hour),
				DurationMinutes:  480,
			}},
			Price:           price,
			DurationMinutes: 480,
		}
	}

	if q.TripType == models.TripRoundTrip {
		return &providers.SearchResult{
			Pairs: []models.OfferPair{{
				Departing: offerFor(q.Segments[0], 400),
				Returning: offerFor(q.Segments[1], 450),
			}},
		}, nil
	}
	return &providers.SearchResult{
		Offers: []models.FlightOffer{offerFor(q.Segments[0], 500)},
	}, nil
}

func dateRange(day int) *timerange.DateRange {
	d := time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
	return &timerange.DateRange{Earliest: &d, Latest: &d}
}

func returnTemplate() []models.CityRange {
	return []models.CityRange{
		{Airports: []string{"LHR"}, DepartureDates: dateRange(1), Filter: models.DefaultFilter()},
		{Airports: []string{"YYZ"}, ArrivalDates: dateRange(1), DepartureDates: dateRange(5), Filter: models.DefaultFilter()},
		{Airports: []string{"LHR"}, ArrivalDates: dateRange(5), Filter: models.DefaultFilter()},
	}
}

func TestSearchEndToEnd(t *testing.T) {
	p := New(dispatch.New(&syntheticProvider{}, dispatch.Config{}))

	plan, err := p.Search(context.Background(), [][]models.CityRange{returnTemplate()}, 1)
	require.NoError(t, err)

	assert.NotEmpty(t, plan.SearchID)
	assert.Equal(t, 1, plan.Configurations)
	assert.Equal(t, 3, plan.QueriesBuilt)
	assert.Zero(t, plan.QueriesFailed)
	require.NotEmpty(t, plan.Itineraries.Itineraries)

	// Every assembled itinerary has one flight per leg, and the
	// round-trip pairing (400 zeroed into the departing half, 450
	// absorbing the max) undercuts the two one-way offers.
	best := plan.Itineraries.Itineraries[0]
	require.Len(t, best.Flights, 2)
	assert.Equal(t, 450.0, best.TotalPrice())
	assert.Equal(t, models.RoleRoundTripDeparting, best.Flights[0].Role)
	assert.Equal(t, models.RoleRoundTripReturning, best.Flights[1].Role)
}

func TestSearchRanksItineraries(t *testing.T) {
	p := New(dispatch.New(&syntheticProvider{}, dispatch.Config{}))

	plan, err := p.Search(context.Background(), [][]models.CityRange{returnTemplate()}, 1)
	require.NoError(t, err)

	its := plan.Itineraries.Itineraries
	require.NotEmpty(t, its)
	for i := 1; i < len(its); i++ {
		assert.LessOrEqual(t, its[i-1].TotalPrice(), its[i].TotalPrice())
	}
}

func TestSearchProviderFailureYieldsEmptyPlan(t *testing.T) {
	p := New(dispatch.New(&syntheticProvider{fail: true}, dispatch.Config{}))

	plan, err := p.Search(context.Background(), [][]models.CityRange{returnTemplate()}, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, plan.QueriesFailed)
	assert.Empty(t, plan.Itineraries.Itineraries)
}

func TestSearchEmptyTemplates(t *testing.T) {
	p := New(dispatch.New(&syntheticProvider{}, dispatch.Config{}))

	plan, err := p.Search(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Zero(t, plan.Configurations)
	assert.Empty(t, plan.Itineraries.Itineraries)
}
