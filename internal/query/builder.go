// Package query turns concrete city itineraries into the minimal set
// of provider queries. Each directed leg becomes a one-way query;
// mirror-image leg pairs within one itinerary additionally merge into
// a round-trip query. Queries are deduplicated across every itinerary
// variant by canonical hash, keeping the mapping back to the city
// pairs each query serves.
package query

import (
	"errors"
	"fmt"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

// ErrIncompatibleMerge is returned when two one-way queries cannot
// form a round trip: non-mirrored legs, or differing passenger,
// cabin or sort fields.
var ErrIncompatibleMerge = errors.New("incompatible round-trip merge")

// Build constructs the one-way query for a directed city pair: the
// departure city's departure constraints, the arrival city's arrival
// constraints, and the departure city's filter.
func Build(departure, arrival models.City, passengers models.PassengerInfo) (models.FlightQuery, error) {
	if departure.DepartureDate == nil {
		return models.FlightQuery{}, fmt.Errorf("departure city %s has no departure date", departure.ID())
	}
	if arrival.ArrivalDate != nil && arrival.ArrivalDate.Before(*departure.DepartureDate) {
		return models.FlightQuery{}, fmt.Errorf("arrival into %s predates departure from %s", arrival.ID(), departure.ID())
	}

	segment := models.FlightSegment{
		DepartureAirports: departure.Airports,
		ArrivalAirports:   arrival.Airports,
		TravelDate:        *departure.DepartureDate,
	}
	if departure.DepartureTimes != nil {
		segment.EarliestDeparture, segment.LatestDeparture = departure.DepartureTimes.HourWindow()
	}
	if arrival.ArrivalTimes != nil {
		segment.EarliestArrival, segment.LatestArrival = arrival.ArrivalTimes.HourWindow()
	}

	f := departure.Filter
	return models.FlightQuery{
		TripType:           models.TripOneWay,
		Passengers:         passengers,
		Segments:           []models.FlightSegment{segment},
		Stops:              f.Stops,
		CabinClass:         f.CabinClass,
		MaxPrice:           f.MaxPrice,
		Airlines:           f.Airlines,
		MaxDurationMinutes: f.MaxDurationMinutes,
		Layover:            f.Layover,
		Sort:               models.SortNone,
	}, nil
}

// Merge combines two one-way queries into one round-trip query. The
// legs must be mirror images and the passenger, cabin and sort fields
// identical; every optional constraint widens to the max/union/sum of
// the two sides so the merged query subsumes both.
func Merge(departing, returning models.FlightQuery) (models.FlightQuery, error) {
	if departing.TripType != models.TripOneWay || returning.TripType != models.TripOneWay {
		return models.FlightQuery{}, fmt.Errorf("%w: both queries must be one-way", ErrIncompatibleMerge)
	}
	if departing.Passengers != returning.Passengers {
		return models.FlightQuery{}, fmt.Errorf("%w: passenger info differs", ErrIncompatibleMerge)
	}
	if departing.CabinClass != returning.CabinClass {
		return models.FlightQuery{}, fmt.Errorf("%w: cabin class differs", ErrIncompatibleMerge)
	}
	if departing.Sort != returning.Sort {
		return models.FlightQuery{}, fmt.Errorf("%w: sort mode differs", ErrIncompatibleMerge)
	}
	if len(departing.Segments) != 1 || len(returning.Segments) != 1 {
		return models.FlightQuery{}, fmt.Errorf("%w: each query must have exactly one segment", ErrIncompatibleMerge)
	}
	out, back := departing.Segments[0], returning.Segments[0]
	if !sameAirportSet(out.DepartureAirports, back.ArrivalAirports) || !sameAirportSet(out.ArrivalAirports, back.DepartureAirports) {
		return models.FlightQuery{}, fmt.Errorf("%w: legs are not mirror images", ErrIncompatibleMerge)
	}

	var maxPrice *float64
	if departing.MaxPrice != nil && returning.MaxPrice != nil {
		sum := *departing.MaxPrice + *returning.MaxPrice
		maxPrice = &sum
	}

	var airlines []string
	if departing.Airlines != nil && returning.Airlines != nil {
		airlines = union(departing.Airlines, returning.Airlines)
	}

	var maxDuration *int
	if departing.MaxDurationMinutes != nil && returning.MaxDurationMinutes != nil {
		m := max(*departing.MaxDurationMinutes, *returning.MaxDurationMinutes)
		maxDuration = &m
	}

	var layover *models.LayoverRestriction
	if departing.Layover != nil && returning.Layover != nil {
		layover = &models.LayoverRestriction{}
		if departing.Layover.Airports != nil && returning.Layover.Airports != nil {
			layover.Airports = union(departing.Layover.Airports, returning.Layover.Airports)
		}
		if departing.Layover.MaxDurationMinutes != nil && returning.Layover.MaxDurationMinutes != nil {
			m := max(*departing.Layover.MaxDurationMinutes, *returning.Layover.MaxDurationMinutes)
			layover.MaxDurationMinutes = &m
		}
	}

	return models.FlightQuery{
		TripType:           models.TripRoundTrip,
		Passengers:         departing.Passengers,
		Segments:           []models.FlightSegment{out, back},
		Stops:              max(departing.Stops, returning.Stops),
		CabinClass:         departing.CabinClass,
		MaxPrice:           maxPrice,
		Airlines:           airlines,
		MaxDurationMinutes: maxDuration,
		Layover:            layover,
		Sort:               departing.Sort,
	}, nil
}

func sameAirportSet(a, b []string) bool {
	as, bs := models.SortedCopy(a), models.SortedCopy(b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
