package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/airports"
	"github.com/dharmasatrya/tripplanner/pkg/format"
)

var (
	errEmptyItinerary    = errors.New("itinerary must contain at least one flight")
	errUnresolvedParent  = errors.New("returning flight must have exactly one resolved parent id")
	errUnmatchedParentID = errors.New("returning flight's parent id does not appear earlier in the itinerary")
)

// FlightItinerary is an ordered chain of flights where each flight's
// arrival location is the next flight's departure location. Returning
// round-trip flights must already have their parent ambiguity
// resolved to a single id.
type FlightItinerary struct {
	Flights []*FlightInfo `json:"flights"`

	groupIDs []int
}

func NewFlightItinerary(flights []*FlightInfo) (*FlightItinerary, error) {
	if len(flights) == 0 {
		return nil, errEmptyItinerary
	}
	for _, f := range flights {
		if f.Role == RoleRoundTripReturning && len(f.ParentIDs) != 1 {
			return nil, fmt.Errorf("%w, got %d", errUnresolvedParent, len(f.ParentIDs))
		}
	}
	it := &FlightItinerary{Flights: flights}
	groupIDs, err := buildGroupIDs(flights)
	if err != nil {
		return nil, err
	}
	it.groupIDs = groupIDs
	return it, nil
}

// buildGroupIDs assigns a display group number to every flight so
// the two halves of a round trip share one number.
func buildGroupIDs(flights []*FlightInfo) ([]int, error) {
	groupIDs := make([]int, 0, len(flights))
	departingGroups := make(map[string]int)
	nextGroup := 1
	for _, f := range flights {
		if f.Role == RoleRoundTripReturning {
			group, ok := departingGroups[f.ParentIDs[0]]
			if !ok {
				return nil, errUnmatchedParentID
			}
			groupIDs = append(groupIDs, group)
			continue
		}
		if f.Role == RoleRoundTripDeparting {
			departingGroups[f.ID()] = nextGroup
		}
		groupIDs = append(groupIDs, nextGroup)
		nextGroup++
	}
	return groupIDs, nil
}

func (it *FlightItinerary) GroupIDs() []int {
	return it.groupIDs
}

func (it *FlightItinerary) TotalPrice() float64 {
	total := 0.0
	for _, f := range it.Flights {
		total += f.Price
	}
	return total
}

func (it *FlightItinerary) TotalDurationMinutes() int {
	total := 0
	for _, f := range it.Flights {
		total += f.DurationMinutes
	}
	return total
}

func (it *FlightItinerary) TotalLayoverMinutes() float64 {
	total := 0.0
	for _, f := range it.Flights {
		for _, gap := range f.LayoverMinutes() {
			total += gap
		}
	}
	return total
}

func (it *FlightItinerary) TotalStops() int {
	total := 0
	for _, f := range it.Flights {
		total += f.Stops
	}
	return total
}

func (it *FlightItinerary) DepartureTime() time.Time {
	return it.Flights[0].DepartureTime()
}

func (it *FlightItinerary) ReturnTime() time.Time {
	return it.Flights[len(it.Flights)-1].ArrivalTime()
}

func (it *FlightItinerary) StartCity() string {
	return airports.CityName(it.Flights[0].Legs[0].DepartureAirport)
}

func (it *FlightItinerary) EndCity() string {
	last := it.Flights[len(it.Flights)-1]
	return airports.CityName(last.Legs[len(last.Legs)-1].ArrivalAirport)
}

// StopoverCities names the city after each flight but the last.
func (it *FlightItinerary) StopoverCities() []string {
	cities := make([]string, 0, len(it.Flights)-1)
	for _, f := range it.Flights[:len(it.Flights)-1] {
		cities = append(cities, airports.CityName(f.Legs[len(f.Legs)-1].ArrivalAirport))
	}
	return cities
}

// StopoverMinutes returns the dwell time at each stopover city.
func (it *FlightItinerary) StopoverMinutes() []float64 {
	dwell := make([]float64, 0, len(it.Flights)-1)
	for i := 0; i < len(it.Flights)-1; i++ {
		arrival := it.Flights[i].ArrivalTime()
		departure := it.Flights[i+1].DepartureTime()
		dwell = append(dwell, departure.Sub(arrival).Minutes())
	}
	return dwell
}

// ItineraryResult is the result-sink serialization of one itinerary.
type ItineraryResult struct {
	TotalPrice        float64  `json:"total_price"`
	TotalFlightHours  float64  `json:"total_flight_hours"`
	TotalLayoverHours float64  `json:"total_layover_hours"`
	TotalNumStops     int      `json:"total_num_stops"`
	DepartureDatetime string   `json:"departure_datetime"`
	ReturningDatetime string   `json:"returning_datetime"`
	StartCity         string   `json:"start_city"`
	EndCity           string   `json:"end_city"`
	StopoverCities    []string `json:"stopover_cities"`
	FormattedString   string   `json:"formatted_string"`
}

func (it *FlightItinerary) Result() ItineraryResult {
	return ItineraryResult{
		TotalPrice:        it.TotalPrice(),
		TotalFlightHours:  float64(it.TotalDurationMinutes()) / 60,
		TotalLayoverHours: it.TotalLayoverMinutes() / 60,
		TotalNumStops:     it.TotalStops(),
		DepartureDatetime: it.DepartureTime().Format(time.RFC3339),
		ReturningDatetime: it.ReturnTime().Format(time.RFC3339),
		StartCity:         it.StartCity(),
		EndCity:           it.EndCity(),
		StopoverCities:    it.StopoverCities(),
		FormattedString:   it.String(),
	}
}

func (it *FlightItinerary) String() string {
	stats := strings.Join([]string{
		fmt.Sprintf("%s - %s", it.DepartureTime().Format("2006-01-02 15:04"), it.ReturnTime().Format("2006-01-02 15:04")),
		format.Price(it.TotalPrice()),
		format.Minutes(it.TotalDurationMinutes()),
	}, " | ")

	components := []string{
		stats,
		fmt.Sprintf("%s | START", it.StartCity()),
	}
	stopovers := it.StopoverCities()
	dwell := it.StopoverMinutes()
	for i := range stopovers {
		components = append(components, fmt.Sprintf("[FLIGHT %d]: %s", it.groupIDs[i], it.Flights[i]))
		components = append(components, fmt.Sprintf("%s | %s", stopovers[i], format.Minutes(int(dwell[i]+0.5))))
	}
	components = append(components, fmt.Sprintf("[FLIGHT %d]: %s", it.groupIDs[len(it.groupIDs)-1], it.Flights[len(it.Flights)-1]))
	components = append(components, fmt.Sprintf("%s | END", it.EndCity()))
	return strings.Join(components, "\n\n")
}

// FlightItineraries is the ranked result collection.
type FlightItineraries struct {
	Itineraries []*FlightItinerary `json:"itineraries"`
}

// TopN keeps the first n itineraries. Assumes the collection is
// already ranking-sorted.
func (fi FlightItineraries) TopN(n int) FlightItineraries {
	if n <= 0 || n >= len(fi.Itineraries) {
		return fi
	}
	return FlightItineraries{Itineraries: fi.Itineraries[:n]}
}

func (fi FlightItineraries) Results() []ItineraryResult {
	results := make([]ItineraryResult, 0, len(fi.Itineraries))
	for _, it := range fi.Itineraries {
		results = append(results, it.Result())
	}
	return results
}
