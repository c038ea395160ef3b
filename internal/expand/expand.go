// Package expand turns under-specified trip templates into concrete
// city itineraries. A CityRange fans out to one City per viable
// (arrival date, departure date) pair; a template fans out to the
// cartesian product of its ranges, filtered for date consistency
// between adjacent cities.
package expand

import (
	"time"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

// Cities enumerates every concrete configuration of one CityRange
// that survives its stay-duration bounds.
func Cities(r models.CityRange) []models.City {
	arrivalDates := []*time.Time{nil}
	if r.ArrivalDates != nil && r.ArrivalDates.Bounded() {
		arrivalDates = datePointers(r.ArrivalDates.Days())
	}
	departureDates := []*time.Time{nil}
	if r.DepartureDates != nil && r.DepartureDates.Bounded() {
		departureDates = datePointers(r.DepartureDates.Days())
	}

	var cities []models.City
	for _, arrival := range arrivalDates {
		for _, departure := range departureDates {
			if arrival != nil && departure != nil {
				if !stayBoundsSatisfied(r, *arrival, *departure) {
					continue
				}
				if arrival.After(*departure) {
					continue
				}
			}
			cities = append(cities, models.City{
				Airports:       r.Airports,
				ArrivalDate:    arrival,
				ArrivalTimes:   r.ArrivalTimes,
				DepartureDate:  departure,
				DepartureTimes: r.DepartureTimes,
				Filter:         r.Filter,
			})
		}
	}
	return cities
}

// stayBoundsSatisfied checks the worst-case stay achievable for a
// fixed (arrival, departure) date pair against the range's stay-hour
// bounds. With both time windows present the worst cases come from
// the window edges; without them the whole-day difference stands in
// for both.
func stayBoundsSatisfied(r models.CityRange, arrival, departure time.Time) bool {
	var maxStay, minStay *float64
	if r.ArrivalTimes != nil && r.DepartureTimes != nil {
		if r.ArrivalTimes.Earliest != nil && r.DepartureTimes.Latest != nil {
			hours := r.DepartureTimes.Latest.On(departure).Sub(r.ArrivalTimes.Earliest.On(arrival)).Hours()
			maxStay = &hours
		}
		if r.ArrivalTimes.Latest != nil && r.DepartureTimes.Earliest != nil {
			hours := r.DepartureTimes.Earliest.On(departure).Sub(r.ArrivalTimes.Latest.On(arrival)).Hours()
			minStay = &hours
		}
	} else if r.ArrivalTimes == nil && r.DepartureTimes == nil {
		// With one window missing the stay is not computable; only the
		// fully-unwindowed case falls back to the whole-day difference.
		hours := departure.Sub(arrival).Hours()
		maxStay = &hours
		minStay = &hours
	}

	if r.MinStayHours != nil && maxStay != nil && *maxStay < *r.MinStayHours {
		return false
	}
	if r.MaxStayHours != nil && minStay != nil && *minStay > *r.MaxStayHours {
		return false
	}
	return true
}

func datePointers(days []time.Time) []*time.Time {
	out := make([]*time.Time, len(days))
	for i := range days {
		out[i] = &days[i]
	}
	return out
}

// Sequence lazily enumerates every valid city itinerary of a
// template: the cartesian product of each range's configurations,
// keeping only sequences whose adjacent cities are date-consistent.
// It is finite and restartable; nothing is materialized beyond the
// per-range configuration lists.
type Sequence struct {
	configs [][]models.City
	idx     []int
	done    bool
}

// NewSequence precomputes per-range configurations. An empty
// configuration list for any range makes the whole sequence empty.
func NewSequence(ranges []models.CityRange) *Sequence {
	configs := make([][]models.City, len(ranges))
	empty := len(ranges) == 0
	for i, r := range ranges {
		configs[i] = Cities(r)
		if len(configs[i]) == 0 {
			empty = true
		}
	}
	return &Sequence{
		configs: configs,
		idx:     make([]int, len(ranges)),
		done:    empty,
	}
}

// Reset rewinds the sequence to its first itinerary.
func (s *Sequence) Reset() {
	for i := range s.idx {
		s.idx[i] = 0
	}
	s.done = false
	for _, c := range s.configs {
		if len(c) == 0 {
			s.done = true
		}
	}
	if len(s.configs) == 0 {
		s.done = true
	}
}

// Next returns the next valid itinerary, or false when exhausted.
func (s *Sequence) Next() ([]models.City, bool) {
	for !s.done {
		itinerary := make([]models.City, len(s.configs))
		for i, j := range s.idx {
			itinerary[i] = s.configs[i][j]
		}
		s.advance()
		if consistent(itinerary) {
			return itinerary, true
		}
	}
	return nil, false
}

// advance increments the odometer of per-range indexes.
func (s *Sequence) advance() {
	for i := len(s.idx) - 1; i >= 0; i-- {
		s.idx[i]++
		if s.idx[i] < len(s.configs[i]) {
			return
		}
		s.idx[i] = 0
	}
	s.done = true
}

// consistent checks that each city's departure does not precede its
// successor's arrival: by date when both dates are fixed, and by
// instant when both cities carry fully-bounded windows.
func consistent(itinerary []models.City) bool {
	for i := 0; i < len(itinerary)-1; i++ {
		departure := itinerary[i].DepartureDate
		arrival := itinerary[i+1].ArrivalDate
		if departure != nil && arrival != nil && departure.After(*arrival) {
			return false
		}

		departureWindow := itinerary[i].DepartureWindow()
		arrivalWindow := itinerary[i+1].ArrivalWindow()
		if departureWindow != nil && arrivalWindow != nil &&
			departureWindow.Earliest != nil && arrivalWindow.Latest != nil &&
			departureWindow.Earliest.After(*arrivalWindow.Latest) {
			return false
		}
	}
	return true
}
