// Package assemble runs the constrained backtracking search that
// combines per-leg candidate flights into complete itineraries. A
// path is valid when every stopover gap is positive and inside its
// stay-hour bounds, and every round trip opened along the way is
// closed by the final leg.
package assemble

import (
	"github.com/dharmasatrya/tripplanner/internal/models"
)

// Itineraries searches one concrete city itinerary.
//
// legCandidates[i] holds every candidate flight for the directed pair
// (city i, city i+1); minStayHours[i] and maxStayHours[i] bound the
// dwell time at the city *before* leg i (nil = unconstrained; index 0
// is never consulted). Any empty candidate list yields zero
// itineraries, which is not an error.
//
// When a returning flight matches several open round trips, the first
// parent in its list order wins. That greedy choice is not globally
// optimal - a different assignment could enable more itineraries -
// but it keeps results reproducible.
func Itineraries(legCandidates [][]*models.FlightInfo, minStayHours, maxStayHours []*float64) ([]*models.FlightItinerary, error) {
	if len(legCandidates) == 0 {
		return nil, nil
	}

	if len(legCandidates) == 1 {
		itineraries := make([]*models.FlightItinerary, 0, len(legCandidates[0]))
		for _, flight := range legCandidates[0] {
			it, err := models.NewFlightItinerary([]*models.FlightInfo{flight})
			if err != nil {
				return nil, err
			}
			itineraries = append(itineraries, it)
		}
		return itineraries, nil
	}

	search := searcher{
		legCandidates: legCandidates,
		minStayHours:  minStayHours,
		maxStayHours:  maxStayHours,
	}

	var itineraries []*models.FlightItinerary
	for _, start := range legCandidates[0] {
		for _, path := range search.recurse(start, nil, 1) {
			it, err := models.NewFlightItinerary(path)
			if err != nil {
				return nil, err
			}
			itineraries = append(itineraries, it)
		}
	}
	return itineraries, nil
}

type searcher struct {
	legCandidates [][]*models.FlightInfo
	minStayHours  []*float64
	maxStayHours  []*float64
}

// recurse extends the path ending at prev with every viable candidate
// for the current leg. open holds the ids of departing round-trip
// flights not yet paired; it is copied before any branch mutates it
// so siblings never observe each other's pairings.
func (s searcher) recurse(prev *models.FlightInfo, open map[string]struct{}, legIndex int) [][]*models.FlightInfo {
	if prev.Role == models.RoleRoundTripDeparting {
		open = cloneSet(open)
		open[prev.ID()] = struct{}{}
	}

	var paths [][]*models.FlightInfo
	for _, candidate := range s.legCandidates[legIndex] {
		next := candidate
		childOpen := cloneSet(open)

		if len(next.ParentIDs) > 0 {
			// Returning flight: eligible only if one of its departing
			// flights is open on this branch. First match in list order
			// wins and is fixed as the single resolved parent.
			matched := ""
			for _, parentID := range next.ParentIDs {
				if _, ok := childOpen[parentID]; ok {
					matched = parentID
					break
				}
			}
			if matched == "" {
				continue
			}
			next = next.Clone()
			next.ParentIDs = []string{matched}
			delete(childOpen, matched)
		}

		stayHours := next.DepartureTime().Sub(prev.ArrivalTime()).Hours()
		if stayHours <= 0 {
			continue
		}
		if s.minStayHours[legIndex] != nil && stayHours < *s.minStayHours[legIndex] {
			continue
		}
		if s.maxStayHours[legIndex] != nil && stayHours > *s.maxStayHours[legIndex] {
			continue
		}

		var completions [][]*models.FlightInfo
		if legIndex == len(s.legCandidates)-1 {
			if len(childOpen) > 0 {
				// An unreturned round-trip departure means the trip would
				// abandon its returning half.
				continue
			}
			completions = [][]*models.FlightInfo{{next}}
		} else {
			completions = s.recurse(next, childOpen, legIndex+1)
		}

		for _, completion := range completions {
			paths = append(paths, append([]*models.FlightInfo{prev}, completion...))
		}
	}
	return paths
}

func cloneSet(set map[string]struct{}) map[string]struct{} {
	clone := make(map[string]struct{}, len(set))
	for k := range set {
		clone[k] = struct{}{}
	}
	return clone
}
