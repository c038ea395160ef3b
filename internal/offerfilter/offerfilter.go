// Package offerfilter checks provider offers against the filter
// fields of the query that produced them.
package offerfilter

import (
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

// Matches reports whether an offer satisfies every filter field of
// the query: stop cap, price ceiling, airline allow-list, total
// duration and layover restrictions.
func Matches(offer models.FlightOffer, q models.FlightQuery) bool {
	if !q.Stops.Allows(offer.Stops) {
		return false
	}
	if q.MaxPrice != nil && offer.Price > *q.MaxPrice {
		return false
	}
	if q.MaxDurationMinutes != nil && offer.DurationMinutes > *q.MaxDurationMinutes {
		return false
	}
	if q.Airlines != nil {
		for _, leg := range offer.Legs {
			if !containsFold(q.Airlines, leg.Airline) {
				return false
			}
		}
	}
	if q.Layover != nil && !layoverAllowed(offer, *q.Layover) {
		return false
	}
	return true
}

func layoverAllowed(offer models.FlightOffer, r models.LayoverRestriction) bool {
	for i := 0; i < len(offer.Legs)-1; i++ {
		stop := offer.Legs[i].ArrivalAirport
		if r.Airports != nil && !containsFold(r.Airports, stop) {
			return false
		}
		if r.MaxDurationMinutes != nil {
			gap := offer.Legs[i+1].DepartureTime.Sub(offer.Legs[i].ArrivalTime).Minutes()
			if gap > float64(*r.MaxDurationMinutes) {
				return false
			}
		}
	}
	return true
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
