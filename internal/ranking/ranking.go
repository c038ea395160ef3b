// Package ranking defines the total order over assembled itineraries.
package ranking

import (
	"sort"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

// Less compares two itineraries by the fixed tie-break tuple: total
// price, then total flight duration, then total layover duration,
// then total stops.
func Less(a, b *models.FlightItinerary) bool {
	if a.TotalPrice() != b.TotalPrice() {
		return a.TotalPrice() < b.TotalPrice()
	}
	if a.TotalDurationMinutes() != b.TotalDurationMinutes() {
		return a.TotalDurationMinutes() < b.TotalDurationMinutes()
	}
	if a.TotalLayoverMinutes() != b.TotalLayoverMinutes() {
		return a.TotalLayoverMinutes() < b.TotalLayoverMinutes()
	}
	return a.TotalStops() < b.TotalStops()
}

// Sort orders itineraries ascending by the tie-break tuple. The sort
// is stable, so ties beyond the tuple keep their prior order and
// re-sorting is idempotent.
func Sort(itineraries []*models.FlightItinerary) {
	sort.SliceStable(itineraries, func(i, j int) bool {
		return Less(itineraries[i], itineraries[j])
	})
}
