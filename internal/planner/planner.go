// Package planner wires the pipeline end to end: expand templates
// into concrete city itineraries, build and dedupe the query set,
// dispatch it, assemble per-itinerary flights and rank the result.
package planner

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/dharmasatrya/tripplanner/internal/assemble"
	"github.com/dharmasatrya/tripplanner/internal/canonical"
	"github.com/dharmasatrya/tripplanner/internal/dispatch"
	"github.com/dharmasatrya/tripplanner/internal/expand"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/query"
	"github.com/dharmasatrya/tripplanner/internal/ranking"
)

type Planner struct {
	dispatcher *dispatch.Dispatcher
}

func New(dispatcher *dispatch.Dispatcher) *Planner {
	return &Planner{dispatcher: dispatcher}
}

// Plan is the outcome of one search run.
type Plan struct {
	SearchID    string
	Itineraries models.FlightItineraries

	Configurations int
	QueriesBuilt   int
	QueriesFailed  int
	CacheHits      int
}

// configuration is one concrete city itinerary awaiting assembly,
// with the stay bounds of the cities before each leg.
type configuration struct {
	cities       []models.City
	minStayHours []*float64
	maxStayHours []*float64
}

// Search runs the full pipeline over every template. An empty final
// collection is a success, not an error.
func (p *Planner) Search(ctx context.Context, templates [][]models.CityRange, passengers int) (*Plan, error) {
	plan := &Plan{SearchID: uuid.NewString()}

	set := query.NewSet(models.PassengerInfo{Adults: passengers})
	var configurations []configuration

	for _, template := range templates {
		// The stay bounds of the final city never matter; the leading
		// city's bound is kept so the slices stay parallel to the legs.
		minStay := make([]*float64, 0, len(template))
		maxStay := make([]*float64, 0, len(template))
		for _, cr := range template[:len(template)-1] {
			minStay = append(minStay, cr.MinStayHours)
			maxStay = append(maxStay, cr.MaxStayHours)
		}

		seq := expand.NewSequence(template)
		for {
			cities, ok := seq.Next()
			if !ok {
				break
			}
			if err := set.AddItinerary(cities); err != nil {
				return nil, err
			}
			configurations = append(configurations, configuration{
				cities:       cities,
				minStayHours: minStay,
				maxStayHours: maxStay,
			})
		}
	}

	plan.Configurations = len(configurations)
	plan.QueriesBuilt = set.Len()
	log.Printf("[%s] %d city configurations, %d deduplicated queries", plan.SearchID, plan.Configurations, plan.QueriesBuilt)

	result, err := p.dispatcher.Run(ctx, set)
	if err != nil {
		return nil, err
	}
	plan.QueriesFailed = result.QueriesFailed
	plan.CacheHits = result.CacheHits

	var itineraries []*models.FlightItinerary
	for _, config := range configurations {
		legCandidates := make([][]*models.FlightInfo, 0, len(config.cities)-1)
		for i := 0; i < len(config.cities)-1; i++ {
			pair := query.CityPair{
				Departure: canonical.HashCity(config.cities[i]),
				Arrival:   canonical.HashCity(config.cities[i+1]),
			}
			legCandidates = append(legCandidates, result.OffersByPair[pair])
		}

		assembled, err := assemble.Itineraries(legCandidates, config.minStayHours, config.maxStayHours)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, assembled...)
	}

	log.Printf("[%s] %d flight itineraries assembled", plan.SearchID, len(itineraries))
	ranking.Sort(itineraries)
	plan.Itineraries = models.FlightItineraries{Itineraries: itineraries}
	return plan, nil
}
