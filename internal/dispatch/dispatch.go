// Package dispatch fans the deduplicated query set out to the search
// provider, one concurrent call per query, and joins the results back
// to the city pairs each query serves. A failed query degrades to an
// empty offer list; it never fails the batch.
package dispatch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/cache"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/providers"
	"github.com/dharmasatrya/tripplanner/internal/query"
	"github.com/dharmasatrya/tripplanner/internal/ratelimit"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.Limiter
	Cache       cache.Cache
}

type Dispatcher struct {
	provider providers.Provider
	config   Config
}

func New(provider providers.Provider, config Config) *Dispatcher {
	if config.Cache == nil {
		config.Cache = cache.NewNoOpCache()
	}
	return &Dispatcher{
		provider: provider,
		config:   config,
	}
}

// Result holds every tagged offer routed to its directed city pair,
// plus batch statistics.
type Result struct {
	OffersByPair map[query.CityPair][]*models.FlightInfo

	QueriesIssued int
	QueriesFailed int
	CacheHits     int
}

// Run dispatches every query in the set concurrently and aggregates
// once all calls have resolved. Aggregation is single-threaded; no
// shared state is mutated before the join.
func (d *Dispatcher) Run(ctx context.Context, set *query.Set) (*Result, error) {
	searchCtx := ctx
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	entries := set.Entries()

	type queryResult struct {
		hash   uint64
		result *providers.SearchResult
		cached bool
		err    error
	}

	resultCh := make(chan queryResult, len(entries))
	var wg sync.WaitGroup

	for _, entry := range entries {
		wg.Add(1)
		go func(entry query.Entry) {
			defer wg.Done()

			if cached, ok := d.config.Cache.Get(searchCtx, entry.Hash); ok {
				resultCh <- queryResult{hash: entry.Hash, result: cached, cached: true}
				return
			}

			if d.config.RateLimiter != nil {
				if err := d.config.RateLimiter.Wait(searchCtx, d.provider.Name()); err != nil {
					resultCh <- queryResult{hash: entry.Hash, err: err}
					return
				}
			}

			result, err := d.searchWithRetry(searchCtx, entry.Query)
			if err == nil {
				if cacheErr := d.config.Cache.Set(searchCtx, entry.Hash, result); cacheErr != nil {
					log.Printf("Failed to cache query %016x: %v", entry.Hash, cacheErr)
				}
			}
			resultCh <- queryResult{hash: entry.Hash, result: result, err: err}
		}(entry)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	result := &Result{
		OffersByPair:  make(map[query.CityPair][]*models.FlightInfo),
		QueriesIssued: len(entries),
	}

	for qr := range resultCh {
		if qr.err != nil {
			log.Printf("Query %016x failed, contributing no offers: %v", qr.hash, qr.err)
			result.QueriesFailed++
			continue
		}
		if qr.cached {
			result.CacheHits++
		}

		departing, returning := tagOffers(qr.result)
		for _, corr := range set.Correlations(qr.hash) {
			result.OffersByPair[corr.Departing] = append(result.OffersByPair[corr.Departing], departing...)
			if corr.RoundTrip {
				result.OffersByPair[corr.Returning] = append(result.OffersByPair[corr.Returning], returning...)
			}
		}
	}

	return result, nil
}

func (d *Dispatcher) searchWithRetry(ctx context.Context, q models.FlightQuery) (*providers.SearchResult, error) {
	var lastErr error

	for attempt := 0; attempt <= d.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(d.config.RetryDelays) {
				delayIdx = len(d.config.RetryDelays) - 1
			}
			var delay time.Duration
			if delayIdx >= 0 {
				delay = d.config.RetryDelays[delayIdx]
			}

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := d.provider.Search(ctx, q)
		if err == nil {
			return result, nil
		}

		lastErr = err
		log.Printf("Provider %s attempt %d failed: %v", d.provider.Name(), attempt+1, err)
	}

	return nil, lastErr
}

// tagOffers converts raw provider results into role-tagged flights.
// Round-trip pairs get their prices normalized first (the returning
// flight absorbs max of the two, the departing flight is zeroed) so
// price-based identity does not split logically-identical pairs, then
// identical offers are collapsed and the returning flight records
// every departing flight it was priced with.
func tagOffers(result *providers.SearchResult) (departing, returning []*models.FlightInfo) {
	departingByID := make(map[string]*models.FlightInfo)
	returningByID := make(map[string]*models.FlightInfo)

	for _, pair := range result.Pairs {
		dep := models.NewFlightInfo(pair.Departing, models.RoleRoundTripDeparting)
		ret := models.NewFlightInfo(pair.Returning, models.RoleRoundTripReturning)

		if dep.Price > ret.Price {
			ret.Price = dep.Price
		}
		dep.Price = 0

		depID := dep.ID()
		if _, ok := departingByID[depID]; !ok {
			departingByID[depID] = dep
			departing = append(departing, dep)
		}

		retID := ret.ID()
		if _, ok := returningByID[retID]; !ok {
			returningByID[retID] = ret
			returning = append(returning, ret)
		}
		returningByID[retID].ParentIDs = append(returningByID[retID].ParentIDs, depID)
	}

	for _, offer := range result.Offers {
		flight := models.NewFlightInfo(offer, models.RoleOneWay)
		id := flight.ID()
		if _, ok := departingByID[id]; !ok {
			departingByID[id] = flight
			departing = append(departing, flight)
		}
	}

	return departing, returning
}
