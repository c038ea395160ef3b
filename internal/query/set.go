package query

import (
	"fmt"
	"log"

	"github.com/dharmasatrya/tripplanner/internal/canonical"
	"github.com/dharmasatrya/tripplanner/internal/models"
)

// CityPair identifies one directed leg by the content hashes of its
// departure and arrival cities.
type CityPair struct {
	Departure uint64
	Arrival   uint64
}

// Correlation routes one query's results back into an itinerary. A
// one-way query feeds a single pair; a round-trip query feeds the
// departing pair and the returning pair together.
type Correlation struct {
	Departing CityPair
	Returning CityPair
	RoundTrip bool
}

// Set is the deduplicated query collection across all itinerary
// variants. Queries keep insertion order so dispatch is
// deterministic.
type Set struct {
	passengers models.PassengerInfo

	queries      map[uint64]models.FlightQuery
	order        []uint64
	correlations map[uint64]map[Correlation]struct{}
}

func NewSet(passengers models.PassengerInfo) *Set {
	return &Set{
		passengers:   passengers,
		queries:      make(map[uint64]models.FlightQuery),
		correlations: make(map[uint64]map[Correlation]struct{}),
	}
}

func (s *Set) Len() int {
	return len(s.order)
}

// Entry is one deduplicated query with its canonical hash.
type Entry struct {
	Hash  uint64
	Query models.FlightQuery
}

// Entries returns the queries in first-seen order.
func (s *Set) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, h := range s.order {
		entries = append(entries, Entry{Hash: h, Query: s.queries[h]})
	}
	return entries
}

// Correlations returns every city-pair routing recorded for a query.
func (s *Set) Correlations(hash uint64) []Correlation {
	out := make([]Correlation, 0, len(s.correlations[hash]))
	for c := range s.correlations[hash] {
		out = append(out, c)
	}
	return out
}

type pathEntry struct {
	query models.FlightQuery
	hash  uint64
}

// AddItinerary builds and registers the queries for one concrete city
// itinerary: a one-way query per adjacent pair, plus a round-trip
// query whenever the reverse of a leg was already built earlier in
// the same itinerary. An incompatible merge is skipped with both
// one-way queries kept.
func (s *Set) AddItinerary(cities []models.City) error {
	// Per-itinerary state: directed leg -> its one-way query, and
	// query hash -> the correlation recorded within this itinerary.
	paths := make(map[[2]string]pathEntry)
	local := make(map[uint64]Correlation)

	for i := 0; i < len(cities)-1; i++ {
		departure, arrival := cities[i], cities[i+1]

		oneWay, err := Build(departure, arrival, s.passengers)
		if err != nil {
			return err
		}
		hash := canonical.HashQuery(oneWay)
		s.register(hash, oneWay)

		pair := CityPair{
			Departure: canonical.HashCity(departure),
			Arrival:   canonical.HashCity(arrival),
		}
		corr := Correlation{Departing: pair}
		if existing, ok := local[hash]; ok {
			if existing != corr {
				return fmt.Errorf("query %016x maps to conflicting city pairs within one itinerary", hash)
			}
		} else {
			local[hash] = corr
		}

		path := [2]string{departure.ID(), arrival.ID()}
		if _, ok := paths[path]; ok {
			// Repeating the same directed leg within one itinerary would
			// make result routing ambiguous.
			return fmt.Errorf("itinerary repeats leg %s -> %s", path[0], path[1])
		}
		paths[path] = pathEntry{query: oneWay, hash: hash}

		// A reversed leg earlier in this itinerary means the two can be
		// fetched together as a round trip.
		reversed := [2]string{path[1], path[0]}
		if departing, ok := paths[reversed]; ok {
			roundTrip, err := Merge(departing.query, oneWay)
			if err != nil {
				log.Printf("Skipping round-trip merge for %s <-> %s: %v", path[1], path[0], err)
				continue
			}
			roundTripHash := canonical.HashQuery(roundTrip)
			s.register(roundTripHash, roundTrip)

			departingCorr := local[departing.hash]
			if departingCorr.RoundTrip {
				return fmt.Errorf("departing query %016x is already part of a round trip", departing.hash)
			}
			merged := Correlation{
				Departing: departingCorr.Departing,
				Returning: pair,
				RoundTrip: true,
			}
			if existing, ok := local[roundTripHash]; ok {
				if existing != merged {
					return fmt.Errorf("round-trip query %016x maps to conflicting city pairs within one itinerary", roundTripHash)
				}
			} else {
				local[roundTripHash] = merged
			}
		}
	}

	for hash, corr := range local {
		if s.correlations[hash] == nil {
			s.correlations[hash] = make(map[Correlation]struct{})
		}
		s.correlations[hash][corr] = struct{}{}
	}
	return nil
}

func (s *Set) register(hash uint64, q models.FlightQuery) {
	if _, ok := s.queries[hash]; ok {
		return
	}
	s.queries[hash] = q
	s.order = append(s.order, hash)
}
