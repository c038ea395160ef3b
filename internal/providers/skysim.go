package providers

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/canonical"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/offerfilter"
)

// SkySim is a simulated search provider. Offers are derived
// deterministically from the query's canonical hash, so the same
// query always yields the same results, and every offer honors the
// query's filter fields and hour windows.
type SkySim struct {
	config SkySimConfig
}

type SkySimConfig struct {
	Latency       time.Duration
	LatencyJitter time.Duration
	FailureRate   float64
	OffersPerLeg  int
}

func DefaultSkySimConfig() SkySimConfig {
	return SkySimConfig{
		Latency:       60 * time.Millisecond,
		LatencyJitter: 50 * time.Millisecond,
		OffersPerLeg:  8,
	}
}

func NewSkySim(config SkySimConfig) *SkySim {
	if config.OffersPerLeg <= 0 {
		config.OffersPerLeg = DefaultSkySimConfig().OffersPerLeg
	}
	return &SkySim{config: config}
}

func (p *SkySim) Name() string {
	return "skysim"
}

var errSimulatedOutage = errors.New("simulated upstream outage")

var airlines = []struct {
	Code string
	Name string
}{
	{"BA", "British Airways"},
	{"AC", "Air Canada"},
	{"AF", "Air France"},
	{"KL", "KLM"},
	{"LH", "Lufthansa"},
	{"UA", "United Airlines"},
	{"DL", "Delta Air Lines"},
	{"EK", "Emirates"},
	{"SQ", "Singapore Airlines"},
	{"GA", "Garuda Indonesia"},
}

var hubAirports = []string{"AMS", "DXB", "IST", "KEF", "ORD", "SIN"}

func (p *SkySim) Search(ctx context.Context, q models.FlightQuery) (*SearchResult, error) {
	rng := rand.New(rand.NewSource(int64(canonical.HashQuery(q))))

	delay := p.config.Latency
	if p.config.LatencyJitter > 0 {
		delay += time.Duration(rng.Int63n(int64(p.config.LatencyJitter)))
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.config.FailureRate > 0 && rng.Float64() < p.config.FailureRate {
		return nil, NewProviderError(p.Name(), errSimulatedOutage)
	}

	if q.TripType == models.TripRoundTrip {
		departing := p.legOffers(rng, q, q.Segments[0])
		returning := p.legOffers(rng, q, q.Segments[1])
		n := len(departing)
		if len(returning) < n {
			n = len(returning)
		}
		pairs := make([]models.OfferPair, 0, n)
		for i := 0; i < n; i++ {
			pairs = append(pairs, models.OfferPair{Departing: departing[i], Returning: returning[i]})
		}
		return &SearchResult{Pairs: pairs}, nil
	}

	return &SearchResult{Offers: p.legOffers(rng, q, q.Segments[0])}, nil
}

// legOffers produces the synthetic offers for one segment, dropping
// any that break the segment's hour windows or the query's filter.
func (p *SkySim) legOffers(rng *rand.Rand, q models.FlightQuery, segment models.FlightSegment) []models.FlightOffer {
	var offers []models.FlightOffer
	for i := 0; i < p.config.OffersPerLeg; i++ {
		offer := p.buildOffer(rng, q, segment)
		if !departureInWindow(offer, segment) || !arrivalInWindow(offer, segment) {
			continue
		}
		if !offerfilter.Matches(offer, q) {
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

func (p *SkySim) buildOffer(rng *rand.Rand, q models.FlightQuery, segment models.FlightSegment) models.FlightOffer {
	from := segment.DepartureAirports[rng.Intn(len(segment.DepartureAirports))]
	to := segment.ArrivalAirports[rng.Intn(len(segment.ArrivalAirports))]

	airline := airlines[rng.Intn(len(airlines))]
	if len(q.Airlines) > 0 {
		code := q.Airlines[rng.Intn(len(q.Airlines))]
		airline = struct {
			Code string
			Name string
		}{Code: code}
		for _, a := range airlines {
			if a.Code == code {
				airline = a
				break
			}
		}
	}

	departure := time.Date(
		segment.TravelDate.Year(), segment.TravelDate.Month(), segment.TravelDate.Day(),
		5+rng.Intn(17), 5*rng.Intn(12), 0, 0, time.UTC,
	)
	stops := rng.Intn(3)

	var legs []models.FlightLeg
	totalFlight := 0
	if stops == 0 {
		duration := routeMinutes(from, to)
		legs = append(legs, leg(rng, airline.Code, airline.Name, from, to, departure, duration))
		totalFlight = duration
	} else {
		via := hubAirports[rng.Intn(len(hubAirports))]
		first := routeMinutes(from, via)
		second := routeMinutes(via, to)
		layover := 45 + 15*rng.Intn(12)
		legs = append(legs, leg(rng, airline.Code, airline.Name, from, via, departure, first))
		connect := departure.Add(time.Duration(first+layover) * time.Minute)
		legs = append(legs, leg(rng, airline.Code, airline.Name, via, to, connect, second))
		totalFlight = first + second
		stops = 1
	}

	last := legs[len(legs)-1]
	total := int(last.ArrivalTime.Sub(departure).Minutes())

	price := 60 + rng.Float64()*5*float64(totalFlight)/10
	price *= cabinMultiplier(q.CabinClass)
	if stops > 0 {
		price *= 0.85
	}

	return models.FlightOffer{
		Legs:            legs,
		Price:           math.Round(price),
		DurationMinutes: total,
		Stops:           stops,
	}
}

func leg(rng *rand.Rand, code, name, from, to string, departure time.Time, duration int) models.FlightLeg {
	return models.FlightLeg{
		Airline:          code,
		AirlineName:      name,
		FlightNumber:     strconv.Itoa(100 + rng.Intn(9000)),
		DepartureAirport: from,
		ArrivalAirport:   to,
		DepartureTime:    departure,
		ArrivalTime:      departure.Add(time.Duration(duration) * time.Minute),
		DurationMinutes:  duration,
	}
}

// routeMinutes derives a stable flight time for an airport pair from
// its characters, between 1 and 11 hours.
func routeMinutes(from, to string) int {
	seed := 0
	for _, c := range from + to {
		seed = seed*31 + int(c)
	}
	if seed < 0 {
		seed = -seed
	}
	return 60 + seed%600
}

func cabinMultiplier(cabin models.CabinClass) float64 {
	switch cabin {
	case models.CabinPremiumEconomy:
		return 1.6
	case models.CabinBusiness:
		return 3.2
	case models.CabinFirst:
		return 5.5
	default:
		return 1.0
	}
}

func departureInWindow(offer models.FlightOffer, segment models.FlightSegment) bool {
	hour := offer.Legs[0].DepartureTime.Hour()
	if segment.EarliestDeparture != nil && hour < *segment.EarliestDeparture {
		return false
	}
	if segment.LatestDeparture != nil && hour > *segment.LatestDeparture {
		return false
	}
	return true
}

func arrivalInWindow(offer models.FlightOffer, segment models.FlightSegment) bool {
	hour := offer.Legs[len(offer.Legs)-1].ArrivalTime.Hour()
	if segment.EarliestArrival != nil && hour < *segment.EarliestArrival {
		return false
	}
	if segment.LatestArrival != nil && hour > *segment.LatestArrival {
		return false
	}
	return true
}

