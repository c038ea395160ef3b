// Package canonical produces deterministic 64-bit fingerprints for
// the domain objects the planner dedupes and joins on. Any unordered
// collection is sorted by its code before folding in, so two
// semantically-equal objects hash identically regardless of
// construction order.
package canonical

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/timerange"
)

type digest struct {
	h *xxhash.Digest
}

func newDigest() *digest {
	return &digest{h: xxhash.New()}
}

func (d *digest) sum() uint64 {
	return d.h.Sum64()
}

// str writes a length-prefixed string so adjacent fields can never
// bleed into each other.
func (d *digest) str(s string) {
	d.u64(uint64(len(s)))
	_, _ = d.h.WriteString(s)
}

func (d *digest) u64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, _ = d.h.Write(buf[:])
}

func (d *digest) f64(v float64) {
	d.u64(math.Float64bits(v))
}

// sortedStrs folds in a copy of the list sorted by canonical code.
func (d *digest) sortedStrs(codes []string) {
	sorted := models.SortedCopy(codes)
	d.u64(uint64(len(sorted)))
	for _, code := range sorted {
		d.str(code)
	}
}

func (d *digest) optInt(v *int) {
	if v == nil {
		d.str("nil")
		return
	}
	d.u64(uint64(*v))
}

func (d *digest) optFloat(v *float64) {
	if v == nil {
		d.str("nil")
		return
	}
	d.f64(*v)
}

func (d *digest) time(t time.Time) {
	d.u64(uint64(t.Unix()))
}

func (d *digest) optDate(t *time.Time) {
	if t == nil {
		d.str("nil")
		return
	}
	d.time(*t)
}

func (d *digest) optTimeOfDay(t *timerange.TimeOfDay) {
	if t == nil {
		d.str("nil")
		return
	}
	d.u64(uint64(t.Seconds()))
}

func (d *digest) timeRange(r *timerange.TimeRange) {
	if r == nil {
		d.str("nil")
		return
	}
	d.optTimeOfDay(r.Earliest)
	d.optTimeOfDay(r.Latest)
}

func (d *digest) layover(l *models.LayoverRestriction) {
	if l == nil {
		d.str("nil")
		return
	}
	d.sortedStrs(l.Airports)
	d.optInt(l.MaxDurationMinutes)
}

func (d *digest) filter(f models.DepartureFlightFilter) {
	d.u64(uint64(f.Stops))
	d.str(string(f.CabinClass))
	d.optFloat(f.MaxPrice)
	if f.Airlines == nil {
		d.str("nil")
	} else {
		d.sortedStrs(f.Airlines)
	}
	d.optInt(f.MaxDurationMinutes)
	d.layover(f.Layover)
}

// HashFilter fingerprints a departure flight filter.
func HashFilter(f models.DepartureFlightFilter) uint64 {
	d := newDigest()
	d.filter(f)
	return d.sum()
}

// HashCity fingerprints a resolved city: airports, both date/time
// windows and the filter. Used to correlate flight results back to
// the city pair they serve.
func HashCity(c models.City) uint64 {
	d := newDigest()
	d.sortedStrs(c.Airports)
	d.optDate(c.ArrivalDate)
	d.timeRange(c.ArrivalTimes)
	d.optDate(c.DepartureDate)
	d.timeRange(c.DepartureTimes)
	d.u64(HashFilter(c.Filter))
	return d.sum()
}

func (d *digest) segment(s models.FlightSegment) {
	d.sortedStrs(s.DepartureAirports)
	d.sortedStrs(s.ArrivalAirports)
	d.time(s.TravelDate)
	d.optInt(s.EarliestDeparture)
	d.optInt(s.LatestDeparture)
	d.optInt(s.EarliestArrival)
	d.optInt(s.LatestArrival)
}

// HashQuery fingerprints a flight query. Segment order matters (the
// two legs of a round trip are directional); airport and airline sets
// inside do not.
func HashQuery(q models.FlightQuery) uint64 {
	d := newDigest()
	d.str(string(q.TripType))
	d.u64(uint64(q.Passengers.Adults))
	d.u64(uint64(q.Passengers.Children))
	d.u64(uint64(q.Passengers.InfantsInSeat))
	d.u64(uint64(q.Passengers.InfantsOnLap))
	d.u64(uint64(len(q.Segments)))
	for _, s := range q.Segments {
		d.segment(s)
	}
	d.u64(uint64(q.Stops))
	d.str(string(q.CabinClass))
	d.optFloat(q.MaxPrice)
	if q.Airlines == nil {
		d.str("nil")
	} else {
		d.sortedStrs(q.Airlines)
	}
	d.optInt(q.MaxDurationMinutes)
	d.layover(q.Layover)
	d.str(string(q.Sort))
	return d.sum()
}

func (d *digest) leg(l models.FlightLeg) {
	d.str(l.Airline)
	d.str(l.FlightNumber)
	d.str(l.DepartureAirport)
	d.str(l.ArrivalAirport)
	d.time(l.DepartureTime)
	d.time(l.ArrivalTime)
	d.u64(uint64(l.DurationMinutes))
}

// HashOffer fingerprints a flight offer, legs in order.
func HashOffer(o models.FlightOffer) uint64 {
	d := newDigest()
	d.u64(uint64(len(o.Legs)))
	for _, l := range o.Legs {
		d.leg(l)
	}
	d.f64(o.Price)
	d.u64(uint64(o.DurationMinutes))
	d.u64(uint64(o.Stops))
	return d.sum()
}
