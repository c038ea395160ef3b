package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dharmasatrya/tripplanner/pkg/format"
)

// FlightLeg is one point-to-point flight with a single flight number.
type FlightLeg struct {
	Airline          string    `json:"airline"`
	AirlineName      string    `json:"airline_name,omitempty"`
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	DurationMinutes  int       `json:"duration_minutes"`
}

// FlightOffer is one priced provider result: an ordered group of legs
// with aggregate price, duration and stop count.
type FlightOffer struct {
	Legs            []FlightLeg `json:"legs"`
	Price           float64     `json:"price"`
	DurationMinutes int         `json:"duration_minutes"`
	Stops           int         `json:"stops"`
}

// OfferPair is a round-trip provider result: the departing and
// returning offers priced together.
type OfferPair struct {
	Departing FlightOffer `json:"departing"`
	Returning FlightOffer `json:"returning"`
}

type FlightRole string

const (
	RoleOneWay             FlightRole = "ONE_WAY"
	RoleRoundTripDeparting FlightRole = "ROUND_TRIP_DEPARTING"
	RoleRoundTripReturning FlightRole = "ROUND_TRIP_RETURNING"
)

// FlightInfo is an offer annotated with its role in an itinerary. A
// returning flight carries the ids of the departing flights it was
// priced with; other roles carry none.
type FlightInfo struct {
	FlightOffer

	Role      FlightRole `json:"role"`
	ParentIDs []string   `json:"parent_ids,omitempty"`
}

func NewFlightInfo(offer FlightOffer, role FlightRole) *FlightInfo {
	return &FlightInfo{FlightOffer: offer, Role: role}
}

// ID derives the flight's identity from its full content, so
// identical offers reaching the same leg through different queries
// collapse. Parent links are deliberately excluded: they accumulate
// after the id is first used.
func (f *FlightInfo) ID() string {
	return f.String()
}

// Clone makes a deep copy, used when a branch of the assembler needs
// to resolve parent ids without touching its siblings.
func (f *FlightInfo) Clone() *FlightInfo {
	legs := make([]FlightLeg, len(f.Legs))
	copy(legs, f.Legs)
	parents := make([]string, len(f.ParentIDs))
	copy(parents, f.ParentIDs)
	return &FlightInfo{
		FlightOffer: FlightOffer{
			Legs:            legs,
			Price:           f.Price,
			DurationMinutes: f.DurationMinutes,
			Stops:           f.Stops,
		},
		Role:      f.Role,
		ParentIDs: parents,
	}
}

// LayoverMinutes returns the gap between consecutive legs, in order.
func (f *FlightInfo) LayoverMinutes() []float64 {
	gaps := make([]float64, 0, len(f.Legs))
	for i := 0; i < len(f.Legs)-1; i++ {
		gaps = append(gaps, f.Legs[i+1].DepartureTime.Sub(f.Legs[i].ArrivalTime).Minutes())
	}
	return gaps
}

func (f *FlightInfo) DepartureTime() time.Time {
	return f.Legs[0].DepartureTime
}

func (f *FlightInfo) ArrivalTime() time.Time {
	return f.Legs[len(f.Legs)-1].ArrivalTime
}

func legString(leg FlightLeg, legNum int) string {
	airline := leg.Airline
	if leg.AirlineName != "" {
		airline = airline + " " + leg.AirlineName
	}
	return strings.Join([]string{
		fmt.Sprintf("[LEG %d]: %s - %s", legNum, leg.DepartureTime.Format("2006-01-02 15:04"), leg.ArrivalTime.Format("2006-01-02 15:04")),
		fmt.Sprintf("%s-%s", leg.DepartureAirport, leg.ArrivalAirport),
		format.Minutes(leg.DurationMinutes),
		fmt.Sprintf("%s %s", airline, leg.FlightNumber),
	}, " | ")
}

func (f *FlightInfo) String() string {
	stops := fmt.Sprintf("%d stops", f.Stops)
	if f.Stops == 1 {
		stops = "1 stop"
	}
	lines := []string{
		strings.Join([]string{
			format.Price(f.Price),
			format.Minutes(f.DurationMinutes),
			stops,
			string(f.Role),
		}, " | "),
	}
	layovers := f.LayoverMinutes()
	for i, leg := range f.Legs {
		lines = append(lines, legString(leg, i+1))
		if i < len(f.Legs)-1 {
			lines = append(lines, fmt.Sprintf("[LAYOVER]: %s", format.Minutes(int(layovers[i]+0.5))))
		}
	}
	return strings.Join(lines, "\n")
}
