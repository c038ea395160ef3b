package models

import "time"

type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
)

type SortMode string

const SortNone SortMode = "none"

type PassengerInfo struct {
	Adults        int `json:"adults"`
	Children      int `json:"children"`
	InfantsInSeat int `json:"infants_in_seat"`
	InfantsOnLap  int `json:"infants_on_lap"`
}

// FlightSegment is one directed leg of a query: candidate departure
// and arrival airport sets, the travel date, and hour-granularity
// departure/arrival windows. Nil hour bounds are unrestricted.
type FlightSegment struct {
	DepartureAirports []string  `json:"departure_airports"`
	ArrivalAirports   []string  `json:"arrival_airports"`
	TravelDate        time.Time `json:"travel_date"`

	EarliestDeparture *int `json:"earliest_departure,omitempty"`
	LatestDeparture   *int `json:"latest_departure,omitempty"`
	EarliestArrival   *int `json:"earliest_arrival,omitempty"`
	LatestArrival     *int `json:"latest_arrival,omitempty"`
}

// FlightQuery is the normalized input to the search provider: one
// segment for one-way trips, two mirror-image segments for round
// trips, plus the effective filter fields.
type FlightQuery struct {
	TripType   TripType        `json:"trip_type"`
	Passengers PassengerInfo   `json:"passengers"`
	Segments   []FlightSegment `json:"segments"`

	Stops              MaxStops            `json:"max_stops"`
	CabinClass         CabinClass          `json:"cabin_class"`
	MaxPrice           *float64            `json:"max_price,omitempty"`
	Airlines           []string            `json:"airlines,omitempty"`
	MaxDurationMinutes *int                `json:"max_duration_minutes,omitempty"`
	Layover            *LayoverRestriction `json:"layover,omitempty"`

	Sort SortMode `json:"sort"`
}
