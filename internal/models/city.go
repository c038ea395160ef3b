package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/timerange"
	"github.com/dharmasatrya/tripplanner/pkg/format"
)

// City is a resolved trip node: a set of candidate airports with
// fixed arrival/departure dates (either may be absent) and the time
// windows and departure filter carried over from the CityRange that
// produced it. Immutable after expansion.
type City struct {
	Airports []string `json:"airports"`

	ArrivalDate    *time.Time           `json:"arrival_date,omitempty"`
	ArrivalTimes   *timerange.TimeRange `json:"arrival_times,omitempty"`
	DepartureDate  *time.Time           `json:"departure_date,omitempty"`
	DepartureTimes *timerange.TimeRange `json:"departure_times,omitempty"`

	Filter DepartureFlightFilter `json:"filter"`
}

// ID is the city's stable identity: its airport codes in canonical
// order. Used as a map key when tracking directed legs within one
// itinerary.
func (c City) ID() string {
	return strings.Join(SortedCopy(c.Airports), "|")
}

// ArrivalWindow returns the fully-bounded arrival instant range, or
// nil when the date or either time bound is missing.
func (c City) ArrivalWindow() *timerange.DateTimeRange {
	return combineWindow(c.ArrivalDate, c.ArrivalTimes)
}

// DepartureWindow returns the fully-bounded departure instant range,
// or nil when the date or either time bound is missing.
func (c City) DepartureWindow() *timerange.DateTimeRange {
	return combineWindow(c.DepartureDate, c.DepartureTimes)
}

func combineWindow(date *time.Time, times *timerange.TimeRange) *timerange.DateTimeRange {
	if date == nil || times == nil || times.Earliest == nil || times.Latest == nil {
		return nil
	}
	earliest := times.Earliest.On(*date)
	latest := times.Latest.On(*date)
	return &timerange.DateTimeRange{Earliest: &earliest, Latest: &latest}
}

// CityRange is an unresolved trip node: the same constraints as a
// City but with date ranges instead of fixed dates, plus optional
// bounds on how long the trip may dwell there. A trip template is an
// ordered list of CityRange values, origin first.
type CityRange struct {
	Airports []string `json:"airports"`

	MinStayHours *float64 `json:"min_stay_hours,omitempty"`
	MaxStayHours *float64 `json:"max_stay_hours,omitempty"`

	ArrivalDates   *timerange.DateRange `json:"arrival_dates,omitempty"`
	ArrivalTimes   *timerange.TimeRange `json:"arrival_times,omitempty"`
	DepartureDates *timerange.DateRange `json:"departure_dates,omitempty"`
	DepartureTimes *timerange.TimeRange `json:"departure_times,omitempty"`

	Filter DepartureFlightFilter `json:"filter"`
}

func (r CityRange) String() string {
	components := []string{fmt.Sprintf("Airports: [%s]", strings.Join(SortedCopy(r.Airports), ", "))}

	if r.MinStayHours != nil {
		components = append(components, fmt.Sprintf("Minimum time spent in city: %s", format.Minutes(int(*r.MinStayHours*60+0.5))))
	}
	if r.MaxStayHours != nil {
		components = append(components, fmt.Sprintf("Maximum time spent in city: %s", format.Minutes(int(*r.MaxStayHours*60+0.5))))
	}
	components = append(components, r.arrivalComponents()...)
	if r.DepartureDates != nil {
		if r.DepartureDates.Earliest != nil {
			components = append(components, fmt.Sprintf("Earliest date of departure: %s", r.DepartureDates.Earliest.Format("2006-01-02")))
		}
		if r.DepartureDates.Latest != nil {
			components = append(components, fmt.Sprintf("Latest date of departure: %s", r.DepartureDates.Latest.Format("2006-01-02")))
		}
	}
	if r.DepartureTimes != nil {
		if r.DepartureTimes.Earliest != nil {
			components = append(components, fmt.Sprintf("Earliest time of departure: %s", r.DepartureTimes.Earliest))
		}
		if r.DepartureTimes.Latest != nil {
			components = append(components, fmt.Sprintf("Latest time of departure: %s", r.DepartureTimes.Latest))
		}
	}
	components = append(components, r.Filter.String())

	return strings.Join(components, "\n")
}

// FinalCityString renders the short form used for the last city of a
// template, which has no departure or stay-duration constraints worth
// showing.
func (r CityRange) FinalCityString() string {
	components := []string{fmt.Sprintf("Airports: [%s]", strings.Join(SortedCopy(r.Airports), ", "))}
	components = append(components, r.arrivalComponents()...)
	return strings.Join(components, "\n")
}

// DescribeTemplate renders one template as the human-readable echo of
// the search criteria, one block per city separated by blank lines.
// The last city uses its short form.
func DescribeTemplate(template []CityRange) string {
	blocks := make([]string, 0, len(template))
	for i, cr := range template {
		if i == len(template)-1 {
			blocks = append(blocks, cr.FinalCityString())
			continue
		}
		blocks = append(blocks, cr.String())
	}
	return strings.Join(blocks, "\n\n")
}

func (r CityRange) arrivalComponents() []string {
	var components []string
	if r.ArrivalDates != nil {
		if r.ArrivalDates.Earliest != nil {
			components = append(components, fmt.Sprintf("Earliest date of arrival: %s", r.ArrivalDates.Earliest.Format("2006-01-02")))
		}
		if r.ArrivalDates.Latest != nil {
			components = append(components, fmt.Sprintf("Latest date of arrival: %s", r.ArrivalDates.Latest.Format("2006-01-02")))
		}
	}
	if r.ArrivalTimes != nil {
		if r.ArrivalTimes.Earliest != nil {
			components = append(components, fmt.Sprintf("Earliest time of arrival: %s", r.ArrivalTimes.Earliest))
		}
		if r.ArrivalTimes.Latest != nil {
			components = append(components, fmt.Sprintf("Latest time of arrival: %s", r.ArrivalTimes.Latest))
		}
	}
	return components
}
