package models

import (
	"fmt"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/timerange"
)

// Transport shapes for POST /api/v1/trips/search. Dates are
// "2006-01-02" strings, times of day are "15:04" or "15:04:05".

type DateRangeRequest struct {
	Earliest *string `json:"earliest,omitempty"`
	Latest   *string `json:"latest,omitempty"`
}

type TimeRangeRequest struct {
	Earliest *string `json:"earliest,omitempty"`
	Latest   *string `json:"latest,omitempty"`
}

type LayoverRequest struct {
	Airports           []string `json:"airports,omitempty"`
	MaxDurationMinutes *int     `json:"max_duration_minutes,omitempty"`
}

type FilterRequest struct {
	MaxStops           string          `json:"max_stops,omitempty"`
	CabinClass         string          `json:"cabin_class,omitempty"`
	MaxPrice           *float64        `json:"max_price,omitempty"`
	Airlines           []string        `json:"airlines,omitempty"`
	MaxDurationMinutes *int            `json:"max_duration_minutes,omitempty"`
	Layover            *LayoverRequest `json:"layover,omitempty"`
}

type CityRangeRequest struct {
	Airports       []string          `json:"airports"`
	MinStayHours   *float64          `json:"min_stay_hours,omitempty"`
	MaxStayHours   *float64          `json:"max_stay_hours,omitempty"`
	ArrivalDates   *DateRangeRequest `json:"arrival_dates,omitempty"`
	ArrivalTimes   *TimeRangeRequest `json:"arrival_times,omitempty"`
	DepartureDates *DateRangeRequest `json:"departure_dates,omitempty"`
	DepartureTimes *TimeRangeRequest `json:"departure_times,omitempty"`
	Filter         *FilterRequest    `json:"filter,omitempty"`
}

type TemplateRequest struct {
	Cities []CityRangeRequest `json:"cities"`
}

type TripSearchRequest struct {
	Templates  []TemplateRequest `json:"templates"`
	Passengers int               `json:"passengers"`
	TopN       int               `json:"top_n"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingTemplates    ValidationError = "at least one template is required"
	ErrTemplateTooShort    ValidationError = "each template needs at least two cities"
	ErrMissingCityAirports ValidationError = "every city needs at least one airport"
)

func (r *TripSearchRequest) Validate() error {
	if len(r.Templates) == 0 {
		return ErrMissingTemplates
	}
	for _, t := range r.Templates {
		if len(t.Cities) < 2 {
			return ErrTemplateTooShort
		}
		for _, c := range t.Cities {
			if len(c.Airports) == 0 {
				return ErrMissingCityAirports
			}
		}
	}
	if r.Passengers <= 0 {
		r.Passengers = 1
	}
	if r.TopN <= 0 {
		r.TopN = 20
	}
	return nil
}

// Domain converts the transport request into CityRange templates.
func (r *TripSearchRequest) Domain() ([][]CityRange, error) {
	templates := make([][]CityRange, 0, len(r.Templates))
	for ti, t := range r.Templates {
		cities := make([]CityRange, 0, len(t.Cities))
		for ci, c := range t.Cities {
			cr, err := c.domain()
			if err != nil {
				return nil, fmt.Errorf("template %d city %d: %w", ti+1, ci+1, err)
			}
			cities = append(cities, cr)
		}
		templates = append(templates, cities)
	}
	return templates, nil
}

func (c CityRangeRequest) domain() (CityRange, error) {
	cr := CityRange{
		Airports:     c.Airports,
		MinStayHours: c.MinStayHours,
		MaxStayHours: c.MaxStayHours,
		Filter:       DefaultFilter(),
	}

	var err error
	if cr.ArrivalDates, err = c.ArrivalDates.domain(); err != nil {
		return CityRange{}, fmt.Errorf("arrival dates: %w", err)
	}
	if cr.DepartureDates, err = c.DepartureDates.domain(); err != nil {
		return CityRange{}, fmt.Errorf("departure dates: %w", err)
	}
	if cr.ArrivalTimes, err = c.ArrivalTimes.domain(); err != nil {
		return CityRange{}, fmt.Errorf("arrival times: %w", err)
	}
	if cr.DepartureTimes, err = c.DepartureTimes.domain(); err != nil {
		return CityRange{}, fmt.Errorf("departure times: %w", err)
	}

	if c.Filter != nil {
		if cr.Filter, err = c.Filter.domain(); err != nil {
			return CityRange{}, fmt.Errorf("filter: %w", err)
		}
	}
	return cr, nil
}

func (d *DateRangeRequest) domain() (*timerange.DateRange, error) {
	if d == nil {
		return nil, nil
	}
	parse := func(s *string) (*time.Time, error) {
		if s == nil {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	earliest, err := parse(d.Earliest)
	if err != nil {
		return nil, err
	}
	latest, err := parse(d.Latest)
	if err != nil {
		return nil, err
	}
	r, err := timerange.NewDateRange(earliest, latest)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (t *TimeRangeRequest) domain() (*timerange.TimeRange, error) {
	if t == nil {
		return nil, nil
	}
	parse := func(s *string) (*timerange.TimeOfDay, error) {
		if s == nil {
			return nil, nil
		}
		tod, err := timerange.ParseTimeOfDay(*s)
		if err != nil {
			return nil, err
		}
		return &tod, nil
	}
	earliest, err := parse(t.Earliest)
	if err != nil {
		return nil, err
	}
	latest, err := parse(t.Latest)
	if err != nil {
		return nil, err
	}
	r, err := timerange.NewTimeRange(earliest, latest)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (f FilterRequest) domain() (DepartureFlightFilter, error) {
	filter := DefaultFilter()
	switch f.MaxStops {
	case "", "any":
		filter.Stops = StopsAny
	case "non_stop":
		filter.Stops = StopsNonStop
	case "one_or_fewer":
		filter.Stops = StopsOneOrFewer
	case "two_or_fewer":
		filter.Stops = StopsTwoOrFewer
	default:
		return DepartureFlightFilter{}, fmt.Errorf("unknown max_stops %q", f.MaxStops)
	}
	switch CabinClass(f.CabinClass) {
	case "", CabinEconomy:
		filter.CabinClass = CabinEconomy
	case CabinPremiumEconomy, CabinBusiness, CabinFirst:
		filter.CabinClass = CabinClass(f.CabinClass)
	default:
		return DepartureFlightFilter{}, fmt.Errorf("unknown cabin_class %q", f.CabinClass)
	}
	filter.MaxPrice = f.MaxPrice
	filter.Airlines = f.Airlines
	filter.MaxDurationMinutes = f.MaxDurationMinutes
	if f.Layover != nil {
		filter.Layover = &LayoverRestriction{
			Airports:           f.Layover.Airports,
			MaxDurationMinutes: f.Layover.MaxDurationMinutes,
		}
	}
	return filter, nil
}
