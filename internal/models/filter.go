package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dharmasatrya/tripplanner/pkg/format"
)

// MaxStops caps the number of stops a flight may have. Higher values
// are stricter; merging two caps takes the maximum.
type MaxStops int

const (
	StopsAny MaxStops = iota
	StopsTwoOrFewer
	StopsOneOrFewer
	StopsNonStop
)

// Allows reports whether an offer with the given stop count passes
// the cap.
func (m MaxStops) Allows(stops int) bool {
	switch m {
	case StopsNonStop:
		return stops == 0
	case StopsOneOrFewer:
		return stops <= 1
	case StopsTwoOrFewer:
		return stops <= 2
	default:
		return true
	}
}

func (m MaxStops) String() string {
	switch m {
	case StopsNonStop:
		return "non_stop"
	case StopsOneOrFewer:
		return "one_or_fewer"
	case StopsTwoOrFewer:
		return "two_or_fewer"
	default:
		return "any"
	}
}

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// LayoverRestriction limits where and how long a layover may be.
type LayoverRestriction struct {
	Airports           []string `json:"airports,omitempty"`
	MaxDurationMinutes *int     `json:"max_duration_minutes,omitempty"`
}

// DepartureFlightFilter is the constraint bundle attached to a
// departure leg. Nil pointer fields and a nil airline list mean
// unconstrained. Treated as immutable once attached to a city.
type DepartureFlightFilter struct {
	Stops              MaxStops            `json:"max_stops"`
	CabinClass         CabinClass          `json:"cabin_class"`
	MaxPrice           *float64            `json:"max_price,omitempty"`
	Airlines           []string            `json:"airlines,omitempty"`
	MaxDurationMinutes *int                `json:"max_duration_minutes,omitempty"`
	Layover            *LayoverRestriction `json:"layover,omitempty"`
}

func DefaultFilter() DepartureFlightFilter {
	return DepartureFlightFilter{Stops: StopsAny, CabinClass: CabinEconomy}
}

// SortedCopy returns a sorted copy of a code list, leaving the input
// untouched. Used wherever unordered collections need a canonical
// ordering.
func SortedCopy(codes []string) []string {
	out := make([]string, len(codes))
	copy(out, codes)
	sort.Strings(out)
	return out
}

func (f DepartureFlightFilter) String() string {
	components := []string{
		fmt.Sprintf("Departing flight - maximum number of stops: %s", f.Stops),
		fmt.Sprintf("Departing flight - seat type: %s", f.CabinClass),
	}

	if f.MaxPrice != nil {
		components = append(components, fmt.Sprintf("Departing flight - maximum price: %s", format.Price(*f.MaxPrice)))
	}
	if len(f.Airlines) > 0 {
		components = append(components, fmt.Sprintf("Departing flight - airlines constrained to: [%s]", strings.Join(SortedCopy(f.Airlines), ", ")))
	}
	if f.MaxDurationMinutes != nil {
		components = append(components, fmt.Sprintf("Departing flight - maximum duration of flight: %s", format.Minutes(*f.MaxDurationMinutes)))
	}
	if f.Layover != nil {
		if len(f.Layover.Airports) > 0 {
			components = append(components, fmt.Sprintf("Departing flight - layover airports constrained to: [%s]", strings.Join(SortedCopy(f.Layover.Airports), ", ")))
		}
		if f.Layover.MaxDurationMinutes != nil {
			components = append(components, fmt.Sprintf("Departing flight - maximum duration of layover: %s", format.Minutes(*f.Layover.MaxDurationMinutes)))
		}
	}

	return strings.Join(components, "\n")
}
