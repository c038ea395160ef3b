package timerange

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a range is constructed with
// earliest > latest.
var ErrInvalidRange = errors.New("invalid range: earliest is after latest")

// TimeOfDay is a wall-clock time without a date. The zero value is
// midnight.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	formats := []string{"15:04:05", "15:04"}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("unable to parse time of day %q", s)
}

func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Seconds() < other.Seconds()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// On combines the time of day with a calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, t.Second, 0, date.Location())
}

// HourFloor truncates the time of day down to its hour.
func HourFloor(t TimeOfDay) int {
	return t.Hour
}

// HourCeil rounds the time of day up to the next hour unless it falls
// exactly on an hour boundary.
func HourCeil(t TimeOfDay) int {
	if t.Minute == 0 && t.Second == 0 {
		return t.Hour
	}
	return IncrementHour(t.Hour)
}

func IncrementHour(hour int) int {
	return (hour + 1) % 24
}

// DateRange is an inclusive range of calendar dates. Either bound may
// be nil, meaning unbounded on that side.
type DateRange struct {
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
}

func NewDateRange(earliest, latest *time.Time) (DateRange, error) {
	if earliest != nil && latest != nil && earliest.After(*latest) {
		return DateRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, earliest.Format("2006-01-02"), latest.Format("2006-01-02"))
	}
	return DateRange{Earliest: earliest, Latest: latest}, nil
}

func (r DateRange) Contains(d time.Time) bool {
	return r.Earliest != nil && r.Latest != nil && !d.Before(*r.Earliest) && !d.After(*r.Latest)
}

// Bounded reports whether both ends of the range are set.
func (r DateRange) Bounded() bool {
	return r.Earliest != nil && r.Latest != nil
}

// Days returns every date in the range, inclusive of both bounds.
// Both bounds must be set.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := *r.Earliest; !d.After(*r.Latest); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// TimeRange is an inclusive range of wall-clock times. Either bound
// may be nil.
type TimeRange struct {
	Earliest *TimeOfDay `json:"earliest,omitempty"`
	Latest   *TimeOfDay `json:"latest,omitempty"`
}

func NewTimeRange(earliest, latest *TimeOfDay) (TimeRange, error) {
	if earliest != nil && latest != nil && latest.Before(*earliest) {
		return TimeRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, earliest, latest)
	}
	return TimeRange{Earliest: earliest, Latest: latest}, nil
}

func (r TimeRange) Contains(t TimeOfDay) bool {
	return r.Earliest != nil && r.Latest != nil && !t.Before(*r.Earliest) && !r.Latest.Before(t)
}

// HourWindow converts the range to hour granularity for providers
// whose time restrictions operate on whole hours. The earliest bound
// floors and the latest bound ceils; a latest hour that does not end
// up strictly after the earliest hour is bumped forward so the window
// never degenerates.
func (r TimeRange) HourWindow() (earliest, latest *int) {
	if r.Earliest != nil {
		h := HourFloor(*r.Earliest)
		earliest = &h
	}
	if r.Latest != nil {
		h := HourCeil(*r.Latest)
		if earliest != nil && h <= *earliest {
			h = IncrementHour(h)
		}
		latest = &h
	}
	return earliest, latest
}

// DateTimeRange is an inclusive range of instants. Either bound may
// be nil.
type DateTimeRange struct {
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
}

func NewDateTimeRange(earliest, latest *time.Time) (DateTimeRange, error) {
	if earliest != nil && latest != nil && earliest.After(*latest) {
		return DateTimeRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, earliest.Format(time.RFC3339), latest.Format(time.RFC3339))
	}
	return DateTimeRange{Earliest: earliest, Latest: latest}, nil
}

func (r DateTimeRange) Contains(t time.Time) bool {
	return r.Earliest != nil && r.Latest != nil && !t.Before(*r.Earliest) && !t.After(*r.Latest)
}
