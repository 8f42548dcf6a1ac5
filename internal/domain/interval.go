package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60
	DateLayout    = "2006-01-02"
)

// Clock is a time of day in minutes since midnight.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" (24h). "24:00" is accepted as end of day.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidInterval, s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidInterval, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidInterval, s)
	}

	c := NewClock(h, m)
	if h < 0 || c > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidInterval, s)
	}

	return c, nil
}

func (c Clock) Hour() int { return int(c) / 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Interval is a half-open [Start, End) range of the day.
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

func NewInterval(start, end Clock) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ParseInterval builds an interval from two "HH:MM" values.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

func (i Interval) Validate() error {
	if i.Start < 0 || i.End > MinutesPerDay {
		return fmt.Errorf("%w: %s out of day range", ErrInvalidInterval, i)
	}
	if i.End <= i.Start {
		return fmt.Errorf("%w: end %s must be after start %s", ErrInvalidInterval, i.End, i.Start)
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (10:00-11:00 and 11:00-12:00) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.End-i.Start) * time.Minute
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// HumanRange formats the interval as "6 PM - 7 PM" for customer-facing texts.
func (i Interval) HumanRange() string {
	return humanClock(i.Start) + " - " + humanClock(i.End)
}

func humanClock(c Clock) string {
	t := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(c) * time.Minute)
	if c%60 == 0 {
		if c == MinutesPerDay {
			return "12 AM"
		}
		return t.Format("3 PM")
	}
	return t.Format("3:04 PM")
}

// OperatingWindow is the part of the day in which slots may be reserved.
type OperatingWindow struct {
	Open  Clock
	Close Clock
}

func NewOperatingWindow(openHour, closeHour int) (OperatingWindow, error) {
	w := OperatingWindow{Open: NewClock(openHour, 0), Close: NewClock(closeHour, 0)}
	if err := (Interval{Start: w.Open, End: w.Close}).Validate(); err != nil {
		return OperatingWindow{}, fmt.Errorf("operating window: %w", err)
	}
	return w, nil
}

func DefaultOperatingWindow() OperatingWindow {
	return OperatingWindow{Open: NewClock(7, 0), Close: NewClock(23, 0)}
}

func (w OperatingWindow) Contains(i Interval) bool {
	return i.Start >= w.Open && i.End <= w.Close
}

// ValidateWithin checks the interval itself and its placement inside the window.
func (w OperatingWindow) ValidateWithin(i Interval) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !w.Contains(i) {
		return fmt.Errorf("%w: %s is outside %s-%s", ErrOutsideOperatingHours, i, w.Open, w.Close)
	}
	return nil
}

// Hourly returns the one-hour intervals covering the window.
func (w OperatingWindow) Hourly() []Interval {
	res := make([]Interval, 0, (w.Close-w.Open)/60)
	for start := w.Open; start+60 <= w.Close; start += 60 {
		res = append(res, Interval{Start: start, End: start + 60})
	}
	return res
}

// DateOf returns the calendar day of t as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, expected %s", ErrValidation, s, DateLayout)
	}
	return d, nil
}
