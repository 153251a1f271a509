package trs

import (
	"math"
	"time"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/internal/util"
	"github.com/teranos/chronos/temporal"
)

// FixedCalendar is a calendar with constant metrics: every year has the same
// months, every day the same hours. Epoch is the instant of year 1, month 1,
// day 1, 00:00:00.
type FixedCalendar struct {
	name            string
	Epoch           time.Time
	SecondsInMinute int
	MinutesInHour   int
	HoursInDay      int
	MonthDays       []int
}

// NewFixedCalendar validates the metrics and builds the calendar.
func NewFixedCalendar(name string, epoch time.Time, secondsInMinute, minutesInHour, hoursInDay int, monthDays []int) (*FixedCalendar, error) {
	if name == "" {
		return nil, errors.NewInvalidRequestError("calendar name is required")
	}
	if secondsInMinute <= 0 || minutesInHour <= 0 || hoursInDay <= 0 {
		return nil, errors.NewInvalidRequestError("calendar %s: time-of-day metrics must be positive", name)
	}
	if len(monthDays) == 0 {
		return nil, errors.NewInvalidRequestError("calendar %s: month_days is empty", name)
	}
	for i, d := range monthDays {
		if d <= 0 {
			return nil, errors.NewInvalidRequestError("calendar %s: month %d has %d days", name, i+1, d)
		}
	}
	return &FixedCalendar{
		name:            name,
		Epoch:           epoch.UTC(),
		SecondsInMinute: secondsInMinute,
		MinutesInHour:   minutesInHour,
		HoursInDay:      hoursInDay,
		MonthDays:       append([]int(nil), monthDays...),
	}, nil
}

func (f *FixedCalendar) Name() string { return f.name }
func (f *FixedCalendar) Kind() Kind   { return KindCalendar }

func (f *FixedCalendar) secondsPerDay() float64 {
	return float64(f.SecondsInMinute * f.MinutesInHour * f.HoursInDay)
}

func (f *FixedCalendar) daysPerYear() int {
	n := 0
	for _, d := range f.MonthDays {
		n += d
	}
	return n
}

func (f *FixedCalendar) ToSeconds(c temporal.Coordinate) (float64, bool) {
	if c.Year == nil {
		return 0, false
	}
	value := func(p *float64, def float64) float64 {
		if p == nil {
			return def
		}
		return *p
	}

	year := math.Floor(value(c.Year, 1))
	month := int(math.Floor(value(c.Month, 1)))
	if month < 1 {
		month = 1
	}
	if month > len(f.MonthDays) {
		month = len(f.MonthDays)
	}

	days := (year - 1) * float64(f.daysPerYear())
	for _, d := range f.MonthDays[:month-1] {
		days += float64(d)
	}
	days += value(c.Day, 1) - 1

	sec := days*f.secondsPerDay() +
		value(c.Hour, 0)*float64(f.MinutesInHour*f.SecondsInMinute) +
		value(c.Minute, 0)*float64(f.SecondsInMinute) +
		value(c.Second, 0)
	return float64(f.Epoch.Unix()) + sec, true
}

func (f *FixedCalendar) FromSeconds(sec float64) temporal.Coordinate {
	rel := sec - float64(f.Epoch.Unix())
	perDay := f.secondsPerDay()

	days := math.Floor(rel / perDay)
	rest := rel - days*perDay

	yearDays := float64(f.daysPerYear())
	years := math.Floor(days / yearDays)
	dayOfYear := int(days - years*yearDays)

	month := 1
	for _, d := range f.MonthDays {
		if dayOfYear < d {
			break
		}
		dayOfYear -= d
		month++
	}

	perHour := float64(f.MinutesInHour * f.SecondsInMinute)
	hour := math.Floor(rest / perHour)
	rest -= hour * perHour
	minute := math.Floor(rest / float64(f.SecondsInMinute))
	rest -= minute * float64(f.SecondsInMinute)

	return temporal.Coordinate{
		Year:   util.Ptr(years + 1),
		Month:  util.Ptr(float64(month)),
		Day:    util.Ptr(float64(dayOfYear + 1)),
		Hour:   util.Ptr(hour),
		Minute: util.Ptr(minute),
		Second: util.Ptr(rest),
		TRS:    f.name,
	}
}

func (f *FixedCalendar) Span(seconds float64) temporal.Extent {
	return span(f.name, seconds, f.secondsPerDay(), float64(f.MinutesInHour*f.SecondsInMinute), float64(f.SecondsInMinute))
}
