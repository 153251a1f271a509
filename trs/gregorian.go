package trs

import (
	"math"
	"time"

	"github.com/teranos/chronos/internal/util"
	"github.com/teranos/chronos/temporal"
	"github.com/teranos/chronos/vocab"
)

// Gregorian is the proleptic Gregorian calendar in UTC. Years outside
// 1..9999, including geologic magnitudes, are supported.
type Gregorian struct {
	name string
}

// NewGregorian returns the Gregorian calendar registered under name.
func NewGregorian(name string) *Gregorian {
	if name == "" {
		name = vocab.Gregorian
	}
	return &Gregorian{name: name}
}

func (g *Gregorian) Name() string { return g.name }
func (g *Gregorian) Kind() Kind   { return KindCalendar }

// ToSeconds floors year and month, whose lengths vary; fractional days,
// hours and minutes carry into seconds.
func (g *Gregorian) ToSeconds(c temporal.Coordinate) (float64, bool) {
	if c.Year == nil {
		return 0, false
	}
	value := func(p *float64, def float64) float64 {
		if p == nil {
			return def
		}
		return *p
	}
	start := time.Date(
		int(math.Floor(*c.Year)),
		time.Month(int(math.Floor(value(c.Month, 1)))),
		1, 0, 0, 0, 0, time.UTC,
	)
	sec := float64(start.Unix()) +
		(value(c.Day, 1)-1)*SecondsPerDay +
		value(c.Hour, 0)*SecondsPerHour +
		value(c.Minute, 0)*SecondsPerMinute +
		value(c.Second, 0)
	return sec, true
}

func (g *Gregorian) FromSeconds(sec float64) temporal.Coordinate {
	whole := math.Floor(sec)
	t := time.Unix(int64(whole), int64((sec-whole)*1e9))
	return temporal.CoordinateFromTime(t, g.name)
}

func (g *Gregorian) Span(seconds float64) temporal.Extent {
	return span(g.name, seconds, SecondsPerDay, SecondsPerHour, SecondsPerMinute)
}

// span breaks seconds into days/hours/minutes/seconds. The sign applies to
// every component.
func span(trs string, seconds, perDay, perHour, perMinute float64) temporal.Extent {
	sign := 1.0
	if seconds < 0 {
		sign, seconds = -1, -seconds
	}
	days := math.Floor(seconds / perDay)
	seconds -= days * perDay
	hours := math.Floor(seconds / perHour)
	seconds -= hours * perHour
	minutes := math.Floor(seconds / perMinute)
	seconds -= minutes * perMinute

	return temporal.Extent{
		Days:    util.Ptr(sign * days),
		Hours:   util.Ptr(sign * hours),
		Minutes: util.Ptr(sign * minutes),
		Seconds: util.Ptr(sign * seconds),
		TRS:     trs,
	}
}
