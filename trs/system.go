// Package trs holds temporal reference systems and the normalizer that turns
// every instant and duration encoding into a Coordinate or Extent on one
// target calendar.
//
// Every system is anchored to the Unix axis (seconds since 1970-01-01T00:00:00Z,
// leap seconds ignored), so converting between any two systems is a round trip
// through that axis:
//
//	position (GeologicTime, 66 Ma) ─ToSeconds→ axis ─FromSeconds→ Gregorian coordinate
//	Gregorian coordinate ─ToSeconds→ axis ─FromSeconds→ FixedCalendar coordinate
package trs

import (
	"github.com/teranos/chronos/temporal"
)

// Kind separates calendars from linear position axes.
type Kind int

const (
	// KindCalendar systems express instants as year/month/day/... breakdowns.
	KindCalendar Kind = iota + 1
	// KindPosition systems express instants as a number on a linear axis.
	KindPosition
)

func (k Kind) String() string {
	switch k {
	case KindCalendar:
		return "calendar"
	case KindPosition:
		return "position"
	default:
		return "unknown"
	}
}

// ParseKind reads "calendar" or "position".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "calendar":
		return KindCalendar, true
	case "position":
		return KindPosition, true
	default:
		return 0, false
	}
}

// System is a named temporal reference system.
type System interface {
	Name() string
	Kind() Kind
}

// Calendar is a calendar-kind system.
type Calendar interface {
	System

	// ToSeconds maps a coordinate to the Unix axis. Missing month and day
	// default to 1, missing time-of-day fields to 0. It reports false when the
	// coordinate has no year.
	ToSeconds(c temporal.Coordinate) (float64, bool)

	// FromSeconds maps a point on the Unix axis to a fully populated coordinate.
	FromSeconds(sec float64) temporal.Coordinate

	// Span breaks a length in seconds into days, hours, minutes and seconds
	// of this calendar.
	Span(seconds float64) temporal.Extent
}
