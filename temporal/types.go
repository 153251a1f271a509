// Package temporal reconstructs OWL-Time instants and intervals from a fact
// graph and defines the canonical Coordinate and Extent values the resolver
// produces.
//
// All value objects are partial views: a field is nil or empty when the graph
// does not state it. Nothing here is persisted.
package temporal

import (
	"strconv"
	"strings"
	"time"

	"github.com/teranos/chronos/vocab"
)

// Instant is a point in time with up to three encodings. When several are
// present the resolver uses them in field order.
type Instant struct {
	ID          string               `json:"id"`
	Timestamp   *time.Time           `json:"timestamp,omitempty"`
	Description *DateTimeDescription `json:"description,omitempty"`
	Position    *TimePosition        `json:"position,omitempty"`
}

// HasEncoding reports whether any encoding is present.
func (i *Instant) HasEncoding() bool {
	return i.Timestamp != nil || i.Description != nil || i.Position != nil
}

// DateTimeDescription is a sparse calendar breakdown (time:inDateTime).
type DateTimeDescription struct {
	ID     string   `json:"id"`
	TRS    string   `json:"trs"`
	Unit   string   `json:"unit,omitempty"`
	Year   *float64 `json:"year,omitempty"`
	Month  *float64 `json:"month,omitempty"`
	Day    *float64 `json:"day,omitempty"`
	Hour   *float64 `json:"hour,omitempty"`
	Minute *float64 `json:"minute,omitempty"`
	Second *float64 `json:"second,omitempty"`
}

// TimePosition is a numeric or nominal position on a reference system
// (time:inTimePosition).
type TimePosition struct {
	ID      string   `json:"id"`
	TRS     string   `json:"trs"`
	Numeric *float64 `json:"numeric,omitempty"`
	Nominal string   `json:"nominal,omitempty"`
}

// Interval is a time span. Beginning and End are instant identifiers.
type Interval struct {
	ID                  string               `json:"id"`
	Beginning           string               `json:"beginning,omitempty"`
	End                 string               `json:"end,omitempty"`
	XSDDuration         *Extent              `json:"xsd_duration,omitempty"`
	DurationDescription *DurationDescription `json:"duration_description,omitempty"`
	Duration            *Duration            `json:"duration,omitempty"`
}

// DurationDescription is a sparse duration breakdown (time:hasDurationDescription).
type DurationDescription struct {
	ID      string   `json:"id"`
	TRS     string   `json:"trs"`
	Years   *float64 `json:"years,omitempty"`
	Months  *float64 `json:"months,omitempty"`
	Weeks   *float64 `json:"weeks,omitempty"`
	Days    *float64 `json:"days,omitempty"`
	Hours   *float64 `json:"hours,omitempty"`
	Minutes *float64 `json:"minutes,omitempty"`
	Seconds *float64 `json:"seconds,omitempty"`
}

// Duration is a numeric amount of a temporal unit (time:hasDuration).
type Duration struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Extent is the canonical duration breakdown tied to a reference system.
type Extent struct {
	Years   *float64 `json:"years,omitempty"`
	Months  *float64 `json:"months,omitempty"`
	Weeks   *float64 `json:"weeks,omitempty"`
	Days    *float64 `json:"days,omitempty"`
	Hours   *float64 `json:"hours,omitempty"`
	Minutes *float64 `json:"minutes,omitempty"`
	Seconds *float64 `json:"seconds,omitempty"`
	TRS     string   `json:"trs"`
}

// IsZero reports whether no component is set.
func (e Extent) IsZero() bool {
	for _, f := range e.fields() {
		if f != nil {
			return false
		}
	}
	return true
}

// String renders the extent in xsd:duration layout, e.g. P1Y2M10DT2H30M.
// Fractional components are kept as they are.
func (e Extent) String() string {
	if e.IsZero() {
		return "(none)"
	}
	var b strings.Builder
	b.WriteByte('P')
	write := func(p *float64, designator byte) {
		if p != nil {
			b.WriteString(strconv.FormatFloat(*p, 'f', -1, 64))
			b.WriteByte(designator)
		}
	}
	write(e.Years, 'Y')
	write(e.Months, 'M')
	write(e.Weeks, 'W')
	write(e.Days, 'D')
	if e.Hours != nil || e.Minutes != nil || e.Seconds != nil {
		b.WriteByte('T')
		write(e.Hours, 'H')
		write(e.Minutes, 'M')
		write(e.Seconds, 'S')
	}
	return b.String()
}

func (e Extent) fields() []*float64 {
	return []*float64{e.Years, e.Months, e.Weeks, e.Days, e.Hours, e.Minutes, e.Seconds}
}

// DefaultTRS is the reference system assumed when a description names none.
const DefaultTRS = vocab.Gregorian
