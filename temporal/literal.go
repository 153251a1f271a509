package temporal

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/sosodev/duration"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/internal/util"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/vocab"
)

// ParseTimestamp reads an xsd:dateTimeStamp, xsd:dateTime or xsd:date
// literal. Strict RFC 3339 is tried first, then bare dates, then the lenient
// dateparse formats. Values without a zone are taken as UTC.
func ParseTimestamp(lit kb.Literal) (time.Time, error) {
	value := strings.TrimSpace(lit.Value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{"2006-01-02Z07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse timestamp %q", value)
	}
	return t.UTC(), nil
}

// ParseNumber reads a numeric literal. xsd:gYear, xsd:gMonth ("--05") and
// xsd:gDay ("---12") forms are accepted, with any timezone suffix dropped.
func ParseNumber(lit kb.Literal) (float64, error) {
	value := strings.TrimSpace(lit.Value)
	switch {
	case lit.Datatype == vocab.XSDGDay || strings.HasPrefix(value, "---"):
		value = strings.TrimPrefix(value, "---")
	case lit.Datatype == vocab.XSDGMonth || strings.HasPrefix(value, "--"):
		value = strings.TrimPrefix(value, "--")
	}
	if lit.Datatype == vocab.XSDGYear || lit.Datatype == vocab.XSDGMonth || lit.Datatype == vocab.XSDGDay {
		value = stripZone(value)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse number %q", lit.Value)
	}
	return f, nil
}

func stripZone(v string) string {
	if strings.HasSuffix(v, "Z") {
		return strings.TrimSuffix(v, "Z")
	}
	// a zone looks like +hh:mm or -hh:mm after at least one digit
	if len(v) > 6 {
		tail := v[len(v)-6:]
		if (tail[0] == '+' || tail[0] == '-') && tail[3] == ':' {
			return v[:len(v)-6]
		}
	}
	return v
}

// ParseXSDDuration reads an xsd:duration literal ("P1Y2M3DT4H5M6.5S") into an
// extent. A negative duration negates every component.
func ParseXSDDuration(lit kb.Literal, trs string) (Extent, error) {
	d, err := duration.Parse(strings.TrimSpace(lit.Value))
	if err != nil {
		return Extent{}, errors.Wrapf(err, "parse duration %q", lit.Value)
	}
	sign := 1.0
	if d.Negative {
		sign = -1
	}
	component := func(v float64) *float64 {
		if v == 0 {
			return nil
		}
		return util.Ptr(sign * v)
	}
	e := Extent{
		Years:   component(d.Years),
		Months:  component(d.Months),
		Weeks:   component(d.Weeks),
		Days:    component(d.Days),
		Hours:   component(d.Hours),
		Minutes: component(d.Minutes),
		Seconds: component(d.Seconds),
		TRS:     trs,
	}
	if e.IsZero() {
		// "PT0S" is a real zero duration, not a missing one
		e.Seconds = util.Ptr(0.0)
	}
	return e, nil
}
