package trs

import (
	"time"

	"go.uber.org/zap"

	"github.com/teranos/chronos/internal/util"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/temporal"
	"github.com/teranos/chronos/vocab"
)

// Normalizer converts instant and duration encodings into coordinates and
// extents on a target calendar.
//
// A nil result with a nil error means the encoding lacked the data needed
// (no year, unknown nominal, unknown unit). Errors are reserved for
// configuration problems: unregistered systems and systems of the wrong kind.
type Normalizer struct {
	registry      *Registry
	defaultTarget string
	logger        *zap.SugaredLogger
}

// NewNormalizer creates a normalizer over registry. defaultTarget is used
// when a call passes an empty target; it defaults to Gregorian.
func NewNormalizer(registry *Registry, defaultTarget string, log *zap.SugaredLogger) *Normalizer {
	if defaultTarget == "" {
		defaultTarget = temporal.DefaultTRS
	}
	return &Normalizer{
		registry:      registry,
		defaultTarget: defaultTarget,
		logger:        logger.OrNop(log).Named("trs"),
	}
}

// DefaultTarget returns the target used for empty target names.
func (n *Normalizer) DefaultTarget() string {
	return n.defaultTarget
}

func (n *Normalizer) target(name string) (Calendar, error) {
	if name == "" {
		name = n.defaultTarget
	}
	return n.registry.Calendar(name)
}

// Instant normalizes the first encoding present on inst, in the order
// timestamp, calendar description, time position.
func (n *Normalizer) Instant(inst *temporal.Instant, target string) (*temporal.Coordinate, error) {
	if inst == nil {
		return nil, nil
	}
	if inst.Timestamp != nil {
		return n.Timestamp(*inst.Timestamp, target)
	}
	if inst.Description != nil {
		c, err := n.Description(inst.Description, target)
		if err != nil || c != nil {
			return c, err
		}
	}
	if inst.Position != nil {
		return n.Position(inst.Position, target)
	}
	return nil, nil
}

// Timestamp normalizes an absolute timestamp.
func (n *Normalizer) Timestamp(t time.Time, target string) (*temporal.Coordinate, error) {
	cal, err := n.target(target)
	if err != nil {
		return nil, err
	}
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	c := cal.FromSeconds(sec)
	return &c, nil
}

// Description normalizes a calendar description. On its own calendar the
// fields are copied as they are, keeping sparseness; across calendars the
// description must carry at least a year.
func (n *Normalizer) Description(d *temporal.DateTimeDescription, target string) (*temporal.Coordinate, error) {
	cal, err := n.target(target)
	if err != nil {
		return nil, err
	}
	src := temporal.Coordinate{
		Year:   d.Year,
		Month:  d.Month,
		Day:    d.Day,
		Hour:   d.Hour,
		Minute: d.Minute,
		Second: d.Second,
		TRS:    d.TRS,
	}
	if src.IsZero() {
		return nil, nil
	}
	if d.TRS == "" || d.TRS == cal.Name() {
		src.TRS = cal.Name()
		return &src, nil
	}

	from, err := n.registry.Calendar(d.TRS)
	if err != nil {
		return nil, err
	}
	sec, ok := from.ToSeconds(src)
	if !ok {
		n.logger.Debugw("Description too sparse to convert",
			logger.FieldInstant, d.ID,
			logger.FieldTRS, d.TRS,
		)
		return nil, nil
	}
	c := cal.FromSeconds(sec)
	return &c, nil
}

// Position normalizes a numeric or nominal position. The position's system
// must be a registered position axis.
func (n *Normalizer) Position(p *temporal.TimePosition, target string) (*temporal.Coordinate, error) {
	cal, err := n.target(target)
	if err != nil {
		return nil, err
	}
	axis, err := n.registry.Position(p.TRS)
	if err != nil {
		return nil, err
	}

	var value float64
	switch {
	case p.Numeric != nil:
		value = *p.Numeric
	case p.Nominal != "":
		v, ok := axis.Nominal(p.Nominal)
		if !ok {
			n.logger.Debugw("Unknown nominal position",
				logger.FieldInstant, p.ID,
				logger.FieldTRS, p.TRS,
				"nominal", p.Nominal,
			)
			return nil, nil
		}
		value = v
	default:
		return nil, nil
	}

	c := cal.FromSeconds(axis.ToSeconds(value))
	return &c, nil
}

// XSDDuration expresses an xsd:duration extent on target.
func (n *Normalizer) XSDDuration(e *temporal.Extent, target string) (*temporal.Extent, error) {
	cal, err := n.target(target)
	if err != nil {
		return nil, err
	}
	out := onCalendar(*e, cal)
	return &out, nil
}

// DurationDescription expresses a duration description as an extent on target.
func (n *Normalizer) DurationDescription(d *temporal.DurationDescription, target string) (*temporal.Extent, error) {
	cal, err := n.target(target)
	if err != nil {
		return nil, err
	}
	e := temporal.Extent{
		Years:   d.Years,
		Months:  d.Months,
		Weeks:   d.Weeks,
		Days:    d.Days,
		Hours:   d.Hours,
		Minutes: d.Minutes,
		Seconds: d.Seconds,
	}
	if e.IsZero() {
		return nil, nil
	}
	e = onCalendar(e, cal)
	return &e, nil
}

// Duration turns a numeric duration with a unit into an extent on target.
func (n *Normalizer) Duration(d *temporal.Duration, target string) (*temporal.Extent, error) {
	cal, err := n.target(target)
	if err != nil {
		return nil, err
	}
	unit, ok := ParseUnit(d.Unit)
	if !ok {
		n.logger.Debugw("Unknown duration unit", "unit", d.Unit)
		return nil, nil
	}

	var e temporal.Extent
	v := util.Ptr(d.Value)
	switch unit {
	case vocab.UnitYear:
		e.Years = v
	case vocab.UnitMonth:
		e.Months = v
	case vocab.UnitWeek:
		e.Weeks = v
	case vocab.UnitDay:
		e.Days = v
	case vocab.UnitHour:
		e.Hours = v
	case vocab.UnitMinute:
		e.Minutes = v
	default:
		e.Seconds = v
	}
	e = onCalendar(e, cal)
	return &e, nil
}

// onCalendar tags e with cal. Extent units are SI lengths, so on a calendar
// whose day is not 86400 seconds the extent is re-spanned in that
// calendar's days, hours, minutes and seconds.
func onCalendar(e temporal.Extent, cal Calendar) temporal.Extent {
	if hasStandardDay(cal) {
		e.TRS = cal.Name()
		return e
	}
	return cal.Span(ExtentSeconds(e))
}

func hasStandardDay(cal Calendar) bool {
	s := cal.Span(SecondsPerDay)
	zero := func(p *float64) bool { return p == nil || *p == 0 }
	return s.Days != nil && *s.Days == 1 && zero(s.Hours) && zero(s.Minutes) && zero(s.Seconds)
}

// Difference is the extent from begin to end, both already on target.
func (n *Normalizer) Difference(begin, end temporal.Coordinate, target string) (*temporal.Extent, error) {
	cal, err := n.target(target)
	if err != nil {
		return nil, err
	}
	b, okB := cal.ToSeconds(begin)
	e, okE := cal.ToSeconds(end)
	if !okB || !okE {
		return nil, nil
	}
	ext := cal.Span(e - b)
	return &ext, nil
}

// ExtentSeconds converts an extent to seconds using mean unit lengths.
func ExtentSeconds(e temporal.Extent) float64 {
	total := 0.0
	add := func(p *float64, unit float64) {
		if p != nil {
			total += *p * unit
		}
	}
	add(e.Years, SecondsPerYear)
	add(e.Months, SecondsPerMonth)
	add(e.Weeks, SecondsPerWeek)
	add(e.Days, SecondsPerDay)
	add(e.Hours, SecondsPerHour)
	add(e.Minutes, SecondsPerMinute)
	add(e.Seconds, 1)
	return total
}
