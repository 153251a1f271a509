package temporal

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/internal/util"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/vocab"
)

// Extractor rebuilds Instant and Interval views from a kb.Model.
//
// Missing or unparsable structural facts leave the corresponding field unset;
// the only error is an empty identifier. An Extractor holds no state besides
// its model and is safe for concurrent use.
type Extractor struct {
	model  kb.Model
	logger *zap.SugaredLogger
}

// NewExtractor creates an extractor over model.
func NewExtractor(model kb.Model, log *zap.SugaredLogger) *Extractor {
	return &Extractor{
		model:  model,
		logger: logger.OrNop(log).Named("extract"),
	}
}

// Instant reconstructs the instant identified by id.
func (e *Extractor) Instant(id string) (*Instant, error) {
	if err := checkID("instant", id); err != nil {
		return nil, err
	}

	inst := &Instant{ID: id}
	for _, pred := range []string{vocab.InXSDDateTimeStamp, vocab.InXSDDateTime, vocab.InXSDDate} {
		lit, ok := e.model.ScalarValue(id, pred)
		if !ok {
			continue
		}
		ts, err := ParseTimestamp(lit)
		if err != nil {
			e.skip(id, pred, err)
			continue
		}
		inst.Timestamp = &ts
		break
	}

	if descID, ok := e.model.LinkValue(id, vocab.InDateTime); ok {
		inst.Description = e.dateTimeDescription(descID)
	}
	if posID, ok := e.model.LinkValue(id, vocab.InTimePosition); ok {
		inst.Position = e.timePosition(posID)
	}
	return inst, nil
}

// Interval reconstructs the interval identified by id.
func (e *Extractor) Interval(id string) (*Interval, error) {
	if err := checkID("interval", id); err != nil {
		return nil, err
	}

	iv := &Interval{ID: id}
	iv.Beginning, _ = e.model.LinkValue(id, vocab.HasBeginning)
	iv.End, _ = e.model.LinkValue(id, vocab.HasEnd)

	if lit, ok := e.model.ScalarValue(id, vocab.HasXSDDuration); ok {
		ext, err := ParseXSDDuration(lit, DefaultTRS)
		if err != nil {
			e.skip(id, vocab.HasXSDDuration, err)
		} else {
			iv.XSDDuration = &ext
		}
	}
	if descID, ok := e.model.LinkValue(id, vocab.HasDurationDescription); ok {
		iv.DurationDescription = e.durationDescription(descID)
	}
	if durID, ok := e.model.LinkValue(id, vocab.HasDuration); ok {
		iv.Duration = e.duration(durID)
	}
	return iv, nil
}

func (e *Extractor) dateTimeDescription(id string) *DateTimeDescription {
	d := &DateTimeDescription{
		ID:     id,
		TRS:    e.trs(id),
		Year:   e.number(id, vocab.Year),
		Month:  e.number(id, vocab.Month),
		Day:    e.number(id, vocab.Day),
		Hour:   e.number(id, vocab.Hour),
		Minute: e.number(id, vocab.Minute),
		Second: e.number(id, vocab.Second),
	}
	d.Unit, _ = e.model.LinkValue(id, vocab.UnitType)
	return d
}

func (e *Extractor) durationDescription(id string) *DurationDescription {
	return &DurationDescription{
		ID:      id,
		TRS:     e.trs(id),
		Years:   e.number(id, vocab.Years),
		Months:  e.number(id, vocab.Months),
		Weeks:   e.number(id, vocab.Weeks),
		Days:    e.number(id, vocab.Days),
		Hours:   e.number(id, vocab.Hours),
		Minutes: e.number(id, vocab.Minutes),
		Seconds: e.number(id, vocab.Seconds),
	}
}

func (e *Extractor) timePosition(id string) *TimePosition {
	p := &TimePosition{ID: id, TRS: e.trs(id)}
	p.Numeric = e.number(id, vocab.NumericPosition)
	if lit, ok := e.model.ScalarValue(id, vocab.NominalPosition); ok {
		p.Nominal = strings.TrimSpace(lit.Value)
	}
	if p.Numeric == nil && p.Nominal == "" {
		return nil
	}
	return p
}

func (e *Extractor) duration(id string) *Duration {
	value := e.number(id, vocab.NumericDuration)
	unit, ok := e.model.LinkValue(id, vocab.UnitType)
	if value == nil || !ok {
		return nil
	}
	return &Duration{ID: id, Value: *value, Unit: unit}
}

// trs returns the reference system linked from id, or the default calendar.
func (e *Extractor) trs(id string) string {
	if trs, ok := e.model.LinkValue(id, vocab.HasTRS); ok {
		return trs
	}
	return DefaultTRS
}

func (e *Extractor) number(id, pred string) *float64 {
	lit, ok := e.model.ScalarValue(id, pred)
	if !ok {
		return nil
	}
	f, err := ParseNumber(lit)
	if err != nil {
		e.skip(id, pred, err)
		return nil
	}
	return util.Ptr(f)
}

func (e *Extractor) skip(id, pred string, err error) {
	e.logger.Debugw("Ignoring unparsable literal",
		logger.FieldSubject, id,
		"predicate", pred,
		logger.FieldError, err.Error(),
	)
}

func checkID(param, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewInvalidIdentifierError(param)
	}
	return nil
}
