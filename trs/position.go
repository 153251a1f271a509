package trs

import (
	"strings"
	"time"

	"github.com/teranos/chronos/errors"
)

// PositionSystem is a linear axis: a position p denotes
//
//	Origin + p × Scale × Unit          (forward axis)
//	Origin − p × Scale × Unit          (Reversed, e.g. "years before present")
//
// Nominals name fixed positions on the axis (e.g. geologic periods).
type PositionSystem struct {
	name     string
	Origin   time.Time
	Unit     string
	Scale    float64
	Reversed bool
	Nominals map[string]float64

	unitSeconds float64
}

// NewPositionSystem validates and builds a position axis. unit is any form
// accepted by ParseUnit; a zero scale means 1.
func NewPositionSystem(name string, origin time.Time, unit string, scale float64, reversed bool, nominals map[string]float64) (*PositionSystem, error) {
	if name == "" {
		return nil, errors.NewInvalidRequestError("position system name is required")
	}
	unitIRI, ok := ParseUnit(unit)
	if !ok {
		return nil, errors.NewInvalidRequestError("position system %s: unknown unit %q", name, unit)
	}
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return nil, errors.NewInvalidRequestError("position system %s: scale must be positive", name)
	}
	secs, _ := UnitSeconds(unitIRI)

	noms := make(map[string]float64, len(nominals))
	for k, v := range nominals {
		noms[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &PositionSystem{
		name:        name,
		Origin:      origin.UTC(),
		Unit:        unitIRI,
		Scale:       scale,
		Reversed:    reversed,
		Nominals:    noms,
		unitSeconds: secs,
	}, nil
}

func (p *PositionSystem) Name() string { return p.name }
func (p *PositionSystem) Kind() Kind   { return KindPosition }

func (p *PositionSystem) step() float64 {
	s := p.Scale * p.unitSeconds
	if p.Reversed {
		return -s
	}
	return s
}

// ToSeconds maps a numeric position to the Unix axis.
func (p *PositionSystem) ToSeconds(pos float64) float64 {
	return float64(p.Origin.Unix()) + pos*p.step()
}

// FromSeconds maps a point on the Unix axis to a numeric position.
func (p *PositionSystem) FromSeconds(sec float64) float64 {
	return (sec - float64(p.Origin.Unix())) / p.step()
}

// Nominal returns the numeric position of a named position, case-insensitively.
func (p *PositionSystem) Nominal(name string) (float64, bool) {
	v, ok := p.Nominals[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}
