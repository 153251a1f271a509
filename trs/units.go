package trs

import (
	"strings"

	"github.com/teranos/chronos/vocab"
)

// Mean Gregorian unit lengths in seconds.
const (
	SecondsPerMinute = 60.0
	SecondsPerHour   = 3600.0
	SecondsPerDay    = 86400.0
	SecondsPerWeek   = 604800.0
	SecondsPerMonth  = 2629746.0
	SecondsPerYear   = 31556952.0
)

var unitSeconds = map[string]float64{
	vocab.UnitSecond: 1,
	vocab.UnitMinute: SecondsPerMinute,
	vocab.UnitHour:   SecondsPerHour,
	vocab.UnitDay:    SecondsPerDay,
	vocab.UnitWeek:   SecondsPerWeek,
	vocab.UnitMonth:  SecondsPerMonth,
	vocab.UnitYear:   SecondsPerYear,
}

// ParseUnit resolves a temporal unit given as an IRI, a short name
// ("time:unitYear"), a local name ("unitYear") or a plain word ("year" or "years").
func ParseUnit(name string) (string, bool) {
	name = strings.TrimSpace(name)
	switch {
	case strings.HasPrefix(name, vocab.Namespace):
	case strings.HasPrefix(name, vocab.Prefix):
		name = vocab.Namespace + strings.TrimPrefix(name, vocab.Prefix)
	case strings.HasPrefix(name, "unit"):
		name = vocab.Namespace + name
	default:
		word := strings.TrimSuffix(strings.ToLower(name), "s")
		if word == "" {
			return "", false
		}
		name = vocab.Namespace + "unit" + strings.ToUpper(word[:1]) + word[1:]
	}
	if _, ok := unitSeconds[name]; !ok {
		return "", false
	}
	return name, true
}

// UnitSeconds returns the mean length of unit in seconds.
func UnitSeconds(unit string) (float64, bool) {
	s, ok := unitSeconds[unit]
	return s, ok
}
