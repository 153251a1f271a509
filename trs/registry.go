package trs

import (
	"sort"
	"sync"
	"time"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/vocab"
)

// Registry maps reference-system names to systems. It is safe for concurrent
// use; the CLI swaps its contents when the configuration file changes.
type Registry struct {
	mu      sync.RWMutex
	systems map[string]System
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{systems: make(map[string]System)}
}

// DefaultRegistry creates a registry holding the built-in systems: the
// Gregorian calendar, Unix time, GPS time and the geologic time scale.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range Builtins() {
		r.Register(s)
	}
	return r
}

// Builtins returns fresh instances of the built-in systems.
func Builtins() []System {
	unix, _ := NewPositionSystem(vocab.UnixTime, time.Unix(0, 0), vocab.UnitSecond, 1, false, nil)
	gps, _ := NewPositionSystem(vocab.GPSTime, time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC), vocab.UnitSecond, 1, false, nil)
	geo, _ := NewPositionSystem(vocab.GeologicTime, time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), vocab.UnitYear, 1e6, true, GeologicNominals)
	return []System{NewGregorian(vocab.Gregorian), unix, gps, geo}
}

// GeologicNominals are the starts of ICS chronostratigraphic units in
// millions of years before 1950.
var GeologicNominals = map[string]float64{
	"Holocene":      0.0117,
	"Pleistocene":   2.58,
	"Quaternary":    2.58,
	"Neogene":       23.03,
	"Paleogene":     66.0,
	"Cenozoic":      66.0,
	"Cretaceous":    145.0,
	"Jurassic":      201.4,
	"Triassic":      251.902,
	"Mesozoic":      251.902,
	"Permian":       298.9,
	"Carboniferous": 358.9,
	"Devonian":      419.2,
	"Silurian":      443.8,
	"Ordovician":    485.4,
	"Cambrian":      538.8,
	"Paleozoic":     538.8,
	"Phanerozoic":   538.8,
}

// Register adds s, replacing any system with the same name.
func (r *Registry) Register(s System) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems[s.Name()] = s
}

// Replace swaps the whole contents of r with those of other.
func (r *Registry) Replace(other *Registry) {
	other.mu.RLock()
	systems := make(map[string]System, len(other.systems))
	for k, v := range other.systems {
		systems[k] = v
	}
	other.mu.RUnlock()

	r.mu.Lock()
	r.systems = systems
	r.mu.Unlock()
}

// Lookup returns the system registered under name.
func (r *Registry) Lookup(name string) (System, error) {
	r.mu.RLock()
	s, ok := r.systems[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewUnknownReferenceSystemError(name)
	}
	return s, nil
}

// Calendar returns the calendar registered under name.
func (r *Registry) Calendar(name string) (Calendar, error) {
	s, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	cal, ok := s.(Calendar)
	if !ok || s.Kind() != KindCalendar {
		return nil, errors.NewReferenceSystemKindError(name, KindCalendar.String(), s.Kind().String())
	}
	return cal, nil
}

// Position returns the position axis registered under name.
func (r *Registry) Position(name string) (*PositionSystem, error) {
	s, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	pos, ok := s.(*PositionSystem)
	if !ok {
		return nil, errors.NewReferenceSystemKindError(name, KindPosition.String(), s.Kind().String())
	}
	return pos, nil
}

// Names lists the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.systems))
	for n := range r.systems {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
