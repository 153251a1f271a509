package validator

import (
	"github.com/teranos/chronos/allen"
	"github.com/teranos/chronos/kb"
)

// Cache holds the typed entities of one validation pass. It is built before
// any rule runs and only read afterwards.
type Cache struct {
	Instants  []string
	Intervals []string

	instants  map[string]struct{}
	intervals map[string]struct{}
}

// NewCache reads class membership for instants and intervals from model.
func NewCache(model kb.Model) *Cache {
	c := &Cache{
		Instants:  model.ClassMembers(allen.InstantDomain.ClassIRI()),
		Intervals: model.ClassMembers(allen.IntervalDomain.ClassIRI()),
	}
	c.instants = toSet(c.Instants)
	c.intervals = toSet(c.Intervals)
	return c
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Members returns the cached entities of domain d.
func (c *Cache) Members(d allen.Domain) []string {
	switch d {
	case allen.InstantDomain:
		return c.Instants
	case allen.IntervalDomain:
		return c.Intervals
	default:
		return nil
	}
}

// Contains reports whether id is a cached member of domain d.
func (c *Cache) Contains(d allen.Domain, id string) bool {
	var ok bool
	switch d {
	case allen.InstantDomain:
		_, ok = c.instants[id]
	case allen.IntervalDomain:
		_, ok = c.intervals[id]
	}
	return ok
}
