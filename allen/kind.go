// Package allen is the registry of OWL-Time temporal relation kinds.
//
// Every relation the validator and resolver understand is a value of the
// closed Kind enum. The registry table in registry.go is indexed by Kind and
// encodes, per kind:
//
//	IRI and short name   time:intervalBefore
//	Domain               instants or intervals
//	Inverse              intervalBefore ↔ intervalAfter
//	Parents              intervalBefore ⊑ before, intervalDisjoint
//	Compatible set       kinds that may be co-asserted on the same ordered pair
//	Basic relations      the Allen basic relations the kind admits
//
// Two kinds asserted on the same ordered pair clash unless each is in the
// other's compatible set. The compatible sets are written out by hand; the
// basic-relation decomposition exists so tests can audit them: two kinds are
// compatible exactly when their basic relation sets intersect.
package allen

import (
	"strings"

	"github.com/teranos/chronos/vocab"
)

// Kind identifies a temporal relation. The zero value is Unknown.
type Kind uint8

// Relation kinds in registry order. Validator issues for a triple are emitted
// in this order, so it is part of the observable contract.
const (
	Unknown Kind = iota

	Before
	After

	IntervalAfter
	IntervalBefore
	IntervalContains
	IntervalDisjoint
	IntervalDuring
	IntervalEquals
	IntervalFinishedBy
	IntervalFinishes
	IntervalIn
	IntervalMeets
	IntervalMetBy
	IntervalOverlappedBy
	IntervalOverlaps
	IntervalStartedBy
	IntervalStarts
	HasInside
	NotDisjoint

	kindCount
)

// Domain is the class of temporal entity a relation kind is validated over.
type Domain uint8

const (
	// InstantDomain relations hold between two instants.
	InstantDomain Domain = iota + 1
	// IntervalDomain relations hold between two intervals.
	IntervalDomain
)

// Noun returns the plural noun used in issue suggestions.
func (d Domain) Noun() string {
	switch d {
	case InstantDomain:
		return "instants"
	case IntervalDomain:
		return "intervals"
	default:
		return "entities"
	}
}

// ClassIRI returns the OWL-Time class whose members the domain covers.
func (d Domain) ClassIRI() string {
	switch d {
	case InstantDomain:
		return vocab.ClassInstant
	case IntervalDomain:
		return vocab.ClassInterval
	default:
		return ""
	}
}

// All returns every known kind in registry order.
func All() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := Before; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	return k > Unknown && k < kindCount
}

// LocalName returns the OWL-Time local name, e.g. "intervalBefore".
func (k Kind) LocalName() string {
	if !k.Valid() {
		return "unknown"
	}
	return registry[k].name
}

// String returns the canonical short name, e.g. "time:intervalBefore".
func (k Kind) String() string {
	return vocab.Prefix + k.LocalName()
}

// IRI returns the full OWL-Time IRI of the relation.
func (k Kind) IRI() string {
	if !k.Valid() {
		return ""
	}
	return vocab.Namespace + registry[k].name
}

// Domain returns the class of entity the relation is validated over.
func (k Kind) Domain() Domain {
	if !k.Valid() {
		return 0
	}
	return registry[k].domain
}

// Inverse returns the inverse relation kind. Symmetric kinds are their own inverse.
func (k Kind) Inverse() Kind {
	if !k.Valid() {
		return Unknown
	}
	return registry[k].inverse
}

// Symmetric reports whether k(A,B) implies k(B,A).
func (k Kind) Symmetric() bool {
	return k.Valid() && registry[k].inverse == k
}

// Parents returns the direct super-kinds of k in the OWL-Time property hierarchy.
func (k Kind) Parents() []Kind {
	if !k.Valid() {
		return nil
	}
	return registry[k].parents.Kinds()
}

// Ancestors returns every super-kind of k, transitively.
func (k Kind) Ancestors() Set {
	var out Set
	if !k.Valid() {
		return out
	}
	pending := registry[k].parents.Kinds()
	for len(pending) > 0 {
		p := pending[0]
		pending = pending[1:]
		if out.Has(p) {
			continue
		}
		out = out.With(p)
		pending = append(pending, registry[p].parents.Kinds()...)
	}
	return out
}

// IsSubKindOf reports whether k is a (transitive) sub-kind of other.
func (k Kind) IsSubKindOf(other Kind) bool {
	return k.Ancestors().Has(other)
}

// Compatible returns the set of kinds that may be co-asserted with k on the
// same ordered pair. It always contains k itself.
func (k Kind) Compatible() Set {
	if !k.Valid() {
		return 0
	}
	return registry[k].compatible
}

// CompatibleWith reports whether k and other may both hold on the same ordered pair.
func (k Kind) CompatibleWith(other Kind) bool {
	return k.Compatible().Has(other)
}

// Clashes reports whether asserting k and other on the same ordered pair is a
// contradiction.
func (k Kind) Clashes(other Kind) bool {
	return k.Valid() && other.Valid() && !k.CompatibleWith(other)
}

// Basics returns the Allen basic relations admitted by k.
func (k Kind) Basics() BasicSet {
	if !k.Valid() {
		return 0
	}
	return registry[k].basics
}

// Parse resolves a relation name given as a local name ("intervalBefore"),
// a short name ("time:intervalBefore") or a full OWL-Time IRI.
func Parse(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	switch {
	case strings.HasPrefix(name, vocab.Namespace):
		name = strings.TrimPrefix(name, vocab.Namespace)
	case strings.HasPrefix(name, vocab.Prefix):
		name = strings.TrimPrefix(name, vocab.Prefix)
	}
	k, ok := byName[name]
	return k, ok
}

// FromIRI resolves a full OWL-Time relation IRI.
func FromIRI(iri string) (Kind, bool) {
	if !strings.HasPrefix(iri, vocab.Namespace) {
		return Unknown, false
	}
	return Parse(iri)
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for _, k := range All() {
		m[registry[k].name] = k
	}
	return m
}()
