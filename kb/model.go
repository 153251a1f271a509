// Package kb is the fact-graph boundary chronos reads from.
//
// The validator, extractor and resolver only ever see the Model interface:
// class membership, relation assertions and single-valued structural facts.
// Graph is the in-memory implementation, built from fact documents
// (document.go) or from a storage snapshot (kb/storage).
package kb

import "strings"

// Model is the read-only view of an ontology consumed by chronos.
//
// Implementations must be safe for concurrent reads once construction is
// complete; validation rules query the same Model from several goroutines.
type Model interface {
	// ClassMembers lists the entities asserted to be of class, in assertion order.
	ClassMembers(class string) []string

	// AssertionsOf lists every (subject, object) pair related by predicate,
	// including pairs asserted through declared sub-properties or equivalent
	// properties.
	AssertionsOf(predicate string) []Pair

	// ScalarValue returns the literal value of a single-valued data predicate.
	ScalarValue(subject, predicate string) (Literal, bool)

	// LinkValue returns the resource value of a single-valued object predicate.
	LinkValue(subject, predicate string) (string, bool)
}

// Pair is an ordered (subject, object) pair of entity identifiers.
type Pair struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
}

// Reversed returns the pair with subject and object swapped.
func (p Pair) Reversed() Pair {
	return Pair{Subject: p.Object, Object: p.Subject}
}

// Literal is a typed scalar value. Datatype is a full XSD IRI or empty.
type Literal struct {
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
}

// Triple is one fact. Exactly one of Object and Literal is set.
type Triple struct {
	Subject   string   `json:"subject"`
	Predicate string   `json:"predicate"`
	Object    string   `json:"object,omitempty"`
	Literal   *Literal `json:"literal,omitempty"`
}

// IsLiteral reports whether the triple carries a literal value.
func (t Triple) IsLiteral() bool {
	return t.Literal != nil
}

// Valid reports whether the triple has a subject, a predicate and exactly one value.
func (t Triple) Valid() bool {
	if strings.TrimSpace(t.Subject) == "" || strings.TrimSpace(t.Predicate) == "" {
		return false
	}
	if t.Literal != nil {
		return t.Object == ""
	}
	return strings.TrimSpace(t.Object) != ""
}
