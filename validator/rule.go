package validator

import (
	"fmt"
	"strings"

	"github.com/teranos/chronos/allen"
	"github.com/teranos/chronos/kb"
)

// descriptions holds one fixed template per relation kind. The single %s
// receives the short name of the clashing relation.
var descriptions = map[allen.Kind]string{
	allen.Before:               "An instant asserted before another instant cannot also be related to it by %s",
	allen.After:                "An instant asserted after another instant cannot also be related to it by %s",
	allen.IntervalAfter:        "An interval that starts after the end of another cannot also be related to it by %s",
	allen.IntervalBefore:       "An interval that ends before the start of another cannot also be related to it by %s",
	allen.IntervalContains:     "An interval that strictly contains another cannot also be related to it by %s",
	allen.IntervalDisjoint:     "Disjoint intervals share no instant and cannot also be related by %s",
	allen.IntervalDuring:       "An interval strictly inside another cannot also be related to it by %s",
	allen.IntervalEquals:       "Equal intervals share both endpoints and cannot also be related by %s",
	allen.IntervalFinishedBy:   "An interval finished by another cannot also be related to it by %s",
	allen.IntervalFinishes:     "An interval that finishes another cannot also be related to it by %s",
	allen.IntervalIn:           "An interval inside another cannot also be related to it by %s",
	allen.IntervalMeets:        "An interval whose end is the beginning of another cannot also be related to it by %s",
	allen.IntervalMetBy:        "An interval whose beginning is the end of another cannot also be related to it by %s",
	allen.IntervalOverlappedBy: "An interval overlapped by another cannot also be related to it by %s",
	allen.IntervalOverlaps:     "An interval that overlaps another cannot also be related to it by %s",
	allen.IntervalStartedBy:    "An interval started by another cannot also be related to it by %s",
	allen.IntervalStarts:       "An interval that starts another cannot also be related to it by %s",
	allen.HasInside:            "An interval with another interval inside it cannot also be related to it by %s",
	allen.NotDisjoint:          "Intervals that share an instant cannot also be related by %s",
}

// Rule checks every assertion of one relation kind for clashing co-assertions.
type Rule struct {
	kind allen.Kind
}

// RuleFor returns the rule validating kind.
func RuleFor(kind allen.Kind) (Rule, bool) {
	if !kind.Valid() {
		return Rule{}, false
	}
	return Rule{kind: kind}, true
}

// Rules returns one rule per relation kind, in registry order.
func Rules() []Rule {
	kinds := allen.All()
	rules := make([]Rule, len(kinds))
	for i, k := range kinds {
		rules[i] = Rule{kind: k}
	}
	return rules
}

// Kind returns the relation kind the rule validates.
func (r Rule) Kind() allen.Kind {
	return r.kind
}

// Name returns the rule name, e.g. "IntervalBeforeAnalysis".
func (r Rule) Name() string {
	local := r.kind.LocalName()
	return strings.ToUpper(local[:1]) + local[1:] + "Analysis"
}

// Description fills the rule's template with the clashing relation.
func (r Rule) Description(clash allen.Kind) string {
	return fmt.Sprintf(descriptions[r.kind], clash)
}

// Check returns the issues for every ordered pair asserted with the rule's
// kind between cached members of its domain. For each pair it reports, in
// registry order, every other kind asserted on the same pair that clashes
// with the rule's kind. An asymmetric kind asserted in both directions is
// reported on each pair, naming the kind itself.
func (r Rule) Check(model kb.Model, cache *Cache) []Issue {
	domain := r.kind.Domain()
	asserted := newAssertionIndex(model)

	var issues []Issue
	for _, p := range r.pairs(model, cache, domain) {
		for _, other := range allen.All() {
			if other == r.kind {
				if !r.kind.Symmetric() && p.Subject != p.Object && asserted.has(r.kind, p.Reversed()) {
					issues = append(issues, newIssue(r, p.Subject, p.Object, other))
				}
				continue
			}
			if r.kind.Clashes(other) && asserted.has(other, p) {
				issues = append(issues, newIssue(r, p.Subject, p.Object, other))
			}
		}
	}
	return issues
}

// pairs returns the distinct pairs asserted with the rule's kind whose
// endpoints are both cached members of domain, in assertion order.
func (r Rule) pairs(model kb.Model, cache *Cache, domain allen.Domain) []kb.Pair {
	seen := make(map[kb.Pair]bool)
	var out []kb.Pair
	for _, p := range model.AssertionsOf(r.kind.IRI()) {
		if seen[p] || !cache.Contains(domain, p.Subject) || !cache.Contains(domain, p.Object) {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// assertionIndex memoizes the pair sets of each kind for one Check.
type assertionIndex struct {
	model kb.Model
	pairs map[allen.Kind]map[kb.Pair]bool
}

func newAssertionIndex(model kb.Model) *assertionIndex {
	return &assertionIndex{model: model, pairs: make(map[allen.Kind]map[kb.Pair]bool)}
}

func (a *assertionIndex) has(kind allen.Kind, p kb.Pair) bool {
	set, ok := a.pairs[kind]
	if !ok {
		set = make(map[kb.Pair]bool)
		for _, q := range a.model.AssertionsOf(kind.IRI()) {
			set[q] = true
		}
		a.pairs[kind] = set
	}
	return set[p]
}
