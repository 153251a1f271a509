package kb

import (
	"sort"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/vocab"
)

// builtinSubClasses is the part of the OWL-Time class hierarchy that decides
// which entities a rule sees. Relation sub-properties are not expanded here;
// package allen encodes them.
var builtinSubClasses = map[string][]string{
	vocab.ClassTemporalEntity: {vocab.ClassInstant, vocab.ClassInterval},
	vocab.ClassInterval:       {vocab.ClassProperInterval},
}

type spKey struct {
	subject   string
	predicate string
}

// Graph is an insertion-ordered, de-duplicated triple set implementing Model.
//
// Graph is not safe for concurrent mutation. Once populated, any number of
// goroutines may read it.
type Graph struct {
	triples []Triple
	seen    map[Triple]struct{}
	byPred  map[string][]int
	bySP    map[spKey][]int
	byObjP  map[spKey][]int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen:   make(map[Triple]struct{}),
		byPred: make(map[string][]int),
		bySP:   make(map[spKey][]int),
		byObjP: make(map[spKey][]int),
	}
}

// Add inserts t. It reports whether the triple was new.
func (g *Graph) Add(t Triple) (bool, error) {
	if !t.Valid() {
		return false, errors.NewInvalidRequestError("invalid triple (%s, %s)", t.Subject, t.Predicate)
	}
	key := t
	if t.Literal != nil {
		lit := *t.Literal
		key.Literal = nil
		key.Object = "\x00" + lit.Datatype + "\x00" + lit.Value
	}
	if _, dup := g.seen[key]; dup {
		return false, nil
	}
	g.seen[key] = struct{}{}

	idx := len(g.triples)
	g.triples = append(g.triples, t)
	g.byPred[t.Predicate] = append(g.byPred[t.Predicate], idx)
	sp := spKey{t.Subject, t.Predicate}
	g.bySP[sp] = append(g.bySP[sp], idx)
	if !t.IsLiteral() {
		op := spKey{t.Object, t.Predicate}
		g.byObjP[op] = append(g.byObjP[op], idx)
	}
	return true, nil
}

// AddResource inserts (subject, predicate, object) with a resource object.
func (g *Graph) AddResource(subject, predicate, object string) error {
	_, err := g.Add(Triple{Subject: subject, Predicate: predicate, Object: object})
	return err
}

// AddLiteral inserts (subject, predicate, literal).
func (g *Graph) AddLiteral(subject, predicate, value, datatype string) error {
	_, err := g.Add(Triple{Subject: subject, Predicate: predicate, Literal: &Literal{Value: value, Datatype: datatype}})
	return err
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// ClassMembers implements Model. Members of declared sub-classes and
// equivalent classes are included.
func (g *Graph) ClassMembers(class string) []string {
	classes := g.closure(class, vocab.RDFSSubClassOf, vocab.OWLEquivalentClass, builtinSubClasses)

	var idx []int
	for _, c := range classes {
		idx = append(idx, g.byObjP[spKey{c, vocab.RDFType}]...)
	}
	sort.Ints(idx)

	seen := make(map[string]bool, len(idx))
	var members []string
	for _, i := range idx {
		s := g.triples[i].Subject
		if !seen[s] {
			seen[s] = true
			members = append(members, s)
		}
	}
	return members
}

// AssertionsOf implements Model. Assertions made through declared
// sub-properties and equivalent properties are included.
func (g *Graph) AssertionsOf(predicate string) []Pair {
	preds := g.closure(predicate, vocab.RDFSSubPropertyOf, vocab.OWLEquivalentProperty, nil)

	var idx []int
	for _, p := range preds {
		idx = append(idx, g.byPred[p]...)
	}
	sort.Ints(idx)

	seen := make(map[Pair]bool, len(idx))
	var pairs []Pair
	for _, i := range idx {
		t := g.triples[i]
		if t.IsLiteral() {
			continue
		}
		p := Pair{Subject: t.Subject, Object: t.Object}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// ScalarValue implements Model. The first literal asserted wins.
func (g *Graph) ScalarValue(subject, predicate string) (Literal, bool) {
	for _, i := range g.bySP[spKey{subject, predicate}] {
		if lit := g.triples[i].Literal; lit != nil {
			return *lit, true
		}
	}
	return Literal{}, false
}

// LinkValue implements Model. The first resource asserted wins.
func (g *Graph) LinkValue(subject, predicate string) (string, bool) {
	for _, i := range g.bySP[spKey{subject, predicate}] {
		if t := g.triples[i]; !t.IsLiteral() {
			return t.Object, true
		}
	}
	return "", false
}

// Types returns the classes asserted for subject.
func (g *Graph) Types(subject string) []string {
	var types []string
	for _, i := range g.bySP[spKey{subject, vocab.RDFType}] {
		if t := g.triples[i]; !t.IsLiteral() {
			types = append(types, t.Object)
		}
	}
	return types
}

// closure returns root plus every term declared narrower than it (X narrower
// root) or equivalent to it, transitively and in discovery order. Cycles in
// the declarations are tolerated.
func (g *Graph) closure(root, narrower, equivalent string, builtin map[string][]string) []string {
	visited := map[string]bool{root: true}
	order := []string{root}
	queue := []string{root}

	visit := func(term string) {
		if !visited[term] {
			visited[term] = true
			order = append(order, term)
			queue = append(queue, term)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, sub := range builtin[cur] {
			visit(sub)
		}
		for _, i := range g.byObjP[spKey{cur, narrower}] {
			visit(g.triples[i].Subject)
		}
		for _, i := range g.byObjP[spKey{cur, equivalent}] {
			visit(g.triples[i].Subject)
		}
		for _, i := range g.bySP[spKey{cur, equivalent}] {
			if t := g.triples[i]; !t.IsLiteral() {
				visit(t.Object)
			}
		}
	}
	return order
}
