package graph

import (
	"strconv"
	"strings"
)

// normalizeNodeID creates a safe node ID for graph visualization.
// Characters outside [A-Za-z0-9_-] become underscores, so IRIs are valid
// D3.js identifiers: "urn:ex:IntervalA" becomes "urn_ex_IntervalA".
func normalizeNodeID(id string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, id)
}

// uniqueNodeID returns id, or id with the first free "_N" suffix when two
// IRIs normalize to the same ID.
func uniqueNodeID(id string, taken map[string]bool) string {
	if !taken[id] {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "_" + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// localName returns the part of an IRI after the last '#', '/' or ':'.
func localName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/:"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}
