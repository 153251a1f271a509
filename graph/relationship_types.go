package graph

import (
	"sort"

	"github.com/teranos/chronos/allen"
)

// collectRelationshipTypeInfo counts links per relation kind, in registry order.
// Kinds with at least one clashing link are colored as clashes.
func collectRelationshipTypeInfo(links []Link) []RelationshipTypeInfo {
	byType := make(map[string]*RelationshipTypeInfo)
	for _, l := range links {
		info, ok := byType[l.Type]
		if !ok {
			info = &RelationshipTypeInfo{Type: l.Type, Label: l.Label}
			byType[l.Type] = info
		}
		info.Count++
		if l.Clash {
			info.Clashes++
			info.Color = clashColor
		}
	}

	order := func(t string) allen.Kind {
		k, _ := allen.Parse(t)
		return k
	}
	infos := make([]RelationshipTypeInfo, 0, len(byType))
	for _, info := range byType {
		infos = append(infos, *info)
	}
	sort.Slice(infos, func(i, j int) bool { return order(infos[i].Type) < order(infos[j].Type) })
	return infos
}
