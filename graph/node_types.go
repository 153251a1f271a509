package graph

import (
	"sort"
)

// collectNodeTypeInfo counts nodes per type, sorted by type name
func collectNodeTypeInfo(nodes []Node) []NodeTypeInfo {
	counts := make(map[string]int)
	for _, n := range nodes {
		counts[n.Type]++
	}

	infos := make([]NodeTypeInfo, 0, len(counts))
	for nodeType, count := range counts {
		infos = append(infos, NodeTypeInfo{
			Type:  nodeType,
			Label: nodeTypeLabels[nodeType],
			Color: nodeTypeColors[nodeType],
			Count: count,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}
