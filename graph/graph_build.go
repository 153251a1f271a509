package graph

import (
	"fmt"
	"sort"
	"time"

	"github.com/teranos/chronos/allen"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/temporal"
	"github.com/teranos/chronos/validator"
)

// Build converts the model into a graph. Every typed instant and interval
// becomes a node; every asserted temporal relation becomes a link, flagged
// when an issue names its kind on the same ordered pair. Entities reached
// only through relations are added as hidden untyped nodes.
func (b *Builder) Build(issues []validator.Issue) (*Graph, error) {
	graph := &Graph{
		Nodes: []Node{},
		Links: []Link{},
		Meta: Meta{
			GeneratedAt: time.Now(),
			Config: map[string]string{
				"target":      b.target,
				"description": fmt.Sprintf("Temporal relations (%d issues)", len(issues)),
			},
		},
	}

	cache := validator.NewCache(b.model)
	// Keyed by entity IRI; rendered IDs are made unique as nodes are added
	nodeMap := make(map[string]*Node)
	taken := make(map[string]bool)
	addNode := func(id, nodeType string) *Node {
		if n, ok := nodeMap[id]; ok {
			return n
		}
		nodeID := uniqueNodeID(normalizeNodeID(id), taken)
		taken[nodeID] = true
		n := &Node{
			ID:      nodeID,
			Type:    nodeType,
			Label:   localName(id),
			Visible: nodeType != NodeTypeUntyped,
			Metadata: map[string]interface{}{
				"original_id": id,
			},
		}
		nodeMap[id] = n
		return n
	}

	// Intervals first: an entity typed as both is drawn as an interval
	for _, id := range cache.Members(allen.IntervalDomain) {
		addNode(id, NodeTypeInterval)
	}
	for _, id := range cache.Members(allen.InstantDomain) {
		addNode(id, NodeTypeInstant)
	}

	clashes := clashIndex(issues)
	linkMap := make(map[string]*Link)
	for _, kind := range allen.All() {
		for _, p := range b.model.AssertionsOf(kind.IRI()) {
			source := addNode(p.Subject, NodeTypeUntyped).ID
			target := addNode(p.Object, NodeTypeUntyped).ID

			linkID := fmt.Sprintf("%s|%s|%s", source, kind.LocalName(), target)
			if _, exists := linkMap[linkID]; exists {
				continue
			}
			link := &Link{
				Source: source,
				Target: target,
				Type:   kind.String(),
				Weight: defaultLinkWeight,
				Label:  kind.LocalName(),
			}
			if clashes[clashKey{p.Subject, p.Object, kind.String()}] {
				link.Clash = true
				link.Weight = clashLinkWeight
			}
			linkMap[linkID] = link
		}
	}

	if b.resolver != nil {
		for _, n := range nodeMap {
			b.annotate(n)
		}
	}

	// Deterministic ordering: nodes by ID, links by composite key
	for _, n := range nodeMap {
		graph.Nodes = append(graph.Nodes, *n)
	}
	sort.Slice(graph.Nodes, func(i, j int) bool { return graph.Nodes[i].ID < graph.Nodes[j].ID })

	linkIDs := make([]string, 0, len(linkMap))
	for id := range linkMap {
		linkIDs = append(linkIDs, id)
	}
	sort.Strings(linkIDs)
	for _, id := range linkIDs {
		graph.Links = append(graph.Links, *linkMap[id])
	}

	graph.Meta.Stats = Stats{
		TotalNodes: len(graph.Nodes),
		TotalEdges: len(graph.Links),
		Issues:     len(issues),
	}
	for _, l := range graph.Links {
		if l.Clash {
			graph.Meta.Stats.Clashes++
		}
	}
	graph.Meta.NodeTypes = collectNodeTypeInfo(graph.Nodes)
	graph.Meta.RelationshipTypes = collectRelationshipTypeInfo(graph.Links)

	b.logger.Debugw("Graph built",
		"nodes", graph.Meta.Stats.TotalNodes,
		"links", graph.Meta.Stats.TotalEdges,
		logger.FieldIssueCount, len(issues),
	)
	return graph, nil
}

type clashKey struct {
	subject, object, relation string
}

// clashIndex marks both relations named by each issue on the issue's pair.
func clashIndex(issues []validator.Issue) map[clashKey]bool {
	idx := make(map[clashKey]bool, 2*len(issues))
	for _, is := range issues {
		idx[clashKey{is.Subject, is.Object, is.Relation}] = true
		idx[clashKey{is.Subject, is.Object, is.Clash}] = true
	}
	return idx
}

// annotate adds resolved coordinates to the node metadata. Resolution
// errors are logged and leave the node unannotated.
func (b *Builder) annotate(n *Node) {
	id, _ := n.Metadata["original_id"].(string)
	put := func(key string, c *temporal.Coordinate, err error) {
		if err != nil {
			b.logger.Warnw("Could not resolve node coordinate",
				logger.FieldSubject, id,
				logger.FieldError, err,
			)
			return
		}
		if c != nil {
			n.Metadata[key] = c.String()
		}
	}

	switch n.Type {
	case NodeTypeInstant:
		c, err := b.resolver.ResolveInstant(id, b.target)
		put("coordinate", c, err)
	case NodeTypeInterval:
		begin, err := b.resolver.ResolveBeginning(id, b.target)
		put("beginning", begin, err)
		end, err := b.resolver.ResolveEnd(id, b.target)
		put("end", end, err)
		if begin != nil && end != nil {
			b.checkOrder(n, id, *begin, *end)
		}
	}
}

// checkOrder flags an interval whose resolved beginning lies after its end.
func (b *Builder) checkOrder(n *Node, id string, begin, end temporal.Coordinate) {
	cmp, err := temporal.Compare(begin, end)
	if err != nil {
		b.logger.Warnw("Could not order interval endpoints", logger.FieldInterval, id, logger.FieldError, err)
		return
	}
	if cmp > 0 {
		n.Metadata["inverted"] = true
		b.logger.Warnw("Interval ends before it begins",
			logger.FieldInterval, id,
			"beginning", begin.String(),
			"end", end.String(),
		)
	}
}
