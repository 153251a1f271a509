package graph

import (
	"time"
)

// Graph is the relation view of a fact graph: temporal entities as nodes,
// asserted temporal relations as links.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
	Meta  Meta   `json:"meta"`
}

// Node is a temporal entity
type Node struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`  // "instant", "interval" or "untyped"
	Label    string                 `json:"label"` // Local name of the entity IRI
	Visible  bool                   `json:"visible"`
	Metadata map[string]interface{} `json:"metadata,omitempty"` // original_id, resolved coordinates
}

// Link is one asserted relation between two entities
type Link struct {
	Source string  `json:"source"` // Node ID
	Target string  `json:"target"` // Node ID
	Type   string  `json:"type"`   // Relation short name, e.g. "time:intervalMeets"
	Weight float64 `json:"value"`  // D3 uses "value"
	Label  string  `json:"label,omitempty"`
	Clash  bool    `json:"clash,omitempty"` // Named by at least one validator issue
}

// Meta contains metadata about the graph
type Meta struct {
	GeneratedAt       time.Time              `json:"generated_at"`
	Stats             Stats                  `json:"stats"`
	Config            map[string]string      `json:"config"`
	NodeTypes         []NodeTypeInfo         `json:"node_types"`
	RelationshipTypes []RelationshipTypeInfo `json:"relationship_types"`
}

// NodeTypeInfo describes a node type and its visual configuration
type NodeTypeInfo struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	Count int    `json:"count,omitempty"`
}

// RelationshipTypeInfo describes a relation kind present in the graph
type RelationshipTypeInfo struct {
	Type    string `json:"type"`
	Label   string `json:"label"`
	Color   string `json:"color,omitempty"`
	Count   int    `json:"count,omitempty"`
	Clashes int    `json:"clashes,omitempty"` // Links of this kind flagged by the validator
}

// Stats provides graph statistics
type Stats struct {
	TotalNodes int `json:"total_nodes,omitempty"`
	TotalEdges int `json:"total_edges,omitempty"`
	Clashes    int `json:"clashes,omitempty"`
	Issues     int `json:"issues,omitempty"`
}
