package graph

const (
	defaultLinkWeight = 1.0 // Initial weight for new links
	clashLinkWeight   = 3.0 // Clashing links are drawn heavier

	// Node types
	NodeTypeInstant  = "instant"
	NodeTypeInterval = "interval"
	NodeTypeUntyped  = "untyped"

	instantColor        = "#e67e22"
	intervalColor       = "#3498db"
	defaultUntypedColor = "rgba(149, 165, 166, 0.3)" // Transparent gray
	clashColor          = "#e74c3c"
)

var nodeTypeLabels = map[string]string{
	NodeTypeInstant:  "Instant",
	NodeTypeInterval: "Interval",
	NodeTypeUntyped:  "Untyped",
}

var nodeTypeColors = map[string]string{
	NodeTypeInstant:  instantColor,
	NodeTypeInterval: intervalColor,
	NodeTypeUntyped:  defaultUntypedColor,
}
