// Package resolve computes canonical coordinates for instants and interval
// endpoints, falling back to the relation graph when an interval has no
// explicit beginning or end.
//
// For an interval T without an explicit beginning, intervals that share T's
// beginning (equals, starts, startedBy in either direction) are tried first,
// then intervals meeting T, whose end is T's beginning:
//
//	   X ──meets──▶ T          X.end   = T.beginning
//	   T ──metBy──▶ X          X.end   = T.beginning
//	   T ──meets──▶ X          X.begin = T.end
//
// Every top-level call owns one visited set, so cyclic relation graphs
// terminate with no coordinate.
package resolve

import (
	"go.uber.org/zap"

	"github.com/teranos/chronos/allen"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/temporal"
	"github.com/teranos/chronos/trs"
)

// Endpoint selects the beginning or the end of an interval.
type Endpoint int

const (
	Beginning Endpoint = iota
	End
)

func (e Endpoint) String() string {
	if e == End {
		return "end"
	}
	return "beginning"
}

// opposite is the endpoint a meeting interval shares with this one.
func (e Endpoint) opposite() Endpoint {
	if e == End {
		return Beginning
	}
	return End
}

// shared lists the relations whose two sides have the same endpoint e.
func (e Endpoint) shared() []allen.Kind {
	if e == End {
		return []allen.Kind{allen.IntervalEquals, allen.IntervalFinishes, allen.IntervalFinishedBy}
	}
	return []allen.Kind{allen.IntervalEquals, allen.IntervalStarts, allen.IntervalStartedBy}
}

// adjacency describes "T <kind> X" (outgoing) or "X <kind> T" (incoming).
type adjacency struct {
	kind     allen.Kind
	outgoing bool
}

// meeting lists the relations placing a neighbour's opposite endpoint at e.
func (e Endpoint) meeting() []adjacency {
	if e == End {
		return []adjacency{{allen.IntervalMeets, true}, {allen.IntervalMetBy, false}}
	}
	return []adjacency{{allen.IntervalMetBy, true}, {allen.IntervalMeets, false}}
}

// Resolver turns entity identifiers into coordinates and extents. It is safe
// for concurrent use; each call allocates its own visited set.
type Resolver struct {
	model      kb.Model
	extractor  *temporal.Extractor
	normalizer *trs.Normalizer
	logger     *zap.SugaredLogger
}

// NewResolver creates a resolver reading model and normalizing through normalizer.
func NewResolver(model kb.Model, normalizer *trs.Normalizer, log *zap.SugaredLogger) *Resolver {
	log = logger.OrNop(log)
	return &Resolver{
		model:      model,
		extractor:  temporal.NewExtractor(model, log),
		normalizer: normalizer,
		logger:     log.Named("resolve"),
	}
}

// ResolveInstant normalizes the first encoding found on the instant. A nil
// coordinate means the instant carries no usable encoding.
func (r *Resolver) ResolveInstant(id, target string) (*temporal.Coordinate, error) {
	inst, err := r.extractor.Instant(id)
	if err != nil {
		return nil, err
	}
	return r.normalizer.Instant(inst, target)
}

// ResolveBeginning resolves the beginning of interval id on target.
func (r *Resolver) ResolveBeginning(id, target string) (*temporal.Coordinate, error) {
	return r.Resolve(id, Beginning, target)
}

// ResolveEnd resolves the end of interval id on target.
func (r *Resolver) ResolveEnd(id, target string) (*temporal.Coordinate, error) {
	return r.Resolve(id, End, target)
}

// Resolve resolves one endpoint of interval id on target.
func (r *Resolver) Resolve(id string, which Endpoint, target string) (*temporal.Coordinate, error) {
	visited := make(map[string]bool)
	return r.endpoint(id, which, target, visited)
}

func (r *Resolver) endpoint(id string, which Endpoint, target string, visited map[string]bool) (*temporal.Coordinate, error) {
	if visited[id] {
		r.logger.Debugw("Interval already visited",
			logger.FieldInterval, id,
			logger.FieldEndpoint, which.String(),
		)
		return nil, nil
	}
	visited[id] = true

	iv, err := r.extractor.Interval(id)
	if err != nil {
		return nil, err
	}

	instant := iv.Beginning
	if which == End {
		instant = iv.End
	}
	if instant != "" {
		c, err := r.ResolveInstant(instant, target)
		if err != nil || c != nil {
			return c, err
		}
	}

	for _, kind := range which.shared() {
		for _, other := range r.neighbours(id, kind, true, true) {
			c, err := r.endpoint(other, which, target, visited)
			if err != nil || c != nil {
				r.found(id, which, kind, other, c)
				return c, err
			}
		}
	}

	for _, adj := range which.meeting() {
		for _, other := range r.neighbours(id, adj.kind, adj.outgoing, !adj.outgoing) {
			c, err := r.endpoint(other, which.opposite(), target, visited)
			if err != nil || c != nil {
				r.found(id, which, adj.kind, other, c)
				return c, err
			}
		}
	}
	return nil, nil
}

// neighbours returns the intervals related to id by kind: objects where id
// is the subject, subjects where id is the object, in assertion order.
func (r *Resolver) neighbours(id string, kind allen.Kind, asSubject, asObject bool) []string {
	var out []string
	for _, p := range r.model.AssertionsOf(kind.IRI()) {
		switch {
		case asSubject && p.Subject == id && p.Object != id:
			out = append(out, p.Object)
		case asObject && p.Object == id && p.Subject != id:
			out = append(out, p.Subject)
		}
	}
	return out
}

func (r *Resolver) found(id string, which Endpoint, kind allen.Kind, via string, c *temporal.Coordinate) {
	if c == nil {
		return
	}
	r.logger.Debugw("Endpoint resolved through relation",
		logger.FieldInterval, id,
		logger.FieldEndpoint, which.String(),
		logger.FieldRelation, kind.String(),
		"via", via,
	)
}
