package graph

import (
	"go.uber.org/zap"

	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/resolve"
)

// Builder builds relation graphs from a fact model
type Builder struct {
	model    kb.Model
	resolver *resolve.Resolver
	target   string
	logger   *zap.SugaredLogger
}

// NewBuilder creates a graph builder over model. A non-nil resolver adds
// resolved coordinates on target to node metadata.
func NewBuilder(model kb.Model, resolver *resolve.Resolver, target string, log *zap.SugaredLogger) *Builder {
	return &Builder{
		model:    model,
		resolver: resolver,
		target:   target,
		logger:   logger.OrNop(log).Named("graph.builder"),
	}
}
