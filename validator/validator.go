// Package validator detects contradictory temporal relations in a fact graph.
//
// A pass builds one Cache of typed entities, then evaluates one Rule per
// relation kind. Rules share the read-only model and cache and run
// concurrently; the report lists their issues in rule order regardless of
// scheduling.
package validator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/chronos/allen"
	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/logger"
)

// Validator runs a fixed set of rules over models.
type Validator struct {
	rules   []Rule
	workers int
	metrics *Metrics
	logger  *zap.SugaredLogger
}

// Option configures a Validator.
type Option func(*Validator)

// WithWorkers bounds how many rules run at once. Zero or less runs them
// one at a time.
func WithWorkers(n int) Option {
	return func(v *Validator) { v.workers = n }
}

// WithKinds restricts the validator to the rules for kinds. Invalid kinds
// are ignored.
func WithKinds(kinds ...allen.Kind) Option {
	return func(v *Validator) {
		v.rules = v.rules[:0]
		for _, k := range kinds {
			if r, ok := RuleFor(k); ok {
				v.rules = append(v.rules, r)
			}
		}
	}
}

// WithMetrics records pass metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(v *Validator) { v.metrics = m }
}

// New creates a validator running every rule with am.DefaultValidatorWorkers.
func New(log *zap.SugaredLogger, opts ...Option) *Validator {
	v := &Validator{
		rules:   Rules(),
		workers: am.DefaultValidatorWorkers,
		logger:  logger.OrNop(log).Named("validator"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewFromConfig creates a validator from the [validator] section of cfg.
func NewFromConfig(cfg *am.Config, log *zap.SugaredLogger, metrics *Metrics) (*Validator, error) {
	opts := []Option{WithWorkers(cfg.Validator.Workers), WithMetrics(metrics)}
	if len(cfg.Validator.Rules) > 0 {
		kinds := make([]allen.Kind, 0, len(cfg.Validator.Rules))
		for _, name := range cfg.Validator.Rules {
			k, ok := allen.Parse(name)
			if !ok {
				return nil, errors.NewInvalidRequestError("unknown relation %q in validator.rules", name)
			}
			kinds = append(kinds, k)
		}
		opts = append(opts, WithKinds(kinds...))
	}
	return New(log, opts...), nil
}

// Rules returns the rules the validator runs, in order.
func (v *Validator) Rules() []Rule {
	return append([]Rule(nil), v.rules...)
}

// Report is the outcome of one validation pass.
type Report struct {
	RunID     string        `json:"run_id"`
	Rules     []string      `json:"rules"`
	Instants  int           `json:"instants"`
	Intervals int           `json:"intervals"`
	Issues    []Issue       `json:"issues"`
	Duration  time.Duration `json:"duration_ns"`
}

// HasIssues reports whether the pass found any clash.
func (r *Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// Validate runs the single rule for kind. It is the one-rule form of Run
// and shares its contract: the only errors are caller errors.
func (v *Validator) Validate(ctx context.Context, model kb.Model, kind allen.Kind) ([]Issue, error) {
	rule, ok := RuleFor(kind)
	if !ok {
		return nil, errors.NewInvalidRequestError("unknown relation kind %d", kind)
	}
	if model == nil {
		return nil, errors.NewInvalidRequestError("model is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.check(rule, model, NewCache(model)), nil
}

// Run evaluates every configured rule against model.
func (v *Validator) Run(ctx context.Context, model kb.Model) (*Report, error) {
	if model == nil {
		return nil, errors.NewInvalidRequestError("model is required")
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx = logger.WithRunID(logger.WithComponent(ctx, "validator"), runID)
	log := logger.FromContext(ctx, v.logger)

	cache := NewCache(model)
	results := make([][]Issue, len(v.rules))

	g, gctx := errgroup.WithContext(ctx)
	if v.workers > 0 {
		g.SetLimit(v.workers)
	} else {
		g.SetLimit(1)
	}
	for i, rule := range v.rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = v.check(rule, model, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "validation cancelled")
	}

	report := &Report{
		RunID:     runID,
		Rules:     make([]string, len(v.rules)),
		Instants:  len(cache.Instants),
		Intervals: len(cache.Intervals),
		Duration:  time.Since(start),
	}
	for i, rule := range v.rules {
		report.Rules[i] = rule.Name()
		report.Issues = append(report.Issues, results[i]...)
	}

	if v.metrics != nil {
		v.metrics.Runs.Inc()
		v.metrics.Entities.WithLabelValues("instant").Set(float64(report.Instants))
		v.metrics.Entities.WithLabelValues("interval").Set(float64(report.Intervals))
	}

	log.Infow("Validation complete",
		logger.FieldRuleCount, len(v.rules),
		logger.FieldIssueCount, len(report.Issues),
		"instants", report.Instants,
		"intervals", report.Intervals,
		logger.FieldDurationMS, report.Duration.Milliseconds(),
	)
	return report, nil
}

func (v *Validator) check(rule Rule, model kb.Model, cache *Cache) []Issue {
	start := time.Now()
	issues := rule.Check(model, cache)
	elapsed := time.Since(start)

	if v.metrics != nil {
		v.metrics.RuleDuration.WithLabelValues(rule.Name()).Observe(elapsed.Seconds())
		v.metrics.Issues.WithLabelValues(rule.Name()).Add(float64(len(issues)))
	}
	v.logger.Debugw("Rule evaluated",
		logger.FieldRule, rule.Name(),
		logger.FieldIssueCount, len(issues),
		logger.FieldDurationMS, elapsed.Milliseconds(),
	)
	return issues
}
