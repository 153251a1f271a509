package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/chronos/allen"
	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/display"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/resolve"
	"github.com/teranos/chronos/temporal"
	"github.com/teranos/chronos/trs"
	"github.com/teranos/chronos/validator"
)

// ResolveCmd represents the resolve command
var ResolveCmd = &cobra.Command{
	Use:   "resolve <id>...",
	Short: "Resolve instants and interval endpoints to coordinates",
	Long: `Resolve each entity onto a reference system.

Instants resolve to a coordinate. Intervals resolve to a beginning, an end and
an extent; endpoints missing from the facts are inferred through shared and
meeting relations. Compact names use the prefixes of the fact document.

The target defaults to resolver.default_reference_system (Gregorian).

Examples:
  chronos resolve -f facts.toml ex:A ex:B
  chronos resolve -f facts.toml ex:A --trs https://en.wikipedia.org/wiki/Unix_time
  chronos resolve -f facts.toml ex:A --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

var (
	resolveFacts string
	resolveTRS   string
	resolveWatch bool
)

func init() {
	addFactsFlag(ResolveCmd, &resolveFacts)
	ResolveCmd.Flags().StringVar(&resolveTRS, "trs", "", "Target reference system IRI")
	ResolveCmd.Flags().BoolVar(&resolveWatch, "watch", false, "Resolve again whenever the facts or config change")
}

// resolution is the outcome for one entity.
type resolution struct {
	ID         string               `json:"id"`
	Kind       string               `json:"kind"`
	TRS        string               `json:"trs"`
	Coordinate *temporal.Coordinate `json:"coordinate,omitempty"`
	Beginning  *temporal.Coordinate `json:"beginning,omitempty"`
	End        *temporal.Coordinate `json:"end,omitempty"`
	Extent     *temporal.Extent     `json:"extent,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	registry, err := trs.RegistryFromConfig(cfg)
	if err != nil {
		return err
	}

	run := func(cfg *am.Config) error {
		results, err := resolveOnce(commandContext(cmd), cfg, registry, args)
		if err != nil {
			return err
		}
		return writeResolutions(cmd, cmd.OutOrStdout(), results)
	}
	if err := run(cfg); err != nil {
		return err
	}
	if !resolveWatch {
		return nil
	}

	return watchAndRerun(resolveFacts, func(r am.Reload) error {
		if r.ConfigChanged {
			next, err := trs.RegistryFromConfig(r.Config)
			if err != nil {
				return err
			}
			registry.Replace(next)
		}
		return run(r.Config)
	})
}

func resolveOnce(ctx context.Context, cfg *am.Config, registry *trs.Registry, ids []string) ([]resolution, error) {
	target := resolveTRS
	if target == "" {
		target = cfg.Resolver.DefaultReferenceSystem
	}

	facts, err := loadFacts(ctx, cfg, resolveFacts)
	if err != nil {
		return nil, err
	}

	normalizer := trs.NewNormalizer(registry, cfg.Resolver.DefaultReferenceSystem, logger.Logger)
	resolver := resolve.NewResolver(facts.graph, normalizer, logger.Logger)
	if target == "" {
		target = normalizer.DefaultTarget()
	}

	cache := validator.NewCache(facts.graph)
	results := make([]resolution, 0, len(ids))
	for _, id := range facts.expand(ids) {
		r, err := resolveEntity(resolver, cache, id, target)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", id)
		}
		results = append(results, r)
	}
	return results, nil
}

// resolveEntity resolves id as an instant when it is typed as one, and as an
// interval otherwise.
func resolveEntity(resolver *resolve.Resolver, cache *validator.Cache, id, target string) (resolution, error) {
	r := resolution{ID: id, Kind: entityKind(cache, id), TRS: target}

	var err error
	if r.Kind == "instant" {
		r.Coordinate, err = resolver.ResolveInstant(id, target)
		return r, err
	}
	if r.Beginning, err = resolver.ResolveBeginning(id, target); err != nil {
		return r, err
	}
	if r.End, err = resolver.ResolveEnd(id, target); err != nil {
		return r, err
	}
	r.Extent, err = resolver.ResolveExtent(id, target)
	return r, err
}

func entityKind(cache *validator.Cache, id string) string {
	switch {
	case cache.Contains(allen.InstantDomain, id):
		return "instant"
	case cache.Contains(allen.IntervalDomain, id):
		return "interval"
	default:
		return "untyped"
	}
}

func writeResolutions(cmd *cobra.Command, w io.Writer, results []resolution) error {
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(w, results)
	}

	data := pterm.TableData{{"Entity", "Kind", "Coordinate", "Beginning", "End", "Extent"}}
	for _, r := range results {
		data = append(data, []string{
			r.ID,
			r.Kind,
			coordinateString(r.Coordinate),
			coordinateString(r.Beginning),
			coordinateString(r.End),
			extentString(r.Extent),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	if len(results) > 0 {
		fmt.Fprintf(w, "Reference system: %s\n", results[0].TRS)
	}
	return nil
}

func coordinateString(c *temporal.Coordinate) string {
	if c == nil {
		return "-"
	}
	return c.String()
}

func extentString(e *temporal.Extent) string {
	if e == nil {
		return "-"
	}
	return e.String()
}
