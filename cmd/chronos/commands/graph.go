package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/chronos/display"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/graph"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/resolve"
	"github.com/teranos/chronos/trs"
	"github.com/teranos/chronos/validator"
)

// GraphCmd represents the graph command
var GraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the relation graph as JSON",
	Long: `Build the node/link view of the temporal relations in a fact graph.

Every typed instant and interval becomes a node and every asserted relation a
link. Links involved in a clash are flagged. With --coordinates each node also
carries its resolved coordinates on the target reference system.

Examples:
  chronos graph -f facts.toml > graph.json
  chronos graph -f facts.toml --coordinates --out graph.json`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

var (
	graphFacts       string
	graphOut         string
	graphTRS         string
	graphCoordinates bool
)

func init() {
	addFactsFlag(GraphCmd, &graphFacts)
	GraphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "Write the graph to this file instead of stdout")
	GraphCmd.Flags().StringVar(&graphTRS, "trs", "", "Reference system for --coordinates")
	GraphCmd.Flags().BoolVar(&graphCoordinates, "coordinates", false, "Annotate nodes with resolved coordinates")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	facts, err := loadFacts(ctx, cfg, graphFacts)
	if err != nil {
		return err
	}

	v, err := validator.NewFromConfig(cfg, logger.Logger, nil)
	if err != nil {
		return err
	}
	report, err := v.Run(ctx, facts.graph)
	if err != nil {
		return err
	}

	var resolver *resolve.Resolver
	target := graphTRS
	if graphCoordinates {
		registry, err := trs.RegistryFromConfig(cfg)
		if err != nil {
			return err
		}
		normalizer := trs.NewNormalizer(registry, cfg.Resolver.DefaultReferenceSystem, logger.Logger)
		if target == "" {
			target = normalizer.DefaultTarget()
		}
		resolver = resolve.NewResolver(facts.graph, normalizer, logger.Logger)
	}

	g, err := graph.NewBuilder(facts.graph, resolver, target, logger.Logger).Build(report.Issues)
	if err != nil {
		return err
	}

	if graphOut == "" {
		return display.WriteJSON(cmd.OutOrStdout(), g)
	}
	f, err := os.Create(graphOut)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", graphOut)
	}
	defer f.Close()
	if err := display.WriteJSON(f, g); err != nil {
		return err
	}
	logger.Infow("Graph written",
		logger.FieldPath, graphOut,
		"nodes", g.Meta.Stats.TotalNodes,
		"links", g.Meta.Stats.TotalEdges,
	)
	return nil
}
