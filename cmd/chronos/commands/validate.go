package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/display"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/validator"
)

// ValidateCmd represents the validate command
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check temporal relations for clashes",
	Long: `Run the relation rules over a fact graph and report every pair of
temporal entities related by two incompatible relations.

The graph comes from --facts, or from the fact store when --facts is empty.
Rules default to validator.rules from the configuration (all 19 when unset).

Examples:
  chronos validate -f facts.toml
  chronos validate -f facts.toml --rule intervalBefore --rule intervalMeets
  chronos validate -f facts.yml --watch
  chronos validate --strict --json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var (
	validateFacts  string
	validateRules  []string
	validateWatch  bool
	validateStrict bool
)

func init() {
	addFactsFlag(ValidateCmd, &validateFacts)
	ValidateCmd.Flags().StringSliceVar(&validateRules, "rule", nil, "Run only these relations (repeatable)")
	ValidateCmd.Flags().BoolVar(&validateWatch, "watch", false, "Re-validate whenever the facts or config change")
	ValidateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when clashes are found")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	metrics := validator.NewMetrics(nil)
	run := func(cfg *am.Config) error {
		report, err := validateOnce(commandContext(cmd), cfg, metrics)
		if err != nil {
			return err
		}
		if err := writeReport(cmd, cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if validateStrict && !validateWatch && report.HasIssues() {
			return fmt.Errorf("%d temporal relation clashes", len(report.Issues))
		}
		return nil
	}

	if err := run(cfg); err != nil {
		return err
	}
	if !validateWatch {
		return nil
	}
	return watchAndRerun(validateFacts, func(r am.Reload) error {
		return run(r.Config)
	})
}

// validateOnce loads the facts and runs one validation pass.
func validateOnce(ctx context.Context, cfg *am.Config, metrics *validator.Metrics) (*validator.Report, error) {
	if len(validateRules) > 0 {
		override := *cfg
		override.Validator.Rules = validateRules
		cfg = &override
	}

	v, err := validator.NewFromConfig(cfg, logger.Logger, metrics)
	if err != nil {
		return nil, errors.WithHint(err, "relation names look like intervalBefore or time:intervalBefore")
	}

	facts, err := loadFacts(ctx, cfg, validateFacts)
	if err != nil {
		return nil, err
	}
	return v.Run(ctx, facts.graph)
}

func writeReport(cmd *cobra.Command, w io.Writer, report *validator.Report) error {
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(w, report)
	}
	return display.PrintReport(w, report)
}
