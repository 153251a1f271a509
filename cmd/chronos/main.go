package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/chronos/cmd/chronos/commands"
	"github.com/teranos/chronos/logger"
)

var rootCmd = &cobra.Command{
	Use:   "chronos",
	Short: "chronos - OWL-Time temporal relation validator",
	Long: `chronos - OWL-Time temporal relation validation and coordinate resolution.

chronos checks fact graphs for contradictory interval and instant relations,
resolves interval endpoints and durations onto a reference system, and keeps
fact documents in a local SQLite store.

Available commands:
  validate - Check temporal relations for clashes
  resolve  - Resolve instants and interval endpoints to coordinates
  graph    - Export the relation graph as JSON
  db       - Manage the fact store
  am       - Manage chronos configuration ("I am")
  version  - Show version information

Examples:
  chronos validate -f facts.toml        # Validate a fact document
  chronos validate --watch -f facts.yml # Re-validate on every change
  chronos resolve -f facts.toml ex:A    # Resolve interval ex:A
  chronos db import facts.toml          # Load a document into the store
  chronos am show                       # Show current configuration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")

		// Config problems are reported by the command itself
		cfg, cfgErr := commands.LoadConfig()
		if cfgErr == nil {
			jsonLogs = jsonLogs || cfg.Log.JSON
		}

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfgErr == nil {
			logger.SetVerbosity(cfg.Log.Verbosity)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write structured JSON logs to stderr")
	rootCmd.PersistentFlags().StringVar(&commands.ConfigPath, "config", "", "Read configuration from this TOML file")

	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.ResolveCmd)
	rootCmd.AddCommand(commands.GraphCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
