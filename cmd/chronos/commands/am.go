package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage chronos configuration",
	Long: `am - Manage chronos configuration ("I am")

Configuration sources (in order of precedence):
1. --config file, when given (replaces 3-5)
2. Environment variables (CHRONOS_* prefix)
3. Project config (./chronos.toml, searching up directories)
4. User config (~/.chronos/chronos.toml)
5. System config (/etc/chronos/chronos.toml)
6. Default values

Examples:
  chronos am show                    # Show current configuration
  chronos am show --format json      # Show configuration as JSON
  chronos am get validator.workers   # Get a single value
  chronos am validate                # Validate current configuration
  chronos am where                   # List the files that are read
  chronos am init                    # Write a chronos.toml with defaults`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a configuration value using dot notation (e.g. database.path, validator.workers)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runAmWhere,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with default values",
	Long: `Write the default configuration to path (./chronos.toml by default).
An existing file is rotated to a .back1 backup when --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmInit,
}

var (
	configFormat string
	initForce    bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# chronos configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# chronos configuration\n%s", string(data))

	default:
		return errors.NewInvalidRequestError("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if ConfigPath != "" {
		return errors.WithHint(
			errors.NewInvalidRequestError("am get reads the merged configuration"),
			"use chronos am show --config <file>",
		)
	}

	v := am.GetViper()
	if !v.IsSet(key) {
		return errors.Wrapf(errors.ErrNotFound, "configuration key %q", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	// Loading validates
	if _, err := LoadConfig(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprint("Configuration is valid"))
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  [DEFAULT]  Built-in defaults")

	if ConfigPath != "" {
		fmt.Fprintf(out, "  [FILE]     %s %s\n", ConfigPath, presence(ConfigPath))
	} else {
		for _, path := range am.SearchPaths() {
			fmt.Fprintf(out, "  [FILE]     %s %s\n", path, presence(path))
		}
		if am.ProjectConfigPath() == "" {
			fmt.Fprintf(out, "  [PROJECT]  no %s found above the working directory\n", am.ConfigFileName)
		}
	}
	fmt.Fprintln(out, "  [ENV]      CHRONOS_* environment variables")
	return nil
}

func presence(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "(missing)"
	}
	return "(found)"
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.ConfigFileName
	if len(args) == 1 {
		path = args[0]
	}
	if filepath.Ext(path) != ".toml" {
		return errors.NewInvalidRequestError("configuration files are TOML: %s", path)
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.WithHint(
			errors.NewInvalidRequestError("%s already exists", path),
			"pass --force to overwrite it (the old file is kept as a backup)",
		)
	}

	if err := am.Save(am.Defaults(), path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Wrote %s", path))
	return nil
}
