package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/errors"
)

// ConfigPath is the --config flag. Empty means the default search path.
var ConfigPath string

// LoadConfig loads the configuration named by --config, or the merged
// defaults, project file and environment.
func LoadConfig() (*am.Config, error) {
	if ConfigPath != "" {
		cfg, err := am.LoadFromFile(ConfigPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load config %s", ConfigPath)
		}
		return cfg, nil
	}
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// watchedConfigPath is the file a watcher should follow for config changes.
func watchedConfigPath() string {
	if ConfigPath != "" {
		return ConfigPath
	}
	return am.ProjectConfigPath()
}

// commandContext returns the command's context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
