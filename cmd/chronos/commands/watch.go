package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/logger"
)

// watchAndRerun calls run once per settled change to the config file or the
// fact document until interrupted. An empty factsPath watches only the config.
func watchAndRerun(factsPath string, run am.ReloadCallback) error {
	var extra []string
	if factsPath != "" {
		extra = append(extra, factsPath)
	}
	configPath := watchedConfigPath()
	if configPath == "" && len(extra) == 0 {
		return errors.WithHint(
			errors.NewInvalidRequestError("nothing to watch"),
			"pass --facts or create a chronos.toml",
		)
	}

	watcher, err := am.NewConfigWatcher(configPath, extra...)
	if err != nil {
		return errors.Wrap(err, "failed to start watcher")
	}
	am.SetGlobalWatcher(watcher)
	defer watcher.Stop()

	watcher.OnReload(func(r am.Reload) error {
		if r.ConfigChanged {
			logger.SetVerbosity(r.Config.Log.Verbosity)
		}
		if err := run(r); err != nil {
			pterm.Error.Println(err.Error())
			return err
		}
		return nil
	})
	watcher.Start()

	logger.Infow("Watching for changes", logger.FieldPath, configPath, logger.FieldFile, factsPath)
	pterm.Info.Println("Watching for changes (Ctrl+C to stop)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	return nil
}
