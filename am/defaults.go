package am

import (
	"github.com/spf13/viper"

	"github.com/teranos/chronos/vocab"
)

// Default values
const (
	DefaultDatabasePath     = "chronos.db"
	DefaultValidatorWorkers = 4
	DefaultReferenceSystem  = vocab.Gregorian
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("validator.workers", DefaultValidatorWorkers)
	v.SetDefault("validator.rules", []string{}) // all relation kinds

	v.SetDefault("resolver.default_reference_system", DefaultReferenceSystem)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Defaults returns the configuration built from defaults alone, ignoring
// files and environment.
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Built-in defaults always validate
		panic(err)
	}
	return cfg
}

// BindEnvVars binds the settings most often overridden per invocation
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "CHRONOS_DATABASE_PATH")
	v.BindEnv("validator.workers", "CHRONOS_VALIDATOR_WORKERS")
	v.BindEnv("resolver.default_reference_system", "CHRONOS_DEFAULT_TRS")
}
