package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/chronos/errors"
)

var (
	// Global config instance (loaded once)
	globalConfig  *Config
	viperInstance *viper.Viper
	configMu      sync.Mutex
)

// Load loads configuration from system, user and project files plus the
// environment. The result is cached until Reset.
func Load() (*Config, error) {
	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	viperInstance = v
	return cfg, nil
}

// GetViper returns the viper instance behind the cached config, loading it if needed
func GetViper() *viper.Viper {
	configMu.Lock()
	v := viperInstance
	configMu.Unlock()

	if v == nil {
		Load()
		configMu.Lock()
		v = viperInstance
		configMu.Unlock()
	}
	return v
}

// LoadWithViper unmarshals and validates the configuration held by v
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file, on top of the
// defaults and CHRONOS_* environment variables
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	return LoadWithViper(v)
}

// Reset clears the cached config so the next Load re-reads every source
func Reset() {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = nil
	viperInstance = nil
}

// ProjectConfigPath returns the chronos.toml found walking up from the
// working directory, or "" when there is none
func ProjectConfigPath() string {
	return findProjectConfig()
}

// newViper creates a viper instance with defaults and environment bindings
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CHRONOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	BindEnvVars(v)
	SetDefaults(v)
	return v
}

// initViper creates a viper instance with every config file merged in
func initViper() *viper.Viper {
	v := newViper()
	mergeConfigFiles(v)
	return v
}

// findProjectConfig searches upward from the current directory for chronos.toml
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// configSearchPaths lists config files from lowest to highest precedence
// SearchPaths lists the config files Load merges, lowest precedence first.
// Paths that do not exist are included.
func SearchPaths() []string {
	return configSearchPaths()
}

func configSearchPaths() []string {
	paths := []string{filepath.Join("/etc/chronos", ConfigFileName)}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".chronos", ConfigFileName))
	}

	if project := findProjectConfig(); project != "" {
		paths = append(paths, project)
	}
	return paths
}

// mergeConfigFiles merges each existing config file into v. Later files
// override earlier ones; environment variables still override all of them.
func mergeConfigFiles(v *viper.Viper) {
	for _, path := range configSearchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}

		v.MergeConfigMap(fileViper.AllSettings())
	}
}

// Get returns a value from the loaded configuration by dotted key
func Get(key string) interface{} {
	return GetViper().Get(key)
}
