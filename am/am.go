// Package am loads, validates, persists and watches the chronos configuration.
//
// Sources, lowest precedence first: built-in defaults, /etc/chronos/chronos.toml,
// ~/.chronos/chronos.toml, the nearest chronos.toml found walking up from the
// working directory, then CHRONOS_* environment variables.
package am

import "fmt"

// Config is the chronos configuration.
type Config struct {
	Validator        ValidatorConfig         `mapstructure:"validator" toml:"validator"`
	Resolver         ResolverConfig          `mapstructure:"resolver" toml:"resolver"`
	Database         DatabaseConfig          `mapstructure:"database" toml:"database"`
	Log              LogConfig               `mapstructure:"log" toml:"log"`
	ReferenceSystems []ReferenceSystemConfig `mapstructure:"reference_systems" toml:"reference_systems,omitempty"`
}

// ValidatorConfig configures validation passes
type ValidatorConfig struct {
	Workers int      `mapstructure:"workers" toml:"workers"` // Rules evaluated concurrently (0 = sequential)
	Rules   []string `mapstructure:"rules" toml:"rules"`     // Relation kinds to validate (empty = all)
}

// ResolverConfig configures coordinate resolution
type ResolverConfig struct {
	DefaultReferenceSystem string `mapstructure:"default_reference_system" toml:"default_reference_system"`
}

// DatabaseConfig configures the SQLite fact store
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // Same scale as -v flags
}

// ReferenceSystemConfig declares an additional temporal reference system.
// Position fields apply to kind "position", metric fields to kind "calendar".
type ReferenceSystemConfig struct {
	Name string `mapstructure:"name" toml:"name"`
	Kind string `mapstructure:"kind" toml:"kind"` // "calendar" or "position"

	Origin   string             `mapstructure:"origin" toml:"origin,omitempty"` // RFC 3339 instant of position 0
	Unit     string             `mapstructure:"unit" toml:"unit,omitempty"`     // e.g. "second", "year", time:unitDay
	Scale    float64            `mapstructure:"scale" toml:"scale,omitempty"`   // Units per position step (0 = 1)
	Reversed bool               `mapstructure:"reversed" toml:"reversed,omitempty"`
	Nominals map[string]float64 `mapstructure:"nominals" toml:"nominals,omitempty"`

	Epoch           string `mapstructure:"epoch" toml:"epoch,omitempty"` // RFC 3339 instant of year 1 day 1
	SecondsInMinute int    `mapstructure:"seconds_in_minute" toml:"seconds_in_minute,omitempty"`
	MinutesInHour   int    `mapstructure:"minutes_in_hour" toml:"minutes_in_hour,omitempty"`
	HoursInDay      int    `mapstructure:"hours_in_day" toml:"hours_in_day,omitempty"`
	MonthDays       []int  `mapstructure:"month_days" toml:"month_days,omitempty"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ConfigFileName is the name searched for in system, user and project directories.
const ConfigFileName = "chronos.toml"

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath
	}
	return c.Database.Path
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Validator: {Workers: %d, Rules: %d}, ReferenceSystems: %d}",
		c.Database.Path, c.Validator.Workers, len(c.Validator.Rules), len(c.ReferenceSystems))
}
