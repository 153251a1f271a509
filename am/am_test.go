package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/chronos/vocab"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user/system config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Database.Path != "chronos.db" {
		t.Errorf("expected default database path 'chronos.db', got %q", cfg.Database.Path)
	}
	if cfg.Validator.Workers != DefaultValidatorWorkers {
		t.Errorf("expected default workers %d, got %d", DefaultValidatorWorkers, cfg.Validator.Workers)
	}
	if len(cfg.Validator.Rules) != 0 {
		t.Errorf("expected all rules by default, got %v", cfg.Validator.Rules)
	}
	if cfg.Resolver.DefaultReferenceSystem != vocab.Gregorian {
		t.Errorf("expected Gregorian default reference system, got %q", cfg.Resolver.DefaultReferenceSystem)
	}
	if d := Defaults(); d.GetDatabasePath() != cfg.Database.Path || d.Validator.Workers != cfg.Validator.Workers {
		t.Errorf("Defaults() = %+v, want %+v", d, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"zero workers is valid (sequential)", Config{Validator: ValidatorConfig{Workers: 0}}, false},
		{"negative workers is invalid", Config{Validator: ValidatorConfig{Workers: -1}}, true},
		{"known rules", Config{Validator: ValidatorConfig{Rules: []string{"intervalBefore", "time:before", vocab.Namespace + "hasInside"}}}, false},
		{"unknown rule", Config{Validator: ValidatorConfig{Rules: []string{"intervalSometime"}}}, true},
		{"negative verbosity", Config{Log: LogConfig{Verbosity: -2}}, true},
		{
			name: "position system",
			config: Config{ReferenceSystems: []ReferenceSystemConfig{
				{Name: "BP", Kind: KindPosition, Origin: "1950-01-01T00:00:00Z", Unit: "year", Reversed: true},
			}},
		},
		{
			name: "calendar system",
			config: Config{ReferenceSystems: []ReferenceSystemConfig{
				{Name: "Mars", Kind: KindCalendar, Epoch: "2000-01-01T00:00:00Z", MonthDays: []int{30, 30}},
			}},
		},
		{"missing name", Config{ReferenceSystems: []ReferenceSystemConfig{{Kind: KindPosition}}}, true},
		{"unknown kind", Config{ReferenceSystems: []ReferenceSystemConfig{{Name: "X", Kind: "lunar"}}}, true},
		{"negative scale", Config{ReferenceSystems: []ReferenceSystemConfig{{Name: "X", Kind: KindPosition, Scale: -1}}}, true},
		{"bad origin", Config{ReferenceSystems: []ReferenceSystemConfig{{Name: "X", Kind: KindPosition, Origin: "yesterday"}}}, true},
		{"zero-day month", Config{ReferenceSystems: []ReferenceSystemConfig{{Name: "X", Kind: KindCalendar, MonthDays: []int{30, 0}}}}, true},
		{
			name: "duplicate names",
			config: Config{ReferenceSystems: []ReferenceSystemConfig{
				{Name: "X", Kind: KindPosition},
				{Name: "X", Kind: KindCalendar},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[validator]
workers = 2
rules = ["intervalBefore", "intervalMeets"]

[database]
path = "facts.db"

[[reference_systems]]
name = "Ma"
kind = "position"
origin = "1950-01-01T00:00:00Z"
unit = "year"
scale = 1000000.0
reversed = true

[reference_systems.nominals]
Cretaceous = 145.0
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Validator.Workers)
	assert.Equal(t, []string{"intervalBefore", "intervalMeets"}, cfg.Validator.Rules)
	assert.Equal(t, "facts.db", cfg.GetDatabasePath())
	assert.Equal(t, vocab.Gregorian, cfg.Resolver.DefaultReferenceSystem, "defaults fill unset keys")

	require.Len(t, cfg.ReferenceSystems, 1)
	rs := cfg.ReferenceSystems[0]
	assert.Equal(t, "Ma", rs.Name)
	assert.Equal(t, KindPosition, rs.Kind)
	assert.Equal(t, 1e6, rs.Scale)
	assert.True(t, rs.Reversed)
	assert.Len(t, rs.Nominals, 1)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[validator]\nworkers = 2\n")
	t.Setenv("CHRONOS_VALIDATOR_WORKERS", "9")
	t.Setenv("CHRONOS_DATABASE_PATH", "/tmp/override.db")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Validator.Workers)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	path := writeConfig(t, dir, "[validator]\nrules = [\"intervalSometime\"]\n")
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "intervalSometime")
}

func TestLoad_ProjectConfig(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	writeConfig(t, root, "[resolver]\ndefault_reference_system = \"Unix\"\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	Reset()
	t.Cleanup(Reset)

	assert.Equal(t, filepath.Join(root, ConfigFileName), ProjectConfigPath())
	paths := SearchPaths()
	assert.Equal(t, filepath.Join(root, ConfigFileName), paths[len(paths)-1])

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Unix", cfg.Resolver.DefaultReferenceSystem)
	assert.Equal(t, DefaultValidatorWorkers, cfg.Validator.Workers)
	assert.Equal(t, "Unix", Get("resolver.default_reference_system"))

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "config is cached until Reset")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ConfigFileName)

	cfg := &Config{
		Validator: ValidatorConfig{Workers: 3, Rules: []string{"intervalOverlaps"}},
		Resolver:  ResolverConfig{DefaultReferenceSystem: vocab.Gregorian},
		Database:  DatabaseConfig{Path: "saved.db"},
		ReferenceSystems: []ReferenceSystemConfig{
			{Name: "Mars", Kind: KindCalendar, HoursInDay: 25, MonthDays: []int{55, 56}},
		},
	}
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Validator, loaded.Validator)
	assert.Equal(t, "saved.db", loaded.Database.Path)
	require.Len(t, loaded.ReferenceSystems, 1)
	assert.Equal(t, 25, loaded.ReferenceSystems[0].HoursInDay)
	assert.Equal(t, []int{55, 56}, loaded.ReferenceSystems[0].MonthDays)

	t.Run("rotates three backups", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			cfg.Validator.Workers = 10 + i
			require.NoError(t, Save(cfg, path))
		}
		for n := 1; n <= 3; n++ {
			assert.FileExists(t, backupPath(path, n))
		}
		assert.NoFileExists(t, path+".back4")

		loaded, err := LoadFromFile(backupPath(path, 1))
		require.NoError(t, err)
		assert.Equal(t, 12, loaded.Validator.Workers, ".back1 holds the previous save")
	})

	t.Run("refuses invalid config", func(t *testing.T) {
		bad := &Config{Validator: ValidatorConfig{Workers: -1}}
		assert.Error(t, Save(bad, path))
	})
}

func TestConfigWatcher(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[validator]\nworkers = 1\n")
	facts := filepath.Join(dir, "facts.toml")
	require.NoError(t, os.WriteFile(facts, []byte("facts = []\n"), 0644))

	cw, err := NewConfigWatcher(path, facts)
	require.NoError(t, err)
	cw.SetDebounce(20 * time.Millisecond)

	reloaded := make(chan Reload, 4)
	cw.OnReload(func(r Reload) error {
		reloaded <- r
		return nil
	})
	cw.Start()
	t.Cleanup(func() { cw.Stop() })

	require.NoError(t, os.WriteFile(path, []byte("[validator]\nworkers = 7\n"), 0644))
	select {
	case r := <-reloaded:
		assert.Equal(t, 7, r.Config.Validator.Workers)
		assert.True(t, r.ConfigChanged)
		assert.Equal(t, []string{path}, r.Changed)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not picked up")
	}

	// Siblings in the watched directory are not watched files
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	require.NoError(t, os.WriteFile(facts, []byte("facts = []\n\n"), 0644))
	select {
	case r := <-reloaded:
		assert.Equal(t, 7, r.Config.Validator.Workers, "watched data files reload the current config")
		assert.False(t, r.ConfigChanged)
		assert.Equal(t, []string{facts}, r.Changed)
	case <-time.After(5 * time.Second):
		t.Fatal("data file change was not picked up")
	}

	require.NoError(t, cw.Stop())
	require.NoError(t, cw.Stop(), "Stop is idempotent")
}

func TestConfigWatcher_IgnoresOwnSave(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[validator]\nworkers = 1\n")

	cw, err := NewConfigWatcher(path)
	require.NoError(t, err)
	cw.SetDebounce(20 * time.Millisecond)

	reloaded := make(chan Reload, 4)
	cw.OnReload(func(r Reload) error {
		reloaded <- r
		return nil
	})
	cw.Start()
	SetGlobalWatcher(cw)
	t.Cleanup(func() {
		SetGlobalWatcher(nil)
		cw.Stop()
	})

	cfg := Defaults()
	cfg.Validator.Workers = 2
	require.NoError(t, Save(cfg, path))

	select {
	case r := <-reloaded:
		t.Fatalf("own save triggered a reload: %v", r.Changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatcher_MissingFile(t *testing.T) {
	_, err := NewConfigWatcher(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
