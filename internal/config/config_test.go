package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parallel.Workers != 0 {
		t.Errorf("expected 0 workers, got %d", cfg.Parallel.Workers)
	}
	if cfg.Parallel.ForceSingleThread {
		t.Error("expected force_single_thread to be false by default")
	}

	if cfg.Generator.Kind != KindGrid {
		t.Errorf("expected grid generator, got %s", cfg.Generator.Kind)
	}
	if cfg.Generator.Width != 16 || cfg.Generator.Height != 16 {
		t.Errorf("expected 16x16 grid, got %dx%d", cfg.Generator.Width, cfg.Generator.Height)
	}
	if cfg.Generator.Size != 1 {
		t.Errorf("expected size 1, got %f", cfg.Generator.Size)
	}

	if cfg.Edits.Count != 200 {
		t.Errorf("expected 200 edits, got %d", cfg.Edits.Count)
	}
	if !cfg.Edits.SplitBowties {
		t.Error("expected split_bowties to be true by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
parallel:
  workers: 3
  force_single_thread: true

generator:
  kind: box
  size: 2.5

edits:
  count: 50
  seed: 42
  split_bowties: false

logging:
  level: "debug"
  log_file: "meshtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parallel.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Parallel.Workers)
	}
	if !cfg.Parallel.ForceSingleThread {
		t.Error("expected force_single_thread to be true")
	}
	if cfg.Generator.Kind != KindBox {
		t.Errorf("expected box generator, got %s", cfg.Generator.Kind)
	}
	if cfg.Generator.Size != 2.5 {
		t.Errorf("expected size 2.5, got %f", cfg.Generator.Size)
	}
	// untouched keys keep their defaults
	if cfg.Generator.Width != 16 {
		t.Errorf("expected default width 16, got %d", cfg.Generator.Width)
	}
	if cfg.Edits.Count != 50 || cfg.Edits.Seed != 42 {
		t.Errorf("expected 50 edits with seed 42, got %d with seed %d", cfg.Edits.Count, cfg.Edits.Seed)
	}
	if cfg.Edits.SplitBowties {
		t.Error("expected split_bowties to be false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshtool.log" {
		t.Errorf("expected log file 'meshtool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
generator:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
	if _, err := Load(configPath); err == nil {
		t.Error("expected Load to fail on invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("meshtool.yaml", []byte("generator:\n  width: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshtool.yaml in current directory")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Generator.Width != 8 {
		t.Errorf("expected width 8 from discovered file, got %d", cfg.Generator.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errors int
	}{
		{"default", func(*Config) {}, 0},
		{"box ignores grid size", func(c *Config) { c.Generator.Kind = KindBox; c.Generator.Width = 0 }, 0},
		{"negative workers", func(c *Config) { c.Parallel.Workers = -1 }, 1},
		{"unknown kind", func(c *Config) { c.Generator.Kind = "sphere" }, 1},
		{"empty grid", func(c *Config) { c.Generator.Height = 0 }, 1},
		{"everything wrong", func(c *Config) {
			c.Parallel.Workers = -2
			c.Generator.Width = 0
			c.Generator.Size = 0
			c.Edits.Count = -1
		}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			if got := len(multierr.Errors(err)); got != tt.errors {
				t.Fatalf("expected %d errors, got %d: %v", tt.errors, got, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestFlagsApply(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "info" || cfg.Parallel.Workers != 0 || cfg.Edits.Seed != 1 {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "workers and single thread",
			args: []string{"--workers", "6", "--single-thread"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Parallel.Workers != 6 {
					t.Errorf("expected 6 workers, got %d", cfg.Parallel.Workers)
				}
				if !cfg.Parallel.ForceSingleThread {
					t.Error("expected single thread to be forced")
				}
			},
		},
		{
			name: "generator",
			args: []string{"--kind", "box", "--size", "3", "--width", "4"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Generator.Kind != KindBox || cfg.Generator.Size != 3 || cfg.Generator.Width != 4 {
					t.Errorf("expected box of size 3 and width 4, got %+v", cfg.Generator)
				}
				if cfg.Generator.Height != 16 {
					t.Errorf("expected default height 16, got %d", cfg.Generator.Height)
				}
			},
		},
		{
			name: "seed",
			args: []string{"--seed=99"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Edits.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Edits.Seed)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flags
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f.Register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg := Default()
			f.Apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadWithFlagsPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
parallel:
  workers: 2
edits:
  count: 10
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadWithFlags(&Flags{ConfigPath: configPath, Workers: 8})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// workers from the flag, count from the file
	if cfg.Parallel.Workers != 8 {
		t.Errorf("expected 8 workers from flag, got %d", cfg.Parallel.Workers)
	}
	if cfg.Edits.Count != 10 {
		t.Errorf("expected 10 edits from file, got %d", cfg.Edits.Count)
	}
}

func TestLoadWithFlagsRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("generator:\n  kind: torus\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadWithFlags(&Flags{ConfigPath: configPath})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Generator.Kind = KindBox
	cfg.Edits.Seed = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Generator.Kind != KindBox || loaded.Edits.Seed != 7 {
		t.Errorf("saved values not restored: %+v", loaded)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := Default().Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ConfigDir(), "config.yaml")); err != nil {
		t.Errorf("expected saved config in %s: %v", ConfigDir(), err)
	}
}
