package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Palette.Path != "data/colors.csv" {
		t.Errorf("expected palette path data/colors.csv, got %s", cfg.Palette.Path)
	}
	if cfg.Palette.Builtin {
		t.Error("expected builtin palette to be off by default")
	}
	if cfg.Image.MaxWidth != 600 {
		t.Errorf("expected max width 600, got %d", cfg.Image.MaxWidth)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
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
	configPath := filepath.Join(tmpDir, "hueprobe.yaml")

	yamlContent := `
palette:
  path: "/srv/colors/web.csv"
  builtin: true

image:
  max_width: 1024

logging:
  level: "debug"
  log_file: "hueprobe.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Palette.Path != "/srv/colors/web.csv" {
		t.Errorf("expected palette path /srv/colors/web.csv, got %s", cfg.Palette.Path)
	}
	if !cfg.Palette.Builtin {
		t.Error("expected builtin to be true")
	}
	if cfg.Image.MaxWidth != 1024 {
		t.Errorf("expected max width 1024, got %d", cfg.Image.MaxWidth)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "hueprobe.log" {
		t.Errorf("expected log file 'hueprobe.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hueprobe.yaml")
	if err := os.WriteFile(configPath, []byte("image:\n  max_width: 320\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Image.MaxWidth != 320 {
		t.Errorf("expected max width 320, got %d", cfg.Image.MaxWidth)
	}
	if cfg.Palette.Path != "data/colors.csv" {
		t.Errorf("expected default palette path to survive, got %s", cfg.Palette.Path)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
image:
  max_width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/hueprobe.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"resize disabled", func(c *Config) { c.Image.MaxWidth = 0 }, false},
		{"negative width", func(c *Config) { c.Image.MaxWidth = -5 }, true},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"no palette", func(c *Config) { c.Palette.Path = "" }, true},
		{"builtin without path", func(c *Config) {
			c.Palette.Path = ""
			c.Palette.Builtin = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
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
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "hueprobe.yaml")
	if err := os.WriteFile(configPath, []byte("image:\n  max_width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find hueprobe.yaml in current directory")
	}
}

// noFlags returns Flags as they are before any command-line argument is parsed.
func noFlags() *Flags {
	return RegisterFlags(flag.NewFlagSet("test", flag.ContinueOnError))
}

func TestRegisterFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)

	args := []string{"-debug", "-palette", "custom.csv", "-max-width", "0", "match", "1", "2", "3"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if !f.Debug || f.Palette != "custom.csv" || f.MaxWidth != 0 {
		t.Errorf("unexpected flags %+v", *f)
	}
	if fs.NArg() != 4 || fs.Arg(0) != "match" {
		t.Errorf("expected command left in args, got %v", fs.Args())
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Flags)
		verify func(*Config)
	}{
		{
			name:  "debug flag",
			setup: func(f *Flags) { f.Debug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "palette flag",
			setup: func(f *Flags) { f.Palette = "custom.csv" },
			verify: func(cfg *Config) {
				if cfg.Palette.Path != "custom.csv" {
					t.Errorf("expected palette custom.csv, got %s", cfg.Palette.Path)
				}
			},
		},
		{
			name:  "builtin flag",
			setup: func(f *Flags) { f.Builtin = true },
			verify: func(cfg *Config) {
				if !cfg.Palette.Builtin {
					t.Error("expected builtin palette with builtin flag")
				}
			},
		},
		{
			name:  "max width flag",
			setup: func(f *Flags) { f.MaxWidth = 0 },
			verify: func(cfg *Config) {
				if cfg.Image.MaxWidth != 0 {
					t.Errorf("expected max width 0, got %d", cfg.Image.MaxWidth)
				}
			},
		},
		{
			name:  "max width unset",
			setup: func(f *Flags) {},
			verify: func(cfg *Config) {
				if cfg.Image.MaxWidth != 600 {
					t.Errorf("expected default max width 600, got %d", cfg.Image.MaxWidth)
				}
			},
		},
		{
			name:  "log file flag",
			setup: func(f *Flags) { f.LogFile = "/tmp/hueprobe.log" },
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/hueprobe.log" {
					t.Errorf("expected log file /tmp/hueprobe.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := noFlags()
			tt.setup(f)

			cfg := Default()
			f.apply(cfg)

			tt.verify(cfg)
		})
	}
}

func TestApplyNilFlags(t *testing.T) {
	cfg := Default()
	var f *Flags
	f.apply(cfg)

	if *cfg != *Default() {
		t.Errorf("nil flags should leave defaults, got %+v", *cfg)
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hueprobe.yaml")

	yamlContent := `
palette:
  path: "from-file.csv"
image:
  max_width: 400
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	f := noFlags()
	f.Config = configPath
	f.Palette = "from-flag.csv"

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Palette should come from the flag, not the file
	if cfg.Palette.Path != "from-flag.csv" {
		t.Errorf("expected palette from flag, got %s", cfg.Palette.Path)
	}

	// Width comes from the file since no flag overrides it
	if cfg.Image.MaxWidth != 400 {
		t.Errorf("expected max width 400 from file, got %d", cfg.Image.MaxWidth)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hueprobe.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	f := noFlags()
	f.Config = configPath

	if _, err := Load(f); err == nil {
		t.Error("expected validation error, got nil")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hueprobe.yaml")

	cfg := Default()
	cfg.Palette.Builtin = true
	cfg.Image.MaxWidth = 900
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v after reload, got %+v", *cfg, *loaded)
	}
}
