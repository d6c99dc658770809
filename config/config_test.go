package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Models.Dir != "models" {
		t.Errorf("Models.Dir = %q, want models", cfg.Models.Dir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, want info/console", cfg.Logging)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modelgate.yaml")
	content := `models:
  dir: ./definitions
logging:
  level: debug
  format: json
metrics:
  enabled: true
  listen: ":9090"
output:
  path: schema.json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Models.Dir != "./definitions" {
		t.Errorf("Models.Dir = %q", cfg.Models.Dir)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Listen != ":9090" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Output.Path != "schema.json" {
		t.Errorf("Output.Path = %q", cfg.Output.Path)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modelgate.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Models.Dir != "models" {
		t.Errorf("Models.Dir = %q, want the default", cfg.Models.Dir)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("Load() error = nil, want error")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("models: [broken"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() error = nil, want error")
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		path := filepath.Join(dir, "level.yaml")
		if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() error = nil, want error")
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		path := filepath.Join(dir, "format.yaml")
		if err := os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() error = nil, want error")
		}
	})
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Models.Dir != "models" {
		t.Errorf("Models.Dir = %q, want the default", cfg.Models.Dir)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvModelsDir, "/tmp/defs")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvMetricsListen, ":9100")

	path := filepath.Join(t.TempDir(), "modelgate.yaml")
	if err := os.WriteFile(path, []byte("models:\n  dir: ./from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Models.Dir != "/tmp/defs" {
		t.Errorf("Models.Dir = %q, env should win over file", cfg.Models.Dir)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Listen != ":9100" {
		t.Errorf("Metrics = %+v, listen env should enable metrics", cfg.Metrics)
	}
}

func TestValidate_EmptyModelsDir(t *testing.T) {
	cfg := Default()
	cfg.Models.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil, want error")
	}
}
