package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultConfig()
	if cfg.SolveTimeout != want.SolveTimeout || cfg.Logging != want.Logging || cfg.Artifact != "" {
		t.Errorf("Load = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presage.yaml")
	src := strings.Join([]string{
		"artifact: /var/lib/presage/kb.yaml",
		"solve_timeout: 250ms",
		"logging:",
		"  level: debug",
		"  json: true",
	}, "\n")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Artifact != "/var/lib/presage/kb.yaml" {
		t.Errorf("Artifact = %q", cfg.Artifact)
	}
	if cfg.SolveTimeout.Std() != 250*time.Millisecond {
		t.Errorf("SolveTimeout = %s", cfg.SolveTimeout)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.JSON {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRESAGE_ARTIFACT", "/tmp/kb.yaml")
	t.Setenv("PRESAGE_SOLVE_TIMEOUT", "1s")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Artifact != "/tmp/kb.yaml" || cfg.SolveTimeout.Std() != time.Second {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		src  string
	}{
		{"bad level", "logging:\n  level: shouty"},
		{"negative timeout", "solve_timeout: -3s"},
		{"malformed yaml", "logging: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load accepted a bad config")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "presage.yaml")
	cfg := DefaultConfig()
	cfg.Artifact = "kb.yaml"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Artifact != cfg.Artifact || got.SolveTimeout != cfg.SolveTimeout || got.Logging != cfg.Logging {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
