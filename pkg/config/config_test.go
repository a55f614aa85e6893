package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Scorer.Backend != "vader" {
		t.Fatalf("scorer backend = %q, want vader", cfg.Scorer.Backend)
	}
	if cfg.Report.TopZones != 5 || cfg.Report.MinGroupSize != 10 {
		t.Fatalf("report defaults = %+v", cfg.Report)
	}
	if cfg.Topics.TopTerms != 10 || cfg.Topics.ConcordanceWindow != 4 {
		t.Fatalf("topic defaults = %+v", cfg.Topics)
	}
	if cfg.Report.Unattributed == "" {
		t.Fatal("unattributed bucket name must have a default")
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("report:\n  output_dir: out\n  workers: 2\nscorer:\n  backend: openai\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Report.OutputDir != "out" || cfg.Report.Workers != 2 {
		t.Fatalf("report = %+v, want file values", cfg.Report)
	}
	if cfg.Scorer.Backend != "openai" {
		t.Fatalf("scorer backend = %q, want openai", cfg.Scorer.Backend)
	}
	// untouched keys keep their defaults
	if cfg.Report.TopZones != 5 {
		t.Fatalf("top_zones = %d, want default 5", cfg.Report.TopZones)
	}
}
