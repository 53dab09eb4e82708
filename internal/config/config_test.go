package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Synthesizer.MinEdgeWeight != 0.1 {
		t.Errorf("Expected default minEdgeWeight 0.1, got %f", cfg.Synthesizer.MinEdgeWeight)
	}
	if cfg.Propagation.ForwardWeight != 0.7 {
		t.Errorf("Expected default forwardWeight 0.7, got %f", cfg.Propagation.ForwardWeight)
	}
	if !cfg.Propagation.NormalizeOutput {
		t.Error("Expected normalizeOutput default true")
	}
	if cfg.Query.HotspotLimit != 20 {
		t.Errorf("Expected default hotspot limit 20, got %d", cfg.Query.HotspotLimit)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".ckg")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{
  "synthesizer": {"minEdgeWeight": 0.25},
  "query": {"minSimilarity": 0.8, "minClusterSize": 3},
  "propagation": {"alpha": 0.5}
}`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Synthesizer.MinEdgeWeight != 0.25 {
		t.Errorf("Expected overridden minEdgeWeight 0.25, got %f", cfg.Synthesizer.MinEdgeWeight)
	}
	if cfg.Query.MinClusterSize != 3 {
		t.Errorf("Expected overridden minClusterSize 3, got %d", cfg.Query.MinClusterSize)
	}
	if cfg.Propagation.Alpha != 0.5 {
		t.Errorf("Expected overridden alpha 0.5, got %f", cfg.Propagation.Alpha)
	}
	// Untouched values keep defaults.
	if cfg.Query.HotspotLimit != 20 {
		t.Errorf("Expected default hotspot limit preserved, got %d", cfg.Query.HotspotLimit)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Propagation.Alpha = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for alpha > 1")
	}

	cfg = DefaultConfig()
	cfg.Query.MinClusterSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for minClusterSize 0")
	}
}

func TestDampingOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "damping.toml")
	content := `[damping]
documented_by_decision = 0.5
verified_by_test = 0.95
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	overrides, err := LoadDampingOverrides(path)
	if err != nil {
		t.Fatalf("LoadDampingOverrides failed: %v", err)
	}
	if overrides.Damping["documented_by_decision"] != 0.5 {
		t.Errorf("Expected 0.5, got %f", overrides.Damping["documented_by_decision"])
	}
	if overrides.Damping["verified_by_test"] != 0.95 {
		t.Errorf("Expected 0.95, got %f", overrides.Damping["verified_by_test"])
	}
}

func TestDampingOverridesMissingFile(t *testing.T) {
	overrides, err := LoadDampingOverrides(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if len(overrides.Damping) != 0 {
		t.Errorf("Expected empty overrides, got %v", overrides.Damping)
	}
}

func TestDampingOverridesRejectsOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "damping.toml")
	if err := os.WriteFile(path, []byte("[damping]\nassumes_claim = 1.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDampingOverrides(path); err == nil {
		t.Error("Expected error for damping > 1")
	}
}

func TestRenderTOML(t *testing.T) {
	out, err := DefaultConfig().RenderTOML()
	if err != nil {
		t.Fatalf("RenderTOML failed: %v", err)
	}
	if !strings.Contains(out, "[Synthesizer]") && !strings.Contains(out, "[synthesizer]") {
		t.Errorf("Expected synthesizer section in TOML, got:\n%s", out)
	}
}
