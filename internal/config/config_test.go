package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("ISOTOPE_DB", "")
	t.Setenv("ISOTOPE_MCNP_LIBRARY", "")
	t.Setenv("ISOTOPE_NUCDATA", "")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() error: %v", err)
	}
	if cfg.MaterialNumber != 1 {
		t.Errorf("MaterialNumber = %d, want 1", cfg.MaterialNumber)
	}
	if cfg.DB != "" || cfg.MCNPLibrary != "" {
		t.Errorf("unexpected values: %+v", cfg)
	}
}

func TestParseEnvValues(t *testing.T) {
	t.Setenv("ISOTOPE_DB", "/tmp/materials.db")
	t.Setenv("ISOTOPE_MCNP_LIBRARY", ".80c")
	t.Setenv("ISOTOPE_MATERIAL_NUMBER", "42")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() error: %v", err)
	}
	if cfg.DB != "/tmp/materials.db" || cfg.MCNPLibrary != ".80c" || cfg.MaterialNumber != 42 {
		t.Errorf("ParseEnv() = %+v", cfg)
	}
}

func TestParseEnvInvalid(t *testing.T) {
	t.Setenv("ISOTOPE_MATERIAL_NUMBER", "one")
	if _, err := ParseEnv(); err == nil {
		t.Error("ParseEnv() should reject a non-numeric material number")
	}
}

func TestProvider(t *testing.T) {
	table, err := Config{}.Provider()
	if err != nil {
		t.Fatalf("Provider() error: %v", err)
	}
	if _, err := table.AtomicMass(922350000); err != nil {
		t.Errorf("embedded table lacks U235: %v", err)
	}

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("masses: {H1: 1.5}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	custom, err := Config{NucData: path}.Provider()
	if err != nil {
		t.Fatalf("Provider() error: %v", err)
	}
	if m, _ := custom.AtomicMass(10010000); m != 1.5 {
		t.Errorf("AtomicMass(H1) = %v, want 1.5", m)
	}

	if _, err := (Config{NucData: filepath.Join(t.TempDir(), "none.yaml")}).Provider(); err == nil {
		t.Error("Provider() should fail for a missing table")
	}
}
