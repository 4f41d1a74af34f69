package config

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("name: ${SAMPLE_NAME}\nport: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg sample
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("name = %q, want env-expanded value", cfg.Name)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d", cfg.Port)
	}
}

func TestLoad_KeepsPrePopulatedDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("port: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := sample{Name: "default"}
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "default" {
		t.Errorf("absent key should keep default, got %q", cfg.Name)
	}
}

func TestLoadOptional(t *testing.T) {
	var cfg sample
	ok, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
	if err != nil {
		t.Fatalf("absent file should not error: %v", err)
	}
	if ok {
		t.Error("absent file should report not loaded")
	}

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("name: x\nport: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err = LoadOptional(path, &cfg)
	if err != nil || !ok {
		t.Fatalf("present file: ok = %v, err = %v", ok, err)
	}
	if cfg.Name != "x" {
		t.Errorf("name = %q", cfg.Name)
	}
}
