package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `yaml:"name"`
	Dirs  []string `yaml:"dirs"`
	Level int      `yaml:"level"`
}

func (s *sample) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnvAndKeepsDefaults(t *testing.T) {
	t.Setenv("COOKFIND_TEST_DIR", "/srv/recipes")
	p := writeConfig(t, "name: test\ndirs: [\"$COOKFIND_TEST_DIR\", ./local]\n")

	cfg := sample{Level: 3}
	if err := Load(p, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Dirs) != 2 || cfg.Dirs[0] != "/srv/recipes" {
		t.Errorf("dirs = %v", cfg.Dirs)
	}
	if cfg.Level != 3 {
		t.Errorf("level = %d, default should survive", cfg.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	var cfg sample
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Error("missing file should fail")
	}
	if err := Load(writeConfig(t, "name: [unclosed"), &cfg); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("bad yaml err = %v", err)
	}
	if err := Load(writeConfig(t, "level: 1\n"), &sample{}); err == nil || !strings.Contains(err.Error(), "validation") {
		t.Errorf("validation err = %v", err)
	}
}

func TestLoadOptional_MissingFileUsesDefaults(t *testing.T) {
	cfg := sample{Name: "default"}
	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Name != "default" {
		t.Errorf("name = %q", cfg.Name)
	}

	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &sample{}); err == nil {
		t.Error("defaults must still be validated")
	}
}
