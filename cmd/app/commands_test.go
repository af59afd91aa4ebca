package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/starford/cookfind/internal"
)

func runLoad(t *testing.T, args ...string) (*internal.Config, error) {
	t.Helper()
	var cfg *internal.Config
	cmd := &cli.Command{
		Name:  "cookfind",
		Flags: rootFlags(),
		Action: func(_ context.Context, c *cli.Command) error {
			var err error
			cfg, err = loadConfig(c)
			return err
		},
	}
	err := cmd.Run(context.Background(), append([]string{"cookfind"}, args...))
	return cfg, err
}

func TestLoadConfig_DirFlagOverrides(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := runLoad(t, "--config", missing, "--dir", "/a", "--dir", "/b")
	if err == nil {
		t.Fatalf("explicit missing config should fail, got %+v", cfg)
	}

	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("recipes:\n  dirs: [/from/file]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = runLoad(t, "-c", p, "--dir", "/a", "--dir", "/b")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if len(cfg.Recipes.Dirs) != 2 || cfg.Recipes.Dirs[0] != "/a" || cfg.Recipes.Dirs[1] != "/b" {
		t.Errorf("dirs = %v", cfg.Recipes.Dirs)
	}

	cfg, err = runLoad(t, "-c", p)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if len(cfg.Recipes.Dirs) != 1 || cfg.Recipes.Dirs[0] != "/from/file" {
		t.Errorf("dirs = %v", cfg.Recipes.Dirs)
	}
}

func TestLoadConfig_DefaultLocationOptional(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := runLoad(t)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if len(cfg.Recipes.Dirs) != 1 || cfg.Recipes.Dirs[0] != "./recipes" {
		t.Errorf("dirs = %v", cfg.Recipes.Dirs)
	}
}
