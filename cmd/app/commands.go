package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/cookfind/internal"
	"github.com/starford/cookfind/internal/recipeservice"
	pkgconfig "github.com/starford/cookfind/pkg/config"
)

// loadConfig reads the config file and applies --dir. An explicit --config
// must exist; the default location is optional.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	load := pkgconfig.LoadOptional[internal.Config]
	if cmd.IsSet("config") {
		load = pkgconfig.Load[internal.Config]
	}
	if err := load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if dirs := cmd.StringSlice("dir"); len(dirs) > 0 {
		cfg.Recipes.Dirs = dirs
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --dir: %w", err)
		}
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

// newService builds a service for one-shot commands, logging to stderr.
func newService(cmd *cli.Command) (*recipeservice.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	})))
	return recipeservice.NewService(cfg.Recipes.Dirs), nil
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return "", fmt.Errorf("%s: %s is required", cmd.Name, name)
	}
	return arg, nil
}

func getRecipe(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "NAME")
	if err != nil {
		return err
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	recipe, err := svc.GetRecipe(ctx, name)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, recipe)
}

func searchRecipes(ctx context.Context, cmd *cli.Command) error {
	query, err := requireArg(cmd, "QUERY")
	if err != nil {
		return err
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	results, err := svc.Search(ctx, query, cmd.Bool("relevance"))
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, results)
}

func printTree(ctx context.Context, cmd *cli.Command) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	trees, err := svc.Trees(ctx)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, trees)
}

func relatedFiles(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "NAME")
	if err != nil {
		return err
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	rel, err := svc.Related(ctx, name)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, rel)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
