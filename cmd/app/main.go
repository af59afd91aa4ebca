package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "config/config.yaml",
			Value:       "config/config.yaml",
			Sources:     cli.EnvVars("APP_CONFIG_FILE"),
		},
		&cli.StringSliceFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Recipe directory, repeatable, in priority order (overrides recipes.dirs)",
			Sources: cli.EnvVars("COOKFIND_DIRS"),
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "cookfind",
		Usage:  "Find, search and cross-reference Cooklang recipes across recipe directories",
		Action: serve,
		Flags:  rootFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: serveMCP,
			},
			{
				Name:      "get",
				Usage:     "Print the recipe with the given name",
				ArgsUsage: "NAME",
				Action:    getRecipe,
			},
			{
				Name:      "search",
				Usage:     "Search recipe names and content",
				ArgsUsage: "QUERY",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "relevance",
						Usage: "Order results by relevance instead of directory order",
					},
				},
				Action: searchRecipes,
			},
			{
				Name:   "tree",
				Usage:  "Print the tree of every recipe directory",
				Action: printTree,
			},
			{
				Name:      "related",
				Usage:     "List images and referenced recipes a recipe depends on",
				ArgsUsage: "NAME",
				Action:    relatedFiles,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
