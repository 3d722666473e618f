package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/malkoG/Serum/internal"
	"github.com/malkoG/Serum/internal/project"
	pkgconfig "github.com/malkoG/Serum/pkg/config"
)

// ConfigFile is the project configuration file expected under the source
// directory.
const ConfigFile = "serum.yml"

func runBuild(ctx context.Context, cmd *cli.Command) error {
	srcDir, err := filepath.Abs(cmd.String("source"))
	if err != nil {
		return fmt.Errorf("resolve source dir: %w", err)
	}
	destDir, err := filepath.Abs(cmd.String("dest"))
	if err != nil {
		return fmt.Errorf("resolve dest dir: %w", err)
	}

	proj := project.NewDefault()
	if err := pkgconfig.Load(filepath.Join(srcDir, ConfigFile), &proj.Site); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	proj.SourceDir = srcDir
	proj.DestDir = destDir
	if err := proj.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	opts := []internal.Option{
		internal.WithProject(proj),
		internal.WithWorkers(int(cmd.Int("parallelism"))),
	}

	if err := internal.Build(ctx, opts...); err != nil {
		return fmt.Errorf("build error: %w", err)
	}

	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	return internal.Serve(ctx, cmd.String("dir"), int(cmd.Int("port")))
}

func main() {
	cmd := &cli.Command{
		Name:  "serum",
		Usage: "Static site generator: builds HTML pages from Markdown posts with typed metadata headers",
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build the site once",
				Action: runBuild,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Project source directory",
						Value:   ".",
					},
					&cli.StringFlag{
						Name:    "dest",
						Aliases: []string{"d"},
						Usage:   "Output directory",
						Value:   "./site",
					},
					&cli.IntFlag{
						Name:    "parallelism",
						Aliases: []string{"p"},
						Usage:   "Max concurrent per-file tasks (0 = default)",
						Value:   0,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve a built site directory over HTTP",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Built site directory",
						Value: "./site",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Listen port",
						Value: 8080,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("serum error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
