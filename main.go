// ABOUTME: Entry point for autoplaylist
// ABOUTME: Builds the command tree, handles profiling flags, and maps errors to exit codes

// Package main provides the autoplaylist command, which turns playlist names into track tags
// and generates one playlist per combination of tag values.
package main

import (
	"context"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"autoplaylist/config"
)

func main() {
	os.Exit(run(os.Args, os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	// A .env file is optional; it may set AUTOPLAYLIST_CONFIG
	_ = godotenv.Load()

	runner := NewRunner(RunnerOpts{Stderr: stderr})

	app := &cli.Command{
		Name:    "autoplaylist",
		Usage:   "Tag tracks through playlist names and generate playlists from the tags",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   config.GetConfigPath(),
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "cpuprofile",
				Usage: "Write CPU profile to file",
			},
			&cli.StringFlag{
				Name:  "memprofile",
				Usage: "Write memory profile to file",
			},
		},
		Before:   runner.before,
		After:    runner.after,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), args); err != nil {
		runner.logger.Error("command failed", "err", err)

		return 1
	}

	return 0
}
