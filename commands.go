// ABOUTME: Command definitions and actions for init, sync, tags, view, and export
// ABOUTME: Each action loads config through the Runner and reports through its logger

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"autoplaylist/config"
	"autoplaylist/playlist"
	"autoplaylist/store"
	"autoplaylist/tui"
)

// ErrConfigExists is returned by init when the config file is already present
var ErrConfigExists = errors.New("config file already exists")

// Init writes the default config to the config path
func (r *Runner) Init(_ context.Context, cmd *cli.Command) error {
	return r.writeDefaultConfig(cmd.Bool("force"))
}

func (r *Runner) writeDefaultConfig(force bool) error {
	if _, err := os.Stat(r.configPath); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, r.configPath)
	}

	if err := config.SaveConfig(r.configPath, config.DefaultConfig()); err != nil {
		return err
	}

	r.logger.Info("wrote default config", "path", r.configPath)

	return nil
}

// Sync regenerates the output directory from the tagging playlists
func (r *Runner) Sync(_ context.Context, cmd *cli.Command) error {
	return r.sync(cmd.Bool("dry-run"))
}

func (r *Runner) sync(dryRun bool) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	generated, _, err := r.generate(cfg)
	if err != nil {
		return err
	}

	if !dryRun {
		if _, err := r.writeGenerated(cfg, generated); err != nil {
			return err
		}
	}

	return r.printPlaylists(generated)
}

// Tags prints every tagged track with its merged tags, then the generation groups
func (r *Runner) Tags(_ context.Context, _ *cli.Command) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	manager, tracks, err := r.extract(cfg)
	if err != nil {
		return err
	}

	if err := r.printTracks(tracks.Tracks()); err != nil {
		return err
	}

	return r.printGroups(manager)
}

// View opens the interactive browser over the generated playlists
func (r *Runner) View(_ context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	generated, _, err := r.generate(cfg)
	if err != nil {
		return err
	}

	if !isTTY(os.Stdout) {
		r.logger.Warn("stdout is not a terminal, printing instead")
		return r.printPlaylists(generated)
	}

	// The TUI owns the screen
	if !r.logToFile {
		r.logger.SetOutput(io.Discard)
		defer r.logger.SetOutput(r.stderr)
	}

	opts := tui.Options{
		OutputDir: cfg.OutputDir,
		DryRun:    cmd.Bool("dry-run"),
	}

	return tui.Run(generated, opts, func(playlists []*playlist.Playlist) ([]string, error) {
		return r.writeGenerated(cfg, playlists)
	})
}

// Export snapshots the extracted tags into a SQLite database
func (r *Runner) Export(_ context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	_, tracks, err := r.extract(cfg)
	if err != nil {
		return err
	}

	return r.export(cmd.String("db"), tracks.Tracks())
}

func (r *Runner) export(path string, tracks []*playlist.Track) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}

	defer func() {
		if err := db.Close(); err != nil {
			r.logger.Warn("failed to close database", "err", err)
		}
	}()

	if err := db.Save(tracks); err != nil {
		return err
	}

	r.logger.Info("exported tags", "db", path, "tracks", len(tracks))

	return nil
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default configuration file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: r.Init,
	}
}

func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Generate playlists from the tags in playlist names",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Preview generated playlists without writing them",
			},
		},
		Action: r.Sync,
	}
}

func tagsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tags",
		Usage:  "List tracks with their tags",
		Action: r.Tags,
	}
}

func viewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Browse generated playlists interactively",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Disable writing from the browser",
			},
		},
		Action: r.View,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write track tags to a SQLite database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file",
				Value: "autoplaylist.db",
			},
		},
		Action: r.Export,
	}
}
