// ABOUTME: Runner holds shared state for all commands and the extract/generate pipeline
// ABOUTME: Loads config, reads the tagging playlists, and prints result tables

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"autoplaylist/autogen"
	"autoplaylist/config"
	"autoplaylist/playlist"
	"autoplaylist/tagname"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action
type Runner struct {
	configPath string
	logger     *log.Logger
	output     io.Writer
	stderr     io.Writer
	logToFile  bool

	// Cleanup registered by global flags
	cleanup []func() error
}

// RunnerOpts contains configuration options for creating a Runner
type RunnerOpts struct {
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Stderr     io.Writer // Log destination once a --log-file is closed
}

// NewRunner creates a new Runner, filling unset options with defaults
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	if opts.Logger == nil {
		opts.Logger = NewLogger(opts.Stderr)
	}

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = config.GetConfigPath()
	}

	return &Runner{
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		stderr:     opts.Stderr,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range []func(*Runner) *cli.Command{
		initCommand, syncCommand, tagsCommand, viewCommand, watchCommand, exportCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before applies global flags
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	if cmd.Bool("debug") {
		r.logger.SetLevel(log.DebugLevel)
	}

	if path := cmd.String("log-file"); path != "" {
		f, err := openLogFile(r.logger, path)
		if err != nil {
			return ctx, err
		}

		r.logToFile = true
		r.cleanup = append(r.cleanup, func() error {
			// After returns before the command error is logged
			r.logger.SetOutput(r.stderr)
			r.logToFile = false

			return f.Close()
		})
	}

	if path := cmd.String("cpuprofile"); path != "" {
		stop, err := startCPUProfile(path)
		if err != nil {
			return ctx, err
		}

		r.cleanup = append(r.cleanup, stop)
	}

	if path := cmd.String("memprofile"); path != "" {
		r.cleanup = append(r.cleanup, func() error { return writeMemoryProfile(path) })
	}

	r.logger.Debug("using config", "path", r.configPath)

	return ctx, nil
}

// after runs cleanup registered by before, most recent first
func (r *Runner) after(_ context.Context, _ *cli.Command) error {
	var errs []error

	for i := len(r.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, r.cleanup[i]())
	}

	r.cleanup = nil

	return errors.Join(errs...)
}

// loadConfig reads and validates the config file
func (r *Runner) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(r.configPath)
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// extract reads the tagging playlists and merges their name tags onto the tracks.
// Playlists whose names carry no tag prefix are skipped with a warning.
func (r *Runner) extract(cfg config.Config) (*autogen.Manager, *autogen.TrackSet, error) {
	manager, err := autogen.NewManager(cfg.Tags, cfg.Generate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid generate groups: %w", err)
	}

	loaded, err := playlist.LoadDir(cfg.PlaylistsDir, playlist.DefaultExtensions)
	if err != nil {
		return nil, nil, err
	}

	playlists := make([]*playlist.Playlist, 0, len(loaded))

	for _, p := range loaded {
		if !tagname.HasPrefix(p.Name) {
			r.logger.Warn("skipping playlist without tag prefix", "name", p.Name)
			continue
		}

		playlists = append(playlists, p)
	}

	r.logger.Info("loaded playlists", "dir", cfg.PlaylistsDir, "count", len(playlists))

	if cfg.ReadFileTags {
		tracks := playlist.UniqueTracks(playlists)

		failed := 0
		playlist.LoadMetadata(tracks, cfg.Tags, cfg.Workers, func(t *playlist.Track, err error) {
			failed++
			r.logger.Debug("no metadata", "path", t.Path, "err", err)
		})

		r.logger.Info("read file tags", "tracks", len(tracks), "failed", failed)
	}

	tracks, err := manager.ExtractTags(playlists)
	if err != nil {
		return nil, nil, err
	}

	return manager, tracks, nil
}

// generate runs extract and builds the generated playlists
func (r *Runner) generate(cfg config.Config) ([]*playlist.Playlist, *autogen.TrackSet, error) {
	manager, tracks, err := r.extract(cfg)
	if err != nil {
		return nil, nil, err
	}

	generated, err := manager.GeneratePlaylists(tracks)
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("generated playlists", "count", len(generated), "tracks", tracks.Len())

	return generated, tracks, nil
}

// writeGenerated replaces the generated playlists in the output directory
func (r *Runner) writeGenerated(cfg config.Config, playlists []*playlist.Playlist) ([]string, error) {
	written, err := playlist.WriteGenerated(cfg.OutputDir, cfg.Extension, playlists, cfg.Relative)
	if err != nil {
		return written, err
	}

	r.logger.Info("wrote playlists", "dir", cfg.OutputDir, "count", len(written))

	return written, nil
}

func (r *Runner) printPlaylists(playlists []*playlist.Playlist) error {
	w := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "Playlist\tTracks"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for _, p := range playlists {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", p.Name, len(p.Tracks)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return w.Flush()
}

func (r *Runner) printTracks(tracks []*playlist.Track) error {
	w := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "Track\tTags"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for _, t := range tracks {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", t.DisplayName(), formatTags(t.Tags)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return w.Flush()
}

// printGroups lists each generation group with the number of value combinations it spans
func (r *Runner) printGroups(manager *autogen.Manager) error {
	w := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "\nGroup\tKeys\tCombinations"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	model := manager.Model()

	for i, group := range manager.Groups() {
		combinations := 1
		for _, key := range group {
			combinations *= len(model[key])
		}

		if _, err := fmt.Fprintf(w, "%02d\t%s\t%d\n", i, strings.Join(group, ", "), combinations); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return w.Flush()
}

// formatTags renders tags as key=value pairs sorted by key
func formatTags(tags tagname.Tags) string {
	parts := make([]string, 0, len(tags))
	for _, k := range slices.Sorted(maps.Keys(tags)) {
		parts = append(parts, k+"="+tags[k])
	}

	return strings.Join(parts, " ")
}
