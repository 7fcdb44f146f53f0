// ABOUTME: Watch mode: re-runs sync whenever a tagging playlist changes
// ABOUTME: Uses fsnotify with debouncing and stops on SIGINT/SIGTERM

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"autoplaylist/playlist"
)

// Wait for editors that write in several steps before syncing
const defaultDebounce = 300 * time.Millisecond

// Watch syncs once, then again after every change to the playlists directory
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.syncLogged()

	r.logger.Info("watching for changes (press Ctrl+C to stop)", "dir", cfg.PlaylistsDir)

	return watchDir(ctx, cfg.PlaylistsDir, cmd.Duration("debounce"), r.logger.Warn, r.syncLogged)
}

// syncLogged runs sync and logs instead of returning failures, so watching continues
func (r *Runner) syncLogged() {
	if err := r.sync(false); err != nil {
		r.logger.Error("sync failed", "err", err)
	}
}

// watchDir calls onChange once per burst of playlist changes in dir until ctx is done.
// Watcher errors are reported through warn and do not stop watching.
func watchDir(ctx context.Context, dir string, debounce time.Duration, warn func(msg any, keyvals ...any), onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch playlists directory: %w", err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if isPlaylistEvent(event) {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			warn("watcher error", "err", err)

		case <-timer.C:
			onChange()
		}
	}
}

// isPlaylistEvent reports whether event changes a playlist file
func isPlaylistEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return slices.Contains(playlist.DefaultExtensions, strings.ToLower(filepath.Ext(event.Name)))
}

func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Sync again whenever a tagging playlist changes",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Quiet period before syncing after a change",
				Value: defaultDebounce,
			},
		},
		Action: r.Watch,
	}
}
