// ABOUTME: Tests for watch mode change detection and debouncing
// ABOUTME: Writes playlists into a watched temp directory and counts sync triggers

package main

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestIsPlaylistEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write m3u8", fsnotify.Event{Name: "/p/01_Ge ge=Acid.m3u8", Op: fsnotify.Write}, true},
		{"create m3u", fsnotify.Event{Name: "/p/a.M3U", Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: "/p/a.m3u8", Op: fsnotify.Remove}, true},
		{"rename", fsnotify.Event{Name: "/p/a.m3u8", Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: "/p/a.m3u8", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/p/notes.txt", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPlaylistEvent(tt.event); got != tt.want {
				t.Errorf("isPlaylistEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatchDirDebouncesChanges(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32

	done := make(chan error, 1)

	go func() {
		done <- watchDir(ctx, dir, 200*time.Millisecond, func(any, ...any) {}, func() {
			calls.Add(1)
		})
	}()

	// Give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	for i := range 3 {
		path := filepath.Join(dir, "01_Ge ge=Acid.m3u8")
		if err := os.WriteFile(path, []byte("#EXTM3U\n"+string(rune('a'+i))+".mp3\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	// Let any extra trigger arrive before counting
	time.Sleep(400 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("onChange called %d times, want 1", got)
	}

	cancel()

	if err := <-done; err != nil {
		t.Errorf("watchDir returned %v", err)
	}
}

func TestWatchDirMissingDirectory(t *testing.T) {
	err := watchDir(context.Background(), filepath.Join(t.TempDir(), "missing"), time.Millisecond,
		func(any, ...any) {}, func() {})
	if err == nil {
		t.Error("Expected error for missing directory")
	}
}
