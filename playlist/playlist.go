// ABOUTME: Handles reading and writing M3U/M3U8 playlist files
// ABOUTME: Resolves track paths to absolute identities and writes playlists atomically

// Package playlist handles M3U8 playlist files and the tracks they reference.
// Tracks are identified by cleaned absolute path so the same file listed by different
// playlists, or through different relative paths, is a single track.
package playlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Playlist is a named, ordered list of shared track references
type Playlist struct {
	Name   string   // Display name; for files, the base name without extension
	Path   string   // File the playlist was loaded from, empty for generated playlists
	Tracks []*Track // Shared references, a track may belong to many playlists
}

// ReadPlaylist reads an M3U8 playlist file.
// Relative entries are resolved against the playlist's directory.
func ReadPlaylist(path string) ([]*Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlist directory: %w", err)
	}

	var tracks []*Track

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments (#EXTM3U, #EXTINF, ...)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tracks = append(tracks, NewTrack(resolvePath(line, baseDir)))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading playlist: %w", err)
	}

	return tracks, nil
}

// resolvePath turns a playlist entry into a track identity
func resolvePath(entry, baseDir string) string {
	entry = strings.TrimPrefix(entry, "file://")
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(baseDir, entry)
	}

	return filepath.Clean(entry)
}

// WritePlaylist writes tracks to an M3U8 playlist file.
// With relative set, entries are written relative to the playlist's directory when possible.
// The file is replaced atomically.
func WritePlaylist(path string, tracks []*Track, relative bool) (err error) {
	dir := filepath.Dir(path)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve playlist directory: %w", err)
	}

	file, err := os.CreateTemp(dir, ".playlist-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(file.Name())
		}
	}()

	writer := bufio.NewWriter(file)

	if _, err := writer.WriteString("#EXTM3U\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, track := range tracks {
		entry := track.Path
		if relative {
			if rel, relErr := filepath.Rel(absDir, track.Path); relErr == nil {
				entry = filepath.ToSlash(rel)
			}
		}

		if _, err := writer.WriteString(entry + "\n"); err != nil {
			return fmt.Errorf("failed to write track: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close playlist file: %w", err)
	}

	if err := os.Rename(file.Name(), path); err != nil {
		return fmt.Errorf("failed to replace playlist: %w", err)
	}

	return nil
}
