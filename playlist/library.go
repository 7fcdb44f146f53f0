// ABOUTME: Loads directories of playlists with shared track references and writes generated sets
// ABOUTME: Reads audio metadata in parallel and replaces previously generated playlist files

package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"autoplaylist/pool"
	"autoplaylist/tagname"
)

// ErrFileNameCollision is returned when two generated playlists map to the same file name
var ErrFileNameCollision = errors.New("playlists share a file name")

// DefaultExtensions lists the playlist file extensions LoadDir accepts
var DefaultExtensions = []string{".m3u8", ".m3u"}

// generatedRegex matches names produced by the generator, e.g. "02_RaGe ge=Acid ra=4"
var generatedRegex = regexp.MustCompile(`^\d{2,}_\S+ `)

// IsGeneratedName reports whether name looks like a generated playlist name
func IsGeneratedName(name string) bool {
	return generatedRegex.MatchString(name)
}

// LoadDir loads every playlist file directly inside dir, ordered by file name.
// Tracks with the same path are shared between the returned playlists.
func LoadDir(dir string, exts []string) ([]*Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist directory: %w", err)
	}

	interned := map[string]*Track{}

	var playlists []*Playlist

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !hasExtension(ext, exts) {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		tracks, err := ReadPlaylist(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}

		for i, t := range tracks {
			if shared, ok := interned[t.Path]; ok {
				tracks[i] = shared
			} else {
				interned[t.Path] = t
			}
		}

		playlists = append(playlists, &Playlist{
			Name:   strings.TrimSuffix(entry.Name(), ext),
			Path:   path,
			Tracks: tracks,
		})
	}

	return playlists, nil
}

func hasExtension(ext string, exts []string) bool {
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// UniqueTracks returns each distinct track of playlists once, in first-seen order
func UniqueTracks(playlists []*Playlist) []*Track {
	seen := map[string]bool{}

	var tracks []*Track

	for _, p := range playlists {
		for _, t := range p.Tracks {
			if seen[t.Path] {
				continue
			}

			seen[t.Path] = true
			tracks = append(tracks, t)
		}
	}

	return tracks
}

// LoadMetadata reads audio metadata for every track using workers goroutines.
// Failures are reported through onError (may be nil) and leave the track as it was.
func LoadMetadata(tracks []*Track, model tagname.Model, workers int, onError func(*Track, error)) {
	errs := make([]error, len(tracks))

	pool.Each(workers, len(tracks), func(i int) {
		errs[i] = ReadMetadata(tracks[i], model)
	})

	if onError == nil {
		return
	}

	for i, err := range errs {
		if err != nil {
			onError(tracks[i], err)
		}
	}
}

// FileName turns a playlist name into a file name, replacing path separators
func FileName(name, ext string) string {
	return strings.NewReplacer("/", "-", `\`, "-").Replace(name) + ext
}

// WriteGenerated replaces the generated playlists in dir.
// Files whose names look generated are removed first, other files are left alone.
// Returns the paths written, in playlist order.
func WriteGenerated(dir, ext string, playlists []*Playlist, relative bool) ([]string, error) {
	if err := checkFileNames(playlists, ext); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := removeGenerated(dir, ext); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(playlists))

	for _, p := range playlists {
		path := filepath.Join(dir, FileName(p.Name, ext))
		if err := WritePlaylist(path, p.Tracks, relative); err != nil {
			return written, fmt.Errorf("failed to write %q: %w", p.Name, err)
		}

		written = append(written, path)
	}

	return written, nil
}

// checkFileNames fails if two playlists would be written to the same file
func checkFileNames(playlists []*Playlist, ext string) error {
	owners := make(map[string]string, len(playlists))

	for _, p := range playlists {
		name := strings.ToLower(FileName(p.Name, ext))
		if other, ok := owners[name]; ok {
			return fmt.Errorf("%w: %q and %q", ErrFileNameCollision, other, p.Name)
		}

		owners[name] = p.Name
	}

	return nil
}

func removeGenerated(dir, ext string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}

		if !IsGeneratedName(strings.TrimSuffix(name, filepath.Ext(name))) {
			continue
		}

		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to remove stale playlist: %w", err)
		}
	}

	return nil
}
