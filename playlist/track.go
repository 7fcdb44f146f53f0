// ABOUTME: Defines the Track struct and best-effort metadata reading from audio files
// ABOUTME: Fills display fields and seeds tag-model values found in embedded file tags

package playlist

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"autoplaylist/tagname"
)

// Track is an audio file identified by its path, carrying a mutable tag mapping
type Track struct {
	Path   string       // Cleaned absolute path; two tracks with the same path are the same track
	Tags   tagname.Tags // Tag key -> value
	Artist string       // Display only, empty if the file could not be read
	Album  string
	Title  string
}

// NewTrack returns a track with an empty tag mapping
func NewTrack(path string) *Track {
	return &Track{Path: path, Tags: tagname.Tags{}}
}

// Clone returns a copy whose tag mapping is independently owned
func (t *Track) Clone() *Track {
	c := *t
	c.Tags = t.Tags.Clone()

	return &c
}

// DisplayName returns "Artist - Title", falling back to the file name
func (t *Track) DisplayName() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return filepath.Base(t.Path)
	}
}

// ReadMetadata reads the audio file's embedded tags into track.
// Display fields are filled and, for every key of model not yet set on the track,
// a legal value found in the file's tags is copied. The track is untouched on error.
func ReadMetadata(track *Track, model tagname.Model) error {
	file, err := os.Open(track.Path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}

	track.Artist = metadata.Artist()
	track.Album = metadata.Album()
	track.Title = metadata.Title()

	if track.Tags == nil {
		track.Tags = tagname.Tags{}
	}

	seedTags(track.Tags, metadata, model)

	return nil
}

// seedTags copies model-legal values from file metadata into tags without overwriting.
// Raw frame names match tag keys case-insensitively; ID3 TXXX frames match by description.
func seedTags(tags tagname.Tags, metadata tag.Metadata, model tagname.Model) {
	candidates := map[string]string{}

	raw := metadata.Raw()
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		switch v := raw[name].(type) {
		case string:
			candidates[strings.ToLower(name)] = v
		case int:
			candidates[strings.ToLower(name)] = strconv.Itoa(v)
		case *tag.Comm:
			if v.Description != "" {
				candidates[strings.ToLower(v.Description)] = v.Text
			}
		}
	}

	// Genre() resolves ID3v1 numeric genres, so it beats the raw frame
	if genre := metadata.Genre(); genre != "" {
		candidates["genre"] = genre
	}

	for _, key := range model.Keys() {
		if _, set := tags[key]; set {
			continue
		}

		value, ok := candidates[strings.ToLower(key)]
		if !ok {
			continue
		}

		value = strings.TrimSpace(value)
		if model.Legal(key, value) {
			tags[key] = value
		}
	}
}
