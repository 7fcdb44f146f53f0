// ABOUTME: Converts between tagged playlists and tagged tracks
// ABOUTME: Extracts tags from playlist names onto tracks and generates combinatorial playlists

// Package autogen derives track tags from tagging playlists and regenerates playlists from tags.
//
// Extraction reads each playlist name as a tag mapping and merges it onto the playlist's
// tracks; generation emits one playlist per combination of legal values of each configured
// generation group, holding every track whose tags contain that combination.
package autogen

import (
	"errors"
	"fmt"
	"slices"

	"autoplaylist/playlist"
	"autoplaylist/tagname"
)

// RatingKey is never copied from a playlist name onto a track; ratings are track-local
const RatingKey = "rating"

var (
	// ErrEmptyGroup is returned for a generation group without keys
	ErrEmptyGroup = errors.New("generation group has no keys")

	// ErrUnknownKey is returned when a generation group names a key missing from the tag model
	ErrUnknownKey = errors.New("tag key not in tag model")

	// ErrDuplicateKey is returned when a generation group repeats a key
	ErrDuplicateKey = errors.New("tag key repeated in generation group")

	// ErrAbbreviationCollision is returned when two keys of a group abbreviate identically
	ErrAbbreviationCollision = errors.New("tag keys share an abbreviation")
)

// Manager converts playlists to tagged tracks and back
type Manager struct {
	model  tagname.Model
	groups [][]string
}

// NewManager validates the generation groups against the tag model
func NewManager(model tagname.Model, groups [][]string) (*Manager, error) {
	for i, group := range groups {
		if err := validateGroup(model, group); err != nil {
			return nil, fmt.Errorf("generation group %d %v: %w", i, group, err)
		}
	}

	cloned := make([][]string, len(groups))
	for i, g := range groups {
		cloned[i] = slices.Clone(g)
	}

	return &Manager{model: model, groups: cloned}, nil
}

func validateGroup(model tagname.Model, group []string) error {
	if len(group) == 0 {
		return ErrEmptyGroup
	}

	abbrevs := map[string]string{}

	for i, key := range group {
		if _, ok := model[key]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}

		if slices.Contains(group[:i], key) {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}

		abbrev, err := tagname.Prefix([]string{key}, 0)
		if err != nil {
			return err
		}

		if other, ok := abbrevs[abbrev]; ok {
			return fmt.Errorf("%w: %q and %q", ErrAbbreviationCollision, other, key)
		}

		abbrevs[abbrev] = key
	}

	return nil
}

// Model returns the tag model
func (m *Manager) Model() tagname.Model {
	return m.model
}

// Groups returns a copy of the generation groups
func (m *Manager) Groups() [][]string {
	groups := make([][]string, len(m.groups))
	for i, g := range m.groups {
		groups[i] = slices.Clone(g)
	}

	return groups
}

// ExtractTags merges the tags encoded in playlist names onto the playlists' tracks.
//
// Each distinct track is cloned the first time its path is seen, so the result never aliases
// the input. Later playlists overwrite earlier values for the same key; rating is never copied.
// Tracks of playlists whose names carry no tags are still registered.
func (m *Manager) ExtractTags(playlists []*playlist.Playlist) (*TrackSet, error) {
	tracks := NewTrackSet()

	for _, p := range playlists {
		playlistTags, err := tagname.TagsFromName(p.Name, m.model)
		if err != nil {
			return nil, fmt.Errorf("failed to decode playlist %q: %w", p.Name, err)
		}

		for _, t := range p.Tracks {
			track, ok := tracks.Get(t.Path)
			if !ok {
				track = t.Clone()
				tracks.Put(track)
			}

			track.Tags.Merge(playlistTags, RatingKey)
		}
	}

	return tracks, nil
}

// GeneratePlaylists builds one playlist per generation group and value combination that
// at least one track matches. Groups are emitted in order, combinations in Cartesian product
// order with the last key varying fastest, tracks in set order.
func (m *Manager) GeneratePlaylists(tracks *TrackSet) ([]*playlist.Playlist, error) {
	var playlists []*playlist.Playlist

	all := tracks.Tracks()

	for index, group := range m.groups {
		values := make([][]string, len(group))
		for i, key := range group {
			values[i] = m.model[key]
		}

		for combination := range product(values) {
			wanted := make(tagname.Tags, len(group))
			for i, key := range group {
				wanted[key] = combination[i]
			}

			var matching []*playlist.Track

			for _, t := range all {
				if t.Tags.Contains(wanted) {
					matching = append(matching, t)
				}
			}

			if len(matching) == 0 {
				continue
			}

			name, err := tagname.NameFromGroup(group, wanted, index)
			if err != nil {
				return nil, fmt.Errorf("failed to name playlist: %w", err)
			}

			playlists = append(playlists, &playlist.Playlist{Name: name, Tracks: matching})
		}
	}

	return playlists, nil
}
