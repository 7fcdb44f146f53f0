// ABOUTME: Order-preserving mapping from track path to track
// ABOUTME: Holds the extracted tagged tracks; insertion order drives generated track order

package autogen

import "autoplaylist/playlist"

// TrackSet maps track paths to tracks, remembering insertion order
type TrackSet struct {
	order  []string
	byPath map[string]*playlist.Track
}

// NewTrackSet returns a set holding tracks in the given order.
// Later tracks with an already present path replace the earlier value in place.
func NewTrackSet(tracks ...*playlist.Track) *TrackSet {
	s := &TrackSet{byPath: make(map[string]*playlist.Track, len(tracks))}
	for _, t := range tracks {
		s.Put(t)
	}

	return s
}

// Put stores t under its path, appending the path if it is new
func (s *TrackSet) Put(t *playlist.Track) {
	if _, ok := s.byPath[t.Path]; !ok {
		s.order = append(s.order, t.Path)
	}

	s.byPath[t.Path] = t
}

// Get returns the track stored for path
func (s *TrackSet) Get(path string) (*playlist.Track, bool) {
	t, ok := s.byPath[path]

	return t, ok
}

// Len returns the number of distinct tracks
func (s *TrackSet) Len() int {
	return len(s.order)
}

// Tracks returns the tracks in insertion order
func (s *TrackSet) Tracks() []*playlist.Track {
	tracks := make([]*playlist.Track, len(s.order))
	for i, path := range s.order {
		tracks[i] = s.byPath[path]
	}

	return tracks
}
