// ABOUTME: Tag model and tag mapping types shared by the codec and the playlist manager
// ABOUTME: Provides legal-value lookups, cloning, superset matching and merging of tag mappings

package tagname

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"
)

// Model maps each tag key to its ordered list of legal values.
// Value order drives generation order.
type Model map[string][]string

// Keys returns the model's tag keys in ascending order
func (m Model) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Legal reports whether value is one of the legal values for key
func (m Model) Legal(key, value string) bool {
	return slices.Contains(m[key], value)
}

// Validate checks every key is long enough to be abbreviated
func (m Model) Validate() error {
	for _, k := range m.Keys() {
		if err := checkKey(k); err != nil {
			return err
		}
	}

	return nil
}

// Tags maps a tag key to a single value
type Tags map[string]string

// Clone returns an independently owned copy. A nil mapping clones to an empty one.
func (t Tags) Clone() Tags {
	c := make(Tags, len(t))
	maps.Copy(c, t)

	return c
}

// Contains reports whether t holds every key of other set to the same value
func (t Tags) Contains(other Tags) bool {
	for k, v := range other {
		if got, ok := t[k]; !ok || got != v {
			return false
		}
	}

	return true
}

// Merge copies other into t, overwriting existing values, skipping the excluded keys
func (t Tags) Merge(other Tags, exclude ...string) {
	for k, v := range other {
		if slices.Contains(exclude, k) {
			continue
		}

		t[k] = v
	}
}

// checkKey enforces the two-character minimum used for abbreviations
func checkKey(key string) error {
	if utf8.RuneCountInString(key) < 2 {
		return fmt.Errorf("%w: %q", ErrShortKey, key)
	}

	return nil
}
