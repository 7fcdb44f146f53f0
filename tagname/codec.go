// ABOUTME: Reversible encoding between tag mappings and playlist names
// ABOUTME: Builds names like "02_RaGe ge=Acid ra=4" and decodes them back against a tag model

// Package tagname encodes tag key/value pairs into playlist names and decodes them back.
//
// A name has the form "<index>_<abbrev> <k1>=<v1> <k2>=<v2>". The index is zero-padded to two
// digits, the abbreviation is two characters per key of the generation group, and the tokens
// carry the first two characters of each key (sorted) with spaces in values replaced by
// underscores. Decoding resolves the short keys against a Model by unique prefix and silently
// drops tokens it cannot identify, so hand-edited names may carry incidental text.
package tagname

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrMissingPrefix is returned for names without the space that ends the prefix
	ErrMissingPrefix = errors.New("playlist name has no prefix")

	// ErrShortKey is returned when a tag key has fewer than two characters
	ErrShortKey = errors.New("tag key shorter than two characters")
)

var tokenRegex = regexp.MustCompile(`([a-zA-Z0-9_-]+)=([a-zA-Z0-9_-]+)`)

// NameWithoutPrefix encodes tags as space separated tokens sorted by key.
// Example: {"genre": "Deep House", "rating": "4"} -> "ge=Deep_House ra=4"
func NameWithoutPrefix(tags Tags) (string, error) {
	keys := slices.Sorted(maps.Keys(tags))

	tokens := make([]string, 0, len(keys))

	for _, k := range keys {
		if err := checkKey(k); err != nil {
			return "", err
		}

		r := []rune(k)
		tokens = append(tokens, fmt.Sprintf("%c%c=%s", r[0], r[1], strings.ReplaceAll(tags[k], " ", "_")))
	}

	return strings.Join(tokens, " "), nil
}

// Prefix builds the index and abbreviation segment, keys taken in the given order.
// Example: (["rating", "genre"], 2) -> "02_RaGe "
func Prefix(keys []string, index int) (string, error) {
	var abbrev strings.Builder

	for _, k := range keys {
		if err := checkKey(k); err != nil {
			return "", err
		}

		r := []rune(k)
		abbrev.WriteRune(unicode.ToUpper(r[0]))
		abbrev.WriteRune(r[1])
	}

	return fmt.Sprintf("%02d_%s ", index, abbrev.String()), nil
}

// NameFromTags builds a full playlist name. Abbreviation keys follow ascending key order
// since a map has no order of its own; use NameFromGroup to choose the order.
func NameFromTags(tags Tags, index int) (string, error) {
	keys := slices.Sorted(maps.Keys(tags))

	return NameFromGroup(keys, tags, index)
}

// NameFromGroup builds a full playlist name with the abbreviation in keys order
func NameFromGroup(keys []string, tags Tags, index int) (string, error) {
	prefix, err := Prefix(keys, index)
	if err != nil {
		return "", err
	}

	rest, err := NameWithoutPrefix(tags)
	if err != nil {
		return "", err
	}

	return prefix + rest, nil
}

// TrimPrefix returns everything after the first space.
// Example: "02_RaGe ge=Acid ra=4" -> "ge=Acid ra=4"
func TrimPrefix(name string) (string, error) {
	_, rest, found := strings.Cut(name, " ")
	if !found {
		return "", fmt.Errorf("%w: %q", ErrMissingPrefix, name)
	}

	return rest, nil
}

// HasPrefix reports whether name can be passed to TrimPrefix
func HasPrefix(name string) bool {
	return strings.Contains(name, " ")
}

// TagsFromName decodes the tags of a playlist name.
// Tokens whose key is not uniquely identified or whose value is not legal are dropped.
func TagsFromName(name string, model Model) (Tags, error) {
	rest, err := TrimPrefix(name)
	if err != nil {
		return nil, err
	}

	keys := model.Keys()
	tags := Tags{}

	for _, m := range tokenRegex.FindAllStringSubmatch(rest, -1) {
		key, ok := IdentifyKey(m[1], keys)
		if !ok {
			continue
		}

		value := strings.ReplaceAll(m[2], "_", " ")
		if model.Legal(key, value) {
			tags[key] = value
		}
	}

	return tags, nil
}

// IdentifyKey returns the single key that token is a prefix of.
// The first character compares case-insensitively. Zero or several candidates is no match.
func IdentifyKey(token string, keys []string) (string, bool) {
	match := ""
	count := 0

	for _, k := range keys {
		if hasFoldedPrefix(k, token) {
			match = k
			count++
		}
	}

	if count != 1 {
		return "", false
	}

	return match, true
}

func hasFoldedPrefix(key, token string) bool {
	if token == "" {
		return false
	}

	tr, tn := utf8.DecodeRuneInString(token)
	kr, kn := utf8.DecodeRuneInString(key)

	if kn == 0 || unicode.ToLower(tr) != unicode.ToLower(kr) {
		return false
	}

	return strings.HasPrefix(key[kn:], token[tn:])
}
