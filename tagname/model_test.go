package tagname

import (
	"errors"
	"reflect"
	"testing"
)

func TestTagsContains(t *testing.T) {
	track := Tags{"genre": "Acid", "rating": "4", "mood": "Dark"}

	tests := []struct {
		name  string
		other Tags
		want  bool
	}{
		{"subset", Tags{"genre": "Acid", "rating": "4"}, true},
		{"empty combination", Tags{}, true},
		{"different value", Tags{"genre": "Techno"}, false},
		{"missing key", Tags{"energy": "5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := track.Contains(tt.other); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestTagsMergeExcludes(t *testing.T) {
	tags := Tags{"genre": "Acid", "rating": "2"}
	tags.Merge(Tags{"genre": "Techno", "rating": "5", "mood": "Dark"}, "rating")

	want := Tags{"genre": "Techno", "rating": "2", "mood": "Dark"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("Merge result = %v, want %v", tags, want)
	}
}

func TestTagsCloneIsIndependent(t *testing.T) {
	original := Tags{"genre": "Acid"}
	clone := original.Clone()
	clone["genre"] = "Techno"

	if original["genre"] != "Acid" {
		t.Error("Mutating the clone changed the original")
	}

	var empty Tags
	if c := empty.Clone(); c == nil {
		t.Error("Clone of nil tags should be writable")
	}
}

func TestModel(t *testing.T) {
	model := Model{"rating": {"1", "2"}, "genre": {"Acid"}}

	if got := model.Keys(); !reflect.DeepEqual(got, []string{"genre", "rating"}) {
		t.Errorf("Keys() = %v", got)
	}

	if !model.Legal("rating", "2") || model.Legal("rating", "3") || model.Legal("mood", "Dark") {
		t.Error("Legal() returned unexpected result")
	}

	if err := model.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	model["x"] = []string{"y"}
	if err := model.Validate(); !errors.Is(err, ErrShortKey) {
		t.Errorf("Expected ErrShortKey, got %v", err)
	}
}
