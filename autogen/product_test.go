package autogen

import (
	"reflect"
	"slices"
	"testing"
)

func TestProduct(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  [][]string
	}{
		{
			name:  "last list varies fastest",
			lists: [][]string{{"a", "b"}, {"1", "2", "3"}},
			want:  [][]string{{"a", "1"}, {"a", "2"}, {"a", "3"}, {"b", "1"}, {"b", "2"}, {"b", "3"}},
		},
		{
			name:  "single list",
			lists: [][]string{{"x", "y"}},
			want:  [][]string{{"x"}, {"y"}},
		},
		{
			name:  "empty list yields nothing",
			lists: [][]string{{"a"}, {}},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]string
			for c := range product(tt.lists) {
				got = append(got, slices.Clone(c))
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("product(%v) = %v, want %v", tt.lists, got, tt.want)
			}
		})
	}
}

func TestProductStopsEarly(t *testing.T) {
	count := 0
	for range product([][]string{{"a", "b", "c"}}) {
		count++
		if count == 2 {
			break
		}
	}

	if count != 2 {
		t.Errorf("Expected to stop after 2, got %d", count)
	}
}
