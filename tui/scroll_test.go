// ABOUTME: Tests for list scrolling logic
// ABOUTME: Verifies cursor-to-middle vim-style scrolling behavior

package tui

import "testing"

func TestScrollOffset(t *testing.T) {
	// Viewport with 10 lines, 50 total items
	tests := []struct {
		name   string
		cursor int
		want   int
	}{
		{"top: cursor at 0", 0, 0},
		{"top: just before middle", 4, 0},
		{"middle: at middle", 5, 0},
		{"middle: one past middle", 6, 1},
		{"middle: deep", 25, 20},
		{"bottom: offset pinned", 45, 40},
		{"bottom: last item", 49, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollOffset(10, tt.cursor, 50); got != tt.want {
				t.Errorf("scrollOffset(10, %d, 50) = %d, want %d", tt.cursor, got, tt.want)
			}
		})
	}
}

func TestScrollOffsetFitsOnScreen(t *testing.T) {
	for cursor := range 8 {
		if got := scrollOffset(10, cursor, 8); got != 0 {
			t.Errorf("cursor %d: offset = %d, want 0 when list fits", cursor, got)
		}
	}

	if got := scrollOffset(0, 3, 8); got != 0 {
		t.Errorf("zero height: offset = %d, want 0", got)
	}
}
