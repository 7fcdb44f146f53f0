// ABOUTME: Cursor-to-middle scrolling for the playlist list pane
// ABOUTME: Implements vim/less style scrolling behavior

package tui

// scrollOffset returns the first visible row for a list of total rows shown in height
// lines with the cursor at cursor.
//
// Scrolling behavior:
// - top: cursor moves freely, list stays at 0
// - middle: cursor stays at the middle row, content scrolls
// - bottom: list shows its end, cursor moves down
func scrollOffset(height, cursor, total int) int {
	if total <= height || height < 1 {
		return 0
	}

	middle := height / 2
	if cursor < middle {
		return 0
	}

	maxOffset := total - height
	if cursor-middle < maxOffset {
		return cursor - middle
	}

	return maxOffset
}
