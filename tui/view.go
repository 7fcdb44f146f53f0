// ABOUTME: Rendering functions and styles for the playlist browser
// ABOUTME: Handles all visual formatting and display logic

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := titleStyle.Render("Generated playlists")

	if len(m.playlists) > 0 {
		title += "  " + countStyle.Render(m.playlists[m.cursor].Name)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.renderList()),
		paneStyle.Render(m.tracks.View()),
	)

	return strings.Join([]string{
		title,
		panes,
		statusStyle.Render(m.status),
		m.renderHelp(),
	}, "\n")
}

// renderList renders the visible window of playlist names with track counts
func (m model) renderList() string {
	height := m.paneHeight()
	offset := scrollOffset(height, m.cursor, len(m.playlists))
	end := min(offset+height, len(m.playlists))

	lines := make([]string, 0, height)

	for i := offset; i < end; i++ {
		p := m.playlists[i]
		name := fmt.Sprintf("%-*s", listWidth-8, truncate(p.Name, listWidth-8))
		count := fmt.Sprintf("%5d", len(p.Tracks))

		if i == m.cursor {
			lines = append(lines, selectedStyle.Render(name+" "+count))
		} else {
			lines = append(lines, name+" "+countStyle.Render(count))
		}
	}

	// Pad so both panes have the same height
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", listWidth-2))
	}

	return strings.Join(lines, "\n")
}

func (m model) renderHelp() string {
	parts := make([]string, 0, len(keys.help()))
	for _, b := range keys.help() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}

	return helpStyle.Render(strings.Join(parts, " • "))
}

// truncate shortens s to maxLen runes, adding "..." if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:max(maxLen, 0)])
	}

	return string(r[:maxLen-3]) + "..."
}
