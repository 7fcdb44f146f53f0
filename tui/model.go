// ABOUTME: Bubble Tea model for browsing generated playlists before writing them
// ABOUTME: Left pane lists playlists with track counts, right pane scrolls the selected tracks

// Package tui provides an interactive browser for generated playlists.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"autoplaylist/playlist"
)

const (
	listWidth     = 48 // Playlist pane width including count column
	panelPadding  = 4  // Borders and gap between panes
	totalUIChrome = 6  // Title, blank line, status, help and spacing
	minPaneHeight = 3
	minPaneWidth  = 20
)

// Options contains configuration for running the TUI
type Options struct {
	OutputDir string // Shown in the status line
	DryRun    bool   // If true, writing is disabled
}

// WriteFunc persists generated playlists and returns the written paths
type WriteFunc func(playlists []*playlist.Playlist) ([]string, error)

type writtenMsg struct {
	paths []string
	err   error
}

type model struct {
	playlists []*playlist.Playlist
	opts      Options
	write     WriteFunc

	cursor int
	tracks viewport.Model
	width  int
	height int
	ready  bool
	status string
}

// Run starts the browser and blocks until the user quits
func Run(playlists []*playlist.Playlist, opts Options, write WriteFunc) error {
	p := tea.NewProgram(initModel(playlists, opts, write), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func initModel(playlists []*playlist.Playlist, opts Options, write WriteFunc) model {
	status := fmt.Sprintf("%d generated playlists", len(playlists))
	if opts.DryRun {
		status += " (dry run)"
	}

	return model{
		playlists: playlists,
		opts:      opts,
		write:     write,
		tracks:    viewport.New(minPaneWidth, minPaneHeight),
		status:    status,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tracks.Width = max(msg.Width-listWidth-panelPadding, minPaneWidth)
		m.tracks.Height = m.paneHeight()
		m.ready = true
		m.refreshTracks()

		return m, nil

	case writtenMsg:
		if msg.err != nil {
			m.status = "Write failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Wrote %d playlists to %s", len(msg.paths), m.opts.OutputDir)
		}

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(m.cursor - 1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(m.cursor + 1)

	case key.Matches(msg, keys.Top):
		m.moveCursor(0)

	case key.Matches(msg, keys.Bottom):
		m.moveCursor(len(m.playlists) - 1)

	case key.Matches(msg, keys.PageUp):
		m.tracks.SetYOffset(m.tracks.YOffset - m.tracks.Height)

	case key.Matches(msg, keys.PageDown):
		m.tracks.SetYOffset(m.tracks.YOffset + m.tracks.Height)

	case key.Matches(msg, keys.Write):
		if m.opts.DryRun {
			m.status = "Dry run: nothing written"
			return m, nil
		}

		m.status = "Writing..."

		return m, m.writeCmd()
	}

	return m, nil
}

func (m model) writeCmd() tea.Cmd {
	playlists := m.playlists
	write := m.write

	return func() tea.Msg {
		paths, err := write(playlists)
		return writtenMsg{paths: paths, err: err}
	}
}

func (m *model) moveCursor(pos int) {
	if len(m.playlists) == 0 {
		return
	}

	m.cursor = min(max(pos, 0), len(m.playlists)-1)
	m.refreshTracks()
}

func (m *model) paneHeight() int {
	return max(m.height-totalUIChrome, minPaneHeight)
}

// refreshTracks shows the selected playlist's tracks from the top
func (m *model) refreshTracks() {
	m.tracks.SetContent(m.trackContent())
	m.tracks.GotoTop()
}

func (m model) trackContent() string {
	if len(m.playlists) == 0 {
		return "No playlists generated. Tag some tracks first."
	}

	var b strings.Builder

	for i, t := range m.playlists[m.cursor].Tracks {
		fmt.Fprintf(&b, "%3d  %s\n", i+1, truncate(t.DisplayName(), m.tracks.Width-5))
	}

	return b.String()
}
