// ABOUTME: Bubbletea model for the receiver TUI
// ABOUTME: Shows listen address, relay counters, and volume state
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state.
type Model struct {
	// Socket
	listenAddr string

	// Relay counters
	received    uint64
	played      uint64
	empty       uint64
	bytesPlayed uint64

	// Playback
	volume int
	muted  bool

	// Dimensions
	width  int
	height int

	volumeCtrl *VolumeControl
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStats()
	s += m.renderControls()
	s += m.renderHelp()

	return s
}

// renderHeader renders the listen address.
func (m Model) renderHeader() string {
	addr := m.listenAddr
	if addr == "" {
		addr = "(not bound)"
	}

	return fmt.Sprintf(`┌─ pcmcast Receiver ───────────────────────────────────┐
│ Listening: %-41s │
│ Format:    pcm 48000Hz Stereo 16-bit%-17s │
├──────────────────────────────────────────────────────┤
`, addr, "")
}

// renderStats renders relay counters.
func (m Model) renderStats() string {
	return fmt.Sprintf("│ RX: %d  Played: %d  Empty: %d%-18s │\n"+
		"│ Bytes played: %d%-30s │\n",
		m.received, m.played, m.empty, "",
		m.bytesPlayed, "")
}

// renderControls renders volume state.
func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}

	volumeBar := renderBar(m.volume, 100, 10)

	return fmt.Sprintf("│ Volume: [%s] %d%%%s%-20s │\n",
		volumeBar, m.volume, muteIcon, "")
}

// renderHelp renders keyboard shortcuts.
func (m Model) renderHelp() string {
	return `│ ↑/↓:Volume  m:Mute  q:Quit                           │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		m.sendVolume()
	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	}

	return m, nil
}

// sendVolume pushes the current volume state to the control channel.
func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates model from status message.
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.ListenAddr != "" {
		m.listenAddr = msg.ListenAddr
	}
	m.received = msg.Received
	m.played = msg.Played
	m.empty = msg.Empty
	m.bytesPlayed = msg.BytesPlayed
}

// StatusMsg updates TUI state.
type StatusMsg struct {
	ListenAddr  string
	Received    uint64
	Played      uint64
	Empty       uint64
	BytesPlayed uint64
}

// renderBar draws a filled/empty volume bar.
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
