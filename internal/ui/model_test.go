// ABOUTME: Tests for the receiver TUI model
// ABOUTME: Exercises update logic without running a program
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(nil)

	if m.volume != 100 {
		t.Errorf("expected default volume 100, got %d", m.volume)
	}
	if m.muted {
		t.Error("expected unmuted by default")
	}
}

func TestStatusMsgUpdatesCounters(t *testing.T) {
	m := NewModel(nil)

	updated, _ := m.Update(StatusMsg{
		ListenAddr:  "0.0.0.0:46000",
		Received:    10,
		Played:      8,
		Empty:       2,
		BytesPlayed: 32768,
	})

	got := updated.(Model)
	if got.listenAddr != "0.0.0.0:46000" {
		t.Errorf("expected listen addr set, got %q", got.listenAddr)
	}
	if got.received != 10 || got.played != 8 || got.empty != 2 {
		t.Errorf("counters not applied: %+v", got)
	}
	if got.bytesPlayed != 32768 {
		t.Errorf("expected 32768 bytes, got %d", got.bytesPlayed)
	}
}

func TestVolumeKeys(t *testing.T) {
	ctrl := NewVolumeControl()
	m := NewModel(ctrl)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	got := updated.(Model)

	if got.volume != 95 {
		t.Errorf("expected volume 95 after down, got %d", got.volume)
	}

	select {
	case change := <-ctrl.Changes:
		if change.Volume != 95 {
			t.Errorf("expected volume change 95, got %d", change.Volume)
		}
	default:
		t.Error("expected a volume change message")
	}
}

func TestVolumeClamped(t *testing.T) {
	m := NewModel(nil)

	// Up from 100 stays at 100.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if updated.(Model).volume != 100 {
		t.Errorf("volume should clamp at 100, got %d", updated.(Model).volume)
	}
}

func TestMuteKey(t *testing.T) {
	ctrl := NewVolumeControl()
	m := NewModel(ctrl)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	got := updated.(Model)

	if !got.muted {
		t.Error("expected muted after m key")
	}

	select {
	case change := <-ctrl.Changes:
		if !change.Muted {
			t.Error("expected muted change message")
		}
	default:
		t.Error("expected a change message")
	}
}

func TestQuitKeySignalsControl(t *testing.T) {
	ctrl := NewVolumeControl()
	m := NewModel(ctrl)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cmd == nil {
		t.Fatal("expected a quit command")
	}

	select {
	case <-ctrl.Quit:
		// Expected
	default:
		t.Error("expected quit signal on control channel")
	}
}

func TestViewBeforeSizeKnown(t *testing.T) {
	m := NewModel(nil)

	if m.View() != "Loading..." {
		t.Errorf("expected loading placeholder, got %q", m.View())
	}
}

func TestViewRendersCounters(t *testing.T) {
	m := NewModel(nil)

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	updated, _ := sized.(Model).Update(StatusMsg{
		ListenAddr: "0.0.0.0:46000",
		Received:   7,
		Played:     7,
	})

	view := updated.(Model).View()
	if !strings.Contains(view, "0.0.0.0:46000") {
		t.Error("view should show listen address")
	}
	if !strings.Contains(view, "RX: 7") {
		t.Error("view should show received counter")
	}
}

func TestRenderBar(t *testing.T) {
	full := renderBar(100, 100, 10)
	if strings.Contains(full, "░") {
		t.Error("full bar should have no empty cells")
	}

	empty := renderBar(0, 100, 10)
	if strings.Contains(empty, "█") {
		t.Error("empty bar should have no filled cells")
	}
}
