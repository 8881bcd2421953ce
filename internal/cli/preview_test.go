package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/lnzlayouts/pkg/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m PreviewModel, keys ...string) PreviewModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(PreviewModel)
	}
	return m
}

func previewScene(kind config.Kind) config.Scene {
	scene := config.Default()
	scene.Kind = kind
	scene.Items = 5
	scene.Viewport.Width, scene.Viewport.Height = 300, 200
	return scene
}

func TestPreviewScrollAndSettle(t *testing.T) {
	m := NewPreviewModel(previewScene(config.KindSnap))

	m = press(m, "right", "right", "right", "right", "right", "right", "right", "right")
	if got := m.Scroll.ContentOffset().X; got != 200 {
		t.Fatalf("offset after 8 steps = %v, want 200", got)
	}
	m = press(m, "down")
	if got := m.Scroll.ContentOffset().Y; got != 0 {
		t.Errorf("row layout scrolled vertically to %v", got)
	}

	m = press(m, "enter")
	if got := m.Scroll.ContentOffset().X; got != 216 {
		t.Errorf("settled at %v, want 216", got)
	}
	if !strings.Contains(m.View(), "focus 2") {
		t.Errorf("view should report focus 2:\n%s", m.View())
	}
}

func TestPreviewNextLayout(t *testing.T) {
	m := NewPreviewModel(previewScene(config.KindSnap))
	m = press(m, "tab")
	if m.Scene.Kind != config.KindInfinite {
		t.Errorf("kind after tab = %q, want infinite", m.Scene.Kind)
	}
	m = press(m, "tab", "tab", "tab")
	if m.Scene.Kind != config.KindSnap {
		t.Errorf("kind after a full cycle = %q, want snap", m.Scene.Kind)
	}
}

func TestPreviewSwipe(t *testing.T) {
	m := NewPreviewModel(previewScene(config.KindSnap))
	m = press(m, "d")
	if !strings.Contains(m.Status, "stack") {
		t.Errorf("status = %q, want a hint about the stack layout", m.Status)
	}

	m = NewPreviewModel(previewScene(config.KindStack))
	m = press(m, "d")
	if got := len(m.Scroll.Removed()); got != 1 {
		t.Fatalf("%d items removed, want 1", got)
	}
	if m.Scroll.NumberOfItems(0) != 4 {
		t.Errorf("%d items left, want 4", m.Scroll.NumberOfItems(0))
	}
}

func TestPreviewQuit(t *testing.T) {
	m := NewPreviewModel(previewScene(config.KindCarousel))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewStrip(t *testing.T) {
	m := NewPreviewModel(previewScene(config.KindSnap))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 34, Height: 20})
	m = next.(PreviewModel)
	if m.Width != 30 {
		t.Fatalf("Width = %d, want 30", m.Width)
	}

	strip := m.strip()
	for _, digit := range []string{"0", "1"} {
		if !strings.Contains(strip, digit) {
			t.Errorf("strip %q should mark item %s", strip, digit)
		}
	}
}
