package termview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/zach-dev-waves/internal/motion"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(DefaultConfig())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func motionAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func TestModelSamplesOncePerFrame(t *testing.T) {
	m := newTestModel(t)
	now := time.Unix(100, 0)

	m.Update(motionAt(10, 5))
	m.Update(motionAt(20, 5))
	m.Update(motionAt(30, 6))
	if m.sampler.Len() != 0 {
		t.Fatal("sampled before a frame")
	}

	_, cmd := m.Update(frameMsg(now))
	if cmd == nil {
		t.Fatal("frame did not schedule the next one")
	}
	buf := m.sampler.CurrentBuffer()
	if len(buf) != 1 {
		t.Fatalf("buffer = %+v", buf)
	}
	if want := m.toUnits(30, 6); buf[0].Pos != want {
		t.Fatalf("sampled %v, want latest %v", buf[0].Pos, want)
	}
	if len(m.glyphs) != 1 {
		t.Fatalf("glyphs = %d", len(m.glyphs))
	}

	// The glyph retires once its transition ends even though the sampler keeps it.
	m.Update(frameMsg(now.Add(motion.Lifetime)))
	if len(m.glyphs) != 0 || m.sampler.Len() != 1 {
		t.Fatalf("glyphs=%d buffer=%d", len(m.glyphs), m.sampler.Len())
	}
}

func TestModelIgnoresClicks(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.queue.Len() != 0 {
		t.Fatal("press was treated as motion")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m.Update(motionAt(20, 8))
	m.Update(frameMsg(time.Unix(0, 0)))

	view := m.View()
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines, want 24", lines)
	}
	for _, want := range []string{"zach.dev", "waves 1/19", "@", "◉"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(motionAt(20, 8))
	m.Update(frameMsg(time.Unix(0, 0)))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if m.sampler.Len() != 0 {
		t.Fatal("c did not clear the trail")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestMagnetLeansTowardPointer(t *testing.T) {
	m := newTestModel(t)
	rect := m.badgeRect()
	c := rect.Center()
	col, row := m.toCell(c)
	m.Update(motionAt(col+3, row))
	for i := 0; i < 60; i++ {
		m.Update(frameMsg(time.Unix(0, int64(i)*int64(time.Second/60))))
	}
	if m.badgeOffset.X <= 0 {
		t.Fatalf("badge offset = %v, want a lean to the right", m.badgeOffset)
	}
}

func TestViewBeforeResize(t *testing.T) {
	if v := New(Config{}).View(); v != "" {
		t.Fatalf("view before size = %q", v)
	}
}
