package termview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/zach-dev-waves/internal/motion"
)

// waveRadius is half the on-screen size of a wave at scale 1.
const waveRadius = 60.0

type cell struct {
	r     rune
	color string
}

type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, cells: make([]cell, w*h)}
}

func (c *canvas) set(x, y int, r rune, color string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, color: color}
}

func (c *canvas) text(x, y int, s, color string) {
	i := 0
	for _, r := range s {
		c.set(x+i, y, r, color)
		i++
	}
}

func (c *canvas) String() string {
	styles := map[string]lipgloss.Style{}
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.r == 0 {
				b.WriteByte(' ')
				continue
			}
			if cl.color == "" {
				b.WriteRune(cl.r)
				continue
			}
			st, ok := styles[cl.color]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(cl.color))
				styles[cl.color] = st
			}
			b.WriteString(st.Render(string(cl.r)))
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// shade picks a ring character for a glyph's opacity.
func shade(opacity float64) rune {
	switch {
	case opacity > 0.5:
		return '@'
	case opacity > 0.3:
		return 'o'
	case opacity > 0.15:
		return '*'
	default:
		return '.'
	}
}

func (m *Model) drawGlyph(c *canvas, g motion.Glyph) {
	color := g.Wave.Color.Hex()
	r := waveRadius * g.Scale
	ch := shade(g.Opacity)

	// Enough samples to close the ring at this radius.
	steps := int(2*math.Pi*r/math.Min(m.cfg.CellWidth, m.cfg.CellHeight)) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := m.toCell(g.Wave.Pos)
		dx := int(math.Round(r * math.Cos(a) / m.cfg.CellWidth))
		dy := int(math.Round(r * math.Sin(a) / m.cfg.CellHeight))
		c.set(x+dx, y+dy, ch, color)
	}

	// Heading marker, turned with the glyph's rotation.
	rad := g.Rotation * math.Pi / 180
	x, y := m.toCell(g.Wave.Pos)
	c.set(x+int(math.Round(r*math.Cos(rad)/m.cfg.CellWidth)),
		y+int(math.Round(r*math.Sin(rad)/m.cfg.CellHeight)), '+', color)
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 1 {
		return ""
	}
	c := newCanvas(m.width, m.height-1)

	for _, g := range m.glyphs {
		m.drawGlyph(c, g)
	}

	rest := m.badgeRect().Center()
	bx, by := m.toCell(rest)
	ox := int(math.Round(m.badgeOffset.X / m.cfg.CellWidth))
	oy := int(math.Round(m.badgeOffset.Y / m.cfg.CellHeight))
	c.text(bx-len(m.cfg.Badge)/2+ox, by+oy, m.cfg.Badge, "#ffffff")

	gx, gy := m.toCell(m.glowPos)
	c.set(gx, gy, '◉', m.sampler.GlowColor().Hex())

	st := m.sampler.Stats()
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(
		fmt.Sprintf("waves %d/%d  visible %d  accepted %d  ignored %d  coalesced %d  c clear  q quit",
			m.sampler.Len(), m.sampler.Options().Capacity, len(m.glyphs),
			st.Accepted, st.Ignored, m.coalescer.Coalesced()))

	return c.String() + "\n" + status
}
