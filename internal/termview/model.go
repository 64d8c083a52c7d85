// Package termview draws a pointer trail in the terminal from mouse
// motion events.
package termview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/zach-dev-waves/internal/motion"
	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

type Config struct {
	Options trail.Options
	FPS     int
	// CellWidth and CellHeight convert terminal cells to trail units.
	CellWidth  float64
	CellHeight float64
	Badge      string
}

func DefaultConfig() Config {
	return Config{
		Options:    trail.DefaultOptions(),
		FPS:        60,
		CellWidth:  8,
		CellHeight: 16,
		Badge:      " zach.dev ",
	}
}

type frameMsg time.Time

// Model is the bubbletea model for the terminal trail.
type Model struct {
	cfg       Config
	sampler   *trail.Sampler
	queue     trail.FrameQueue
	coalescer *trail.Coalescer
	stage     *motion.Stage
	glow      *motion.Spring
	magnet    *motion.Magnet

	width, height int
	glowPos       trail.Point
	badgeOffset   trail.Point
	glyphs        []motion.Glyph
}

func New(cfg Config) *Model {
	def := DefaultConfig()
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = def.CellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = def.CellHeight
	}
	if cfg.Badge == "" {
		cfg.Badge = def.Badge
	}

	m := &Model{
		cfg:     cfg,
		sampler: trail.NewSampler(cfg.Options),
		stage:   motion.NewStage(motion.DefaultTransition()),
		glow:    motion.NewGlow(cfg.FPS),
		magnet:  motion.NewMagnet(motion.Rect{}, motion.DefaultMagnetStrength, cfg.FPS),
	}
	m.coalescer = trail.NewCoalescer(m.sampler, &m.queue)
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.magnet.Rect = m.badgeRect()
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion {
			return m, nil
		}
		p := m.toUnits(msg.X, msg.Y)
		m.coalescer.Move(p)
		m.magnet.Pointer(p)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.coalescer.Cancel()
			m.sampler.Reset()
		}
	case frameMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// step advances one frame: sample, stage new waves, ease the followers.
func (m *Model) step(now time.Time) {
	m.queue.Tick()
	m.stage.Sync(m.sampler.CurrentBuffer(), now)
	m.glyphs = m.stage.Frame(now)
	m.glowPos = m.glow.Step(m.sampler.Pointer())
	m.badgeOffset = m.magnet.Step()
}

func (m *Model) toUnits(col, row int) trail.Point {
	return trail.Point{
		X: (float64(col) + 0.5) * m.cfg.CellWidth,
		Y: (float64(row) + 0.5) * m.cfg.CellHeight,
	}
}

func (m *Model) toCell(p trail.Point) (int, int) {
	return int(p.X / m.cfg.CellWidth), int(p.Y / m.cfg.CellHeight)
}

// badgeRect is the badge's resting box in trail units, padded so the
// magnet catches the pointer slightly before it reaches the text.
func (m *Model) badgeRect() motion.Rect {
	w := float64(len(m.cfg.Badge)+8) * m.cfg.CellWidth
	h := 5 * m.cfg.CellHeight
	cx := float64(m.width) * m.cfg.CellWidth / 2
	cy := float64(m.height) * m.cfg.CellHeight / 2
	return motion.Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}
