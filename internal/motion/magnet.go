package motion

import "github.com/Zachkp/zach-dev-waves/internal/trail"

const DefaultMagnetStrength = 0.3

// Rect is an axis-aligned box in viewport units.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() trail.Point {
	return trail.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Contains(p trail.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// MagneticOffset is how far an element at r leans toward the pointer.
func MagneticOffset(p trail.Point, r Rect, strength float64) trail.Point {
	c := r.Center()
	return trail.Point{X: (p.X - c.X) * strength, Y: (p.Y - c.Y) * strength}
}

// Magnet eases an element toward the pointer while it hovers, and back
// to rest when it leaves.
type Magnet struct {
	Rect     Rect
	Strength float64
	target   trail.Point
	spring   *Spring
}

func NewMagnet(r Rect, strength float64, fps int) *Magnet {
	return &Magnet{
		Rect:     r,
		Strength: strength,
		spring:   NewSpring(fps, 150, 15, 0.1),
	}
}

// Pointer updates the magnet with the latest pointer position.
func (m *Magnet) Pointer(p trail.Point) {
	if !m.Rect.Contains(p) {
		m.Leave()
		return
	}
	m.target = MagneticOffset(p, m.Rect, m.Strength)
}

func (m *Magnet) Leave() {
	m.target = trail.Point{}
}

// Step advances the offset one frame.
func (m *Magnet) Step() trail.Point {
	return m.spring.Step(m.target)
}

func (m *Magnet) Target() trail.Point { return m.target }
