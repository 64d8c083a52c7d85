package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

// Spring moves a point toward a target with damped spring motion.
type Spring struct {
	spring harmonica.Spring
	pos    trail.Point
	vel    trail.Point
}

// NewSpring builds a spring stepped fps times a second from physical
// stiffness, damping and mass.
func NewSpring(fps int, stiffness, damping, mass float64) *Spring {
	freq := math.Sqrt(stiffness / mass)
	ratio := damping / (2 * math.Sqrt(stiffness*mass))
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), freq, ratio)}
}

// NewGlow returns the spring that drags the cursor glow behind the pointer.
func NewGlow(fps int) *Spring {
	return NewSpring(fps, 300, 25, 1)
}

// Step advances one frame toward target and returns the new position.
func (s *Spring) Step(target trail.Point) trail.Point {
	s.pos.X, s.vel.X = s.spring.Update(s.pos.X, s.vel.X, target.X)
	s.pos.Y, s.vel.Y = s.spring.Update(s.pos.Y, s.vel.Y, target.Y)
	return s.pos
}

func (s *Spring) Pos() trail.Point { return s.pos }

// Jump places the spring at p with no velocity.
func (s *Spring) Jump(p trail.Point) {
	s.pos = p
	s.vel = trail.Point{}
}
