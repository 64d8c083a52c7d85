// Package trail turns a stream of pointer positions into a bounded trail
// of waves for a renderer to animate.
package trail

import (
	"math"
	"time"
)

// Point is a position in viewport units.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Wave is one accepted trail sample.
type Wave struct {
	ID    uint64
	Pos   Point
	Angle float64 // degrees, direction of travel from the previous wave
	Color Color
	// CreatedAt is when the sampler accepted the wave.
	CreatedAt time.Time
}

// Stats counts what a Sampler did with its input.
type Stats struct {
	Accepted uint64
	Ignored  uint64
}

// Sampler keeps the most recent waves produced by pointer movement.
// It is not safe for concurrent use; a single goroutine owns it.
type Sampler struct {
	opts     Options
	buf      *ring[Wave]
	last     Point
	pointer  Point
	colorIdx int
	nextID   uint64
	stats    Stats
	now      func() time.Time
}

// NewSampler returns a sampler for opts. Invalid options fall back to
// the defaults field by field.
func NewSampler(opts Options) *Sampler {
	def := DefaultOptions()
	if opts.Threshold <= 0 {
		opts.Threshold = def.Threshold
	}
	if opts.Capacity < 1 {
		opts.Capacity = def.Capacity
	}
	if len(opts.Palette) == 0 {
		opts.Palette = def.Palette
	}
	return &Sampler{
		opts:    opts,
		buf:     newRing[Wave](opts.Capacity),
		last:    opts.Origin,
		pointer: opts.Origin,
		now:     time.Now,
	}
}

func (s *Sampler) Options() Options { return s.opts }

// Track records the raw pointer position without sampling it.
func (s *Sampler) Track(p Point) {
	s.pointer = p
}

// OnPointerMove tracks p and, if it lies at least Threshold away from the
// last accepted position, appends a wave for it. The wave is returned
// with ok set when one was created.
func (s *Sampler) OnPointerMove(p Point) (w Wave, ok bool) {
	s.pointer = p

	dx, dy := p.X-s.last.X, p.Y-s.last.Y
	if math.Hypot(dx, dy) < s.opts.Threshold {
		s.stats.Ignored++
		return Wave{}, false
	}

	s.nextID++
	w = Wave{
		ID:        s.nextID,
		Pos:       p,
		Angle:     math.Atan2(dy, dx) * 180 / math.Pi,
		Color:     s.opts.Palette[s.colorIdx],
		CreatedAt: s.now(),
	}
	s.buf.push(w)
	s.colorIdx = (s.colorIdx + 1) % len(s.opts.Palette)
	s.last = p
	s.stats.Accepted++
	return w, true
}

// CurrentBuffer returns the retained waves, oldest first.
func (s *Sampler) CurrentBuffer() []Wave {
	return s.buf.slice()
}

func (s *Sampler) Len() int { return s.buf.len() }

// Pointer is the latest raw pointer position, sampled or not.
func (s *Sampler) Pointer() Point { return s.pointer }

// GlowColor is the colour the next wave will take.
func (s *Sampler) GlowColor() Color { return s.opts.Palette[s.colorIdx] }

func (s *Sampler) Stats() Stats { return s.stats }

// Reset drops all waves and returns the sampler to its origin.
func (s *Sampler) Reset() {
	s.buf.reset()
	s.last = s.opts.Origin
	s.pointer = s.opts.Origin
	s.colorIdx = 0
}
