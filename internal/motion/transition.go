// Package motion holds the rendering-side animation of a pointer trail:
// how a wave fades out, when a renderer retires it, and the spring
// followers behind the cursor glow and magnetic hover.
package motion

import (
	"time"

	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

// Lifetime is how long a wave stays on screen after it first appears.
const Lifetime = 1600 * time.Millisecond

// Transition describes a wave's exit animation.
type Transition struct {
	Duration    time.Duration
	ScaleFrom   float64
	ScaleTo     float64
	OpacityFrom float64
	OpacityTo   float64
	Spin        float64 // degrees added to the wave angle over the animation
	BlurTo      float64
}

func DefaultTransition() Transition {
	return Transition{
		Duration:    Lifetime,
		ScaleFrom:   0.4,
		ScaleTo:     4.8,
		OpacityFrom: 0.7,
		OpacityTo:   0,
		Spin:        60,
		BlurTo:      8,
	}
}

// Glyph is a wave as drawn at one instant.
type Glyph struct {
	Wave     trail.Wave
	Age      time.Duration
	Scale    float64
	Opacity  float64
	Rotation float64
	Blur     float64
}

// Progress returns the eased animation progress in [0, 1].
func (t Transition) Progress(age time.Duration) float64 {
	if t.Duration <= 0 || age >= t.Duration {
		return 1
	}
	if age <= 0 {
		return 0
	}
	return easeOut(float64(age) / float64(t.Duration))
}

// At returns the glyph for w after age has elapsed.
func (t Transition) At(w trail.Wave, age time.Duration) Glyph {
	p := t.Progress(age)
	return Glyph{
		Wave:     w,
		Age:      age,
		Scale:    lerp(t.ScaleFrom, t.ScaleTo, p),
		Opacity:  lerp(t.OpacityFrom, t.OpacityTo, p),
		Rotation: w.Angle + t.Spin*p,
		Blur:     t.BlurTo * p,
	}
}

func easeOut(x float64) float64 {
	return 1 - (1-x)*(1-x)
}

func lerp(a, b, p float64) float64 {
	return a*(1-p) + b*p
}
