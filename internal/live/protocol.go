package live

import (
	"github.com/Zachkp/zach-dev-waves/internal/motion"
	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

const msgMove = "move"

// clientMessage is sent by the browser for each pointer movement.
type clientMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type waveMessage struct {
	ID    uint64  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
	Color string  `json:"color"`
}

// frameMessage carries the sampler state after a frame. Waves is the
// whole retained buffer; Fresh holds only the waves no earlier frame
// carried, which is all a renderer should start animating.
type frameMessage struct {
	Type    string        `json:"type"`
	Waves   []waveMessage `json:"waves"`
	Fresh   []waveMessage `json:"fresh"`
	Pointer trail.Point   `json:"pointer"`
	GlowPos trail.Point   `json:"glow_pos"`
	Glow    string        `json:"glow"`
}

// newFrameMessage builds a frame for s. Waves with IDs above sentMax are
// also listed as fresh.
func newFrameMessage(s *trail.Sampler, sentMax uint64, glowPos trail.Point) frameMessage {
	buf := s.CurrentBuffer()
	waves := make([]waveMessage, len(buf))
	fresh := []waveMessage{}
	for i, w := range buf {
		waves[i] = waveMessage{
			ID:    w.ID,
			X:     w.Pos.X,
			Y:     w.Pos.Y,
			Angle: w.Angle,
			Color: w.Color.String(),
		}
		if w.ID > sentMax {
			fresh = append(fresh, waves[i])
		}
	}
	return frameMessage{
		Type:    "frame",
		Waves:   waves,
		Fresh:   fresh,
		Pointer: s.Pointer(),
		GlowPos: glowPos,
		Glow:    s.GlowColor().String(),
	}
}

// Description tells a client how the server samples its trail.
type Description struct {
	Threshold  float64  `json:"threshold"`
	Capacity   int      `json:"capacity"`
	LifetimeMS int64    `json:"lifetime_ms"`
	FrameRate  int      `json:"frame_rate"`
	Palette    []string `json:"palette"`
}

func describe(opts trail.Options, fps int) Description {
	palette := make([]string, len(opts.Palette))
	for i, c := range opts.Palette {
		palette[i] = c.String()
	}
	return Description{
		Threshold:  opts.Threshold,
		Capacity:   opts.Capacity,
		LifetimeMS: motion.Lifetime.Milliseconds(),
		FrameRate:  fps,
		Palette:    palette,
	}
}
