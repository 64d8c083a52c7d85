package motion

import (
	"time"

	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

type staged struct {
	wave trail.Wave
	born time.Time
}

// Stage is a renderer's set of visible waves. It retires a wave once its
// exit transition has finished, whether or not the sampler still holds it.
// Wave IDs must increase monotonically, as a Sampler assigns them.
type Stage struct {
	tr      Transition
	glyphs  []staged
	maxSeen uint64
}

func NewStage(tr Transition) *Stage {
	return &Stage{tr: tr}
}

// Sync adds waves the stage has not seen before and reports how many.
func (s *Stage) Sync(waves []trail.Wave, now time.Time) int {
	added := 0
	for _, w := range waves {
		if w.ID <= s.maxSeen {
			continue
		}
		s.glyphs = append(s.glyphs, staged{wave: w, born: now})
		s.maxSeen = w.ID
		added++
	}
	return added
}

// Frame returns the visible glyphs at now, oldest first, and drops the
// ones whose transition has ended.
func (s *Stage) Frame(now time.Time) []Glyph {
	out := make([]Glyph, 0, len(s.glyphs))
	kept := s.glyphs[:0]
	for _, g := range s.glyphs {
		age := now.Sub(g.born)
		if age >= s.tr.Duration {
			continue
		}
		kept = append(kept, g)
		out = append(out, s.tr.At(g.wave, age))
	}
	clear(s.glyphs[len(kept):])
	s.glyphs = kept
	return out
}

func (s *Stage) Len() int { return len(s.glyphs) }
