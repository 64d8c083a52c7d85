package live

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/zach-dev-waves/internal/motion"
	"github.com/Zachkp/zach-dev-waves/internal/store"
	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
	moveBacklog    = 64
	// glowEpsilon is the smallest glow movement worth a frame.
	glowEpsilon = 0.05
)

type session struct {
	conn      *websocket.Conn
	sampler   *trail.Sampler
	queue     trail.FrameQueue
	coalescer *trail.Coalescer
	glow      *motion.Spring
	interval  time.Duration

	started time.Time
	moves   int64
	frames  int64

	sentPointer  trail.Point
	sentGlow     trail.Point
	sentAccepted uint64
	sentMaxID    uint64
	sentOnce     bool
}

func newSession(conn *websocket.Conn, opts trail.Options, fps int) *session {
	s := &session{
		conn:     conn,
		sampler:  trail.NewSampler(opts),
		glow:     motion.NewGlow(fps),
		interval: time.Second / time.Duration(fps),
		started:  time.Now(),
	}
	s.coalescer = trail.NewCoalescer(s.sampler, &s.queue)
	return s
}

func (s *session) run(ctx context.Context) {
	defer s.conn.Close()

	done := make(chan struct{})
	defer close(done)
	moves := make(chan trail.Point, moveBacklog)
	go s.readLoop(moves, done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			s.teardown()
			return
		case p, ok := <-moves:
			if !ok {
				s.teardown()
				return
			}
			s.moves++
			s.coalescer.Move(p)
		case <-ticker.C:
			if err := s.frame(); err != nil {
				s.teardown()
				return
			}
		}
	}
}

// readLoop forwards move messages until the connection fails.
func (s *session) readLoop(moves chan<- trail.Point, done <-chan struct{}) {
	defer close(moves)
	s.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != msgMove {
			continue
		}
		select {
		case moves <- trail.Point{X: msg.X, Y: msg.Y}:
		case <-done:
			return
		}
	}
}

// frame runs the queued sampling step, eases the glow toward the pointer
// and pushes the result when anything visible changed.
func (s *session) frame() error {
	if s.queue.Tick() > 0 {
		s.frames++
	}
	pointer := s.sampler.Pointer()
	glow := s.glow.Step(pointer)
	accepted := s.sampler.Stats().Accepted
	if s.sentOnce && accepted == s.sentAccepted && pointer == s.sentPointer &&
		glow.Dist(s.sentGlow) < glowEpsilon {
		return nil
	}

	msg := newFrameMessage(s.sampler, s.sentMaxID, glow)
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	s.sentOnce = true
	s.sentAccepted = accepted
	s.sentPointer = pointer
	s.sentGlow = glow
	if n := len(msg.Waves); n > 0 {
		s.sentMaxID = max(s.sentMaxID, msg.Waves[n-1].ID)
	}
	return nil
}

func (s *session) teardown() {
	s.coalescer.Cancel()
	s.sampler.Reset()
}

func (s *session) summary(meta Meta) store.Session {
	st := s.sampler.Stats()
	return store.Session{
		ID:        uuid.NewString(),
		HashedIP:  meta.HashedIP,
		UserAgent: meta.UserAgent,
		StartedAt: s.started,
		EndedAt:   time.Now(),
		Moves:     s.moves,
		Coalesced: int64(s.coalescer.Coalesced()),
		Frames:    s.frames,
		Accepted:  int64(st.Accepted),
		Ignored:   int64(st.Ignored),
	}
}
