// Package live runs pointer trails for browser clients over websockets.
// Each connection gets its own sampler, owned by a single goroutine and
// advanced by a frame ticker.
package live

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Zachkp/zach-dev-waves/internal/store"
	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

const (
	DefaultFrameRate = 60
	// MaxFrameRate bounds the per-session ticker.
	MaxFrameRate = 1000
)

// Recorder stores a summary when a session ends.
type Recorder interface {
	RecordSession(ctx context.Context, s store.Session) error
}

type Config struct {
	Options   trail.Options
	FrameRate int
	Recorder  Recorder
	// CheckOrigin overrides the websocket same-origin check.
	CheckOrigin func(r *http.Request) bool
}

// Meta identifies the client behind a session.
type Meta struct {
	HashedIP  string
	UserAgent string
}

type Hub struct {
	cfg      Config
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	active  int
	closing bool
}

func NewHub(cfg Config) *Hub {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultFrameRate
	}
	cfg.FrameRate = min(cfg.FrameRate, MaxFrameRate)
	cfg.Options = trail.NewSampler(cfg.Options).Options()

	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Describe reports the sampling parameters clients should expect.
func (h *Hub) Describe() Description {
	return describe(h.cfg.Options, h.cfg.FrameRate)
}

// Active is the number of open sessions.
func (h *Hub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Serve upgrades the request and runs a trail session until the client
// goes away or the hub shuts down.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, meta Meta) {
	if !h.begin() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.end()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Trail websocket upgrade failed: %v", err)
		return
	}

	sess := newSession(conn, h.cfg.Options, h.cfg.FrameRate)
	sess.run(h.ctx)

	summary := sess.summary(meta)
	if h.cfg.Recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.cfg.Recorder.RecordSession(ctx, summary); err != nil {
		log.Printf("Error recording trail session: %v", err)
	}
}

// begin admits a session unless the hub is shutting down. The WaitGroup
// is only added to under mu while closing is false.
func (h *Hub) begin() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return false
	}
	h.wg.Add(1)
	h.active++
	return true
}

func (h *Hub) end() {
	h.mu.Lock()
	h.active--
	h.mu.Unlock()
	h.wg.Done()
}

// Shutdown closes every session and waits for them to finish.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closing = true
	h.mu.Unlock()
	h.cancel()
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
