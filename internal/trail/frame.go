package trail

// Scheduler runs fn on the next rendering frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a Scheduler driven by an external frame clock. Callbacks
// requested during a Tick run on the following Tick.
type FrameQueue struct {
	pending []func()
}

func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Tick runs the callbacks queued for this frame and reports how many ran.
func (q *FrameQueue) Tick() int {
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Len returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Len() int { return len(q.pending) }

// Coalescer limits sampling to one position per frame. Positions that
// arrive while a frame is pending replace the queued one.
type Coalescer struct {
	sampler   *Sampler
	sched     Scheduler
	pending   bool
	gen       uint64
	latest    Point
	coalesced uint64
}

func NewCoalescer(s *Sampler, sched Scheduler) *Coalescer {
	return &Coalescer{sampler: s, sched: sched}
}

// Move handles one raw pointer notification.
func (c *Coalescer) Move(p Point) {
	c.sampler.Track(p)
	c.latest = p
	if c.pending {
		c.coalesced++
		return
	}
	c.pending = true
	gen := c.gen
	c.sched.RequestFrame(func() {
		if gen != c.gen {
			return
		}
		c.pending = false
		c.sampler.OnPointerMove(c.latest)
	})
}

// Pending reports whether a frame callback is outstanding.
func (c *Coalescer) Pending() bool { return c.pending }

// Coalesced counts notifications superseded within a frame.
func (c *Coalescer) Coalesced() uint64 { return c.coalesced }

// Cancel forgets any queued position. A callback already handed to the
// scheduler becomes a no-op.
func (c *Coalescer) Cancel() {
	c.gen++
	c.pending = false
}
