package trail

import "testing"

func TestCoalescerOneSamplePerFrame(t *testing.T) {
	s := NewSampler(DefaultOptions())
	var q FrameQueue
	c := NewCoalescer(s, &q)

	c.Move(Point{30, 0})
	c.Move(Point{60, 0})
	c.Move(Point{90, 40})

	if q.Len() != 1 {
		t.Fatalf("queued %d callbacks, want 1", q.Len())
	}
	if s.Pointer() != (Point{90, 40}) {
		t.Errorf("pointer not tracked between frames: %v", s.Pointer())
	}
	if s.Len() != 0 {
		t.Fatal("sampled before the frame ran")
	}

	if n := q.Tick(); n != 1 {
		t.Fatalf("Tick ran %d callbacks", n)
	}
	buf := s.CurrentBuffer()
	if len(buf) != 1 || buf[0].Pos != (Point{90, 40}) {
		t.Fatalf("buffer = %+v, want only the latest position", buf)
	}
	if c.Coalesced() != 2 {
		t.Errorf("coalesced = %d, want 2", c.Coalesced())
	}
	if c.Pending() {
		t.Error("still pending after frame")
	}
}

func TestCoalescerPreservesOrderAcrossFrames(t *testing.T) {
	s := NewSampler(DefaultOptions())
	var q FrameQueue
	c := NewCoalescer(s, &q)

	want := []Point{{30, 0}, {60, 0}, {60, 30}, {90, 30}}
	for _, p := range want {
		c.Move(p)
		q.Tick()
	}
	buf := s.CurrentBuffer()
	if len(buf) != len(want) {
		t.Fatalf("len = %d", len(buf))
	}
	for i, w := range buf {
		if w.Pos != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, w.Pos, want[i])
		}
	}
}

func TestCoalescerIdleFrame(t *testing.T) {
	s := NewSampler(DefaultOptions())
	var q FrameQueue
	NewCoalescer(s, &q)
	if n := q.Tick(); n != 0 {
		t.Fatalf("idle frame ran %d callbacks", n)
	}
}

func TestCoalescerCancel(t *testing.T) {
	s := NewSampler(DefaultOptions())
	var q FrameQueue
	c := NewCoalescer(s, &q)

	c.Move(Point{30, 0})
	c.Cancel()
	q.Tick()
	if s.Len() != 0 {
		t.Fatal("cancelled position was sampled")
	}

	c.Move(Point{40, 0})
	q.Tick()
	if s.Len() != 1 {
		t.Fatalf("len = %d after move following cancel", s.Len())
	}
}

func TestFrameQueueDefersRequestsMadeDuringTick(t *testing.T) {
	var q FrameQueue
	ran := 0
	q.RequestFrame(func() {
		ran++
		q.RequestFrame(func() { ran++ })
	})
	q.Tick()
	if ran != 1 || q.Len() != 1 {
		t.Fatalf("ran=%d queued=%d", ran, q.Len())
	}
	q.Tick()
	if ran != 2 {
		t.Fatalf("ran=%d", ran)
	}
}
