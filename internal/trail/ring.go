package trail

// ring is a fixed-capacity buffer that overwrites its oldest entry once full.
type ring[T any] struct {
	data []T
	pos  int
	full bool
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{data: make([]T, capacity)}
}

func (r *ring[T]) push(v T) {
	r.data[r.pos] = v
	r.pos++
	if r.pos >= len(r.data) {
		r.pos = 0
		r.full = true
	}
}

func (r *ring[T]) len() int {
	if r.full {
		return len(r.data)
	}
	return r.pos
}

// slice returns the contents oldest first.
func (r *ring[T]) slice() []T {
	out := make([]T, r.len())
	if r.full {
		n := copy(out, r.data[r.pos:])
		copy(out[n:], r.data[:r.pos])
	} else {
		copy(out, r.data[:r.pos])
	}
	return out
}

func (r *ring[T]) reset() {
	clear(r.data)
	r.pos = 0
	r.full = false
}
