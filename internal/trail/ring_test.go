package trail

import (
	"slices"
	"testing"
)

func TestRing(t *testing.T) {
	r := newRing[int](3)
	if got := r.slice(); len(got) != 0 {
		t.Fatalf("empty ring = %v", got)
	}
	for i := 1; i <= 2; i++ {
		r.push(i)
	}
	if got := r.slice(); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("partial = %v", got)
	}
	for i := 3; i <= 7; i++ {
		r.push(i)
	}
	if got := r.slice(); !slices.Equal(got, []int{5, 6, 7}) {
		t.Fatalf("wrapped = %v", got)
	}
	r.reset()
	if r.len() != 0 {
		t.Fatalf("len after reset = %d", r.len())
	}
}
