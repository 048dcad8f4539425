package buffer

import "fmt"

// Ring is a double-ended circular queue of float64 values with explicit
// head and length tracking. Values are addressed oldest-first.
//
// Pushes and pops never allocate while Len() < Cap(); a push onto a full
// ring reallocates the backing slice once.
type Ring struct {
	data []float64
	head int
	n    int
}

// NewRing returns a Ring holding length zero values.
func NewRing(length int) *Ring {
	if length < 0 {
		length = 0
	}
	return &Ring{data: make([]float64, length), n: length}
}

// Len returns the number of values currently held.
func (r *Ring) Len() int {
	return r.n
}

// Cap returns the number of values the ring can hold without reallocating.
func (r *Ring) Cap() int {
	return len(r.data)
}

// Front returns the oldest value. Panics if the ring is empty.
func (r *Ring) Front() float64 {
	if r.n == 0 {
		panic("buffer: Front on empty ring")
	}
	return r.data[r.head]
}

// At returns the i-th oldest value.
func (r *Ring) At(i int) float64 {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("buffer: ring index %d out of range [0, %d)", i, r.n))
	}
	return r.data[r.wrap(r.head+i)]
}

// PopFront removes and returns the oldest value. Panics if the ring is empty.
func (r *Ring) PopFront() float64 {
	if r.n == 0 {
		panic("buffer: PopFront on empty ring")
	}
	v := r.data[r.head]
	r.data[r.head] = 0
	r.head = r.wrap(r.head + 1)
	r.n--
	return v
}

// PushBack appends v as the newest value.
func (r *Ring) PushBack(v float64) {
	if r.n == len(r.data) {
		r.Grow(r.n + 1)
	}
	r.data[r.wrap(r.head+r.n)] = v
	r.n++
}

// PushFront inserts v as the oldest value.
func (r *Ring) PushFront(v float64) {
	if r.n == len(r.data) {
		r.Grow(r.n + 1)
	}
	r.head = r.wrap(r.head - 1 + len(r.data))
	r.data[r.head] = v
	r.n++
}

// Grow ensures capacity is at least n, preserving order. The contents are
// unwrapped so that the oldest value sits at index 0 of the new backing slice.
// If the current capacity is already >= n this is a no-op.
func (r *Ring) Grow(n int) {
	if n <= len(r.data) {
		return
	}
	if c := 2 * len(r.data); c > n {
		n = c
	}
	grown := make([]float64, n)
	a, b := r.Segments()
	copy(grown, a)
	copy(grown[len(a):], b)
	r.data = grown
	r.head = 0
}

// Zero sets every held value to 0 without changing the length.
func (r *Ring) Zero() {
	a, b := r.Segments()
	clear(a)
	clear(b)
}

// Segments returns the held values as at most two contiguous slices, oldest
// first. The slices alias the ring's storage.
func (r *Ring) Segments() (first, second []float64) {
	if r.n == 0 {
		return nil, nil
	}
	end := r.head + r.n
	if end <= len(r.data) {
		return r.data[r.head:end], nil
	}
	return r.data[r.head:], r.data[:end-len(r.data)]
}

// Copy returns a deep copy of the ring with the same capacity.
func (r *Ring) Copy() *Ring {
	data := make([]float64, len(r.data))
	copy(data, r.data)
	return &Ring{data: data, head: r.head, n: r.n}
}

func (r *Ring) wrap(i int) int {
	if i >= len(r.data) {
		return i - len(r.data)
	}
	return i
}
