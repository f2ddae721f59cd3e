package workqueue

// ring is a fixed-capacity circular buffer over E, adapted from the ring
// buffer in github.com/joeycumines/go-utilpkg/catrate (ring.go): same
// mask/bounds/Len/Cap/Get layout, but dropped its Insert/Search/growth
// machinery (that part of catrate is rate-limiter specific, see
// DESIGN.md) in favor of a fixed-size PushBack that reports failure
// instead of growing, matching spec.md §4.5's "overflow silently drops"
// queue semantics. The constraints.Ordered bound catrate used doesn't fit
// the queue's Item (any), so this ring is unconstrained (E any).
type ring[E any] struct {
	s    []E
	r, w uint
}

func newRing[E any](size int) *ring[E] {
	if size <= 0 || size&(size-1) != 0 {
		panic(`workqueue: ring: size must be a power of 2`)
	}
	return &ring[E]{s: make([]E, size)}
}

func (x *ring[E]) mask(val uint) uint {
	return val & (uint(len(x.s)) - 1)
}

func (x *ring[E]) Len() int { return int(x.w - x.r) }

func (x *ring[E]) Cap() int { return len(x.s) }

func (x *ring[E]) Get(i int) E {
	if i < 0 || i >= x.Len() {
		panic(`workqueue: ring: get: index out of range`)
	}
	return x.s[x.mask(x.r+uint(i))]
}

// PushBack appends v at the tail. It returns false without modifying the
// buffer if the ring is already at capacity.
func (x *ring[E]) PushBack(v E) bool {
	if x.Len() == x.Cap() {
		return false
	}
	x.s[x.mask(x.w)] = v
	x.w++
	return true
}

// PopFront removes and returns the head element. ok is false if the ring
// is empty.
func (x *ring[E]) PopFront() (v E, ok bool) {
	if x.Len() == 0 {
		return v, false
	}
	v = x.s[x.mask(x.r)]
	var zero E
	x.s[x.mask(x.r)] = zero
	x.r++
	return v, true
}

// PopBack removes and returns the tail element. ok is false if the ring is
// empty. Combined with PushBack this gives LIFO (stack) behavior at one
// end, which is what spec.md §4.5 describes for each priority band: "Push
// (at head)" / "Pop (at head)" both operate at the same end.
func (x *ring[E]) PopBack() (v E, ok bool) {
	if x.Len() == 0 {
		return v, false
	}
	x.w--
	v = x.s[x.mask(x.w)]
	var zero E
	x.s[x.mask(x.w)] = zero
	return v, true
}
