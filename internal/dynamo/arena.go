package dynamo

import "fmt"

// Handle identifies a body in an Arena. The generation makes handles to a
// removed body stale even after its slot is reused.
type Handle struct {
	Index uint32
	Gen   uint32
}

func (h Handle) String() string { return fmt.Sprintf("#%d.%d", h.Index, h.Gen) }

type slot struct {
	body  Body
	gen   uint32
	alive bool
}

// Arena stores bodies in slots addressed by stable handles. Iteration order is
// slot order; it is stable while no body is added or removed and carries no meaning.
// The zero value is an empty arena ready to use.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

// Add stores b and returns its handle. Freed slots are reused first.
func (a *Arena) Add(b Body) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.gen++
		s.body = b
		s.alive = true
		return Handle{Index: idx, Gen: s.gen}
	}
	a.slots = append(a.slots, slot{body: b, alive: true})
	return Handle{Index: uint32(len(a.slots) - 1)}
}

// Remove frees the body behind h. Must not be called while a tick is in progress.
func (a *Arena) Remove(h Handle) error {
	s, ok := a.slot(h)
	if !ok {
		return fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	s.alive = false
	s.body = Body{}
	a.free = append(a.free, h.Index)
	a.live--
	return nil
}

// Get returns a pointer to the body behind h. The pointer is valid until the
// next Add or Remove.
func (a *Arena) Get(h Handle) (*Body, bool) {
	s, ok := a.slot(h)
	if !ok {
		return nil, false
	}
	return &s.body, true
}

func (a *Arena) Len() int { return a.live }

// Live appends pointers to all live bodies in slot order and returns dst.
func (a *Arena) Live(dst []*Body) []*Body {
	for i := range a.slots {
		if a.slots[i].alive {
			dst = append(dst, &a.slots[i].body)
		}
	}
	return dst
}

// Handles returns the handles of all live bodies in slot order.
func (a *Arena) Handles() []Handle {
	hs := make([]Handle, 0, a.live)
	for i, s := range a.slots {
		if s.alive {
			hs = append(hs, Handle{Index: uint32(i), Gen: s.gen})
		}
	}
	return hs
}

// Reset drops every body and invalidates all outstanding handles. Bodies added
// afterwards fill slots from index 0 upwards, so a reset arena iterates in the
// same order as a fresh one.
func (a *Arena) Reset() {
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		a.slots[i].alive = false
		a.slots[i].body = Body{}
		a.free = append(a.free, uint32(i))
	}
	a.live = 0
}

func (a *Arena) slot(h Handle) (*slot, bool) {
	if int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.alive || s.gen != h.Gen {
		return nil, false
	}
	return s, true
}
