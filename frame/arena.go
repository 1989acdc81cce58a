package frame

import (
	"fmt"
	"sync"

	"cellray/affinetransform"
)

// Handle identifies a frame slot in an Arena.
type Handle int

// Nil represents an invalid Handle.
const Nil Handle = 0

type slot struct {
	frame Frame
	refs  int
	gen   uint32
}

// Arena stores shared frames addressed by Handle.  A frame stays alive until
// the last Shared referencing it is released, after which its slot may be
// reused.
//
// Mutations are serialized by the arena's lock.  Reads may run concurrently,
// which is what a parallel render pass does.
type Arena struct {
	mu    sync.RWMutex
	slots []slot // slots[0] is never used.
	free  []Handle
}

func NewArena() *Arena {
	return &Arena{slots: make([]slot, 1)}
}

// New allocates an identity frame and returns the first reference to it.
func (a *Arena) New() Shared {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.slots) == 0 {
		a.slots = make([]slot, 1)
	}

	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		h = Handle(len(a.slots) - 1)
	}

	s := &a.slots[h]
	s.frame = New()
	s.refs = 1
	s.gen++
	return Shared{arena: a, h: h, gen: s.gen}
}

// Len returns the number of live frames.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.slots) == 0 {
		return 0
	}
	return len(a.slots) - 1 - len(a.free)
}

// slot must be called with a.mu held.
func (a *Arena) slot(h Handle, gen uint32) *slot {
	if h <= Nil || int(h) >= len(a.slots) {
		panic(fmt.Sprintf("frame: invalid handle %d", h))
	}
	s := &a.slots[h]
	if s.refs == 0 || s.gen != gen {
		panic(fmt.Sprintf("frame: use of released handle %d", h))
	}
	return s
}

// Shared is one reference to a frame in an Arena.  Copying a Shared does not
// take a new reference; use Clone for that.
type Shared struct {
	arena *Arena
	h     Handle
	gen   uint32
}

// Handle returns the arena slot this reference points at.
func (s Shared) Handle() Handle {
	return s.h
}

// Clone takes another reference to the same frame.
func (s Shared) Clone() Shared {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()
	s.arena.slot(s.h, s.gen).refs++
	return s
}

// Release drops this reference.  The frame is freed when no references
// remain.
func (s Shared) Release() {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()
	sl := s.arena.slot(s.h, s.gen)
	sl.refs--
	if sl.refs == 0 {
		sl.frame = Frame{}
		s.arena.free = append(s.arena.free, s.h)
	}
}

// Refs returns the number of live references to the frame.
func (s Shared) Refs() int {
	s.arena.mu.RLock()
	defer s.arena.mu.RUnlock()
	return s.arena.slot(s.h, s.gen).refs
}

func (s Shared) Apply(t affinetransform.AffineTransform) {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()
	s.arena.slot(s.h, s.gen).frame.Apply(t)
}

func (s Shared) ApplyRelative(t affinetransform.AffineTransform) {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()
	s.arena.slot(s.h, s.gen).frame.ApplyRelative(t)
}

func (s Shared) Transform() affinetransform.AffineTransform {
	s.arena.mu.RLock()
	defer s.arena.mu.RUnlock()
	return s.arena.slot(s.h, s.gen).frame.Transform()
}
