package hrestimer

import "fmt"

// Handle identifies one timer configuration. The zero value means
// "no timer". A Handle becomes stale as soon as its slot is reconfigured
// or deleted; stale handles are safe to use and are detected by the
// engine (delete) or by the consumer (callback argument comparison).
type Handle struct {
	index      int
	generation uint32
}

// IsZero reports whether the handle refers to no timer.
// Live handles always have a generation of at least 1.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

// Index returns the slot index encoded in the handle.
func (h Handle) Index() int {
	return h.index
}

// Generation returns the configuration generation encoded in the handle.
func (h Handle) Generation() uint32 {
	return h.generation
}

// String returns a short human-readable form for logs.
func (h Handle) String() string {
	if h.IsZero() {
		return "none"
	}
	return fmt.Sprintf("slot%d/gen%d", h.index, h.generation)
}

// next returns the handle for the slot's next configuration.
func (h Handle) next(index int) Handle {
	return Handle{index: index, generation: h.generation + 1}
}
