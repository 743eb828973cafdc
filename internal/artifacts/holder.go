package artifacts

import "sync/atomic"

// Holder publishes the current artifact set to requests. It starts empty
// (degraded state) and is swapped atomically on successful load, so readers
// never lock and never observe a partially loaded set.
type Holder struct {
	current atomic.Pointer[Artifacts]
}

// NewHolder returns an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the loaded artifact set, or nil while degraded.
func (h *Holder) Current() *Artifacts {
	return h.current.Load()
}

// Set publishes a freshly loaded artifact set.
func (h *Holder) Set(a *Artifacts) {
	h.current.Store(a)
}
