package seed

import "sync/atomic"

// Holder stores the latest seed text, safe for concurrent Set and Text
type Holder struct {
	v atomic.Pointer[string]
}

// NewHolder creates a holder with initial text
func NewHolder(text string) *Holder {
	h := &Holder{}
	h.Set(text)
	return h
}

// Set replaces the seed
func (h *Holder) Set(text string) {
	h.v.Store(&text)
}

// Text returns the current seed, empty when never set
func (h *Holder) Text() string {
	if p := h.v.Load(); p != nil {
		return *p
	}
	return ""
}
