// Package record implements ports.Overlay in memory. It backs every output
// that needs the whole instruction list at once: JSON, terminal rendering and
// the daemon.
package record

import (
	"sync"

	"github.com/corey/semhl/internal/ports"
)

// Recorder keeps the instructions added since the last Clear.
type Recorder struct {
	mu         sync.Mutex
	highlights []ports.Highlight
	clears     int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Clear drops everything recorded so far.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlights = nil
	r.clears++
}

// Add appends h.
func (r *Recorder) Add(h ports.Highlight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlights = append(r.highlights, h)
}

// Highlights returns a copy of the current instructions in insertion order.
func (r *Recorder) Highlights() []ports.Highlight {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.Highlight, len(r.highlights))
	copy(out, r.highlights)
	return out
}

// Clears returns how many times Clear has been called.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}
