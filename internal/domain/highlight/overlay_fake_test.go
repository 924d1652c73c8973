package highlight

import "github.com/corey/semhl/internal/ports"

// recordingOverlay stands in for the host editor.
type recordingOverlay struct {
	events []string
	adds   []ports.Highlight
	clears int
}

func (o *recordingOverlay) Clear() {
	o.clears++
	o.events = append(o.events, "clear")
}

func (o *recordingOverlay) Add(h ports.Highlight) {
	o.adds = append(o.adds, h)
	o.events = append(o.events, "add")
}
