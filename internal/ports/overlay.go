package ports

// Highlight is one highlight instruction: a category applied to Length bytes
// starting at (Line, Column). Line and Column are 1-based.
type Highlight struct {
	Category string `json:"category"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Length   int    `json:"length"`
}

// Overlay is the host editor's highlight layer for the current buffer.
// The core never owns overlay state: it clears it once per invocation and
// then adds one region per token, in token order.
type Overlay interface {
	// Clear removes every highlight previously added to the buffer.
	Clear()

	// Add overlays one highlight region.
	Add(h Highlight)
}

// FileSizer answers the filesystem size query used to bound the range
// that gets tokenized.
type FileSizer interface {
	// FileSize returns the size of path in bytes.
	FileSize(path string) (int64, error)
}
