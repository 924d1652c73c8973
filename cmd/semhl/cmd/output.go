package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/adapters/record"
	"github.com/corey/semhl/internal/adapters/socket"
	"github.com/corey/semhl/internal/adapters/terminal"
	"github.com/corey/semhl/internal/adapters/vim"
	"github.com/corey/semhl/internal/ports"
)

// Output formats accepted by --format.
const (
	formatVim  = "vim"
	formatJSON = "json"
	formatANSI = "ansi"
)

// writer turns per-file passes into one output format. The pipeline emits
// into overlay(path); flush(path) runs once that pass succeeded.
type writer interface {
	overlay(path string) ports.Overlay
	flush(path string) error
}

func newWriter(format string, w io.Writer, colored bool) (writer, error) {
	switch format {
	case formatVim:
		return &vimWriter{ov: vim.NewOverlay(w)}, nil
	case formatJSON:
		return &jsonWriter{enc: json.NewEncoder(w), recorders: map[string]*record.Recorder{}}, nil
	case formatANSI:
		return &ansiWriter{w: w, renderer: terminal.NewRenderer(colored), recorders: map[string]*record.Recorder{}}, nil
	default:
		return nil, errors.Errorf("unknown format %q (want vim, json or ansi)", format)
	}
}

// vimWriter streams Vim script as the pipeline emits.
type vimWriter struct {
	ov *vim.Overlay
}

func (v *vimWriter) overlay(string) ports.Overlay { return v.ov }
func (v *vimWriter) flush(string) error { return v.ov.Err() }

// fileHighlights is one line of --format json output.
type fileHighlights struct {
	File       string            `json:"file"`
	Highlights []ports.Highlight `json:"highlights"`
}

type jsonWriter struct {
	mu        sync.Mutex
	enc       *json.Encoder
	recorders map[string]*record.Recorder
}

func (j *jsonWriter) overlay(path string) ports.Overlay {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec := record.NewRecorder()
	j.recorders[path] = rec
	return rec
}

func (j *jsonWriter) flush(path string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return errors.WithStack(j.enc.Encode(fileHighlights{File: path, Highlights: j.recorders[path].Highlights()}))
}

type ansiWriter struct {
	mu        sync.Mutex
	w         io.Writer
	renderer  *terminal.Renderer
	recorders map[string]*record.Recorder
}

func (a *ansiWriter) overlay(path string) ports.Overlay {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec := record.NewRecorder()
	a.recorders[path] = rec
	return rec
}

func (a *ansiWriter) flush(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderer.Render(a.w, src, a.recorders[path].Highlights())
}

// replay feeds a daemon result for path into the writer as if the pipeline
// had run here.
func replay(wr writer, path string, res *socket.HighlightResult) error {
	ov := wr.overlay(path)
	ov.Clear()
	if err := res.Err(); err != nil {
		return err
	}
	for _, h := range res.Highlights {
		ov.Add(h)
	}
	return wr.flush(path)
}

var (
	okMark  = color.New(color.FgGreen).Sprint("✓")
	badMark = color.New(color.FgYellow).Sprint("✗")
	bold    = color.New(color.Bold).SprintFunc()
)

func mark(ok bool) string {
	if ok {
		return okMark
	}
	return badMark
}

// formatHealth formats a HealthResult for terminal display.
func formatHealth(h *socket.HealthResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", bold("⚡ semhl daemon")))
	sb.WriteString(fmt.Sprintf("  Status:    %s %s\n", okMark, h.Status))
	sb.WriteString(fmt.Sprintf("  Served:    %d\n", h.Served))
	sb.WriteString(fmt.Sprintf("  Failures:  %d\n", h.Failures))
	sb.WriteString(fmt.Sprintf("  Uptime:    %s\n", h.Uptime))
	return sb.String()
}
