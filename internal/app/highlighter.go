package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/corey/semhl/internal/adapters/record"
	"github.com/corey/semhl/internal/domain/highlight"
	"github.com/corey/semhl/internal/ports"
)

// Highlighter runs the pipeline for one file at a time on a shared frontend.
// It is safe for concurrent use: invocations queue on a mutex.
type Highlighter struct {
	mu       sync.Mutex
	frontend ports.Frontend
	sizer    ports.FileSizer
	opts     highlight.Options
}

// NewHighlighter creates a highlighter that parses every file with args.
func NewHighlighter(frontend ports.Frontend, sizer ports.FileSizer, args []string) *Highlighter {
	return &Highlighter{
		frontend: frontend,
		sizer:    sizer,
		opts:     highlight.Options{Args: append([]string(nil), args...)},
	}
}

// Highlight runs one full pass over path, emitting into overlay.
func (h *Highlighter) Highlight(ctx context.Context, path string, overlay ports.Overlay) (*highlight.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return highlight.New(h.frontend, h.sizer, overlay, h.opts).Run(ctx, path)
}

// HighlightFile runs a pass into a fresh in-memory overlay. It satisfies
// socket.Highlighter.
func (h *Highlighter) HighlightFile(ctx context.Context, path string) (*highlight.Result, error) {
	return h.Highlight(ctx, path, record.NewRecorder())
}

// HighlightAll highlights paths in order, each into the overlay returned by
// overlayFor. A failing file does not stop the batch; every failure is
// combined into the returned error. Cancelling ctx stops before the next file.
func (h *Highlighter) HighlightAll(ctx context.Context, paths []string, overlayFor func(path string) ports.Overlay) ([]*highlight.Result, error) {
	var results []*highlight.Result
	var errs error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		res, err := h.Highlight(ctx, path, overlayFor(path))
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("highlight failed")
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errs
}
