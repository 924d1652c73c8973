package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/domain/highlight"
	"github.com/corey/semhl/internal/ports"
)

// Report receives the outcome of every pass in watch mode.
type Report func(path string, res *highlight.Result, err error)

// Watch highlights every path once, then again each time w reports it
// changed, until ctx is done. Every pass is a full reparse. Watchers may call
// back from several goroutines; passes still run one at a time, with
// overlayFor and report inside the same critical section.
func (h *Highlighter) Watch(ctx context.Context, w ports.Watcher, paths []string, overlayFor func(path string) ports.Overlay, report Report) error {
	log := zerolog.Ctx(ctx)

	var mu sync.Mutex
	run := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		res, err := h.Highlight(ctx, path, overlayFor(path))
		report(path, res, err)
	}
	for _, path := range paths {
		run(path)
	}

	if err := w.Watch(paths, func(path string) {
		if ctx.Err() != nil {
			return
		}
		log.Debug().Str("path", path).Msg("changed")
		run(path)
	}); err != nil {
		return errors.Errorf("watch: %w", err)
	}

	<-ctx.Done()
	return errors.WithStack(w.Stop())
}
