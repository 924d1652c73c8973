// Package highlight turns a source file into highlight instructions by driving
// the compiler frontend through one linear pass:
//
//	created → indexed → parsed → validated → ranged → tokenized → annotated → classified → completed
//
// Any stage from indexed through annotated may end the pass in the failed
// state instead. Every frontend handle acquired on the way is released in
// reverse acquisition order, whichever way the pass ends.
package highlight

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/corey/semhl/internal/domain/scoped"
	"github.com/corey/semhl/internal/ports"
)

// Options configures a pipeline.
type Options struct {
	// Args are the frontend command-line arguments: language standard,
	// standard library choice, include search paths.
	Args []string

	// Index controls index creation. The zero value keeps the frontend's
	// diagnostics display hook disabled.
	Index ports.IndexOptions
}

// Result describes a completed pass.
type Result struct {
	Path       string
	Highlights []ports.Highlight
	Trace      []State
	Elapsed    time.Duration
}

// Pipeline runs the parse-and-classify pass for one file at a time.
// It is not safe for concurrent use; callers serialize invocations.
type Pipeline struct {
	frontend ports.Frontend
	resolver *RangeResolver
	overlay  ports.Overlay
	opts     Options
}

// New creates a pipeline that emits into overlay.
func New(frontend ports.Frontend, sizer ports.FileSizer, overlay ports.Overlay, opts Options) *Pipeline {
	return &Pipeline{
		frontend: frontend,
		resolver: NewRangeResolver(frontend, sizer),
		overlay:  overlay,
		opts:     opts,
	}
}

// pass tracks the state machine of one invocation.
type pass struct {
	log   zerolog.Logger
	path  string
	state State
	trace []State
}

func (p *pass) enter(s State) {
	p.state = s
	p.trace = append(p.trace, s)
	p.log.Debug().Stringer("state", s).Msg("pipeline stage")
}

// fail stamps err with the state the pass had reached.
func (p *pass) fail(err error) error {
	f, ok := err.(*Failure)
	if !ok {
		f = newFailure(AcquisitionFailure, err)
	}
	f.State = p.state
	f.Path = p.path
	p.trace = append(p.trace, StateFailed)
	p.log.Debug().Stringer("state", p.state).Stringer("kind", f.Kind).Msg("pipeline failed")
	return f
}

// Run highlights path. The overlay is cleared first, so a failed run leaves
// it empty; on success one instruction per token is added in token order.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	started := time.Now()
	run := &pass{
		log:   zerolog.Ctx(ctx).With().Str("file", path).Logger(),
		path:  path,
		state: StateCreated,
		trace: []State{StateCreated},
	}

	p.overlay.Clear()

	index, err := scoped.Acquire("index",
		func() ports.IndexHandle { return p.frontend.CreateIndex(p.opts.Index) },
		scoped.NonZero[ports.IndexHandle],
		p.frontend.DisposeIndex,
	)
	if err != nil {
		return nil, run.fail(newFailure(AcquisitionFailure, err))
	}
	defer index.Release()
	run.enter(StateIndexed)

	tu, err := scoped.Acquire("translation unit",
		func() ports.TranslationUnitHandle {
			return p.frontend.ParseTranslationUnit(index.Handle(), path, p.opts.Args)
		},
		scoped.NonZero[ports.TranslationUnitHandle],
		p.frontend.DisposeTranslationUnit,
	)
	if err != nil {
		return nil, run.fail(newFailure(CompileError, err))
	}
	defer tu.Release()
	run.enter(StateParsed)

	if diags := CollectDiagnostics(ctx, p.frontend, tu.Handle()); len(diags) > 0 {
		f := newFailure(CompileError, nil)
		f.Diagnostics = diags
		return nil, run.fail(f)
	}
	run.enter(StateValidated)

	rng, err := p.resolver.Resolve(tu.Handle(), path)
	if err != nil {
		return nil, run.fail(err)
	}
	run.enter(StateRanged)

	pack, err := NewTokenPack(p.frontend, tu.Handle(), rng)
	if err != nil {
		return nil, run.fail(err)
	}
	defer pack.Release()
	run.enter(StateTokenized)

	cursors, err := Annotate(p.frontend, tu.Handle(), pack)
	if err != nil {
		return nil, run.fail(err)
	}
	run.enter(StateAnnotated)

	highlights := make([]ports.Highlight, pack.Len())
	for i, tok := range pack.Tokens() {
		highlights[i] = ports.Highlight{
			Category: string(Classify(tok, cursors[i])),
			Line:     tok.Location.Line,
			Column:   tok.Location.Column,
			Length:   len(tok.Spelling),
		}
	}
	run.enter(StateClassified)

	for _, h := range highlights {
		p.overlay.Add(h)
	}
	run.enter(StateCompleted)

	elapsed := time.Since(started)
	run.log.Debug().Int("tokens", len(highlights)).Dur("elapsed", elapsed).Msg("highlighted")
	return &Result{
		Path:       path,
		Highlights: highlights,
		Trace:      run.trace,
		Elapsed:    elapsed,
	}, nil
}
