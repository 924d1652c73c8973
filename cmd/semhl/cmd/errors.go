package cmd

import (
	"context"
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/corey/semhl/internal/domain/highlight"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitCompile  = 2
	exitRange    = 3
	exitInternal = 4
)

// ExitCode maps an error returned by Execute to the process exit code. When
// several files failed the most severe code wins.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	code := exitOK
	for _, e := range multierr.Errors(err) {
		if c := exitCodeOf(e); c > code {
			code = c
		}
	}
	return code
}

func exitCodeOf(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitError
	}
	kind, ok := highlight.KindOf(err)
	if !ok {
		return exitError
	}
	switch kind {
	case highlight.CompileError:
		return exitCompile
	case highlight.RangeUnavailable, highlight.RangeInvalid:
		return exitRange
	default:
		return exitInternal
	}
}

// printError writes one line per failure, followed by the compiler
// diagnostics of compile errors.
func printError(w io.Writer, err error) {
	for _, e := range multierr.Errors(err) {
		fmt.Fprintf(w, "error: %v\n", e)
		for _, d := range highlight.DiagnosticsOf(e) {
			fmt.Fprintf(w, "  %s\n", d.Message)
		}
	}
}
