package highlight

import (
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/ports"
)

// FailureKind classifies why an invocation stopped.
type FailureKind int

const (
	// AcquisitionFailure: a frontend handle could not be created.
	AcquisitionFailure FailureKind = iota + 1
	// CompileError: the parse produced diagnostics or no translation unit.
	CompileError
	// RangeUnavailable: a location for the start or end of the file could not be resolved.
	RangeUnavailable
	// RangeInvalid: the frontend rejected the resulting range.
	RangeInvalid
	// InternalError: tokens and cursor annotations are misaligned.
	InternalError
)

// Sentinels, one per kind. errors.Is(err, ErrCompile) holds for every
// CompileError failure.
var (
	ErrAcquisition      = errors.Base("frontend handle could not be acquired")
	ErrCompile          = errors.Base("unable to compile translation unit")
	ErrRangeUnavailable = errors.Base("cannot retrieve location")
	ErrRangeInvalid     = errors.Base("cannot retrieve range")
	ErrInternal         = errors.Base("token and cursor annotation sequences are misaligned")
)

var kindSentinels = map[FailureKind]error{
	AcquisitionFailure: ErrAcquisition,
	CompileError:       ErrCompile,
	RangeUnavailable:   ErrRangeUnavailable,
	RangeInvalid:       ErrRangeInvalid,
	InternalError:      ErrInternal,
}

var kindNames = map[FailureKind]string{
	AcquisitionFailure: "AcquisitionFailure",
	CompileError:       "CompileError",
	RangeUnavailable:   "RangeUnavailable",
	RangeInvalid:       "RangeInvalid",
	InternalError:      "InternalError",
}

func (k FailureKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// ParseFailureKind is the inverse of FailureKind.String.
func ParseFailureKind(name string) (FailureKind, bool) {
	for kind, n := range kindNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

// Failure is the single error type returned by the pipeline. Only
// CompileError carries Diagnostics; the other kinds surface a short fixed
// message and, where useful, the underlying cause.
type Failure struct {
	Kind        FailureKind
	State       State // last state reached before failing
	Path        string
	Diagnostics []ports.Diagnostic
	Cause       error
}

func newFailure(kind FailureKind, cause error) *Failure {
	return &Failure{Kind: kind, Cause: cause}
}

func (f *Failure) Error() string {
	msg := kindSentinels[f.Kind].Error()
	if f.Path != "" {
		msg = f.Path + ": " + msg
	}
	if f.Kind == CompileError && len(f.Diagnostics) > 0 {
		msg = fmt.Sprintf("%s (%d diagnostics)", msg, len(f.Diagnostics))
	}
	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause.
func (f *Failure) Unwrap() []error {
	errs := []error{kindSentinels[f.Kind]}
	if f.Cause != nil {
		errs = append(errs, f.Cause)
	}
	return errs
}

// KindOf returns the failure kind carried by err, if any.
func KindOf(err error) (FailureKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return 0, false
}

// DiagnosticsOf returns the diagnostics attached to a CompileError failure.
func DiagnosticsOf(err error) []ports.Diagnostic {
	var f *Failure
	if errors.As(err, &f) {
		return f.Diagnostics
	}
	return nil
}
