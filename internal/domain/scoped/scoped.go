// Package scoped owns handles obtained from an external, stateful resource
// (the compiler frontend) and guarantees that each one is released exactly once.
//
// A Resource is only ever constructed from a successful acquisition. Callers
// pair every Acquire with a deferred Release, so inner handles are released
// before the outer handles they were created from:
//
//	index, err := scoped.Acquire("index", create, scoped.NonZero[ports.IndexHandle], dispose)
//	if err != nil {
//		return err
//	}
//	defer index.Release()
//
// Resources are not safe for concurrent use; a handle belongs to one invocation.
package scoped

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrAcquisition is matched by every *AcquisitionError.
var ErrAcquisition = errors.Base("handle acquisition failed")

// AcquisitionError reports that the frontend returned an invalid handle.
type AcquisitionError struct {
	Kind string
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAcquisition.Error(), e.Kind)
}

// Is makes errors.Is(err, ErrAcquisition) hold for every AcquisitionError.
func (e *AcquisitionError) Is(target error) bool {
	return target == ErrAcquisition
}

// Resource owns a single handle of kind H.
type Resource[H any] struct {
	kind     string
	handle   H
	release  func(H)
	released bool
}

// Acquire calls acquire once and wraps the handle it returns. If valid
// rejects the handle, no Resource is built and nothing is released.
func Acquire[H any](kind string, acquire func() H, valid func(H) bool, release func(H)) (*Resource[H], error) {
	h := acquire()
	if !valid(h) {
		return nil, errors.WithStack(&AcquisitionError{Kind: kind})
	}
	return &Resource[H]{kind: kind, handle: h, release: release}, nil
}

// Own wraps a handle whose acquisition cannot fail (for example a string
// returned by value).
func Own[H any](kind string, h H, release func(H)) *Resource[H] {
	return &Resource[H]{kind: kind, handle: h, release: release}
}

// NonZero is the validity check for handles whose zero value means failure.
func NonZero[H comparable](h H) bool {
	var zero H
	return h != zero
}

// Handle returns the raw handle. Ownership stays with the Resource.
// Using a handle after Release is a programming error and panics.
func (r *Resource[H]) Handle() H {
	if r.released {
		panic("scoped: " + r.kind + " handle used after release")
	}
	return r.handle
}

// Kind returns the declared handle kind.
func (r *Resource[H]) Kind() string { return r.kind }

// Released reports whether Release has run.
func (r *Resource[H]) Released() bool { return r.released }

// Release invokes the matching release function. Subsequent calls are no-ops.
func (r *Resource[H]) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	r.release(r.handle)
}
