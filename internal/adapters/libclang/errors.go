// Package libclang adapts the clang C API to ports.Frontend.
//
// The real frontend needs cgo and the clang-c headers, so it is only built
// with `-tags libclang`. Every build carries the library probe, which dlopens
// libclang through purego and needs neither.
package libclang

import "gitlab.com/tozd/go/errors"

var (
	// ErrUnavailable is returned by New when the binary was built without libclang.
	ErrUnavailable = errors.Base("libclang frontend not compiled in (rebuild with CGO_ENABLED=1 -tags libclang)")

	// ErrNotFound is returned by Locate when no shared library matches.
	ErrNotFound = errors.Base("libclang shared library not found")

	// ErrProbeUnsupported is returned by Probe on platforms without dlopen support.
	ErrProbeUnsupported = errors.Base("libclang probe not supported on this platform")
)
