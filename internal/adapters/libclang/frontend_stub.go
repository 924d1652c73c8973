//go:build !cgo || !libclang

package libclang

import "github.com/corey/semhl/internal/ports"

// Available reports whether this build links libclang.
const Available = false

// New returns ErrUnavailable: this build has no frontend.
// Use Probe to check whether a libclang shared library is installed.
func New() (ports.Frontend, error) {
	return nil, ErrUnavailable
}

// Version returns "" when libclang is not linked.
func Version() string {
	return ""
}
