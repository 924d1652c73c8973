package cmd

import (
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/adapters/libclang"
	"github.com/corey/semhl/internal/ports"
)

// newFrontend returns the libclang frontend, or an error explaining how to
// get one when this binary was built without it.
func newFrontend() (ports.Frontend, error) {
	fe, err := libclang.New()
	if errors.Is(err, libclang.ErrUnavailable) {
		return nil, errors.Errorf("%w\n  → check setup:  semhl doctor", err)
	}
	return fe, err
}
