// Package filesystem implements ports.FileSizer on top of afero, so the
// pipeline reads sizes from the real disk in production and from memory in tests.
package filesystem

import (
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Sizer reports regular-file sizes.
type Sizer struct {
	fs afero.Fs
}

// NewSizer creates a sizer over fs.
func NewSizer(fs afero.Fs) *Sizer {
	return &Sizer{fs: fs}
}

// NewOsSizer creates a sizer over the host filesystem.
func NewOsSizer() *Sizer {
	return NewSizer(afero.NewOsFs())
}

// FileSize returns the size of path in bytes. Directories are rejected.
func (s *Sizer) FileSize(path string) (int64, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if info.IsDir() {
		return 0, errors.Errorf("%s is a directory", path)
	}
	return info.Size(), nil
}

// Fs exposes the underlying filesystem.
func (s *Sizer) Fs() afero.Fs {
	return s.fs
}
