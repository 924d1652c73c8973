package highlight

import (
	"math"

	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/ports"
)

// RangeResolver computes the source range covering a whole file, from byte
// offset 0 to the size reported by the filesystem.
type RangeResolver struct {
	frontend ports.Frontend
	sizer    ports.FileSizer
}

// NewRangeResolver creates a resolver over the given frontend and filesystem.
func NewRangeResolver(frontend ports.Frontend, sizer ports.FileSizer) *RangeResolver {
	return &RangeResolver{frontend: frontend, sizer: sizer}
}

// Resolve returns the range of path inside tu. path must name a file already
// loaded into the translation unit. Failures carry RangeUnavailable when an
// endpoint cannot be located and RangeInvalid when the frontend rejects the range.
func (r *RangeResolver) Resolve(tu ports.TranslationUnitHandle, path string) (ports.SourceRange, error) {
	size, err := r.sizer.FileSize(path)
	if err != nil {
		return ports.SourceRange{}, newFailure(RangeUnavailable, err)
	}
	if size < 0 || size > math.MaxUint32 {
		return ports.SourceRange{}, newFailure(RangeUnavailable, errors.Errorf("file size %d out of range", size))
	}

	file := r.frontend.File(tu, path)
	if file == 0 {
		return ports.SourceRange{}, newFailure(RangeUnavailable, errors.Errorf("file %q is not part of the translation unit", path))
	}

	top := r.frontend.LocationForOffset(tu, file, 0)
	bottom := r.frontend.LocationForOffset(tu, file, uint32(size))
	if top.IsNull() || bottom.IsNull() {
		return ports.SourceRange{}, newFailure(RangeUnavailable, nil)
	}

	rng := r.frontend.Range(top, bottom)
	if r.frontend.RangeIsNull(rng) {
		return ports.SourceRange{}, newFailure(RangeInvalid, nil)
	}
	return rng, nil
}
