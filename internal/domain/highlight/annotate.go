package highlight

import (
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/ports"
)

// Annotate fetches the cursor kind of every token in the pack with one batch
// call. The result is aligned index for index with pack.Tokens(); a length
// mismatch is an InternalError and nothing downstream may use the result.
func Annotate(frontend ports.Frontend, tu ports.TranslationUnitHandle, pack *TokenPack) ([]ports.CursorKind, error) {
	cursors := frontend.AnnotateTokens(tu, pack.Array())
	if len(cursors) != pack.Len() {
		return nil, newFailure(InternalError, errors.Errorf("%d tokens but %d cursor annotations", pack.Len(), len(cursors)))
	}
	return cursors, nil
}
