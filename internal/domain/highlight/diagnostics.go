package highlight

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/corey/semhl/internal/ports"
)

// CollectDiagnostics formats every diagnostic attached to tu, in the order the
// frontend reports them, and logs each one at debug. Failures carry them to
// the user, so the default log level does not repeat them.
func CollectDiagnostics(ctx context.Context, frontend ports.Frontend, tu ports.TranslationUnitHandle) []ports.Diagnostic {
	if tu == 0 {
		return nil
	}
	n := frontend.NumDiagnostics(tu)
	diags := make([]ports.Diagnostic, 0, n)
	for i := 0; i < n; i++ {
		d := frontend.FormatDiagnostic(tu, i)
		zerolog.Ctx(ctx).Debug().Stringer("severity", d.Severity).Msg(d.Message)
		diags = append(diags, d)
	}
	return diags
}
