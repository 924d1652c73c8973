package highlight

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/domain/highlight/highlighttest"
	"github.com/corey/semhl/internal/ports"
)

func TestTokenPack_KeepsEveryToken(t *testing.T) {
	src := "/* c */ int a = b + 2; // tail"
	f, tu := parsedFake(t, map[string]string{"a.c": src}, "a.c")
	rng, err := NewRangeResolver(f, f).Resolve(tu, "a.c")
	require.NoError(t, err)

	pack, err := NewTokenPack(f, tu, rng)
	require.NoError(t, err)
	defer pack.Release()

	var spellings []string
	for _, tok := range pack.Tokens() {
		spellings = append(spellings, tok.Spelling)
	}
	assert.Equal(t, []string{"/* c */", "int", "a", "=", "b", "+", "2", ";", "// tail"}, spellings)
	assert.Equal(t, pack.Len(), pack.Array().Count)
	assert.Equal(t, ports.TokenComment, pack.Tokens()[0].Kind)
}

func TestTokenPack_ReleaseIsIdempotent(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"a.c": "int a;"}, "a.c")
	rng, err := NewRangeResolver(f, f).Resolve(tu, "a.c")
	require.NoError(t, err)

	pack, err := NewTokenPack(f, tu, rng)
	require.NoError(t, err)
	pack.Release()
	pack.Release()
	assert.Zero(t, f.Live("tokens"))
	assert.Equal(t, 3, pack.Len(), "decoded tokens outlive the array")
}

func TestTokenPack_NullArrayWithTokensFails(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"a.c": "int a;"}, "a.c")
	f.BrokenTokens = true
	rng, err := NewRangeResolver(f, f).Resolve(tu, "a.c")
	require.NoError(t, err)

	_, err = NewTokenPack(f, tu, rng)
	assert.True(t, errors.Is(err, ErrAcquisition))
}

func TestAnnotate_Aligned(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"a.c": "int a = b;"}, "a.c")
	rng, err := NewRangeResolver(f, f).Resolve(tu, "a.c")
	require.NoError(t, err)
	pack, err := NewTokenPack(f, tu, rng)
	require.NoError(t, err)
	defer pack.Release()

	cursors, err := Annotate(f, tu, pack)
	require.NoError(t, err)
	assert.Equal(t, []ports.CursorKind{
		ports.CursorDeclStmt, ports.CursorVarDecl, ports.CursorUnexposedExpr, ports.CursorDeclRefExpr, ports.CursorUnexposedExpr,
	}, cursors)
}

func TestAnnotate_Mismatch(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"a.c": "int a = b;"}, "a.c")
	f.DropAnnotation = true
	rng, err := NewRangeResolver(f, f).Resolve(tu, "a.c")
	require.NoError(t, err)
	pack, err := NewTokenPack(f, tu, rng)
	require.NoError(t, err)
	defer pack.Release()

	cursors, err := Annotate(f, tu, pack)
	assert.Nil(t, cursors)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Contains(t, err.Error(), "5 tokens but 4 cursor annotations")
}

func TestCollectDiagnostics_KeepsOrderAndLogs(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"a.c": "int a;"}, "a.c")
	f.Diagnostics["a.c"] = []ports.Diagnostic{
		{Severity: ports.SeverityWarning, Message: "first"},
		{Severity: ports.SeverityError, Message: "second"},
	}

	var buf logBuffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	diags := CollectDiagnostics(ctx, f, tu)
	assert.Equal(t, []string{"first", "second"}, []string{diags[0].Message, diags[1].Message})
	assert.Contains(t, buf.String(), `"severity":"warning"`)
	assert.Contains(t, buf.String(), `"message":"second"`)
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestCollectDiagnostics_QuietAtWarn(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"a.c": "int a;"}, "a.c")
	f.Diagnostics["a.c"] = []ports.Diagnostic{{Severity: ports.SeverityError, Message: "boom"}}

	var buf logBuffer
	ctx := zerolog.New(&buf).Level(zerolog.WarnLevel).WithContext(context.Background())

	diags := CollectDiagnostics(ctx, f, tu)
	require.Len(t, diags, 1)
	assert.Empty(t, buf.String(), "the failure reports diagnostics; the default log level should not repeat them")
}

func TestCollectDiagnostics_NoTranslationUnit(t *testing.T) {
	f := highlighttest.NewFrontend(nil)
	assert.Nil(t, CollectDiagnostics(context.Background(), f, 0))
}

type logBuffer struct{ data []byte }

func (b *logBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *logBuffer) String() string { return string(b.data) }
