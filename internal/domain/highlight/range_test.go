package highlight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/semhl/internal/domain/highlight/highlighttest"
	"github.com/corey/semhl/internal/ports"
)

func parsedFake(t *testing.T, sources map[string]string, path string) (*highlighttest.Frontend, ports.TranslationUnitHandle) {
	t.Helper()
	f := highlighttest.NewFrontend(sources)
	index := f.CreateIndex(ports.IndexOptions{})
	tu := f.ParseTranslationUnit(index, path, nil)
	require.NotZero(t, tu)
	return f, tu
}

func TestResolve_CoversWholeFile(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"x.c": "int x = 1;\n"}, "x.c")

	rng, err := NewRangeResolver(f, f).Resolve(tu, "x.c")
	require.NoError(t, err)
	require.False(t, f.RangeIsNull(rng))

	r := rng.Ref.(highlighttest.Range)
	assert.Equal(t, highlighttest.Loc{Path: "x.c", Offset: 0}, r.Start)
	assert.Equal(t, highlighttest.Loc{Path: "x.c", Offset: 11}, r.End)
}

func TestResolve_NonexistentPath(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"x.c": "int x = 1;"}, "x.c")

	_, err := NewRangeResolver(f, f).Resolve(tu, "missing.c")
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, RangeUnavailable, kind)
}

func TestResolve_FileOutsideTranslationUnit(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"x.c": "int x;", "y.c": "int y;"}, "x.c")

	_, err := NewRangeResolver(f, f).Resolve(tu, "y.c")
	kind, _ := KindOf(err)
	assert.Equal(t, RangeUnavailable, kind)
	assert.Contains(t, err.Error(), "not part of the translation unit")
}

func TestResolve_EndBeyondFile(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"x.c": "int x;"}, "x.c")
	grown := sizerFunc(func(string) (int64, error) { return 100, nil })

	_, err := NewRangeResolver(f, grown).Resolve(tu, "x.c")
	kind, _ := KindOf(err)
	assert.Equal(t, RangeUnavailable, kind)
	assert.Equal(t, "cannot retrieve location", err.Error())
}

func TestResolve_SizeOverflow(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"x.c": "int x;"}, "x.c")
	huge := sizerFunc(func(string) (int64, error) { return math.MaxUint32 + 1, nil })

	_, err := NewRangeResolver(f, huge).Resolve(tu, "x.c")
	kind, _ := KindOf(err)
	assert.Equal(t, RangeUnavailable, kind)
}

func TestResolve_NullRange(t *testing.T) {
	f, tu := parsedFake(t, map[string]string{"x.c": "int x;"}, "x.c")
	f.NullRange = true

	_, err := NewRangeResolver(f, f).Resolve(tu, "x.c")
	kind, _ := KindOf(err)
	assert.Equal(t, RangeInvalid, kind)
	assert.Equal(t, "cannot retrieve range", err.Error())
}
