package scoped

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// =============================================================================
// Scoped resources: exactly-once release, no wrapper around invalid handles
// =============================================================================

func TestAcquire_ReleasesExactlyOnce(t *testing.T) {
	var released []int
	r, err := Acquire("widget", func() int { return 7 }, NonZero[int], func(h int) {
		released = append(released, h)
	})
	require.NoError(t, err)
	assert.Equal(t, 7, r.Handle())
	assert.Equal(t, "widget", r.Kind())

	r.Release()
	r.Release()
	assert.Equal(t, []int{7}, released)
	assert.True(t, r.Released())
}

func TestAcquire_InvalidHandleBuildsNothing(t *testing.T) {
	releases := 0
	r, err := Acquire("index", func() uintptr { return 0 }, NonZero[uintptr], func(uintptr) {
		releases++
	})
	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrAcquisition))

	var acq *AcquisitionError
	require.True(t, errors.As(err, &acq))
	assert.Equal(t, "index", acq.Kind)
	assert.Equal(t, 0, releases, "release must not fire for a handle that was never acquired")
}

func TestRelease_NilResourceIsNoop(t *testing.T) {
	var r *Resource[int]
	assert.NotPanics(t, func() { r.Release() })
}

func TestHandle_AfterReleasePanics(t *testing.T) {
	r := Own("string", "text", func(string) {})
	r.Release()
	assert.Panics(t, func() { _ = r.Handle() })
}

func TestRelease_ReverseOrderThroughDefers(t *testing.T) {
	var order []string
	run := func() (err error) {
		outer, err := Acquire("index", func() int { return 1 }, NonZero[int], func(int) { order = append(order, "index") })
		if err != nil {
			return err
		}
		defer outer.Release()

		inner, err := Acquire("tu", func() int { return 2 }, NonZero[int], func(int) { order = append(order, "tu") })
		if err != nil {
			return err
		}
		defer inner.Release()

		return errors.New("stage failed")
	}

	require.Error(t, run())
	assert.Equal(t, []string{"tu", "index"}, order)
}

func TestRelease_RunsWhenPanicUnwinds(t *testing.T) {
	released := false
	func() {
		defer func() { _ = recover() }()
		r := Own("tokens", 3, func(int) { released = true })
		defer r.Release()
		panic("boom")
	}()
	assert.True(t, released)
}
