package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestSizer_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/x.c", []byte("int x = 1;"), 0o644))
	require.NoError(t, fs.MkdirAll("/src/include", 0o755))
	s := NewSizer(fs)

	size, err := s.FileSize("/src/x.c")
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	_, err = s.FileSize("/src/missing.c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = s.FileSize("/src/include")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestSizer_OsFs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.c")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	size, err := NewOsSizer().FileSize(path)
	require.NoError(t, err)
	assert.Zero(t, size)
}
