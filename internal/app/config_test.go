package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(afero.NewMemMapFs(), ConfigFileName, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(afero.NewMemMapFs(), "custom.yaml", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open config")
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigFileName, []byte(`
flags: ["-std=c11", "-Ivendor"]
library_paths: ["/opt/llvm/lib"]
log_level: debug
`), 0o644))

	cfg, err := LoadConfig(fs, ConfigFileName, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"-std=c11", "-Ivendor"}, cfg.Flags)
	assert.Equal(t, []string{"/opt/llvm/lib"}, cfg.LibraryPaths)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}

func TestLoadConfig_PartialFileKeepsOtherDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigFileName, []byte("socket: /tmp/x.sock\n"), 0o644))

	cfg, err := LoadConfig(fs, ConfigFileName, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Flags, cfg.Flags)
	assert.Equal(t, "/tmp/x.sock", cfg.SocketPath("/project"))
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigFileName, nil, 0o644))

	cfg, err := LoadConfig(fs, ConfigFileName, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigFileName, []byte("flagz: []\n"), 0o644))

	_, err := LoadConfig(fs, ConfigFileName, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flagz")
}

func TestLoadConfig_BadLevel(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigFileName, []byte("log_level: loud\n"), 0o644))

	_, err := LoadConfig(fs, ConfigFileName, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "loud"`)
}

func TestConfig_LevelDefaultsToWarn(t *testing.T) {
	lvl, err := (&Config{}).Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lvl)
}

func TestConfig_WithFlagsCopies(t *testing.T) {
	base := DefaultConfig()
	more := base.WithFlags("-DNDEBUG")

	assert.Equal(t, []string{"-std=c++17", "-I.", "-Iinclude", "-DNDEBUG"}, more.Flags)
	assert.Equal(t, []string{"-std=c++17", "-I.", "-Iinclude"}, base.Flags)
}

func TestConfig_SocketPathDerivedFromRoot(t *testing.T) {
	cfg := DefaultConfig()
	assert.Regexp(t, `^/tmp/semhl-[0-9a-f]{12}\.sock$`, cfg.SocketPath("/project"))
	assert.Equal(t, cfg.SocketPath("/project"), cfg.SocketPath("/project"))
	assert.NotEqual(t, cfg.SocketPath("/project"), cfg.SocketPath("/other"))
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	want := DefaultConfig().WithFlags("-Ithird_party")

	require.NoError(t, WriteConfig(fs, ConfigFileName, want))
	got, err := LoadConfig(fs, ConfigFileName, true)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	err = WriteConfig(fs, ConfigFileName, want)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
