package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/corey/semhl/internal/adapters/socket"
)

// ConfigFileName is looked up in the working directory when no --config is given.
const ConfigFileName = ".semhl.yaml"

// Config is the project configuration file.
type Config struct {
	// Flags are passed to the frontend for every file: language standard,
	// standard library choice and include search paths.
	Flags []string `yaml:"flags"`

	// LibraryPaths are searched for the libclang shared library before
	// $LIBCLANG_PATH and the platform defaults.
	LibraryPaths []string `yaml:"library_paths,omitempty"`

	LogLevel string `yaml:"log_level"`

	// Socket overrides the daemon socket path derived from the project root.
	Socket string `yaml:"socket,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Flags:    []string{"-std=c++17", "-I.", "-Iinclude"},
		LogLevel: zerolog.LevelWarnValue,
	}
}

// LoadConfig reads path from fs on top of DefaultConfig. A missing file is
// only an error when explicit is set, i.e. the user named it.
func LoadConfig(fs afero.Fs, path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()

	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parse %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, errors.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Level returns the zerolog level named by LogLevel. Empty means warn.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, errors.WithDetails(errors.Errorf("unknown log level %q", c.LogLevel), "level", c.LogLevel)
	}
	return lvl, nil
}

// WithFlags returns a copy of c with extra appended to Flags.
func (c *Config) WithFlags(extra ...string) *Config {
	out := *c
	out.Flags = append(append([]string(nil), c.Flags...), extra...)
	return &out
}

// SocketPath returns the daemon socket for the project at root.
func (c *Config) SocketPath(root string) string {
	if c.Socket != "" {
		return c.Socket
	}
	return socket.SocketPath(root)
}

// Marshal renders c as YAML, the same shape LoadConfig reads.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	return out, errors.WithStack(err)
}

// WriteConfig writes c to path, refusing to replace an existing file.
func WriteConfig(fs afero.Fs, path string, c *Config) error {
	if ok, err := afero.Exists(fs, path); err != nil {
		return errors.WithStack(err)
	} else if ok {
		return errors.Errorf("%s already exists", path)
	}
	out, err := c.Marshal()
	if err != nil {
		return err
	}
	return errors.WithStack(afero.WriteFile(fs, path, out, 0o644))
}
