package app

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Paths holds the resolved locations under the .semhl/ project directory.
type Paths struct {
	Root string // .semhl/

	LogDir    string // .semhl/log/
	DaemonLog string // .semhl/log/daemon.log

	RunDir  string // .semhl/run/
	PIDFile string // .semhl/run/daemon.pid
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".semhl")
	return &Paths{
		Root: root,

		LogDir:    filepath.Join(root, "log"),
		DaemonLog: filepath.Join(root, "log", "daemon.log"),

		RunDir:  filepath.Join(root, "run"),
		PIDFile: filepath.Join(root, "run", "daemon.pid"),
	}
}

// EnsureDirs creates all subdirectories under .semhl/. Idempotent.
func (p *Paths) EnsureDirs(fs afero.Fs) error {
	for _, d := range []string{p.Root, p.LogDir, p.RunDir} {
		if err := fs.MkdirAll(d, 0o755); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// WritePID records the daemon's process id.
func (p *Paths) WritePID(fs afero.Fs, pid int) error {
	return errors.WithStack(afero.WriteFile(fs, p.PIDFile, []byte(strconv.Itoa(pid)+"\n"), 0o644))
}

// ReadPID returns the recorded daemon process id, or 0 when there is none.
func (p *Paths) ReadPID(fs afero.Fs) int {
	data, err := afero.ReadFile(fs, p.PIDFile)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// CleanEphemeral removes runtime files. Called on clean daemon shutdown.
func (p *Paths) CleanEphemeral(fs afero.Fs) {
	_ = fs.Remove(p.PIDFile)
}

// ErrNoMatch is returned by ExpandPaths when a pattern matches nothing.
var ErrNoMatch = errors.Base("pattern matched no files")

// ExpandPaths turns command-line arguments into file paths. Arguments
// without glob syntax are kept as they are, so a missing file still reaches
// the pipeline and fails there with a range error. Patterns ("src/**/*.cpp")
// expand to regular files in lexical order. Duplicates are dropped.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !isPattern(arg) {
			add(arg)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, errors.Errorf("bad pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, errors.WithDetails(ErrNoMatch, "pattern", arg)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func isPattern(arg string) bool {
	if _, err := os.Stat(arg); err == nil {
		return false
	}
	return strings.ContainsAny(arg, "*?[{")
}
