package libclang

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// EnvLibraryPath names a directory (or the library file itself) searched
// before the defaults.
const EnvLibraryPath = "LIBCLANG_PATH"

// LibraryPatterns returns the file name patterns of the shared library on
// the current platform, most specific first.
func LibraryPatterns() []string {
	if runtime.GOOS == "darwin" {
		return []string{"libclang.dylib"}
	}
	return []string{"libclang.so", "libclang.so.*", "libclang-*.so*"}
}

// defaultLibraryDirs are globbed, so versioned LLVM installs are found
// without listing every version.
var defaultLibraryDirs = map[string][]string{
	"linux": {
		"/usr/lib/llvm-*/lib",
		"/usr/lib64/llvm*",
		"/usr/lib/x86_64-linux-gnu",
		"/usr/lib/aarch64-linux-gnu",
		"/usr/lib64",
		"/usr/lib",
		"/usr/local/lib",
	},
	"darwin": {
		"/opt/homebrew/opt/llvm/lib",
		"/usr/local/opt/llvm/lib",
		"/Library/Developer/CommandLineTools/usr/lib",
		"/Applications/Xcode.app/Contents/Developer/Toolchains/XcodeDefault.xctoolchain/usr/lib",
	},
}

// SearchPaths returns the directories Locate tries, in order: extra (from
// configuration), $LIBCLANG_PATH, then the platform defaults with globs
// expanded. Newer LLVM versions sort last within a glob, so they are
// reversed to be tried first.
func SearchPaths(extra []string) []string {
	var paths []string
	paths = append(paths, extra...)
	if env := os.Getenv(EnvLibraryPath); env != "" {
		paths = append(paths, env)
	}
	for _, pattern := range defaultLibraryDirs[runtime.GOOS] {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			continue
		}
		for i := len(matches) - 1; i >= 0; i-- {
			paths = append(paths, matches[i])
		}
	}
	return paths
}

// Locate returns the first shared library found in paths. An entry may be a
// directory or the library file itself; a file only counts when its name
// matches LibraryPatterns.
func Locate(paths []string) (string, error) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if isLibraryName(filepath.Base(p)) {
				return p, nil
			}
			continue
		}
		for _, pattern := range LibraryPatterns() {
			matches, err := doublestar.Glob(os.DirFS(p), pattern)
			if err != nil || len(matches) == 0 {
				continue
			}
			return filepath.Join(p, matches[0]), nil
		}
	}
	return "", errors.WithDetails(ErrNotFound, "searched", paths)
}

func isLibraryName(name string) bool {
	for _, pattern := range LibraryPatterns() {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
