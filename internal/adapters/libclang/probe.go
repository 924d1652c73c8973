//go:build darwin || linux

package libclang

import (
	"github.com/ebitengine/purego"
	"gitlab.com/tozd/go/errors"
)

// ProbeResult describes a libclang shared library that loaded and answered.
type ProbeResult struct {
	Path string `json:"path" yaml:"path"`
	// IndexRoundTrip is true when clang_createIndex returned an index that
	// clang_disposeIndex accepted.
	IndexRoundTrip bool `json:"index_round_trip" yaml:"index_round_trip"`
}

// probeSymbols must all resolve for the library to be usable by the frontend.
var probeSymbols = []string{
	"clang_createIndex",
	"clang_disposeIndex",
	"clang_parseTranslationUnit",
	"clang_tokenize",
	"clang_annotateTokens",
	"clang_disposeTokens",
	"clang_getLocationForOffset",
}

// Probe locates libclang in paths, dlopens it without cgo and creates and
// disposes one index. It needs no compiler headers, so it works in every build.
func Probe(paths []string) (*ProbeResult, error) {
	path, err := Locate(paths)
	if err != nil {
		return nil, err
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, errors.Errorf("dlopen %s: %w", path, err)
	}
	defer purego.Dlclose(handle)

	for _, sym := range probeSymbols {
		if _, err := purego.Dlsym(handle, sym); err != nil {
			return nil, errors.Errorf("%s: missing symbol %s: %w", path, sym, err)
		}
	}

	var createIndex func(excludeDeclarationsFromPCH, displayDiagnostics int32) uintptr
	var disposeIndex func(index uintptr)
	purego.RegisterLibFunc(&createIndex, handle, "clang_createIndex")
	purego.RegisterLibFunc(&disposeIndex, handle, "clang_disposeIndex")

	result := &ProbeResult{Path: path}
	if idx := createIndex(0, 0); idx != 0 {
		disposeIndex(idx)
		result.IndexRoundTrip = true
	}
	return result, nil
}
