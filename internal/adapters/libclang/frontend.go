//go:build cgo && libclang

package libclang

/*
#cgo LDFLAGS: -lclang
#include <stdlib.h>
#include <clang-c/Index.h>
*/
import "C"

import (
	"unsafe"

	"github.com/corey/semhl/internal/domain/scoped"
	"github.com/corey/semhl/internal/ports"
)

// Available reports whether this build links libclang.
const Available = true

// frontend implements ports.Frontend with direct libclang calls. Handles
// cross the port as uintptr; by-value structs (locations, ranges) travel in
// the port's opaque Ref fields.
type frontend struct{}

// New returns the libclang frontend.
func New() (ports.Frontend, error) {
	return frontend{}, nil
}

// Version returns libclang's version string.
func Version() string {
	v := scoped.Own("string", C.clang_getClangVersion(), disposeString)
	defer v.Release()
	return goString(v.Handle())
}

// ptr turns a handle back into the C pointer it came from. The pointee is
// owned by libclang, never by the Go heap.
func ptr(h uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&h))
}

func index(h ports.IndexHandle) C.CXIndex { return C.CXIndex(ptr(uintptr(h))) }

func unit(h ports.TranslationUnitHandle) C.CXTranslationUnit {
	return C.CXTranslationUnit(ptr(uintptr(h)))
}

func disposeString(s C.CXString) { C.clang_disposeString(s) }

func goString(s C.CXString) string {
	return C.GoString(C.clang_getCString(s))
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func (frontend) CreateIndex(opts ports.IndexOptions) ports.IndexHandle {
	idx := C.clang_createIndex(cbool(opts.ExcludeDeclarationsFromPCH), cbool(opts.DisplayDiagnostics))
	return ports.IndexHandle(uintptr(unsafe.Pointer(idx)))
}

func (frontend) DisposeIndex(h ports.IndexHandle) {
	C.clang_disposeIndex(index(h))
}

func (frontend) ParseTranslationUnit(h ports.IndexHandle, path string, args []string) ports.TranslationUnitHandle {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	cargs := make([]*C.char, len(args))
	for i, a := range args {
		cargs[i] = C.CString(a)
	}
	defer func() {
		for _, a := range cargs {
			C.free(unsafe.Pointer(a))
		}
	}()
	var argv **C.char
	if len(cargs) > 0 {
		argv = &cargs[0]
	}

	tu := C.clang_parseTranslationUnit(index(h), cpath, argv, C.int(len(cargs)), nil, 0, 0)
	return ports.TranslationUnitHandle(uintptr(unsafe.Pointer(tu)))
}

func (frontend) DisposeTranslationUnit(h ports.TranslationUnitHandle) {
	C.clang_disposeTranslationUnit(unit(h))
}

func (frontend) NumDiagnostics(h ports.TranslationUnitHandle) int {
	return int(C.clang_getNumDiagnostics(unit(h)))
}

func (frontend) FormatDiagnostic(h ports.TranslationUnitHandle, i int) ports.Diagnostic {
	diag := scoped.Own("diagnostic", C.clang_getDiagnostic(unit(h), C.uint(i)), func(d C.CXDiagnostic) {
		C.clang_disposeDiagnostic(d)
	})
	defer diag.Release()

	text := scoped.Own("string", C.clang_formatDiagnostic(diag.Handle(), C.clang_defaultDiagnosticDisplayOptions()), disposeString)
	defer text.Release()

	return ports.Diagnostic{
		Severity: ports.Severity(C.clang_getDiagnosticSeverity(diag.Handle())),
		Message:  goString(text.Handle()),
	}
}

func (frontend) File(h ports.TranslationUnitHandle, path string) ports.FileHandle {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return ports.FileHandle(uintptr(unsafe.Pointer(C.clang_getFile(unit(h), cpath))))
}

func (frontend) LocationForOffset(h ports.TranslationUnitHandle, file ports.FileHandle, offset uint32) ports.SourceLocation {
	loc := C.clang_getLocationForOffset(unit(h), C.CXFile(ptr(uintptr(file))), C.uint(offset))
	if C.clang_equalLocations(loc, C.clang_getNullLocation()) != 0 {
		return ports.SourceLocation{}
	}
	return ports.SourceLocation{Ref: loc}
}

func (frontend) Range(start, end ports.SourceLocation) ports.SourceRange {
	s, ok1 := start.Ref.(C.CXSourceLocation)
	e, ok2 := end.Ref.(C.CXSourceLocation)
	if !ok1 || !ok2 {
		return ports.SourceRange{}
	}
	return ports.SourceRange{Ref: C.clang_getRange(s, e)}
}

func (frontend) RangeIsNull(r ports.SourceRange) bool {
	rng, ok := r.Ref.(C.CXSourceRange)
	return !ok || C.clang_Range_isNull(rng) != 0
}

func tokens(a ports.TokenArray) []C.CXToken {
	if a.Pointer == 0 || a.Count == 0 {
		return nil
	}
	return unsafe.Slice((*C.CXToken)(ptr(a.Pointer)), a.Count)
}

func (frontend) Tokenize(h ports.TranslationUnitHandle, r ports.SourceRange) ports.TokenArray {
	rng, ok := r.Ref.(C.CXSourceRange)
	if !ok {
		return ports.TokenArray{}
	}
	var toks *C.CXToken
	var n C.uint
	C.clang_tokenize(unit(h), rng, &toks, &n)
	return ports.TokenArray{Pointer: uintptr(unsafe.Pointer(toks)), Count: int(n)}
}

func (frontend) DisposeTokens(h ports.TranslationUnitHandle, a ports.TokenArray) {
	if a.Pointer == 0 {
		return
	}
	C.clang_disposeTokens(unit(h), (*C.CXToken)(ptr(a.Pointer)), C.uint(a.Count))
}

func (frontend) Token(h ports.TranslationUnitHandle, a ports.TokenArray, i int) ports.Token {
	tok := tokens(a)[i]
	tu := unit(h)

	spelling := scoped.Own("string", C.clang_getTokenSpelling(tu, tok), disposeString)
	defer spelling.Release()

	var (
		file                 C.CXFile
		line, column, offset C.uint
	)
	C.clang_getSpellingLocation(C.clang_getTokenLocation(tu, tok), &file, &line, &column, &offset)

	name := scoped.Own("string", C.clang_getFileName(file), disposeString)
	defer name.Release()

	return ports.Token{
		Kind:     ports.TokenKind(C.clang_getTokenKind(tok)),
		Spelling: goString(spelling.Handle()),
		Location: ports.Location{
			File:   goString(name.Handle()),
			Line:   int(line),
			Column: int(column),
			Offset: int(offset),
		},
	}
}

func (frontend) AnnotateTokens(h ports.TranslationUnitHandle, a ports.TokenArray) []ports.CursorKind {
	toks := tokens(a)
	if len(toks) == 0 {
		return []ports.CursorKind{}
	}

	buf := scoped.Own("cursors", C.malloc(C.size_t(len(toks))*C.size_t(unsafe.Sizeof(C.CXCursor{}))), func(p unsafe.Pointer) {
		C.free(p)
	})
	defer buf.Release()

	cursors := unsafe.Slice((*C.CXCursor)(buf.Handle()), len(toks))
	C.clang_annotateTokens(unit(h), &toks[0], C.uint(len(toks)), &cursors[0])

	kinds := make([]ports.CursorKind, len(cursors))
	for i, c := range cursors {
		kinds[i] = ports.CursorKind(C.clang_getCursorKind(c))
	}
	return kinds
}
