// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// IndexHandle is an opaque reference to a frontend index. Zero is never valid.
type IndexHandle uintptr

// TranslationUnitHandle is an opaque reference to a parsed translation unit.
// Zero means the parse produced no translation unit.
type TranslationUnitHandle uintptr

// FileHandle is an opaque reference to a file known to a translation unit.
// Zero means the translation unit does not know the file.
type FileHandle uintptr

// TokenArray is a frontend-owned array of lexed tokens. Pointer is zero when
// the frontend produced no array; Count may then be zero as well.
type TokenArray struct {
	Pointer uintptr
	Count   int
}

// SourceLocation is an opaque position produced by the frontend. The adapter
// stores its native representation in Ref; a nil Ref is the null location.
type SourceLocation struct {
	Ref any
}

// IsNull reports whether the location is the frontend's null location.
func (l SourceLocation) IsNull() bool { return l.Ref == nil }

// SourceRange is an opaque (start, end) pair produced by the frontend.
// Validity is decided by Frontend.RangeIsNull, never by inspecting Ref.
type SourceRange struct {
	Ref any
}

// IndexOptions mirrors the two flags accepted by the frontend when creating an index.
type IndexOptions struct {
	ExcludeDeclarationsFromPCH bool
	DisplayDiagnostics         bool
}

// Frontend is the compiler frontend (libclang) seen through its raw handle API.
// Every acquiring call has a matching release call; callers own the handles
// they acquire and must release inner handles before outer ones
// (tokens before translation unit, translation unit before index).
//
// The concrete implementation lives in internal/adapters/libclang.
type Frontend interface {
	// CreateIndex returns a new index, or zero on failure.
	CreateIndex(opts IndexOptions) IndexHandle
	DisposeIndex(index IndexHandle)

	// ParseTranslationUnit parses path with the given command-line arguments
	// and no special translation-unit flags. Returns zero when the frontend
	// could not produce a translation unit at all.
	ParseTranslationUnit(index IndexHandle, path string, args []string) TranslationUnitHandle
	DisposeTranslationUnit(tu TranslationUnitHandle)

	// NumDiagnostics returns the number of diagnostics attached to tu.
	NumDiagnostics(tu TranslationUnitHandle) int

	// FormatDiagnostic renders diagnostic i with the frontend's default
	// display options. The adapter owns the intermediate diagnostic and
	// string handles.
	FormatDiagnostic(tu TranslationUnitHandle, i int) Diagnostic

	// File returns the handle of path inside tu, or zero if tu does not know it.
	File(tu TranslationUnitHandle, path string) FileHandle

	// LocationForOffset returns the location of byte offset inside file,
	// or the null location if it cannot be resolved.
	LocationForOffset(tu TranslationUnitHandle, file FileHandle, offset uint32) SourceLocation

	// Range builds a range from two locations.
	Range(start, end SourceLocation) SourceRange

	// RangeIsNull applies the frontend's own validity check to r.
	RangeIsNull(r SourceRange) bool

	// Tokenize lexes r in a single batch call.
	Tokenize(tu TranslationUnitHandle, r SourceRange) TokenArray
	DisposeTokens(tu TranslationUnitHandle, tokens TokenArray)

	// Token decodes token i of the array: kind, spelling and file location.
	Token(tu TranslationUnitHandle, tokens TokenArray, i int) Token

	// AnnotateTokens returns the cursor kind of every token in one batch
	// call. The result is positionally aligned with the array.
	AnnotateTokens(tu TranslationUnitHandle, tokens TokenArray) []CursorKind
}

// TokenKind is the lexical kind of a token. Values match CXTokenKind.
type TokenKind int

const (
	TokenPunctuation TokenKind = 0
	TokenKeyword     TokenKind = 1
	TokenIdentifier  TokenKind = 2
	TokenLiteral     TokenKind = 3
	TokenComment     TokenKind = 4
)

var tokenKindNames = map[TokenKind]string{
	TokenPunctuation: "punctuation",
	TokenKeyword:     "keyword",
	TokenIdentifier:  "identifier",
	TokenLiteral:     "literal",
	TokenComment:     "comment",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Location is a resolved file position. Line and Column are 1-based,
// Column and Offset count bytes.
type Location struct {
	File   string
	Line   int
	Column int
	Offset int
}

// Token is one lexical unit returned by the frontend.
type Token struct {
	Kind     TokenKind
	Spelling string
	Location Location
}

// Severity of a diagnostic. Values match CXDiagnosticSeverity.
type Severity int

const (
	SeverityIgnored Severity = 0
	SeverityNote    Severity = 1
	SeverityWarning Severity = 2
	SeverityError   Severity = 3
	SeverityFatal   Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityIgnored:
		return "ignored"
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	for _, candidate := range []Severity{SeverityIgnored, SeverityNote, SeverityWarning, SeverityError, SeverityFatal} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return errors.Errorf("unknown severity %q", text)
}

// Diagnostic is one frontend-reported problem, already formatted.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
