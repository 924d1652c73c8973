// Package highlighttest provides a scripted stand-in for the libclang
// frontend, for tests that need a full pipeline without a compiler.
package highlighttest

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/corey/semhl/internal/ports"
)

// Frontend is a scripted stand-in for libclang. It lexes a small C subset
// from in-memory sources, annotates identifiers with plausible cursor kinds and
// records every acquire/release so tests can check handle lifetimes.
type Frontend struct {
	// Diagnostics are reported for a path on top of unbalanced brackets.
	Diagnostics map[string][]ports.Diagnostic

	FailIndex      bool // CreateIndex returns zero
	FailParse      bool // ParseTranslationUnit returns zero
	UnknownFile    bool // File returns zero
	NullRange      bool // Range returns the null range
	DropAnnotation bool // AnnotateTokens returns one cursor too few
	BrokenTokens   bool // Tokenize returns a null array that claims tokens

	mu         sync.Mutex
	sources    map[string]string
	events     []string
	lastArgs   []string
	lastCount  int
	nextHandle uintptr
	live       map[string]int
	tus        map[ports.TranslationUnitHandle]string
	files      map[ports.FileHandle]string
	arrays     map[uintptr][]token
}

// Loc is the Ref of every location the fake hands out.
type Loc struct {
	Path   string
	Offset int
}

// Range is the Ref of every non-null range the fake hands out.
type Range struct {
	Start, End Loc
}

type token struct {
	tok    ports.Token
	cursor ports.CursorKind
}

// NewFrontend creates a fake serving the given path → source map.
func NewFrontend(sources map[string]string) *Frontend {
	if sources == nil {
		sources = make(map[string]string)
	}
	return &Frontend{
		sources:     sources,
		Diagnostics: make(map[string][]ports.Diagnostic),
		live:        make(map[string]int),
		tus:         make(map[ports.TranslationUnitHandle]string),
		files:       make(map[ports.FileHandle]string),
		arrays:      make(map[uintptr][]token),
	}
}

func (f *Frontend) handle() uintptr {
	f.nextHandle++
	return f.nextHandle
}

// Events returns the acquire and release calls seen so far, in order.
func (f *Frontend) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

// LastArgs returns the compiler arguments of the most recent parse.
func (f *Frontend) LastArgs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lastArgs...)
}

// LastCount returns the token count of the most recent Tokenize call.
func (f *Frontend) LastCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCount
}

// Live returns how many handles of kind ("index", "tu" or "tokens") are
// acquired and not yet released.
func (f *Frontend) Live(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live[kind]
}

// LiveHandles sums Live over every kind.
func (f *Frontend) LiveHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.live {
		n += c
	}
	return n
}

// SetSource adds or replaces the source served for path.
func (f *Frontend) SetSource(path, src string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[path] = src
}

// FileSize lets the fake double as the pipeline's ports.FileSizer.
func (f *Frontend) FileSize(path string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	src, ok := f.sources[path]
	if !ok {
		return 0, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return int64(len(src)), nil
}

func (f *Frontend) CreateIndex(opts ports.IndexOptions) ports.IndexHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailIndex {
		return 0
	}
	f.events = append(f.events, fmt.Sprintf("create index display=%t", opts.DisplayDiagnostics))
	f.live["index"]++
	return ports.IndexHandle(f.handle())
}

func (f *Frontend) DisposeIndex(ports.IndexHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "dispose index")
	f.live["index"]--
}

func (f *Frontend) ParseTranslationUnit(_ ports.IndexHandle, path string, args []string) ports.TranslationUnitHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastArgs = append([]string(nil), args...)
	if _, ok := f.sources[path]; !ok || f.FailParse {
		return 0
	}
	f.events = append(f.events, "parse "+path)
	f.live["tu"]++
	tu := ports.TranslationUnitHandle(f.handle())
	f.tus[tu] = path
	return tu
}

func (f *Frontend) DisposeTranslationUnit(tu ports.TranslationUnitHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "dispose tu")
	f.live["tu"]--
	delete(f.tus, tu)
}

func (f *Frontend) diagnosticsFor(tu ports.TranslationUnitHandle) []ports.Diagnostic {
	path := f.tus[tu]
	diags := append([]ports.Diagnostic(nil), f.Diagnostics[path]...)
	return append(diags, bracketDiagnostics(path, f.sources[path])...)
}

func (f *Frontend) NumDiagnostics(tu ports.TranslationUnitHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.diagnosticsFor(tu))
}

func (f *Frontend) FormatDiagnostic(tu ports.TranslationUnitHandle, i int) ports.Diagnostic {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.diagnosticsFor(tu)[i]
}

func (f *Frontend) File(tu ports.TranslationUnitHandle, path string) ports.FileHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UnknownFile || f.tus[tu] != path {
		return 0
	}
	h := ports.FileHandle(f.handle())
	f.files[h] = path
	return h
}

func (f *Frontend) LocationForOffset(_ ports.TranslationUnitHandle, file ports.FileHandle, offset uint32) ports.SourceLocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	path, ok := f.files[file]
	if !ok || int(offset) > len(f.sources[path]) {
		return ports.SourceLocation{}
	}
	return ports.SourceLocation{Ref: Loc{Path: path, Offset: int(offset)}}
}

func (f *Frontend) Range(start, end ports.SourceLocation) ports.SourceRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok1 := start.Ref.(Loc)
	e, ok2 := end.Ref.(Loc)
	if !ok1 || !ok2 || f.NullRange {
		return ports.SourceRange{}
	}
	return ports.SourceRange{Ref: Range{Start: s, End: e}}
}

func (f *Frontend) RangeIsNull(r ports.SourceRange) bool {
	_, ok := r.Ref.(Range)
	return !ok
}

func (f *Frontend) Tokenize(_ ports.TranslationUnitHandle, r ports.SourceRange) ports.TokenArray {
	f.mu.Lock()
	defer f.mu.Unlock()
	rng := r.Ref.(Range)
	src := f.sources[rng.Start.Path][rng.Start.Offset:rng.End.Offset]
	toks := annotate(Lex(rng.Start.Path, src))
	f.lastCount = len(toks)
	if f.BrokenTokens {
		return ports.TokenArray{Count: len(toks)}
	}
	if len(toks) == 0 {
		return ports.TokenArray{}
	}
	ptr := f.handle()
	f.arrays[ptr] = toks
	f.live["tokens"]++
	f.events = append(f.events, "tokenize")
	return ports.TokenArray{Pointer: ptr, Count: len(toks)}
}

func (f *Frontend) DisposeTokens(_ ports.TranslationUnitHandle, tokens ports.TokenArray) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tokens.Pointer == 0 {
		return
	}
	f.events = append(f.events, "dispose tokens")
	f.live["tokens"]--
	delete(f.arrays, tokens.Pointer)
}

func (f *Frontend) Token(_ ports.TranslationUnitHandle, tokens ports.TokenArray, i int) ports.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.arrays[tokens.Pointer][i].tok
}

func (f *Frontend) AnnotateTokens(_ ports.TranslationUnitHandle, tokens ports.TokenArray) []ports.CursorKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	toks := f.arrays[tokens.Pointer]
	kinds := make([]ports.CursorKind, len(toks))
	for i, t := range toks {
		kinds[i] = t.cursor
	}
	if f.DropAnnotation && len(kinds) > 0 {
		kinds = kinds[:len(kinds)-1]
	}
	return kinds
}

var keywords = map[string]bool{
	"int": true, "char": true, "void": true, "float": true, "double": true, "bool": true,
	"long": true, "short": true, "unsigned": true, "const": true, "static": true, "auto": true,
	"return": true, "if": true, "else": true, "for": true, "while": true, "do": true,
	"struct": true, "class": true, "enum": true, "union": true, "namespace": true, "using": true,
	"typedef": true, "true": true, "false": true, "nullptr": true, "sizeof": true,
}

var typeKeywords = map[string]bool{
	"int": true, "char": true, "void": true, "float": true, "double": true, "bool": true,
	"long": true, "short": true, "unsigned": true, "auto": true,
}

var operators = []string{"::", "->", "++", "--", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "+=", "-="}

// Lex splits src into tokens with 1-based byte columns.
func Lex(path, src string) []ports.Token {
	var toks []ports.Token
	line, col := 1, 1
	i := 0
	emit := func(kind ports.TokenKind, start, end, l, c int) {
		toks = append(toks, ports.Token{
			Kind:     kind,
			Spelling: src[start:end],
			Location: ports.Location{File: path, Line: l, Column: c, Offset: start},
		})
	}
	advance := func(to int) {
		for ; i < to; i++ {
			if src[i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	for i < len(src) {
		c := src[i]
		start, l, cl := i, line, col
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			advance(i + 1)
		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}
			advance(i + end)
			emit(ports.TokenComment, start, i, l, cl)
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				advance(len(src))
			} else {
				advance(i + 2 + end + 2)
			}
			emit(ports.TokenComment, start, i, l, cl)
		case isIdentStart(c):
			j := i
			for j < len(src) && (isIdentStart(src[j]) || isDigit(src[j])) {
				j++
			}
			advance(j)
			kind := ports.TokenIdentifier
			if keywords[src[start:i]] {
				kind = ports.TokenKeyword
			}
			emit(kind, start, i, l, cl)
		case isDigit(c):
			j := i
			for j < len(src) && (isIdentStart(src[j]) || isDigit(src[j]) || src[j] == '.') {
				j++
			}
			advance(j)
			emit(ports.TokenLiteral, start, i, l, cl)
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(src) && src[j] != c && src[j] != '\n' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(src) && src[j] == c {
				j++
			}
			advance(j)
			emit(ports.TokenLiteral, start, i, l, cl)
		default:
			width := 1
			for _, op := range operators {
				if strings.HasPrefix(src[i:], op) {
					width = len(op)
					break
				}
			}
			advance(i + width)
			emit(ports.TokenPunctuation, start, i, l, cl)
		}
	}
	return toks
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// annotate assigns cursor kinds from local context, roughly the way
// libclang's batch annotation would for simple C.
func annotate(toks []ports.Token) []token {
	out := make([]token, len(toks))
	types := map[string]bool{}
	spell := func(i int) string {
		if i < 0 || i >= len(toks) {
			return ""
		}
		return toks[i].Spelling
	}

	for i, t := range toks {
		cursor := ports.CursorUnexposedExpr
		switch t.Kind {
		case ports.TokenComment:
			cursor = ports.CursorTranslationUnit
		case ports.TokenLiteral:
			cursor = ports.CursorIntegerLiteral
			if strings.HasPrefix(t.Spelling, `"`) {
				cursor = ports.CursorStringLiteral
			}
		case ports.TokenKeyword:
			cursor = ports.CursorDeclStmt
		case ports.TokenIdentifier:
			prev, next := spell(i-1), spell(i+1)
			switch {
			case prev == "struct" || prev == "class":
				types[t.Spelling] = true
				cursor = ports.CursorStructDecl
			case prev == "enum":
				cursor = ports.CursorEnumDecl
			case types[t.Spelling]:
				cursor = ports.CursorTypeRef
			case prev == "." || prev == "->":
				cursor = ports.CursorMemberRefExpr
			case next == "(" && (typeKeywords[prev] || types[prev]):
				cursor = ports.CursorFunctionDecl
			case next == "(":
				cursor = ports.CursorCallExpr
			case typeKeywords[prev] || types[prev] || prev == "*":
				cursor = ports.CursorVarDecl
			case prev == "#" || spell(i-2) == "#":
				cursor = ports.CursorMacroDefinition
			default:
				cursor = ports.CursorDeclRefExpr
			}
		}
		out[i] = token{tok: t, cursor: cursor}
	}
	return out
}

// bracketDiagnostics reports unbalanced brackets the way a compiler would.
func bracketDiagnostics(path, src string) []ports.Diagnostic {
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	closers := map[byte]byte{'(': ')', '[': ']', '{': '}'}
	var stack []byte
	var diags []ports.Diagnostic
	for _, t := range Lex(path, src) {
		if t.Kind != ports.TokenPunctuation || len(t.Spelling) != 1 {
			continue
		}
		c := t.Spelling[0]
		if _, ok := closers[c]; ok {
			stack = append(stack, c)
			continue
		}
		if open, ok := pairs[c]; ok {
			if len(stack) == 0 || stack[len(stack)-1] != open {
				diags = append(diags, ports.Diagnostic{
					Severity: ports.SeverityError,
					Message:  fmt.Sprintf("%s:%d:%d: error: extraneous closing '%c'", path, t.Location.Line, t.Location.Column, c),
				})
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}
	lines := strings.Count(src, "\n") + 1
	for i := len(stack) - 1; i >= 0; i-- {
		diags = append(diags, ports.Diagnostic{
			Severity: ports.SeverityError,
			Message:  fmt.Sprintf("%s:%d:1: error: expected '%c'", path, lines, closers[stack[i]]),
		})
	}
	return diags
}

