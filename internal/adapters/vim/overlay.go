// Package vim renders highlight instructions as Vim script. A Vim host
// sources the output to replace the window's matches.
package vim

import (
	"fmt"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/domain/highlight"
	"github.com/corey/semhl/internal/ports"
)

// Overlay implements ports.Overlay by writing one Vim command per call.
// The first write error sticks: later calls are dropped and Err reports it.
type Overlay struct {
	w   io.Writer
	err error
}

// NewOverlay creates an overlay writing to w.
func NewOverlay(w io.Writer) *Overlay {
	return &Overlay{w: w}
}

// Clear emits clearmatches().
func (o *Overlay) Clear() {
	o.printf("call clearmatches()\n")
}

// Add emits one matchaddpos() for h. The group name is the category.
func (o *Overlay) Add(h ports.Highlight) {
	o.printf("call matchaddpos(%s, [[%d, %d, %d]])\n", quote(h.Category), h.Line, h.Column, h.Length)
}

// Err returns the first write error, if any.
func (o *Overlay) Err() error {
	return o.err
}

func (o *Overlay) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	if _, err := fmt.Fprintf(o.w, format, args...); err != nil {
		o.err = errors.WithStack(err)
	}
}

// quote returns s as a single-quoted Vim string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// groupLinks maps categories onto Vim's standard highlight groups.
var groupLinks = map[highlight.Category]string{
	highlight.CategoryKeyword:          "Keyword",
	highlight.CategoryPunctuation:      "Delimiter",
	highlight.CategoryComment:          "Comment",
	highlight.CategoryStringLiteral:    "String",
	highlight.CategoryCharacterLiteral: "Character",
	highlight.CategoryNumberLiteral:    "Number",
	highlight.CategoryLiteral:          "Constant",
	highlight.CategoryType:             "Type",
	highlight.CategoryTypeRef:          "Type",
	highlight.CategoryFunction:         "Function",
	highlight.CategoryFunctionCall:     "Function",
	highlight.CategoryVariable:         "Identifier",
	highlight.CategoryVariableRef:      "Identifier",
	highlight.CategoryParameter:        "Identifier",
	highlight.CategoryMember:           "Identifier",
	highlight.CategoryEnumConstant:     "Constant",
	highlight.CategoryNamespace:        "Special",
	highlight.CategoryMacro:            "Macro",
	highlight.CategoryLabel:            "Label",
	highlight.CategoryIdentifier:       "Normal",
}

// GroupLink returns the Vim group a category links to by default.
func GroupLink(c highlight.Category) string {
	if g, ok := groupLinks[c]; ok {
		return g
	}
	return "Normal"
}

// WriteGroups writes a `hi default link` line for every category, so hosts
// get sensible colours without their own mapping.
func WriteGroups(w io.Writer) error {
	for _, c := range highlight.Categories {
		if _, err := fmt.Fprintf(w, "hi default link %s %s\n", c, GroupLink(c)); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
