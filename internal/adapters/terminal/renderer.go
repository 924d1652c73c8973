// Package terminal prints source files with their highlight instructions
// applied as ANSI colours.
package terminal

import (
	"bytes"
	"io"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/domain/highlight"
	"github.com/corey/semhl/internal/ports"
)

var palette = map[highlight.Category][]color.Attribute{
	highlight.CategoryKeyword:          {color.FgMagenta, color.Bold},
	highlight.CategoryComment:          {color.FgHiBlack},
	highlight.CategoryStringLiteral:    {color.FgGreen},
	highlight.CategoryCharacterLiteral: {color.FgGreen},
	highlight.CategoryNumberLiteral:    {color.FgYellow},
	highlight.CategoryLiteral:          {color.FgYellow},
	highlight.CategoryType:             {color.FgCyan, color.Bold},
	highlight.CategoryTypeRef:          {color.FgCyan},
	highlight.CategoryFunction:         {color.FgBlue, color.Bold},
	highlight.CategoryFunctionCall:     {color.FgBlue},
	highlight.CategoryVariable:         {color.FgHiWhite, color.Bold},
	highlight.CategoryParameter:        {color.FgHiYellow},
	highlight.CategoryMember:           {color.FgHiCyan},
	highlight.CategoryEnumConstant:     {color.FgYellow, color.Bold},
	highlight.CategoryNamespace:        {color.FgHiMagenta},
	highlight.CategoryMacro:            {color.FgRed},
	highlight.CategoryLabel:            {color.FgHiRed},
}

// Renderer colours source text by category. Punctuation, plain identifiers
// and variable references are printed unstyled.
type Renderer struct {
	styles map[string]*color.Color
}

// NewRenderer creates a renderer. When colored is false the output is the
// source unchanged, whatever the terminal.
func NewRenderer(colored bool) *Renderer {
	styles := make(map[string]*color.Color, len(palette))
	for cat, attrs := range palette {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		styles[string(cat)] = c
	}
	return &Renderer{styles: styles}
}

// Render writes src to w with highlights applied. Instructions that fall
// outside src are ignored; where two overlap the earlier one wins.
func (r *Renderer) Render(w io.Writer, src []byte, highlights []ports.Highlight) error {
	owner := paint(src, highlights)

	var out bytes.Buffer
	out.Grow(len(src))
	for start := 0; start < len(src); {
		// Styles never span a line break.
		if src[start] == '\n' {
			out.WriteByte('\n')
			start++
			continue
		}
		end := start + 1
		for end < len(src) && owner[end] == owner[start] && src[end] != '\n' {
			end++
		}
		segment := src[start:end]
		if style, ok := r.styles[owner[start]]; ok {
			out.WriteString(style.Sprint(string(segment)))
		} else {
			out.Write(segment)
		}
		start = end
	}

	if _, err := w.Write(out.Bytes()); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// paint assigns each byte of src the category of the first instruction covering it.
func paint(src []byte, highlights []ports.Highlight) []string {
	lineStarts := []int{0}
	for i, b := range src {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	owner := make([]string, len(src))
	for _, h := range highlights {
		if h.Line < 1 || h.Line > len(lineStarts) || h.Column < 1 || h.Length <= 0 {
			continue
		}
		from := lineStarts[h.Line-1] + h.Column - 1
		to := from + h.Length
		if from >= len(src) {
			continue
		}
		if to > len(src) {
			to = len(src)
		}
		for i := from; i < to; i++ {
			if owner[i] == "" {
				owner[i] = h.Category
			}
		}
	}
	return owner
}
