package record

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corey/semhl/internal/ports"
)

func TestRecorder_ClearResets(t *testing.T) {
	r := NewRecorder()
	r.Add(ports.Highlight{Category: "Keyword", Line: 1, Column: 1, Length: 3})
	r.Clear()
	r.Add(ports.Highlight{Category: "Comment", Line: 2, Column: 1, Length: 7})

	assert.Equal(t, []ports.Highlight{{Category: "Comment", Line: 2, Column: 1, Length: 7}}, r.Highlights())
	assert.Equal(t, 1, r.Clears())
}

func TestRecorder_HighlightsIsACopy(t *testing.T) {
	r := NewRecorder()
	r.Add(ports.Highlight{Category: "Keyword", Line: 1, Column: 1, Length: 3})

	got := r.Highlights()
	got[0].Category = "Mutated"
	assert.Equal(t, "Keyword", r.Highlights()[0].Category)
}

func TestRecorder_EmptyIsNotNil(t *testing.T) {
	r := NewRecorder()
	r.Clear()
	assert.NotNil(t, r.Highlights())
	assert.Empty(t, r.Highlights())
}
