package audiobook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fablecast/internal/domain/book"
)

func TestAnnouncePrependsTitle(t *testing.T) {
	ch := book.Chapter{
		Number: 3,
		Title:  "Chapter III",
		Segments: []book.Segment{
			{Text: "The story continued.", Type: book.Narration},
		},
	}

	got := Announce(ch)

	require.Len(t, got.Segments, 2)
	assert.Equal(t, "Chapter III", got.Segments[0].Text)
	assert.Equal(t, book.Narration, got.Segments[0].Type)
	assert.Empty(t, got.Segments[0].Speaker)
	assert.Equal(t, "The story continued.", got.Segments[1].Text)
}

func TestAnnounceDoesNotMutateInput(t *testing.T) {
	ch := book.Chapter{Title: "Chapter I", Segments: []book.Segment{
		{Text: "First.", Type: book.Narration},
	}}

	Announce(ch)

	require.Len(t, ch.Segments, 1)
	assert.Equal(t, "First.", ch.Segments[0].Text)
}
