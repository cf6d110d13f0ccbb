package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fablecast/internal/domain/book"
)

func TestSegmentParagraphClassicAttribution(t *testing.T) {
	p := `"My dear Mr. Bennet," said his lady to him one day, "have you heard that Netherfield Park is let at last?"`

	segments := New(nil).SegmentParagraph(p, "")

	require.Len(t, segments, 3)

	assert.Equal(t, book.Dialogue, segments[0].Type)
	assert.Equal(t, "My dear Mr. Bennet,", segments[0].Text)
	assert.Equal(t, "lady", segments[0].Speaker)

	assert.Equal(t, book.Narration, segments[1].Type)
	assert.Contains(t, segments[1].Text, "said his lady to him one day")

	assert.Equal(t, book.Dialogue, segments[2].Type)
	assert.Equal(t, "have you heard that Netherfield Park is let at last?", segments[2].Text)
}

func TestSegmentParagraphNoQuotes(t *testing.T) {
	p := "It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife."

	segments := New(nil).SegmentParagraph(p, "")

	require.Len(t, segments, 1)
	assert.Equal(t, book.Narration, segments[0].Type)
	assert.Equal(t, p, segments[0].Text)
}

func TestSegmentParagraphNarrationAroundDialogue(t *testing.T) {
	p := `He paused at the door. "Come in," said Mr. Bennet. The fire was lit.`

	segments := New(nil).SegmentParagraph(p, "")

	require.Len(t, segments, 3)
	assert.Equal(t, book.Narration, segments[0].Type)
	assert.Equal(t, "He paused at the door.", segments[0].Text)
	assert.Equal(t, book.Dialogue, segments[1].Type)
	assert.Equal(t, "Bennet", segments[1].Speaker)
	assert.Equal(t, book.Narration, segments[2].Type)
	assert.Contains(t, segments[2].Text, "said Mr. Bennet.")
	assert.Contains(t, segments[2].Text, "The fire was lit.")
}

func TestSegmentParagraphCurlyQuotes(t *testing.T) {
	p := "“Indeed I have,” said she."

	segments := New(nil).SegmentParagraph(p, "")

	require.NotEmpty(t, segments)
	assert.Equal(t, book.Dialogue, segments[0].Type)
	assert.Equal(t, "Indeed I have,", segments[0].Text)
}

func TestSegmentParagraphRejectsPunctuationOnlyQuote(t *testing.T) {
	p := `He stared at the page marked "   ," and sighed.`

	segments := New(nil).SegmentParagraph(p, "")

	for _, seg := range segments {
		assert.Equal(t, book.Narration, seg.Type, "corrupted quote must not surface as dialogue")
	}
}

func TestSegmentParagraphNoDialogueSegmentIsEverMeaningless(t *testing.T) {
	paragraphs := []string{
		`"." said he.`,
		`" , " whispered the wind.`,
		`"!?" cried John.`,
	}

	for _, p := range paragraphs {
		for _, seg := range New(nil).SegmentParagraph(p, "") {
			if seg.Type == book.Dialogue {
				assert.True(t, book.HasContent(seg.Text), "dialogue %q has no content", seg.Text)
			}
		}
	}
}

// Concatenating all segment texts must reproduce the paragraph's words:
// attribution clauses are reclassified as narration, never dropped.
func TestSegmentParagraphLosesNoText(t *testing.T) {
	paragraphs := []string{
		`"My dear Mr. Bennet," said his lady to him one day, "have you heard that Netherfield Park is let at last?"`,
		`He paused. "Come in," said Mr. Bennet. The fire was lit.`,
		`"I do not know," John replied. "Ask her yourself."`,
		"No dialogue here at all, just a plain sentence.",
	}

	for _, p := range paragraphs {
		var joined strings.Builder
		for _, seg := range New(nil).SegmentParagraph(p, "") {
			joined.WriteString(seg.Text)
			joined.WriteString(" ")
		}

		got := strings.Fields(joined.String())
		want := strings.Fields(strings.NewReplacer(`"`, " ", "“", " ", "”", " ").Replace(p))
		assert.Equal(t, want, got, "paragraph %q", p)
	}
}
