package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstQuoteSpan returns the [start, end) offsets of the first quoted
// span in p, including the quote characters.
func firstQuoteSpan(t *testing.T, p string) (int, int) {
	t.Helper()
	loc := dialoguePattern.FindStringIndex(p)
	require.NotNil(t, loc, "paragraph has no quote: %q", p)
	return loc[0], loc[1]
}

func TestFindAttributionVerbNameTo(t *testing.T) {
	p := `"My dear Mr. Bennet," said his lady to him one day, "have you heard?"`
	start, end := firstQuoteSpan(t, p)

	descriptor, attrEnd := NewAttributionMatcher().Find(p, start, end)

	assert.Equal(t, "his lady", descriptor)
	assert.Greater(t, attrEnd, end, "attribution clause should extend past the quote")
}

func TestFindAttributionVerbNameTerminator(t *testing.T) {
	p := `"Nonsense," said Mr. Bennet, "how can you talk so!"`
	start, end := firstQuoteSpan(t, p)

	descriptor, attrEnd := NewAttributionMatcher().Find(p, start, end)

	assert.Equal(t, "Mr. Bennet", descriptor)
	assert.Greater(t, attrEnd, end)
}

func TestFindAttributionNameBeforeVerb(t *testing.T) {
	p := `"I hope not," John replied.`
	start, end := firstQuoteSpan(t, p)

	descriptor, attrEnd := NewAttributionMatcher().Find(p, start, end)

	assert.Equal(t, "John", descriptor)
	assert.Greater(t, attrEnd, end)
}

func TestFindAttributionPossessive(t *testing.T) {
	p := `"Yes, my dear," said his wife.`
	start, end := firstQuoteSpan(t, p)

	descriptor, _ := NewAttributionMatcher().Find(p, start, end)

	assert.Equal(t, "his wife", descriptor)
}

func TestFindAttributionBeforeQuote(t *testing.T) {
	p := `Elizabeth said, "I am perfectly convinced of it."`
	start, end := firstQuoteSpan(t, p)

	descriptor, attrEnd := NewAttributionMatcher().Find(p, start, end)

	assert.Equal(t, "Elizabeth", descriptor)
	assert.Equal(t, end, attrEnd, "attribution before the quote is already narration")
}

func TestFindAttributionNoMatch(t *testing.T) {
	p := `"It is raining again."`
	start, end := firstQuoteSpan(t, p)

	descriptor, attrEnd := NewAttributionMatcher().Find(p, start, end)

	assert.Empty(t, descriptor)
	assert.Equal(t, end, attrEnd)
}

func TestFindAttributionWindowIsBounded(t *testing.T) {
	filler := strings.Repeat("x ", 80)
	p := `"Well."` + filler + `said Mr. Bennet,`
	start, end := firstQuoteSpan(t, p)

	descriptor, _ := NewAttributionMatcher().Find(p, start, end)

	assert.Empty(t, descriptor, "attribution beyond the window must not match")
}
