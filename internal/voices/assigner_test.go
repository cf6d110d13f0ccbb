package voices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fablecast/internal/domain/book"
)

func TestVoiceForEmptySpeakerIsNarrator(t *testing.T) {
	a := NewAssigner("narrator")
	a.SetAvailableVoices([]string{"male1", "female1"})

	assert.Equal(t, "narrator", a.VoiceFor(""))
}

func TestVoiceForRoundRobin(t *testing.T) {
	a := NewAssigner("narrator")
	a.SetAvailableVoices([]string{"male1", "female1"})

	assert.Equal(t, "male1", a.VoiceFor("Bennet"))
	assert.Equal(t, "female1", a.VoiceFor("Elizabeth"))
	assert.Equal(t, "male1", a.VoiceFor("Darcy"), "pool wraps around")
}

func TestVoiceForIsStablePerCharacter(t *testing.T) {
	a := NewAssigner("narrator")
	a.SetAvailableVoices([]string{"male1", "female1", "male2"})

	first := a.VoiceFor("Elizabeth")
	a.VoiceFor("Jane")
	a.VoiceFor("Darcy")

	assert.Equal(t, first, a.VoiceFor("elizabeth"), "lookup is case-insensitive")
}

func TestVoiceForEmptyPoolFallsBackToNarrator(t *testing.T) {
	a := NewAssigner("narrator")

	assert.Equal(t, "narrator", a.VoiceFor("Bennet"))
}

func TestAssignPinsVoice(t *testing.T) {
	a := NewAssigner("narrator")
	a.SetAvailableVoices([]string{"male1"})
	a.Assign("Elizabeth", "female3")

	assert.Equal(t, "female3", a.VoiceFor("ELIZABETH"))
}

func TestAssignmentsReturnsCopy(t *testing.T) {
	a := NewAssigner("narrator")
	a.Assign("jane", "female1")

	snapshot := a.Assignments()
	snapshot["jane"] = "mangled"

	assert.Equal(t, "female1", a.VoiceFor("jane"))
}

func TestDiscoverCharacters(t *testing.T) {
	b := book.Book{Chapters: []book.Chapter{
		{Segments: []book.Segment{
			{Type: book.Narration, Text: "He spoke."},
			{Type: book.Dialogue, Text: "Hello.", Speaker: "Bennet"},
			{Type: book.Dialogue, Text: "Hi.", Speaker: "elizabeth"},
		}},
		{Segments: []book.Segment{
			{Type: book.Dialogue, Text: "Again.", Speaker: "BENNET"},
		}},
	}}

	got := DiscoverCharacters(b)

	require.Equal(t, []string{"bennet", "elizabeth"}, got)
}

func TestDiscoverCharactersEmptyBook(t *testing.T) {
	assert.Empty(t, DiscoverCharacters(book.Book{}))
}
