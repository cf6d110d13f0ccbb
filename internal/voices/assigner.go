// Package voices assigns synthesis voices to the narrator and to the
// characters discovered in a parsed book.
package voices

import (
	"sort"
	"strings"
	"sync"

	"fablecast/internal/domain/book"
)

// Assigner hands out voices: the narrator keeps a fixed voice, characters
// draw from a round-robin pool on first appearance. Assignments are keyed
// by lowercase character name.
type Assigner struct {
	mu        sync.Mutex
	narrator  string
	assigned  map[string]string
	available []string
	next      int
}

func NewAssigner(narratorVoice string) *Assigner {
	return &Assigner{
		narrator: narratorVoice,
		assigned: make(map[string]string),
	}
}

// SetAvailableVoices replaces the character voice pool and restarts the
// round-robin.
func (a *Assigner) SetAvailableVoices(voices []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.available = append([]string(nil), voices...)
	a.next = 0
}

// Assign pins a specific voice to a character.
func (a *Assigner) Assign(character, voiceID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.assigned[strings.ToLower(character)] = voiceID
}

// VoiceFor returns the voice for a speaker. An empty speaker means the
// narrator; with an empty pool, characters also fall back to the narrator
// voice.
func (a *Assigner) VoiceFor(speaker string) string {
	if speaker == "" {
		return a.narrator
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := strings.ToLower(speaker)
	if voice, ok := a.assigned[key]; ok {
		return voice
	}

	if len(a.available) == 0 {
		return a.narrator
	}

	voice := a.available[a.next%len(a.available)]
	a.assigned[key] = voice
	a.next++
	return voice
}

// Assignments returns a copy of the character-to-voice table.
func (a *Assigner) Assignments() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]string, len(a.assigned))
	for k, v := range a.assigned {
		out[k] = v
	}
	return out
}

// DiscoverCharacters lists the unique speakers in a book, lowercased and
// sorted.
func DiscoverCharacters(b book.Book) []string {
	seen := make(map[string]bool)
	for _, ch := range b.Chapters {
		for _, seg := range ch.Segments {
			if seg.Speaker != "" {
				seen[strings.ToLower(seg.Speaker)] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
