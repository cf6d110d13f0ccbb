package book

import "strings"

// SegmentType distinguishes narrator prose from quoted speech.
type SegmentType string

const (
	Narration SegmentType = "narration"
	Dialogue  SegmentType = "dialogue"
)

// Segment is the atomic unit of classified text handed to synthesis.
// Speaker is the canonical character name for dialogue; empty means
// narrator (for narration) or unknown speaker (for dialogue).
type Segment struct {
	Text    string      `json:"text"`
	Type    SegmentType `json:"type"`
	Speaker string      `json:"speaker,omitempty"`
}

func (s Segment) IsDialogue() bool {
	return s.Type == Dialogue
}

func (s Segment) IsNarration() bool {
	return s.Type == Narration
}

// Chapter holds segments in narrative order. Number 0 is reserved for a
// preface-like section that precedes the first chapter heading.
type Chapter struct {
	Number   int       `json:"number"`
	Title    string    `json:"title"`
	Segments []Segment `json:"segments"`
}

type Book struct {
	Title    string    `json:"title"`
	Author   string    `json:"author,omitempty"`
	Chapters []Chapter `json:"chapters"`
}

// strippable is the punctuation set that never carries spoken meaning on
// its own. Quoted spans reduced to nothing by this set come from corrupted
// source formatting.
const strippable = ".,;:!?\"'-"

// HasContent reports whether text still says something after trimming
// whitespace and bare punctuation. Segments failing this check must not be
// emitted.
func HasContent(text string) bool {
	trimmed := strings.TrimFunc(text, func(r rune) bool {
		return strings.ContainsRune(strippable, r) || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return trimmed != ""
}
