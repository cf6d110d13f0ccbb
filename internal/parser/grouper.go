package parser

import (
	"strings"

	"fablecast/internal/domain/book"
)

// shortNarrationLimit marks a narration fragment as "probably a bare
// attribution clause" for merging purposes.
const shortNarrationLimit = 50

// attributionOnlyWords are the verbs and adverbs a dropped-out attribution
// fragment is made of.
var attributionOnlyWords = map[string]bool{
	"said": true, "replied": true, "asked": true, "cried": true,
	"exclaimed": true, "whispered": true, "shouted": true, "answered": true,
	"returned": true, "continued": true,
	"impatiently": true, "coldly": true, "warmly": true, "softly": true, "loudly": true,
}

// GroupSegments merges consecutive same-speaker dialogue and
// continuation narration into larger, speakable units, then drops tiny
// narration fragments that are nothing but attribution words. Input
// segments are never mutated; each merge builds a new value.
func GroupSegments(segments []book.Segment) []book.Segment {
	if len(segments) == 0 {
		return nil
	}

	var grouped []book.Segment
	current := segments[0]

	for _, seg := range segments[1:] {
		if shouldMerge(current, seg) {
			current = book.Segment{
				Text:    mergeText(current.Text, seg.Text),
				Type:    current.Type,
				Speaker: current.Speaker,
			}
			continue
		}
		grouped = append(grouped, current)
		current = seg
	}
	grouped = append(grouped, current)

	return filterShortFragments(grouped)
}

func shouldMerge(a, b book.Segment) bool {
	if a.Type != b.Type {
		return false
	}

	if a.IsDialogue() {
		// Unknown-speaker dialogue never merges with anything.
		return a.Speaker != "" && b.Speaker != "" && strings.EqualFold(a.Speaker, b.Speaker)
	}

	if len(strings.TrimSpace(a.Text)) < shortNarrationLimit {
		return true
	}

	// A lowercase opening means the second fragment continues a sentence.
	bText := strings.TrimSpace(b.Text)
	if bText != "" {
		first := []rune(bText)[0]
		if first >= 'a' && first <= 'z' {
			return true
		}
	}

	return false
}

// mergeText joins two fragments with a single space. The comma/dash and
// lowercase-continuation cases deliberately produce the same join today;
// callers rely on that, so any punctuation-aware divergence needs a test
// change first.
func mergeText(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

func filterShortFragments(segments []book.Segment) []book.Segment {
	var filtered []book.Segment

	for _, seg := range segments {
		if seg.IsDialogue() {
			filtered = append(filtered, seg)
			continue
		}

		text := strings.TrimSpace(seg.Text)
		if len(text) > 30 {
			filtered = append(filtered, seg)
			continue
		}

		if !containsAttributionWord(text) {
			filtered = append(filtered, seg)
		} else if len(text) > 15 {
			// Long enough to carry context worth vocalizing.
			filtered = append(filtered, seg)
		}
	}

	return filtered
}

func containsAttributionWord(text string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if attributionOnlyWords[strings.Trim(word, ".,;:!?\"'-")] {
			return true
		}
	}
	return false
}
