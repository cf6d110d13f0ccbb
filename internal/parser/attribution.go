package parser

import (
	"regexp"
	"strings"
)

// attributionWindow bounds how far around a quote we look for "said X".
const attributionWindow = 100

const attributionVerbs = `(?:said|replied|cried|asked|exclaimed|whispered|shouted|answered|returned|continued)`

// properName matches an optionally-titled name. Compiled case-insensitive,
// so the letter classes fold; prose casing is too inconsistent to rely on.
const properName = `((?:Mr\.|Mrs\.|Miss|Ms\.|Dr\.|Sir|Lady)?\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`

// AttributionMatcher recognizes dialogue-attribution clauses in raw prose.
// The four shapes are tried in order; first match wins:
//
//  1. verb + name + "to"  ("said his lady to him")
//  2. verb + name + terminator
//  3. name + verb         ("John replied")
//  4. verb + possessive + common noun ("said his wife")
type AttributionMatcher struct {
	patterns []*regexp.Regexp
}

func NewAttributionMatcher() *AttributionMatcher {
	shapes := []string{
		attributionVerbs + `\s+` + properName + `(?:\s+to\s)`,
		attributionVerbs + `\s+` + properName + `[,;.]`,
		properName + `\s+` + attributionVerbs,
		attributionVerbs + `\s+(his|her)\s+([a-z]+)`,
	}

	patterns := make([]*regexp.Regexp, 0, len(shapes))
	for _, shape := range shapes {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+shape))
	}
	return &AttributionMatcher{patterns: patterns}
}

// Find searches a bounded window after the dialogue span, then before it,
// for an attribution clause. It returns the raw speaker descriptor and the
// offset past the matched clause. When the attribution sits before the
// quote (already emitted as narration) or nothing matches, the returned
// offset is dialogueEnd. An empty descriptor means no attribution found.
func (m *AttributionMatcher) Find(paragraph string, dialogueStart, dialogueEnd int) (string, int) {
	afterEnd := dialogueEnd + attributionWindow
	if afterEnd > len(paragraph) {
		afterEnd = len(paragraph)
	}
	after := paragraph[dialogueEnd:afterEnd]

	for _, re := range m.patterns {
		loc := re.FindStringSubmatchIndex(after)
		if loc == nil {
			continue
		}
		descriptor := lastGroup(after, loc)
		return descriptor, dialogueEnd + loc[1]
	}

	beforeStart := dialogueStart - attributionWindow
	if beforeStart < 0 {
		beforeStart = 0
	}
	before := paragraph[beforeStart:dialogueStart]

	for _, re := range m.patterns {
		loc := re.FindStringSubmatchIndex(before)
		if loc == nil {
			continue
		}
		return lastGroup(before, loc), dialogueEnd
	}

	return "", dialogueEnd
}

// lastGroup returns the text of the last participating capture group. The
// possessive shape captures two groups and the descriptor is the final one.
func lastGroup(s string, loc []int) string {
	for i := len(loc) - 2; i >= 2; i -= 2 {
		if loc[i] >= 0 {
			return strings.TrimSpace(s[loc[i]:loc[i+1]])
		}
	}
	return ""
}
