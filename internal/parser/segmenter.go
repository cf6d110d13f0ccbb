package parser

import (
	"regexp"
	"strings"

	"fablecast/internal/domain/book"
)

// dialoguePattern matches a quoted span using straight or curly double
// quotes. Curly open/close quotes are accepted interchangeably; scanned
// books mix them freely.
var dialoguePattern = regexp.MustCompile(`["\x{201C}]([^"\x{201C}\x{201D}]+)["\x{201D}]`)

// SegmentParagraph splits one paragraph into ordered narration and
// dialogue segments. Every character of the paragraph ends up in exactly
// one segment: attribution clauses are skipped by the dialogue re-scan but
// re-emitted as narration, and corrupted quotes (punctuation-only content)
// are folded into the surrounding narration instead of becoming dialogue.
func (p *Parser) SegmentParagraph(paragraph, prevParagraph string) []book.Segment {
	var segments []book.Segment
	cursor := 0
	scanGuard := 0

	for _, loc := range dialoguePattern.FindAllStringSubmatchIndex(paragraph, -1) {
		quoteStart, quoteEnd := loc[0], loc[1]
		inner := paragraph[loc[2]:loc[3]]

		if quoteStart < scanGuard {
			// Quote opened inside an attribution clause already claimed by
			// the previous dialogue; it reads as narration, not speech.
			continue
		}

		if !book.HasContent(inner) {
			// Leave the span for the next narration emission.
			continue
		}

		if quoteStart > cursor {
			narration := strings.TrimSpace(paragraph[cursor:quoteStart])
			if narration != "" {
				segments = append(segments, book.Segment{Text: narration, Type: book.Narration})
			}
		}

		descriptor, attributionEnd := p.matcher.Find(paragraph, quoteStart, quoteEnd)
		speaker := ""
		if descriptor != "" {
			speaker = p.resolveSpeaker(descriptor, paragraph, prevParagraph)
		}

		segments = append(segments, book.Segment{Text: inner, Type: book.Dialogue, Speaker: speaker})

		// Narration resumes right after the quote so the attribution
		// clause is kept; the guard only stops it being re-read as
		// dialogue.
		cursor = quoteEnd
		scanGuard = quoteEnd
		if attributionEnd > scanGuard {
			scanGuard = attributionEnd
		}
	}

	if cursor < len(paragraph) {
		narration := strings.TrimSpace(paragraph[cursor:])
		if narration != "" {
			segments = append(segments, book.Segment{Text: narration, Type: book.Narration})
		}
	}

	if len(segments) == 0 {
		text := strings.TrimSpace(paragraph)
		if text != "" {
			segments = append(segments, book.Segment{Text: text, Type: book.Narration})
		}
	}

	return segments
}

func (p *Parser) resolveSpeaker(descriptor, paragraph, prevParagraph string) string {
	normalized := NormalizeSpeaker(descriptor)
	if p.resolver == nil {
		return normalized
	}
	return p.resolver.IdentifySpeaker(normalized, paragraph, prevParagraph)
}
