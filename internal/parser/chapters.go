// Package parser turns a plain-text novel into chapters of ordered
// narration/dialogue segments with resolved speakers.
package parser

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"fablecast/internal/domain/book"
)

var (
	titleLine  = regexp.MustCompile(`Title:\s*(.+)`)
	authorLine = regexp.MustCompile(`Author:\s*(.+)`)

	// startOfContentMarker is the explicit front-matter sentinel used by
	// Project Gutenberg texts; content begins after it.
	startOfContentMarker = regexp.MustCompile(`\*\*\* START OF .*? \*\*\*`)

	// firstChapterMarker is the fallback: content begins at the first
	// thing that looks like an opening chapter heading.
	firstChapterMarker = regexp.MustCompile(`(?i)Chapter I\.?[\]\s]`)

	// chapterHeading matches "Chapter IV." / "CHAPTER 12" on its own line,
	// with an optional trailing bracket from scan formatting.
	chapterHeading = regexp.MustCompile(`(?im)^Chapter\s+([IVXLCDM]+|\d+)\.?[\]\s]*$`)
)

// ChapterSetter receives the chapter number before its paragraphs are
// segmented, so registry lookups record first-seen chapters correctly.
type ChapterSetter interface {
	SetChapter(n int)
}

// Parser is the book-level text parser. A nil resolver keeps the whole
// pipeline offline: speakers fall back to their normalized descriptors.
type Parser struct {
	matcher  *AttributionMatcher
	resolver SpeakerResolver
	log      *logrus.Entry
}

func New(resolver SpeakerResolver) *Parser {
	return &Parser{
		matcher:  NewAttributionMatcher(),
		resolver: resolver,
		log:      logrus.WithField("component", "parser"),
	}
}

// Parse splits raw book text into chapters of segments. It never fails on
// malformed prose: missing metadata defaults to "Unknown"/empty, and text
// without chapter headings becomes a single synthetic chapter.
func (p *Parser) Parse(content string) book.Book {
	title := "Unknown"
	if m := titleLine.FindStringSubmatch(content); m != nil {
		title = strings.TrimSpace(m[1])
	}

	author := ""
	if m := authorLine.FindStringSubmatch(content); m != nil {
		author = strings.TrimSpace(m[1])
	}

	body := content[p.findContentStart(content):]
	chapters := p.parseChapters(body)

	p.log.WithFields(logrus.Fields{
		"title":    title,
		"chapters": len(chapters),
	}).Info("parsed book")

	return book.Book{Title: title, Author: author, Chapters: chapters}
}

func (p *Parser) findContentStart(content string) int {
	if loc := startOfContentMarker.FindStringIndex(content); loc != nil {
		return loc[1]
	}
	if loc := firstChapterMarker.FindStringIndex(content); loc != nil {
		return loc[0]
	}
	return 0
}

func (p *Parser) parseChapters(content string) []book.Chapter {
	headings := chapterHeading.FindAllStringSubmatchIndex(content, -1)

	if len(headings) == 0 {
		p.log.Warn("no chapter headings found, treating text as one chapter")
		return []book.Chapter{p.parseChapterContent(content, 1, "Chapter I")}
	}

	var chapters []book.Chapter

	// Text before the first heading becomes chapter 0 when it has prose.
	if preface := content[:headings[0][0]]; strings.TrimSpace(preface) != "" {
		ch := p.parseChapterContent(preface, 0, "Preface")
		if len(ch.Segments) > 0 {
			chapters = append(chapters, ch)
		}
	}

	for i, loc := range headings {
		numeral := content[loc[2]:loc[3]]
		number := RomanToInt(numeral)
		title := "Chapter " + numeral

		start := loc[1]
		end := len(content)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}

		chapters = append(chapters, p.parseChapterContent(content[start:end], number, title))
	}

	return chapters
}

func (p *Parser) parseChapterContent(content string, number int, title string) book.Chapter {
	if setter, ok := p.resolver.(ChapterSetter); ok {
		setter.SetChapter(number)
	}

	var segments []book.Segment
	prev := ""

	for _, raw := range strings.Split(content, "\n\n") {
		paragraph := strings.TrimSpace(raw)
		if paragraph == "" {
			continue
		}

		// Scan artifacts carry no spoken content.
		if strings.HasPrefix(paragraph, "[Illustration") || strings.HasPrefix(paragraph, "_Copyright") {
			continue
		}

		segments = append(segments, p.SegmentParagraph(paragraph, prev)...)
		prev = paragraph
	}

	return book.Chapter{Number: number, Title: title, Segments: segments}
}
