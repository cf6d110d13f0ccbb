package audiobook

import "fablecast/internal/domain/book"

// Announce returns a new chapter with a narration segment speaking the
// chapter title prepended. The input chapter is not modified.
func Announce(ch book.Chapter) book.Chapter {
	segments := make([]book.Segment, 0, len(ch.Segments)+1)
	segments = append(segments, book.Segment{Text: ch.Title, Type: book.Narration})
	segments = append(segments, ch.Segments...)

	return book.Chapter{Number: ch.Number, Title: ch.Title, Segments: segments}
}
