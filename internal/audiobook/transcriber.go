package audiobook

import (
	"os"
	"strings"

	"fablecast/internal/domain/book"
)

// WriteTranscript writes a chapter's segments with speaker annotations,
// one block per segment. Useful for spot-checking attribution without
// listening to the audio.
func WriteTranscript(ch book.Chapter, outputPath string) error {
	var b strings.Builder

	for _, seg := range ch.Segments {
		switch {
		case seg.IsDialogue() && seg.Speaker != "":
			b.WriteString("[" + seg.Speaker + "]\n")
		case seg.IsDialogue():
			b.WriteString("[Unknown Speaker]\n")
		default:
			b.WriteString("[NARRATION]\n")
		}
		b.WriteString(seg.Text)
		b.WriteString("\n\n")
	}

	return os.WriteFile(outputPath, []byte(b.String()), 0644)
}
