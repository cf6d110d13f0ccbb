// Package audiobook orchestrates synthesis: grouped segments go through
// the TTS engine voice by voice, and chapter files come out.
package audiobook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"fablecast/internal/audio"
	"fablecast/internal/domain/book"
	"fablecast/internal/parser"
	"fablecast/internal/tts"
	"fablecast/internal/voices"
)

type Options struct {
	UseGrouping      bool
	CombineFiles     bool
	AnnounceChapters bool
	WriteTranscripts bool
}

// Generator turns parsed chapters into audio files.
type Generator struct {
	engine   tts.Engine
	assigner *voices.Assigner
	combiner *audio.Combiner
	opts     Options
	log      *logrus.Entry
}

func NewGenerator(engine tts.Engine, assigner *voices.Assigner, opts Options) *Generator {
	return &Generator{
		engine:   engine,
		assigner: assigner,
		combiner: audio.NewCombiner(),
		opts:     opts,
		log:      logrus.WithField("component", "audiobook"),
	}
}

// SetCombineStrategy swaps the segment-combining strategy (concat by
// default, crossfade optional).
func (g *Generator) SetCombineStrategy(s audio.Strategy) {
	g.combiner.SetStrategy(s)
}

// GenerateBook renders every chapter under outputDir. progress, when
// non-nil, is called after each chapter with (done, total). Chapters are
// processed in order; a failed chapter aborts the run but already-written
// chapter files stay valid.
func (g *Generator) GenerateBook(ctx context.Context, b book.Book, outputDir string, progress func(done, total int)) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, chapter := range b.Chapters {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := g.GenerateChapter(ctx, chapter, outputDir); err != nil {
			return fmt.Errorf("chapter %d: %w", chapter.Number, err)
		}

		if progress != nil {
			progress(i+1, len(b.Chapters))
		}
	}

	return nil
}

// GenerateChapter renders one chapter and returns the path of the
// combined chapter file, or of the segment directory when combining is
// disabled.
func (g *Generator) GenerateChapter(ctx context.Context, chapter book.Chapter, outputDir string) (string, error) {
	if g.opts.AnnounceChapters {
		chapter = Announce(chapter)
	}

	segments := chapter.Segments
	if g.opts.UseGrouping {
		segments = parser.GroupSegments(segments)
	}

	chapterName := fmt.Sprintf("chapter_%03d", chapter.Number)
	segmentDir := filepath.Join(outputDir, chapterName)
	if err := os.MkdirAll(segmentDir, 0755); err != nil {
		return "", fmt.Errorf("create chapter dir: %w", err)
	}

	if g.opts.WriteTranscripts {
		transcriptPath := filepath.Join(outputDir, chapterName+".txt")
		if err := WriteTranscript(book.Chapter{Number: chapter.Number, Title: chapter.Title, Segments: segments}, transcriptPath); err != nil {
			return "", fmt.Errorf("write transcript: %w", err)
		}
	}

	files, err := g.synthesizeSegments(ctx, segments, segmentDir)
	if err != nil {
		return "", err
	}

	if !g.opts.CombineFiles || len(files) == 0 {
		return segmentDir, nil
	}

	combinedPath := filepath.Join(outputDir, chapterName+".wav")
	if err := g.combiner.CombineSegments(files, combinedPath); err != nil {
		return "", fmt.Errorf("combine segments: %w", err)
	}

	for _, f := range files {
		os.Remove(f)
	}
	os.Remove(segmentDir)

	g.log.WithFields(logrus.Fields{
		"chapter":  chapter.Number,
		"segments": len(files),
	}).Info("chapter rendered")

	return combinedPath, nil
}

func (g *Generator) synthesizeSegments(ctx context.Context, segments []book.Segment, dir string) ([]string, error) {
	var files []string

	for i, seg := range segments {
		voiceID := g.assigner.VoiceFor(seg.Speaker)

		suffix := ""
		if seg.Speaker != "" {
			suffix = "_" + seg.Speaker
		}
		filename := fmt.Sprintf("%04d_%s%s.wav", i, seg.Type, suffix)
		outputPath := filepath.Join(dir, filename)

		if err := g.engine.Synthesize(ctx, seg.Text, voiceID, outputPath); err != nil {
			return nil, fmt.Errorf("synthesize segment %d: %w", i, err)
		}
		files = append(files, outputPath)
	}

	return files, nil
}
