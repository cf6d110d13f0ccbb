// Package audio combines per-segment WAV files into chapter files.
package audio

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Strategy joins decoded segments into one output file.
type Strategy interface {
	Combine(files []string, outputPath string) error
}

// Combiner validates inputs and delegates to its strategy. The default is
// simple concatenation.
type Combiner struct {
	strategy Strategy
}

func NewCombiner() *Combiner {
	return &Combiner{strategy: ConcatStrategy{}}
}

func (c *Combiner) SetStrategy(s Strategy) {
	c.strategy = s
}

func (c *Combiner) CombineSegments(files []string, outputPath string) error {
	if len(files) == 0 {
		return fmt.Errorf("no segment files to combine")
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("segment file missing: %w", err)
		}
	}
	return c.strategy.Combine(files, outputPath)
}

// decodeSegments loads every file into memory, resampling to the first
// file's rate when inputs disagree. Chapters are minutes of audio at
// most, so buffering whole segments is fine.
func decodeSegments(files []string) ([][][2]float64, beep.Format, error) {
	var format beep.Format
	segments := make([][][2]float64, 0, len(files))

	for i, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
		}

		streamer, segFormat, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
		}

		if i == 0 {
			format = segFormat
		}

		var source beep.Streamer = streamer
		if segFormat.SampleRate != format.SampleRate {
			source = beep.Resample(4, segFormat.SampleRate, format.SampleRate, streamer)
		}

		segments = append(segments, drain(source))
		streamer.Close()
		f.Close()
	}

	return segments, format, nil
}

func drain(s beep.Streamer) [][2]float64 {
	var samples [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		samples = append(samples, buf[:n]...)
		if !ok {
			return samples
		}
	}
}

// bufferStreamer plays back an in-memory sample buffer once.
type bufferStreamer struct {
	samples [][2]float64
	pos     int
}

func (b *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if b.pos >= len(b.samples) {
		return 0, false
	}
	n := copy(samples, b.samples[b.pos:])
	b.pos += n
	return n, true
}

func (b *bufferStreamer) Err() error {
	return nil
}

func encodeTo(outputPath string, samples [][2]float64, format beep.Format) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := wav.Encode(out, &bufferStreamer{samples: samples}, format); err != nil {
		return fmt.Errorf("encode %s: %w", outputPath, err)
	}
	return nil
}
