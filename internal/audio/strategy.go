package audio

import "time"

// ConcatStrategy butts segments end to end. Fast and lossless.
type ConcatStrategy struct{}

func (ConcatStrategy) Combine(files []string, outputPath string) error {
	segments, format, err := decodeSegments(files)
	if err != nil {
		return err
	}

	var combined [][2]float64
	for _, seg := range segments {
		combined = append(combined, seg...)
	}

	return encodeTo(outputPath, combined, format)
}

// CrossfadeStrategy overlaps adjacent segments with linear fade ramps,
// smoothing the hard cuts between voices.
type CrossfadeStrategy struct {
	Duration time.Duration
}

func (s CrossfadeStrategy) Combine(files []string, outputPath string) error {
	segments, format, err := decodeSegments(files)
	if err != nil {
		return err
	}

	fadeSamples := format.SampleRate.N(s.Duration)

	var combined [][2]float64
	for i, seg := range segments {
		if i == 0 {
			combined = append(combined, seg...)
			continue
		}

		overlap := fadeSamples
		if overlap > len(combined) {
			overlap = len(combined)
		}
		if overlap > len(seg) {
			overlap = len(seg)
		}

		// Overlap-add: ramp the tail of what we have down while ramping
		// the head of the next segment up.
		start := len(combined) - overlap
		for j := 0; j < overlap; j++ {
			t := float64(j+1) / float64(overlap+1)
			combined[start+j][0] = combined[start+j][0]*(1-t) + seg[j][0]*t
			combined[start+j][1] = combined[start+j][1]*(1-t) + seg[j][1]*t
		}
		combined = append(combined, seg[overlap:]...)
	}

	return encodeTo(outputPath, combined, format)
}
