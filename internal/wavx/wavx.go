// Package wavx edits WAV audio files, currently limited to cutting silent
// stretches out of a recording.
package wavx

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Region is an inclusive sample index range [Start, End].
type Region struct {
	Start int
	End   int
}

// NonSilentRegions scans interleaved samples and returns the runs whose
// amplitude exceeds the threshold. Samples at or below the threshold between
// two runs split them.
func NonSilentRegions(samples []int, threshold int) []Region {
	var regions []Region
	start := -1
	end := -1
	for i, sample := range samples {
		if sample < 0 {
			sample = -sample
		}
		if sample > threshold {
			if start < 0 {
				start = i
			}
			end = i
		} else if start >= 0 {
			regions = append(regions, Region{Start: start, End: end})
			start = -1
			end = -1
		}
	}
	if start >= 0 {
		regions = append(regions, Region{Start: start, End: end})
	}
	return regions
}

// ThresholdFromDB converts a decibel level relative to full scale into a
// 16-bit sample amplitude.
func ThresholdFromDB(db float64) int {
	return int(math.Pow(10, db/20) * math.MaxInt16)
}

// StripStats summarizes a silence stripping run.
type StripStats struct {
	TotalSamples int
	KeptSamples  int
	Regions      int
}

// StripOptions configures StripSilence.
type StripOptions struct {
	InputPath  string
	OutputPath string
	// ThresholdDB is the silence cutoff in dB relative to full scale,
	// for example -60.
	ThresholdDB float64
	// Progress, when set, receives the number of samples written so far.
	Progress func(written, total int)
}

// StripSilence copies the input WAV to the output path with the silent
// stretches removed.
func StripSilence(opts StripOptions) (StripStats, error) {
	in, err := os.Open(opts.InputPath)
	if err != nil {
		return StripStats{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	decoder := wav.NewDecoder(in)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return StripStats{}, fmt.Errorf("decode wav: %w", err)
	}
	if buf.Format == nil {
		return StripStats{}, fmt.Errorf("decode wav: missing format")
	}

	threshold := ThresholdFromDB(opts.ThresholdDB)
	regions := NonSilentRegions(buf.Data, threshold)

	kept := 0
	for _, r := range regions {
		kept += r.End - r.Start + 1
	}

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return StripStats{}, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	encoder := wav.NewEncoder(out,
		buf.Format.SampleRate,
		int(decoder.BitDepth),
		buf.Format.NumChannels,
		int(decoder.WavAudioFormat),
	)

	written := 0
	for _, r := range regions {
		segment := &audio.IntBuffer{
			Format:         buf.Format,
			SourceBitDepth: buf.SourceBitDepth,
			Data:           buf.Data[r.Start : r.End+1],
		}
		if err := encoder.Write(segment); err != nil {
			return StripStats{}, fmt.Errorf("write samples: %w", err)
		}
		written += len(segment.Data)
		if opts.Progress != nil {
			opts.Progress(written, kept)
		}
	}
	if err := encoder.Close(); err != nil {
		return StripStats{}, fmt.Errorf("finalize output: %w", err)
	}

	return StripStats{
		TotalSamples: len(buf.Data),
		KeptSamples:  kept,
		Regions:      len(regions),
	}, nil
}
