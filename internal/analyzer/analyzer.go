// Package analyzer estimates loudness, peak level, and noise floor from a
// decoded mono sample buffer. The loudness figure is an RMS-based
// approximation, not an ITU-R BS.1770 measurement; the full export path uses
// a proper two-pass loudness filter for the real output, so the estimate
// here is labelled as such and only feeds diagnostics.
package analyzer

import (
	"errors"
	"math"
	"sort"
)

// windowSize is the fixed analysis window in samples. The final partial
// window is included and weighted by its own sample count, not padded.
const windowSize = 4096

// epsilonAmp floors degenerate amplitudes before the logarithm so silent
// buffers produce a fixed minimum instead of -Inf.
const epsilonAmp = 1e-10

// FloorDB is the decibel value all-silent input maps to (20*log10(epsilonAmp)).
const FloorDB = -200.0

// ErrInvalidInput reports an empty or degenerate buffer. Feeding the
// analyzer no samples is a caller contract violation, not a measurement.
var ErrInvalidInput = errors.New("analyzer: empty sample buffer")

// Analysis is a read-only snapshot of one scan of one buffer. It is created
// fresh per scan and never mutated; a later scan supersedes it wholesale.
type Analysis struct {
	EstLUFS    float64 // RMS-based loudness estimate (dB)
	Peak       float64 // sample-maximum peak (dB)
	NoiseFloor float64 // 10th-percentile window RMS (dB)
	Duration   float64 // seconds
	SampleRate int     // Hz
	IsEstimate bool    // true when the buffer was a truncated prefix of the file
}

// Analyze scans a mono sample buffer in [-1, 1]. truncated records whether
// the caller fed a size-capped prefix rather than the whole file; the
// analyzer carries the flag through without inferring anything itself.
//
// One linear pass accumulates per-window and global sums of squares plus the
// running absolute peak; one sort of the per-window RMS values yields the
// noise-floor percentile.
func Analyze(samples []float64, sampleRate int, truncated bool) (*Analysis, error) {
	if len(samples) == 0 || sampleRate <= 0 {
		return nil, ErrInvalidInput
	}

	var (
		totalSumSq float64
		peakAmp    float64
		windowRMS  []float64
	)

	for start := 0; start < len(samples); start += windowSize {
		end := start + windowSize
		if end > len(samples) {
			end = len(samples)
		}

		var winSumSq float64
		for _, s := range samples[start:end] {
			winSumSq += s * s
			if a := math.Abs(s); a > peakAmp {
				peakAmp = a
			}
		}
		totalSumSq += winSumSq
		windowRMS = append(windowRMS, math.Sqrt(winSumSq/float64(end-start)))
	}

	globalRMS := math.Sqrt(totalSumSq / float64(len(samples)))

	// The quietest decile of windows approximates the noise floor, on the
	// assumption that speech pauses occupy at least ~10% of a spoken-word
	// recording.
	sort.Float64s(windowRMS)
	floorRMS := windowRMS[int(0.1*float64(len(windowRMS)))]

	return &Analysis{
		EstLUFS:    amplitudeDB(globalRMS),
		Peak:       amplitudeDB(peakAmp),
		NoiseFloor: amplitudeDB(floorRMS),
		Duration:   float64(len(samples)) / float64(sampleRate),
		SampleRate: sampleRate,
		IsEstimate: truncated,
	}, nil
}

// amplitudeDB converts linear amplitude to decibels, flooring zero and
// denormal values so the result is never -Inf or NaN.
func amplitudeDB(amp float64) float64 {
	if amp < epsilonAmp {
		amp = epsilonAmp
	}
	return 20 * math.Log10(amp)
}
