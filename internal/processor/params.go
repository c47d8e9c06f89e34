// Package processor turns a mastering configuration into concrete filter
// parameters and composes them, together with resolved paths and an
// execution mode, into a reproducible processing plan.
package processor

import (
	"math"

	"github.com/quietpress/bookmaster/internal/config"
)

// deesserNyquist is the fixed reference Nyquist frequency (half of 44.1 kHz)
// the de-esser detection ratio is expressed against, independent of the
// source sample rate.
const deesserNyquist = 22050.0

// Limiter timing is not configurable: a short attack catches peak excursions
// the loudness stage may introduce, the moderate release avoids pumping.
const (
	limiterAttackMs  = 5.0
	limiterReleaseMs = 50.0
)

// FilterParameters holds the per-filter numeric values derived from a
// Config. It has no identity of its own: it is recomputed whenever the
// configuration changes and never cached across config versions.
type FilterParameters struct {
	// afftdn noise reduction pair (integers).
	NoiseReductionDB int // reduction amount, 0..40 dB
	NoiseFloorDB     int // assumed input floor, -80..-40 dB

	// Compressor (ms/dB values carry one decimal).
	CompRatio     float64 // 2..5
	CompAttackMs  float64 // 20..2, faster as compression increases
	CompReleaseMs float64 // 250..50
	CompMakeupDB  float64 // 2..4

	// De-esser sidechain detection frequency as a fraction of the reference
	// Nyquist, plus the ducking amount straight from the config.
	DeesserFreqRatio float64
	DeesserAmount    float64

	// Limiter constants, surfaced so the plan is self-describing.
	LimiterAttackMs  float64
	LimiterReleaseMs float64
}

// MapParameters derives concrete filter parameters from a pre-validated
// configuration. Pure and total over the valid input range: same config,
// bit-identical result. All derived values are rounded to display precision
// so the rendered plan text is stable for identical input.
func MapParameters(cfg config.Config) FilterParameters {
	return FilterParameters{
		NoiseReductionDB: int(math.Round(cfg.NoiseReduction * 40)),
		NoiseFloorDB:     int(math.Round(-80 + cfg.NoiseReduction*40)),

		CompRatio:     round1(2 + cfg.CompressionAmount*3),
		CompAttackMs:  round1(20 - cfg.CompressionAmount*18),
		CompReleaseMs: round1(250 - cfg.CompressionAmount*200),
		CompMakeupDB:  round1(2 + cfg.CompressionAmount*2),

		DeesserFreqRatio: cfg.DeesserFreq / deesserNyquist,
		DeesserAmount:    cfg.DeesserAmount,

		LimiterAttackMs:  limiterAttackMs,
		LimiterReleaseMs: limiterReleaseMs,
	}
}

// round1 rounds to one decimal place, the precision used for ms/dB display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
