// Package advisor classifies a quick-scan analysis into tiered findings:
// rule-based advice on noise floor, peak headroom, loudness gap, sample-rate
// mismatch, and probable mains hum. It consumes the analyzer's report
// read-only; nothing here feeds back into plan generation.
package advisor

import (
	"fmt"

	"github.com/quietpress/bookmaster/internal/analyzer"
	"github.com/quietpress/bookmaster/internal/config"
)

// Tier grades a finding.
type Tier int

const (
	TierGood Tier = iota
	TierInfo
	TierWarn
)

func (t Tier) String() string {
	switch t {
	case TierWarn:
		return "warn"
	case TierInfo:
		return "info"
	default:
		return "good"
	}
}

// Finding is one classified observation about the recording.
type Finding struct {
	Tier    Tier
	Metric  string // stable identifier, e.g. "noise_floor"
	Message string // one or two sentences of actionable advice
}

// targetSampleRate is the rate the processing chain normalises to; sources
// at other rates get resampled, which is worth knowing but never a problem.
const targetSampleRate = 44100

// Evaluate runs every rule against the analysis and returns one finding per
// metric, in fixed display order. mainsHz parameterises the hum rule; pass
// mains.Frequency() or a fixed value in tests.
func Evaluate(a *analyzer.Analysis, cfg config.Config, mainsHz int) []Finding {
	if a == nil {
		return nil
	}
	return []Finding{
		classifyNoiseFloor(a),
		classifyPeak(a),
		classifyLoudnessGap(a, cfg),
		classifySampleRate(a),
		classifyMainsHum(a, cfg, mainsHz),
	}
}

// classifyNoiseFloor grades the estimated room noise. Thresholds follow
// common voice-recording practice: below -60 dB is clean, above -50 dB the
// denoiser will be working hard.
func classifyNoiseFloor(a *analyzer.Analysis) Finding {
	f := Finding{Metric: "noise_floor"}
	switch {
	case a.NoiseFloor > -50:
		f.Tier = TierWarn
		f.Message = fmt.Sprintf("Noise floor is high (%.0f dB) - noise reduction will be audible. Try to quieten the room before re-recording.", a.NoiseFloor)
	case a.NoiseFloor > -60:
		f.Tier = TierInfo
		f.Message = fmt.Sprintf("Noise floor is slightly elevated (%.0f dB) - acceptable, but a quieter room would help.", a.NoiseFloor)
	default:
		f.Tier = TierGood
		f.Message = fmt.Sprintf("Noise floor is clean (%.0f dB).", a.NoiseFloor)
	}
	return f
}

// classifyPeak grades peak headroom. Less than 1 dB of headroom risks
// clipping upstream of any processing we plan.
func classifyPeak(a *analyzer.Analysis) Finding {
	f := Finding{Metric: "peak"}
	switch {
	case a.Peak > -1:
		f.Tier = TierWarn
		f.Message = fmt.Sprintf("Peaks reach %.1f dB - the recording is at or near clipping. Lower the input gain.", a.Peak)
	case a.Peak > -3:
		f.Tier = TierInfo
		f.Message = fmt.Sprintf("Peak headroom is tight (%.1f dB); a couple more dB of margin would be safer.", a.Peak)
	default:
		f.Tier = TierGood
		f.Message = fmt.Sprintf("Peak level is healthy (%.1f dB).", a.Peak)
	}
	return f
}

// classifyLoudnessGap compares the loudness estimate against the configured
// target. A large gap is fine - normalisation closes it - but worth knowing.
func classifyLoudnessGap(a *analyzer.Analysis, cfg config.Config) Finding {
	f := Finding{Metric: "loudness"}
	gap := cfg.LoudnormTarget - a.EstLUFS
	switch {
	case gap > 12:
		f.Tier = TierInfo
		f.Message = fmt.Sprintf("Estimated loudness %.1f dB is %.0f dB below the %.1f LUFS target; normalisation will apply heavy gain.", a.EstLUFS, gap, cfg.LoudnormTarget)
	case gap < -6:
		f.Tier = TierInfo
		f.Message = fmt.Sprintf("Estimated loudness %.1f dB is well above the %.1f LUFS target; the recording will be turned down.", a.EstLUFS, cfg.LoudnormTarget)
	default:
		f.Tier = TierGood
		f.Message = fmt.Sprintf("Estimated loudness %.1f dB sits near the %.1f LUFS target.", a.EstLUFS, cfg.LoudnormTarget)
	}
	return f
}

func classifySampleRate(a *analyzer.Analysis) Finding {
	f := Finding{Metric: "sample_rate"}
	if a.SampleRate != targetSampleRate {
		f.Tier = TierInfo
		f.Message = fmt.Sprintf("Source is %d Hz; output is normalised to %d Hz.", a.SampleRate, targetSampleRate)
		return f
	}
	f.Tier = TierGood
	f.Message = fmt.Sprintf("Sample rate matches the %d Hz output format.", targetSampleRate)
	return f
}

// classifyMainsHum flags probable power-line hum: an elevated noise floor
// with the rumble cutoff sitting at or below the local mains fundamental,
// where hum would pass through untouched.
func classifyMainsHum(a *analyzer.Analysis, cfg config.Config, mainsHz int) Finding {
	f := Finding{Metric: "mains_hum"}
	if a.NoiseFloor > -55 && cfg.HighpassFreq <= float64(mainsHz) {
		f.Tier = TierWarn
		f.Message = fmt.Sprintf("Elevated noise with the rumble cutoff at %.0f Hz leaves local %d Hz mains hum untouched - raise the cutoff above %d Hz or move power supplies away from the microphone.", cfg.HighpassFreq, mainsHz, mainsHz)
		return f
	}
	f.Tier = TierGood
	f.Message = fmt.Sprintf("No indication of %d Hz mains hum.", mainsHz)
	return f
}
