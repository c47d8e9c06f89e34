package processor

import (
	"fmt"
	"math"

	"github.com/quietpress/bookmaster/internal/config"
)

// StageID identifies one filter stage in the processing chain.
type StageID string

// Filter stage identifiers, in chain order.
const (
	StageFormat      StageID = "format"       // sample format/rate normalisation
	StageHighpass    StageID = "highpass"     // rumble cutoff
	StageNoiseReduce StageID = "noise_reduce" // FFT denoiser
	StageLowpass     StageID = "lowpass"      // clarity ceiling
	StageDeclick     StageID = "declick"      // click/pop removal
	StageDeesser     StageID = "deesser"      // sibilance reduction
	StageCompressor  StageID = "compressor"   // dynamics levelling
	StageLoudnorm    StageID = "loudnorm"     // loudness normalisation
	StageLimiter     StageID = "limiter"      // true-peak safety net
	StageDownmix     StageID = "downmix"      // channel collapse to mono
)

// StageOrder is the fixed processing chain. The order is load-bearing: each
// stage assumes the spectral/dynamic state left by the previous one.
// - noise reduction runs before the lowpass so the lowpass never
//   reintroduces filtered noise energy
// - the de-esser runs before the compressor so makeup gain cannot
//   re-energise sibilance
// - the limiter is always the last processing stage before channel collapse,
//   catching any peak excursion loudness normalisation introduces
var StageOrder = []StageID{
	StageFormat,
	StageHighpass,
	StageNoiseReduce,
	StageLowpass,
	StageDeclick,
	StageDeesser,
	StageCompressor,
	StageLoudnorm,
	StageLimiter,
	StageDownmix,
}

// Stage is one named filter-stage descriptor: a stage identifier plus its
// fully-formatted parameter string in the filter tool's syntax.
type Stage struct {
	ID   StageID
	Spec string
}

// chain carries the inputs stage builders draw from. The loudness stage spec
// is prebuilt by the planner because it differs between the single-pass
// preview form and the measured two-pass form.
type chain struct {
	cfg      config.Config
	params   FilterParameters
	loudnorm string
}

// stageBuilders maps each stage to its spec builder.
var stageBuilders = map[StageID]func(*chain) string{
	StageFormat:      (*chain).buildFormat,
	StageHighpass:    (*chain).buildHighpass,
	StageNoiseReduce: (*chain).buildNoiseReduce,
	StageLowpass:     (*chain).buildLowpass,
	StageDeclick:     (*chain).buildDeclick,
	StageDeesser:     (*chain).buildDeesser,
	StageCompressor:  (*chain).buildCompressor,
	StageLoudnorm:    (*chain).buildLoudnorm,
	StageLimiter:     (*chain).buildLimiter,
	StageDownmix:     (*chain).buildDownmix,
}

// buildStages produces the ordered stage list for this chain.
func (c *chain) buildStages() []Stage {
	stages := make([]Stage, 0, len(StageOrder))
	for _, id := range StageOrder {
		stages = append(stages, Stage{ID: id, Spec: stageBuilders[id](c)})
	}
	return stages
}

func (c *chain) buildFormat() string {
	return "aformat=sample_fmts=fltp:sample_rates=44100"
}

// Both EQ filters use a fixed 2-pole (12 dB/oct) slope; only the corner
// frequency is configurable.
func (c *chain) buildHighpass() string {
	return fmt.Sprintf("highpass=f=%.0f:poles=2", c.cfg.HighpassFreq)
}

func (c *chain) buildLowpass() string {
	return fmt.Sprintf("lowpass=f=%.0f:poles=2", c.cfg.LowpassFreq)
}

func (c *chain) buildNoiseReduce() string {
	return fmt.Sprintf("afftdn=nr=%d:nf=%d", c.params.NoiseReductionDB, c.params.NoiseFloorDB)
}

func (c *chain) buildDeclick() string {
	return "adeclick"
}

func (c *chain) buildDeesser() string {
	return fmt.Sprintf("deesser=i=%.2f:f=%.2f", c.params.DeesserAmount, c.params.DeesserFreqRatio)
}

func (c *chain) buildCompressor() string {
	return fmt.Sprintf("acompressor=ratio=%.1f:attack=%.1f:release=%.1f:makeup=%.1f",
		c.params.CompRatio,
		c.params.CompAttackMs,
		c.params.CompReleaseMs,
		c.params.CompMakeupDB,
	)
}

func (c *chain) buildLoudnorm() string {
	return c.loudnorm
}

func (c *chain) buildLimiter() string {
	// alimiter takes a linear ceiling; the configured dBTP ceiling converts.
	return fmt.Sprintf("alimiter=limit=%.6f:attack=%.0f:release=%.0f",
		DbToLinear(c.cfg.LoudnormTP),
		c.params.LimiterAttackMs,
		c.params.LimiterReleaseMs,
	)
}

func (c *chain) buildDownmix() string {
	return "pan=mono|c0=0.5*c0+0.5*c1"
}

// singlePassLoudnorm builds the approximate, non-measured form used by
// previews. It may not hit the exact target, which is acceptable for a
// quick-listen artifact.
func singlePassLoudnorm(cfg config.Config) string {
	return fmt.Sprintf("loudnorm=I=%.1f:TP=%.1f:LRA=%.1f:dual_mono=true",
		cfg.LoudnormTarget, cfg.LoudnormTP, cfg.LoudnormLRA)
}

// measuredLoudnorm builds the linear, measured form used by Pass 2 of a full
// export. The four measured quantities (or their fallbacks) come from Pass 1.
func measuredLoudnorm(cfg config.Config, m Measurement) string {
	return fmt.Sprintf(
		"loudnorm=I=%.1f:TP=%.1f:LRA=%.1f:measured_I=%.2f:measured_TP=%.2f:measured_LRA=%.2f:measured_thresh=%.2f:offset=%.2f:linear=true:dual_mono=true",
		cfg.LoudnormTarget, cfg.LoudnormTP, cfg.LoudnormLRA,
		m.InputI, m.InputTP, m.InputLRA, m.InputThresh, m.TargetOffset,
	)
}

// measurementLoudnorm builds the measurement-only Pass 1 form: the filter
// runs against a null sink and reports the measured quantities as JSON.
func measurementLoudnorm(cfg config.Config) string {
	return fmt.Sprintf("loudnorm=I=%.1f:TP=%.1f:LRA=%.1f:dual_mono=true:print_format=json",
		cfg.LoudnormTarget, cfg.LoudnormTP, cfg.LoudnormLRA)
}

// DbToLinear converts a decibel value to linear amplitude.
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/20.0)
}

// LinearToDb converts linear amplitude to decibels, with a practical floor
// for non-positive input.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return -120.0
	}
	return 20.0 * math.Log10(linear)
}
