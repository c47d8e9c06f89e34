// Package config defines the mastering configuration: the knob set that
// drives parameter mapping and plan generation, its valid ranges, the named
// preset library, and optional TOML file loading.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds the full mastering knob set. Values are assumed to be within
// the ranges documented in Ranges; validation happens at the boundary
// (Validate), never inside the mapper or planner.
type Config struct {
	// EQ corner frequencies (Hz). Both filters use a fixed 2-pole slope.
	HighpassFreq float64 `toml:"highpass_freq"` // rumble cutoff
	LowpassFreq  float64 `toml:"lowpass_freq"`  // clarity ceiling

	// De-esser: sidechain detection frequency (Hz) and ducking amount (0..1).
	DeesserFreq   float64 `toml:"deesser_freq"`
	DeesserAmount float64 `toml:"deesser_amount"`

	// Normalised 0..1 knobs.
	NoiseReduction    float64 `toml:"noise_reduction"`
	CompressionAmount float64 `toml:"compression_amount"`

	// Loudness normalisation targets.
	LoudnormTarget float64 `toml:"loudnorm_target"` // LUFS, negative
	LoudnormTP     float64 `toml:"loudnorm_tp"`     // dBTP, negative
	LoudnormLRA    float64 `toml:"loudnorm_lra"`    // LU, positive

	// Output encoding.
	Bitrate              int `toml:"bitrate"`                // kbps
	FLACCompressionLevel int `toml:"flac_compression_level"` // intermediate lossless, 0-12
}

// Default returns the standard spoken-word mastering configuration.
func Default() Config {
	return Config{
		HighpassFreq:         80,
		LowpassFreq:          12000,
		DeesserFreq:          6000,
		DeesserAmount:        0.5,
		NoiseReduction:       0.2,
		CompressionAmount:    0.3,
		LoudnormTarget:       -19.0,
		LoudnormTP:           -3.0,
		LoudnormLRA:          11.0,
		Bitrate:              128,
		FLACCompressionLevel: 6,
	}
}

// Overrides is a partial configuration: nil fields leave the base value
// untouched. Both presets and TOML config files are expressed as overrides
// so that applying either never resets unrelated fields.
type Overrides struct {
	HighpassFreq         *float64 `toml:"highpass_freq"`
	LowpassFreq          *float64 `toml:"lowpass_freq"`
	DeesserFreq          *float64 `toml:"deesser_freq"`
	DeesserAmount        *float64 `toml:"deesser_amount"`
	NoiseReduction       *float64 `toml:"noise_reduction"`
	CompressionAmount    *float64 `toml:"compression_amount"`
	LoudnormTarget       *float64 `toml:"loudnorm_target"`
	LoudnormTP           *float64 `toml:"loudnorm_tp"`
	LoudnormLRA          *float64 `toml:"loudnorm_lra"`
	Bitrate              *int     `toml:"bitrate"`
	FLACCompressionLevel *int     `toml:"flac_compression_level"`
}

// Apply layers the overrides onto base and returns the result.
func (o Overrides) Apply(base Config) Config {
	out := base
	if o.HighpassFreq != nil {
		out.HighpassFreq = *o.HighpassFreq
	}
	if o.LowpassFreq != nil {
		out.LowpassFreq = *o.LowpassFreq
	}
	if o.DeesserFreq != nil {
		out.DeesserFreq = *o.DeesserFreq
	}
	if o.DeesserAmount != nil {
		out.DeesserAmount = *o.DeesserAmount
	}
	if o.NoiseReduction != nil {
		out.NoiseReduction = *o.NoiseReduction
	}
	if o.CompressionAmount != nil {
		out.CompressionAmount = *o.CompressionAmount
	}
	if o.LoudnormTarget != nil {
		out.LoudnormTarget = *o.LoudnormTarget
	}
	if o.LoudnormTP != nil {
		out.LoudnormTP = *o.LoudnormTP
	}
	if o.LoudnormLRA != nil {
		out.LoudnormLRA = *o.LoudnormLRA
	}
	if o.Bitrate != nil {
		out.Bitrate = *o.Bitrate
	}
	if o.FLACCompressionLevel != nil {
		out.FLACCompressionLevel = *o.FLACCompressionLevel
	}
	return out
}

// Load reads a TOML config file and layers it onto base. A missing file is
// not an error when optional is true; the base config is returned unchanged.
func Load(path string, base Config, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config file: %w", err)
	}

	var o Overrides
	if err := toml.Unmarshal(data, &o); err != nil {
		return base, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg := o.Apply(base)
	if err := Validate(cfg); err != nil {
		return base, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// SampleConfig returns the embedded annotated sample configuration file.
func SampleConfig() string {
	return sampleConfig
}
