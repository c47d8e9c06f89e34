package config

import "fmt"

// Range is a closed interval with a step granularity. Step is documentation
// for UI consumers; Validate enforces only the bounds.
type Range struct {
	Min, Max float64
	Step     float64
}

// Ranges documents the valid closed range for every Config field.
var Ranges = map[string]Range{
	"highpass_freq":          {Min: 20, Max: 200, Step: 5},
	"lowpass_freq":           {Min: 8000, Max: 20000, Step: 500},
	"deesser_freq":           {Min: 4000, Max: 8000, Step: 250},
	"deesser_amount":         {Min: 0, Max: 1, Step: 0.05},
	"noise_reduction":        {Min: 0, Max: 1, Step: 0.05},
	"compression_amount":     {Min: 0, Max: 1, Step: 0.05},
	"loudnorm_target":        {Min: -30, Max: -14, Step: 0.5},
	"loudnorm_tp":            {Min: -6, Max: -1, Step: 0.5},
	"loudnorm_lra":           {Min: 5, Max: 20, Step: 1},
	"bitrate":                {Min: 96, Max: 256, Step: 32},
	"flac_compression_level": {Min: 0, Max: 12, Step: 1},
}

// Validate checks every field against its documented range. This is the
// boundary check: downstream code (the parameter mapper in particular)
// assumes pre-validated input.
func Validate(cfg Config) error {
	checks := []struct {
		key   string
		value float64
	}{
		{"highpass_freq", cfg.HighpassFreq},
		{"lowpass_freq", cfg.LowpassFreq},
		{"deesser_freq", cfg.DeesserFreq},
		{"deesser_amount", cfg.DeesserAmount},
		{"noise_reduction", cfg.NoiseReduction},
		{"compression_amount", cfg.CompressionAmount},
		{"loudnorm_target", cfg.LoudnormTarget},
		{"loudnorm_tp", cfg.LoudnormTP},
		{"loudnorm_lra", cfg.LoudnormLRA},
		{"bitrate", float64(cfg.Bitrate)},
		{"flac_compression_level", float64(cfg.FLACCompressionLevel)},
	}

	for _, c := range checks {
		r := Ranges[c.key]
		if c.value < r.Min || c.value > r.Max {
			return fmt.Errorf("%s = %v out of range [%v, %v]", c.key, c.value, r.Min, r.Max)
		}
	}
	return nil
}
