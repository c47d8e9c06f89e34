package advisor

import (
	"strings"
	"testing"

	"github.com/quietpress/bookmaster/internal/analyzer"
	"github.com/quietpress/bookmaster/internal/config"
)

func cleanAnalysis() *analyzer.Analysis {
	return &analyzer.Analysis{
		EstLUFS:    -21.0,
		Peak:       -6.0,
		NoiseFloor: -70.0,
		Duration:   600,
		SampleRate: 44100,
	}
}

func findingFor(t *testing.T, findings []Finding, metric string) Finding {
	t.Helper()
	for _, f := range findings {
		if f.Metric == metric {
			return f
		}
	}
	t.Fatalf("no finding for metric %q", metric)
	return Finding{}
}

func TestEvaluate(t *testing.T) {
	t.Run("clean recording is all good", func(t *testing.T) {
		findings := Evaluate(cleanAnalysis(), config.Default(), 50)
		for _, f := range findings {
			if f.Tier != TierGood {
				t.Errorf("%s = %s (%s), want good", f.Metric, f.Tier, f.Message)
			}
		}
	})

	t.Run("nil analysis yields no findings", func(t *testing.T) {
		if findings := Evaluate(nil, config.Default(), 50); findings != nil {
			t.Errorf("Evaluate(nil) = %v, want nil", findings)
		}
	})

	t.Run("one finding per metric in stable order", func(t *testing.T) {
		findings := Evaluate(cleanAnalysis(), config.Default(), 50)
		want := []string{"noise_floor", "peak", "loudness", "sample_rate", "mains_hum"}
		if len(findings) != len(want) {
			t.Fatalf("got %d findings, want %d", len(findings), len(want))
		}
		for i, metric := range want {
			if findings[i].Metric != metric {
				t.Errorf("finding %d = %s, want %s", i, findings[i].Metric, metric)
			}
		}
	})
}

func TestNoiseFloorTiers(t *testing.T) {
	tests := []struct {
		floor float64
		want  Tier
	}{
		{-70, TierGood},
		{-61, TierGood},
		{-58, TierInfo},
		{-48, TierWarn},
		{-30, TierWarn},
	}

	for _, tt := range tests {
		a := cleanAnalysis()
		a.NoiseFloor = tt.floor
		got := findingFor(t, Evaluate(a, config.Default(), 50), "noise_floor")
		if got.Tier != tt.want {
			t.Errorf("noise floor %.0f dB = %s, want %s", tt.floor, got.Tier, tt.want)
		}
	}
}

func TestPeakTiers(t *testing.T) {
	tests := []struct {
		peak float64
		want Tier
	}{
		{-12, TierGood},
		{-3.5, TierGood},
		{-2, TierInfo},
		{-0.5, TierWarn},
		{0, TierWarn},
	}

	for _, tt := range tests {
		a := cleanAnalysis()
		a.Peak = tt.peak
		got := findingFor(t, Evaluate(a, config.Default(), 50), "peak")
		if got.Tier != tt.want {
			t.Errorf("peak %.1f dB = %s, want %s", tt.peak, got.Tier, tt.want)
		}
	}
}

func TestLoudnessGap(t *testing.T) {
	t.Run("very quiet source is flagged", func(t *testing.T) {
		a := cleanAnalysis()
		a.EstLUFS = -40
		got := findingFor(t, Evaluate(a, config.Default(), 50), "loudness")
		if got.Tier != TierInfo {
			t.Errorf("tier = %s, want info", got.Tier)
		}
		if !strings.Contains(got.Message, "heavy gain") {
			t.Errorf("message = %q", got.Message)
		}
	})

	t.Run("overly hot source is flagged", func(t *testing.T) {
		a := cleanAnalysis()
		a.EstLUFS = -10
		got := findingFor(t, Evaluate(a, config.Default(), 50), "loudness")
		if got.Tier != TierInfo {
			t.Errorf("tier = %s, want info", got.Tier)
		}
	})
}

func TestSampleRateFinding(t *testing.T) {
	a := cleanAnalysis()
	a.SampleRate = 48000
	got := findingFor(t, Evaluate(a, config.Default(), 50), "sample_rate")
	if got.Tier != TierInfo {
		t.Errorf("48 kHz source tier = %s, want info", got.Tier)
	}
	if !strings.Contains(got.Message, "48000") {
		t.Errorf("message = %q, want the source rate named", got.Message)
	}
}

func TestMainsHum(t *testing.T) {
	t.Run("noisy floor with a low cutoff warns", func(t *testing.T) {
		a := cleanAnalysis()
		a.NoiseFloor = -48
		cfg := config.Default()
		cfg.HighpassFreq = 40

		got := findingFor(t, Evaluate(a, cfg, 60), "mains_hum")
		if got.Tier != TierWarn {
			t.Errorf("tier = %s, want warn", got.Tier)
		}
		if !strings.Contains(got.Message, "60 Hz") {
			t.Errorf("message = %q, want the mains frequency named", got.Message)
		}
	})

	t.Run("default cutoff already clears 50 Hz hum", func(t *testing.T) {
		a := cleanAnalysis()
		a.NoiseFloor = -48

		// Default 80 Hz cutoff sits above both mains fundamentals.
		got := findingFor(t, Evaluate(a, config.Default(), 50), "mains_hum")
		if got.Tier != TierGood {
			t.Errorf("tier = %s, want good", got.Tier)
		}
	})
}

func TestTierString(t *testing.T) {
	if TierGood.String() != "good" || TierInfo.String() != "info" || TierWarn.String() != "warn" {
		t.Error("Tier string forms changed")
	}
}
