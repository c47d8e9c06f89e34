package processor

import (
	"math"
	"testing"

	"github.com/quietpress/bookmaster/internal/config"
)

func TestMapParameters(t *testing.T) {
	t.Run("defaults map to documented values", func(t *testing.T) {
		p := MapParameters(config.Default())

		// noise_reduction 0.2 -> nr=8, nf=-72
		if p.NoiseReductionDB != 8 {
			t.Errorf("NoiseReductionDB = %d, want 8", p.NoiseReductionDB)
		}
		if p.NoiseFloorDB != -72 {
			t.Errorf("NoiseFloorDB = %d, want -72", p.NoiseFloorDB)
		}

		// compression 0.3 -> ratio 2.9, attack 14.6, release 190.0, makeup 2.6
		if p.CompRatio != 2.9 {
			t.Errorf("CompRatio = %.1f, want 2.9", p.CompRatio)
		}
		if p.CompAttackMs != 14.6 {
			t.Errorf("CompAttackMs = %.1f, want 14.6", p.CompAttackMs)
		}
		if p.CompReleaseMs != 190.0 {
			t.Errorf("CompReleaseMs = %.1f, want 190.0", p.CompReleaseMs)
		}
		if p.CompMakeupDB != 2.6 {
			t.Errorf("CompMakeupDB = %.1f, want 2.6", p.CompMakeupDB)
		}

		// deesser_freq 6000 against the fixed 22050 reference
		if math.Abs(p.DeesserFreqRatio-6000.0/22050.0) > 1e-12 {
			t.Errorf("DeesserFreqRatio = %.6f, want %.6f", p.DeesserFreqRatio, 6000.0/22050.0)
		}
		if p.DeesserAmount != 0.5 {
			t.Errorf("DeesserAmount = %.2f, want 0.5", p.DeesserAmount)
		}
	})

	t.Run("knob extremes", func(t *testing.T) {
		cfg := config.Default()
		cfg.NoiseReduction = 1.0
		cfg.CompressionAmount = 0.0

		p := MapParameters(cfg)

		if p.NoiseReductionDB != 40 || p.NoiseFloorDB != -40 {
			t.Errorf("noise pair at 1.0 = (%d, %d), want (40, -40)", p.NoiseReductionDB, p.NoiseFloorDB)
		}
		if p.CompRatio != 2.0 || p.CompAttackMs != 20.0 || p.CompReleaseMs != 250.0 || p.CompMakeupDB != 2.0 {
			t.Errorf("compressor at 0.0 = %+v, want ratio 2.0 attack 20.0 release 250.0 makeup 2.0", p)
		}

		cfg.NoiseReduction = 0.0
		cfg.CompressionAmount = 1.0
		p = MapParameters(cfg)

		if p.NoiseReductionDB != 0 || p.NoiseFloorDB != -80 {
			t.Errorf("noise pair at 0.0 = (%d, %d), want (0, -80)", p.NoiseReductionDB, p.NoiseFloorDB)
		}
		if p.CompRatio != 5.0 || p.CompAttackMs != 2.0 || p.CompReleaseMs != 50.0 || p.CompMakeupDB != 4.0 {
			t.Errorf("compressor at 1.0 = %+v, want ratio 5.0 attack 2.0 release 50.0 makeup 4.0", p)
		}
	})

	t.Run("compression knob moves every derived value monotonically", func(t *testing.T) {
		prevCfg := config.Default()
		prevCfg.CompressionAmount = 0.0
		prev := MapParameters(prevCfg)

		for amount := 0.05; amount <= 1.0; amount += 0.05 {
			cfg := config.Default()
			cfg.CompressionAmount = amount
			p := MapParameters(cfg)

			if p.CompRatio < prev.CompRatio {
				t.Fatalf("CompRatio decreased at %.2f: %.1f -> %.1f", amount, prev.CompRatio, p.CompRatio)
			}
			if p.CompMakeupDB < prev.CompMakeupDB {
				t.Fatalf("CompMakeupDB decreased at %.2f", amount)
			}
			if p.CompAttackMs > prev.CompAttackMs {
				t.Fatalf("CompAttackMs increased at %.2f: %.1f -> %.1f", amount, prev.CompAttackMs, p.CompAttackMs)
			}
			if p.CompReleaseMs > prev.CompReleaseMs {
				t.Fatalf("CompReleaseMs increased at %.2f", amount)
			}
			prev = p
		}
	})

	t.Run("same config yields identical parameters", func(t *testing.T) {
		cfg := config.Default()
		cfg.NoiseReduction = 0.65
		cfg.CompressionAmount = 0.45

		if MapParameters(cfg) != MapParameters(cfg) {
			t.Error("MapParameters is not deterministic for identical input")
		}
	})

	t.Run("limiter timing is fixed", func(t *testing.T) {
		p := MapParameters(config.Default())
		if p.LimiterAttackMs != 5.0 || p.LimiterReleaseMs != 50.0 {
			t.Errorf("limiter timing = (%.1f, %.1f), want (5.0, 50.0)", p.LimiterAttackMs, p.LimiterReleaseMs)
		}
	})
}
