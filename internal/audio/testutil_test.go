package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// testWAVOptions configures the synthetic audio to generate.
type testWAVOptions struct {
	DurationSecs float64 // total duration in seconds (default 1.0)
	SampleRate   int     // default 44100
	Channels     int     // default 1
	ToneFreq     float64 // sine frequency in Hz (0 = constant amplitude)
	Amplitude    float64 // linear amplitude in [0, 1]
	InvertRight  bool    // stereo only: negate the right channel
}

// generateTestWAV writes a synthetic 16-bit PCM WAV into t.TempDir and
// returns its path.
func generateTestWAV(t *testing.T, opts testWAVOptions) string {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.DurationSecs == 0 {
		opts.DurationSecs = 1.0
	}
	if opts.Channels == 0 {
		opts.Channels = 1
	}

	totalFrames := int(opts.DurationSecs * float64(opts.SampleRate))
	data := make([]int, 0, totalFrames*opts.Channels)
	for i := 0; i < totalFrames; i++ {
		sample := opts.Amplitude
		if opts.ToneFreq > 0 {
			sample = opts.Amplitude * math.Sin(2*math.Pi*opts.ToneFreq*float64(i)/float64(opts.SampleRate))
		}
		v := int(sample * 32767)

		data = append(data, v)
		for ch := 1; ch < opts.Channels; ch++ {
			if opts.InvertRight {
				data = append(data, -v)
			} else {
				data = append(data, v)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test wav: %v", err)
	}

	enc := wav.NewEncoder(f, opts.SampleRate, 16, opts.Channels, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: opts.Channels, SampleRate: opts.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing test wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing test wav: %v", err)
	}

	return path
}

// writeFile drops raw bytes into t.TempDir and returns the path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
