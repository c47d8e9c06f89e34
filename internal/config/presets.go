package config

// Preset is a named partial-override bundle. Applying a preset layers only
// the fields it names onto the active configuration; everything else is
// left alone.
type Preset struct {
	Name        string
	Description string
	Overrides   Overrides
}

func f(v float64) *float64 { return &v }

// Presets is the fixed library of named presets, in display order.
var Presets = []Preset{
	{
		Name:        "audiobook",
		Description: "Retail audiobook submission: -19 LUFS, -3 dBTP ceiling",
		Overrides: Overrides{
			LoudnormTarget: f(-19.0),
			LoudnormTP:     f(-3.0),
			LoudnormLRA:    f(11.0),
		},
	},
	{
		Name:        "podcast",
		Description: "Podcast loudness: -16 LUFS with a tighter peak ceiling",
		Overrides: Overrides{
			LoudnormTarget:    f(-16.0),
			LoudnormTP:        f(-1.5),
			CompressionAmount: f(0.45),
		},
	},
	{
		Name:        "warm-voice",
		Description: "Preserve low-end body: gentler rumble cutoff, light de-essing",
		Overrides: Overrides{
			HighpassFreq:  f(60),
			LowpassFreq:   f(11000),
			DeesserAmount: f(0.3),
		},
	},
	{
		Name:        "noisy-room",
		Description: "Untreated rooms: aggressive noise reduction and rumble cutoff",
		Overrides: Overrides{
			HighpassFreq:   f(120),
			NoiseReduction: f(0.6),
		},
	},
	{
		Name:        "crisp-narration",
		Description: "Bright close-mic narration: wider bandwidth, firmer de-essing",
		Overrides: Overrides{
			LowpassFreq:       f(16000),
			DeesserFreq:       f(6500),
			DeesserAmount:     f(0.65),
			CompressionAmount: f(0.5),
		},
	},
}

// PresetByName looks up a preset in the library. The second return value is
// false when no preset with that name exists.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
