package processor

import (
	"fmt"
	"strings"
)

// RenderScript renders a plan into a line-oriented shell script driving the
// ffmpeg command-line tool. Stage order and parameter formatting come
// straight from the plan; chapter and tag metadata are propagated from the
// original input, and the final container is written streaming-friendly.
func RenderScript(p *Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#!/bin/sh\n")
	fmt.Fprintf(&b, "# bookmaster processing plan: %s (v%d)\n", p.Mode, p.FileVersion)
	fmt.Fprintf(&b, "set -eu\n\n")

	input := quotePath(p.InputPath)
	output := quotePath(p.OutputPath)

	switch {
	case p.Preview != nil:
		fmt.Fprintf(&b, "# Single pass over a %ds excerpt, loudness normalised approximately.\n", p.Preview.DurationSec)
		fmt.Fprintf(&b, "ffmpeg -y -ss %d -t %d -i %s \\\n", p.Preview.OffsetSec, p.Preview.DurationSec, input)
		fmt.Fprintf(&b, "  -af \"%s\" \\\n", p.FilterSpec())
		fmt.Fprintf(&b, "  -map_metadata 0 -map_chapters 0 \\\n")
		fmt.Fprintf(&b, "  -c:a aac -b:a %dk -movflags +faststart \\\n", p.Bitrate)
		fmt.Fprintf(&b, "  %s\n", output)

	case p.TwoPass != nil:
		intermediate := quotePath(p.TwoPass.IntermediatePath)

		fmt.Fprintf(&b, "# Pass 1: decode once to a lossless intermediate, then measure loudness.\n")
		fmt.Fprintf(&b, "ffmpeg -y -i %s -map_metadata 0 -map_chapters 0 \\\n", input)
		fmt.Fprintf(&b, "  -c:a flac -compression_level %d \\\n", p.TwoPass.FLACCompressionLevel)
		fmt.Fprintf(&b, "  %s\n", intermediate)
		fmt.Fprintf(&b, "ffmpeg -i %s -af \"%s\" -f null -\n\n", intermediate, p.TwoPass.MeasureSpec)

		if p.TwoPass.UsedFallback {
			fmt.Fprintf(&b, "# Measured values unavailable; the chain below carries deterministic fallbacks.\n")
		}
		fmt.Fprintf(&b, "# Pass 2: full chain against the intermediate, measured-mode loudness.\n")
		fmt.Fprintf(&b, "ffmpeg -y -i %s -i %s \\\n", intermediate, input)
		fmt.Fprintf(&b, "  -map 0:a -map_metadata 1 -map_chapters 1 \\\n")
		fmt.Fprintf(&b, "  -af \"%s\" \\\n", p.FilterSpec())
		fmt.Fprintf(&b, "  -c:a aac -b:a %dk -movflags +faststart \\\n", p.Bitrate)
		fmt.Fprintf(&b, "  %s\n", output)

		for _, artifact := range p.Cleanup {
			fmt.Fprintf(&b, "rm -f %s\n", quotePath(artifact))
		}
	}

	return b.String()
}
