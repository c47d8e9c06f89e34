package processor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quietpress/bookmaster/internal/config"
)

// Mode selects the execution family for a plan.
type Mode string

// The closed set of execution modes.
const (
	ModePreview10   Mode = "preview-10s"
	ModePreview45   Mode = "preview-45s"
	ModeFullTwoPass Mode = "full-two-pass"
)

// ErrInvalidMode reports a mode outside the closed set.
var ErrInvalidMode = errors.New("processor: invalid execution mode")

// Previews start a fixed way into the source to skip likely front matter and
// opening silence.
const previewOffsetSec = 300

// fallbackThreshDB is the conservative input threshold substituted when the
// Pass 1 measurement is unavailable.
const fallbackThreshDB = -70.0

// Measurement holds the four quantities Pass 1 measures and Pass 2 consumes,
// plus the normalisation offset the measurement reports alongside them.
type Measurement struct {
	InputI       float64 // integrated loudness (LUFS)
	InputTP      float64 // true peak (dBTP)
	InputLRA     float64 // loudness range (LU)
	InputThresh  float64 // input threshold (LUFS)
	TargetOffset float64 // gain offset toward target
}

// fallbackMeasurement substitutes deterministic literals when Pass 1
// measurement is unavailable: the configured targets stand in for the
// corresponding measured quantities, with a conservative threshold and zero
// offset. Pass 2 is always constructible, even under partial Pass 1 failure.
func fallbackMeasurement(cfg config.Config) Measurement {
	return Measurement{
		InputI:       cfg.LoudnormTarget,
		InputTP:      cfg.LoudnormTP,
		InputLRA:     cfg.LoudnormLRA,
		InputThresh:  fallbackThreshDB,
		TargetOffset: 0,
	}
}

// TwoPassProtocol describes the measure-then-normalise structure of a full
// export: what Pass 1 produces, which values Pass 2 consumes, and whether
// those values were measured or substituted.
type TwoPassProtocol struct {
	IntermediatePath     string      // lossless decode shared by both passes
	FLACCompressionLevel int         // intermediate encoding level
	MeasureSpec          string      // Pass 1 measurement-only loudness filter
	Measured             Measurement // values Pass 2 feeds the loudness filter
	UsedFallback         bool        // true when Measured is the fallback set
}

// Preview describes the fixed excerpt a preview plan operates on.
type Preview struct {
	OffsetSec   int
	DurationSec int
}

// Plan is a fully-specified, reproducible processing plan: the ordered
// filter chain, the pass structure for its mode, and the resolved output
// naming. Two calls with identical inputs produce structurally identical
// plans apart from the revision baked into the output name.
type Plan struct {
	Mode        Mode
	InputPath   string // home-shorthand expanded
	OutputPath  string // versioned, mode-suffixed
	FileVersion int
	Bitrate     int // kbps, final lossy encode

	Stages []Stage // the full ordered chain, loudness stage per mode

	Preview *Preview         // previews only
	TwoPass *TwoPassProtocol // full export only
	Cleanup []string         // intermediate artifacts removed after the run
}

// FilterSpec joins the ordered stage specs into a single filter-graph string.
func (p *Plan) FilterSpec() string {
	specs := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		specs[i] = s.Spec
	}
	return strings.Join(specs, ",")
}

// PlanRequest carries everything a plan is built from. Measured is nil when
// Pass 1 has not run or failed; the planner substitutes fallbacks rather
// than surfacing an error (measurement loss is non-fatal by design).
type PlanRequest struct {
	Config    config.Config
	Mode      Mode
	InputPath string
	OutputDir string
	Revision  int // externally-owned counter value, advanced only on finalize
	Measured  *Measurement
}

// BuildPlan composes the parameter mapping, resolved paths, and mode into a
// ProcessingPlan. It fails only for a mode outside the closed set.
func BuildPlan(req PlanRequest) (*Plan, error) {
	params := MapParameters(req.Config)
	input := ExpandHome(req.InputPath)

	plan := &Plan{
		Mode:        req.Mode,
		InputPath:   input,
		FileVersion: req.Revision,
		Bitrate:     req.Config.Bitrate,
		OutputPath:  outputPath(req.InputPath, req.OutputDir, req.Revision, req.Mode),
	}

	switch req.Mode {
	case ModePreview10, ModePreview45:
		duration := 10
		if req.Mode == ModePreview45 {
			duration = 45
		}
		plan.Preview = &Preview{OffsetSec: previewOffsetSec, DurationSec: duration}
		c := &chain{cfg: req.Config, params: params, loudnorm: singlePassLoudnorm(req.Config)}
		plan.Stages = c.buildStages()

	case ModeFullTwoPass:
		measured := fallbackMeasurement(req.Config)
		usedFallback := true
		if req.Measured != nil {
			measured = *req.Measured
			usedFallback = false
		}

		intermediate := intermediatePath(req.InputPath, req.OutputDir, req.Revision)
		plan.TwoPass = &TwoPassProtocol{
			IntermediatePath:     intermediate,
			FLACCompressionLevel: req.Config.FLACCompressionLevel,
			MeasureSpec:          measurementLoudnorm(req.Config),
			Measured:             measured,
			UsedFallback:         usedFallback,
		}
		plan.Cleanup = []string{intermediate}

		c := &chain{cfg: req.Config, params: params, loudnorm: measuredLoudnorm(req.Config, measured)}
		plan.Stages = c.buildStages()

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}

	return plan, nil
}

// modeSuffix returns the mode-specific output name suffix.
func modeSuffix(mode Mode) string {
	if mode == ModeFullTwoPass {
		return "-processed"
	}
	return "-" + string(mode)
}

// outputPath builds the deterministic versioned output name:
// <base>_v<revision><mode suffix>.m4b in the output directory.
func outputPath(inputPath, outputDir string, revision int, mode Mode) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("%s_v%d%s.m4b", base, revision, modeSuffix(mode))
	return ExpandHome(filepath.Join(outputDir, name))
}

// intermediatePath names the lossless intermediate a full export decodes to.
func intermediatePath(inputPath, outputDir string, revision int) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("%s_v%d-intermediate.flac", base, revision)
	return ExpandHome(filepath.Join(outputDir, name))
}

// RevisionCounter is the one piece of process-wide mutable state: a
// monotonic counter disambiguating repeated exports of the same logical job.
// It is owned by the caller; the planner only reads Current, and Advance is
// called exactly once per successful finalize.
type RevisionCounter struct {
	n int
}

// NewRevisionCounter starts a counter at the given revision (minimum 1).
func NewRevisionCounter(start int) *RevisionCounter {
	if start < 1 {
		start = 1
	}
	return &RevisionCounter{n: start}
}

// Current returns the revision the next plan should carry.
func (c *RevisionCounter) Current() int { return c.n }

// Advance increments the counter after a successful finalize.
func (c *RevisionCounter) Advance() { c.n++ }
