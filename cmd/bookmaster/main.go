package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/quietpress/bookmaster/internal/advisor"
	"github.com/quietpress/bookmaster/internal/analyzer"
	"github.com/quietpress/bookmaster/internal/audio"
	"github.com/quietpress/bookmaster/internal/cli"
	"github.com/quietpress/bookmaster/internal/config"
	"github.com/quietpress/bookmaster/internal/mains"
	"github.com/quietpress/bookmaster/internal/processor"
)

var (
	version = "0.0.1"
)

// CLI defines the command-line interface
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Quick-scan audio files and print levels with recording advice"`
	Plan    PlanCmd    `cmd:"" help:"Generate a processing script for one or more audiobook files"`
	Presets PresetsCmd `cmd:"" help:"List the built-in configuration presets"`
	Config  ConfigCmd  `cmd:"" help:"Print an annotated sample configuration file"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	cli.PrintVersion(version)
	return nil
}

// AnalyzeCmd runs the quick-scan analyzer over each input and prints a
// levels report plus tiered advice.
type AnalyzeCmd struct {
	Config   string   `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Preset   string   `short:"p" help:"Apply a named preset on top of the defaults"`
	MaxBytes int64    `help:"Read cap per file in bytes; larger files are scanned partially" default:"67108864"`
	Files    []string `arg:"" name:"files" help:"Audio files to analyze" type:"existingfile"`
}

func (a *AnalyzeCmd) Run() error {
	cfg, err := resolveConfig(a.Config, a.Preset)
	if err != nil {
		return err
	}

	mainsHz := mains.Frequency()
	for _, path := range a.Files {
		buf, err := audio.DecodeFile(path, a.MaxBytes)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		report, err := analyzer.Analyze(buf.Samples, buf.SampleRate, buf.Truncated)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		findings := advisor.Evaluate(report, cfg, mainsHz)
		cli.DisplayAnalysis(os.Stdout, path, report, findings)
	}
	return nil
}

// PlanCmd builds a processing plan per input and renders each one as an
// ffmpeg shell script. Full-export plans advance the revision counter so a
// batch numbers its outputs sequentially; previews leave it untouched.
type PlanCmd struct {
	Config    string   `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Preset    string   `short:"p" help:"Apply a named preset on top of the defaults"`
	Mode      string   `short:"m" enum:"preview-10s,preview-45s,full-two-pass" default:"full-two-pass" help:"Execution mode"`
	OutputDir string   `short:"o" type:"path" help:"Directory for outputs (default: alongside each input)"`
	Revision  int      `short:"r" default:"1" help:"Starting revision number baked into output names"`
	ScriptDir string   `type:"path" help:"Write one script per input here instead of stdout"`
	MeasuredI *float64 `help:"Measured integrated loudness from a prior measurement pass (LUFS)"`
	Files     []string `arg:"" name:"files" help:"Audio files to plan" type:"existingfile"`
}

func (p *PlanCmd) Run() error {
	cfg, err := resolveConfig(p.Config, p.Preset)
	if err != nil {
		return err
	}

	counter := processor.NewRevisionCounter(p.Revision)
	mode := processor.Mode(p.Mode)

	for _, path := range p.Files {
		var measured *processor.Measurement
		if p.MeasuredI != nil {
			measured = &processor.Measurement{
				InputI:       *p.MeasuredI,
				InputTP:      cfg.LoudnormTP,
				InputLRA:     cfg.LoudnormLRA,
				InputThresh:  *p.MeasuredI - 10,
				TargetOffset: 0,
			}
		}

		plan, err := processor.BuildPlan(processor.PlanRequest{
			Config:    cfg,
			Mode:      mode,
			InputPath: path,
			OutputDir: p.OutputDir,
			Revision:  counter.Current(),
			Measured:  measured,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		script := processor.RenderScript(plan)
		if p.ScriptDir != "" {
			if err := writeScript(p.ScriptDir, path, plan.FileVersion, script); err != nil {
				return err
			}
		} else {
			fmt.Print(script)
		}

		// Only a finalised full export claims its revision number.
		if mode == processor.ModeFullTwoPass {
			counter.Advance()
		}
	}
	return nil
}

// PresetsCmd lists the built-in presets with their descriptions.
type PresetsCmd struct{}

func (PresetsCmd) Run() error {
	fmt.Println(cli.TitleStyle.Render("Presets"))
	for _, p := range config.Presets {
		fmt.Printf("%s  %s\n", cli.ValueStyle.Render(fmt.Sprintf("%-16s", p.Name)), cli.KeyStyle.Render(p.Description))
	}
	return nil
}

// ConfigCmd prints the embedded sample configuration to stdout so users can
// redirect it into a starting config file.
type ConfigCmd struct{}

func (ConfigCmd) Run() error {
	fmt.Print(config.SampleConfig())
	return nil
}

// resolveConfig layers an optional preset, then an optional TOML file, over
// the defaults. The file wins where both set the same knob.
func resolveConfig(path, preset string) (config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p, ok := config.PresetByName(preset)
		if !ok {
			names := make([]string, len(config.Presets))
			for i, pr := range config.Presets {
				names[i] = pr.Name
			}
			return cfg, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(names, ", "))
		}
		cfg = p.Overrides.Apply(cfg)
	}

	if path == "" {
		return cfg, config.Validate(cfg)
	}
	return config.Load(path, cfg, false)
}

func writeScript(dir, inputPath string, revision int, script string) error {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	out := filepath.Join(dir, fmt.Sprintf("%s_v%d.sh", base, revision))
	if err := os.WriteFile(out, []byte(script), 0o755); err != nil {
		return fmt.Errorf("writing script: %w", err)
	}
	fmt.Printf("%s %s\n", cli.KeyStyle.Render("Wrote:"), cli.ValueStyle.Render(out))
	return nil
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("bookmaster"),
		kong.Description("Audiobook mastering planner"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
