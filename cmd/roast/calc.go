package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-roast-must-rise/internal/cli"
	"github.com/Veraticus/the-roast-must-rise/internal/common"
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/roast"
	"github.com/Veraticus/the-roast-must-rise/internal/snapshot"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type calcOptions struct {
	file        string
	interactive bool
	remember    bool
	noDefaults  bool
}

func calcCmd() *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate rate of rise for a roast",
		Long: `Calculate duration, rate of rise and share of total time for the three
roast phases (TP → Yellow, Yellow → FC, FC → Drop).

Checkpoints come from stage flags, a YAML snapshot (--file), or interactive
prompts (--interactive). Flags override values read from the snapshot. Blank
yellowing and first crack temperatures are filled from remembered defaults
unless --no-defaults is given.`,
		Example: `  roast calc --tp-temp 160 --tp-time 0:00 --yellow-temp 170 --yellow-time 2:00 \
    --fc-temp 196 --fc-time 8:00 --drop-temp 205 --drop-time 10:00
  roast calc --file roast.yaml --output json
  roast calc --interactive --remember`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			raw, err := rawInputsFromFlags(cmd.Flags(), opts.file)
			if err != nil {
				return err
			}

			return withDefaults(ctx, func(defaults *preferences.Defaults) error {
				return runCalc(ctx, defaults, raw, opts, cmd.InOrStdin(), cmd.OutOrStdout(), format)
			})
		},
	}

	for _, stage := range model.Stages {
		prefix := stageFlagPrefix(stage)
		cmd.Flags().String(prefix+"-temp", "", stage.String()+" temperature in °C")
		cmd.Flags().String(prefix+"-time", "", stage.String()+" elapsed time as MM:SS")
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read checkpoints from a YAML snapshot")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for each checkpoint")
	cmd.Flags().BoolVar(&opts.remember, "remember", false, "remember yellowing and first crack temperatures after a successful calculation")
	cmd.Flags().BoolVar(&opts.noDefaults, "no-defaults", false, "do not fill blank temperatures from remembered defaults")
	cmd.Flags().StringP("output", "o", "", "output format (table, json, yaml)")

	return cmd
}

func stageFlagPrefix(stage model.Stage) string {
	return strings.ToLower(stage.Short())
}

// rawInputsFromFlags loads file when given and overlays every stage flag the
// user set explicitly.
func rawInputsFromFlags(flags *pflag.FlagSet, file string) (model.RawInputs, error) {
	raw := make(model.RawInputs, model.StageCount)
	if file != "" {
		loaded, err := snapshot.Load(file)
		if err != nil {
			return nil, err
		}
		raw = loaded
	}

	for _, stage := range model.Stages {
		prefix := stageFlagPrefix(stage)
		in, seen := raw[stage]

		if f := flags.Lookup(prefix + "-temp"); f != nil && f.Changed {
			in.Temperature = f.Value.String()
			seen = true
		}
		if f := flags.Lookup(prefix + "-time"); f != nil && f.Changed {
			in.Time = f.Value.String()
			seen = true
		}
		if seen {
			raw[stage] = in
		}
	}

	return raw, nil
}

func runCalc(ctx context.Context, defaults *preferences.Defaults, raw model.RawInputs, opts calcOptions, in io.Reader, out io.Writer, format string) error {
	if opts.interactive {
		var remembered map[model.Stage]float64
		if !opts.noDefaults {
			var err error
			if remembered, err = defaults.All(ctx); err != nil {
				return fmt.Errorf("failed to load remembered defaults: %w", err)
			}
		}

		prompted, err := cli.NewPrompter(in, out).PromptInputs(ctx, remembered)
		if err != nil {
			return err
		}
		raw = prompted
	}

	if len(raw) == 0 {
		return common.NewUserError("no checkpoints given; use stage flags, --file or --interactive", common.ErrNoInput)
	}

	if !opts.noDefaults {
		var err error
		if raw, err = defaults.Apply(ctx, raw); err != nil {
			return fmt.Errorf("failed to apply remembered defaults: %w", err)
		}
	}

	slog.Debug("Calculating rate of rise", "stages", len(raw))
	results, err := roast.Calculate(raw)
	if err != nil {
		slog.Warn("Calculation rejected", "error", err)
		return err
	}

	if err := cli.RenderResults(out, results, format); err != nil {
		return err
	}

	if opts.remember {
		if err := defaults.RememberFrom(ctx, raw); err != nil {
			return fmt.Errorf("failed to remember defaults: %w", err)
		}
		slog.Info("Remembered default temperatures")
	}
	return nil
}
