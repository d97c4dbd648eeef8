package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/the-roast-must-rise/internal/cli"
	"github.com/Veraticus/the-roast-must-rise/internal/common"
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/roast"
	"github.com/Veraticus/the-roast-must-rise/internal/snapshot"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var (
		file       string
		noDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recalculate whenever a snapshot file changes",
		Long: `Print results for a YAML snapshot, then recalculate and print again each
time the file is saved. Stops on ctrl+c.`,
		Example: `  roast watch --file roast.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Stopped watching.")
			ctx := handler.HandleInterrupts(cmd.Context())

			if noDefaults {
				return runWatch(ctx, file, nil, cmd.OutOrStdout(), format)
			}
			return withDefaults(ctx, func(defaults *preferences.Defaults) error {
				return runWatch(ctx, file, defaults, cmd.OutOrStdout(), format)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML snapshot to watch")
	cmd.Flags().BoolVar(&noDefaults, "no-defaults", false, "do not fill blank temperatures from remembered defaults")
	cmd.Flags().StringP("output", "o", "", "output format (table, json, yaml)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// runWatch renders path once, then again on every change until ctx is done.
// defaults may be nil.
func runWatch(ctx context.Context, path string, defaults *preferences.Defaults, out io.Writer, format string) error {
	render := func(raw model.RawInputs, err error) {
		if _, werr := fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s  %s", path, time.Now().Format(time.TimeOnly)))); werr != nil {
			slog.Warn("Failed to write output", "error", werr)
		}

		if err == nil && defaults != nil {
			raw, err = defaults.Apply(ctx, raw)
		}

		var results model.PhaseResults
		if err == nil {
			results, err = roast.Calculate(raw)
		}
		if err != nil {
			if _, werr := fmt.Fprintln(out, cli.FormatError(common.Message(err))); werr != nil {
				slog.Warn("Failed to write output", "error", werr)
			}
			return
		}

		if err := cli.RenderResults(out, results, format); err != nil {
			slog.Warn("Failed to render results", "error", err)
		}
	}

	render(snapshot.Load(path))
	return snapshot.Watch(ctx, path, render)
}
