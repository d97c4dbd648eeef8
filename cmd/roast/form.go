package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-roast-must-rise/internal/cli"
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/snapshot"
	"github.com/Veraticus/the-roast-must-rise/internal/tui"
	"github.com/Veraticus/the-roast-must-rise/internal/tui/themes"
	"github.com/spf13/cobra"
)

func formCmd() *cobra.Command {
	var (
		file     string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Enter checkpoints in an interactive form",
		Long: `Open a terminal form with one temperature and one time field per stage.
Press enter on the last field or ctrl+r to calculate; esc quits. The last
results are printed after the form closes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			return withDefaults(ctx, func(defaults *preferences.Defaults) error {
				remembered, err := defaults.All(ctx)
				if err != nil {
					return fmt.Errorf("failed to load remembered defaults: %w", err)
				}

				opts := []tui.Option{
					tui.WithTheme(themes.ByName(settings.Theme)),
					tui.WithDefaults(remembered),
				}

				if file != "" {
					raw, err := snapshot.Load(file)
					if err != nil {
						return err
					}
					opts = append(opts, tui.WithInitial(raw))
				}

				if remember {
					opts = append(opts, tui.WithOnCalculated(func(raw model.RawInputs, _ model.PhaseResults) error {
						return defaults.RememberFrom(ctx, raw)
					}))
				}

				final, err := tui.Run(ctx, opts...)
				if err != nil {
					return err
				}

				if err := final.SaveErr(); err != nil {
					slog.Warn("Failed to remember defaults", "error", err)
				}

				if results, ok := final.Results(); ok {
					return cli.RenderResults(cmd.OutOrStdout(), results, settings.OutputFormat)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "pre-fill the form from a YAML snapshot")
	cmd.Flags().BoolVar(&remember, "remember", false, "remember yellowing and first crack temperatures after each successful calculation")

	return cmd
}
