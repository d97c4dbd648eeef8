package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Veraticus/the-roast-must-rise/internal/cli"
	"github.com/Veraticus/the-roast-must-rise/internal/common"
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/spf13/cobra"
)

func defaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Manage remembered default temperatures",
		Long: `List, set, and clear the remembered yellowing and first crack
temperatures used to fill blank input.`,
	}

	cmd.AddCommand(defaultsListCmd())
	cmd.AddCommand(defaultsSetCmd())
	cmd.AddCommand(defaultsClearCmd())

	return cmd
}

func defaultsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remembered temperatures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withDefaults(ctx, func(defaults *preferences.Defaults) error {
				return listDefaults(ctx, defaults, cmd.OutOrStdout())
			})
		},
	}
}

func defaultsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <stage> <temperature>",
		Short:   "Remember a temperature for a stage",
		Example: "  roast defaults set yellowing 170\n  roast defaults set FC 196.5",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDefaults(ctx, func(defaults *preferences.Defaults) error {
				return setDefault(ctx, defaults, cmd.OutOrStdout(), args[0], args[1])
			})
		},
	}
}

func defaultsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <stage>",
		Short: "Forget the remembered temperature for a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDefaults(ctx, func(defaults *preferences.Defaults) error {
				return clearDefault(ctx, defaults, cmd.OutOrStdout(), args[0])
			})
		},
	}
}

func listDefaults(ctx context.Context, defaults *preferences.Defaults, out io.Writer) error {
	all, err := defaults.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load remembered defaults: %w", err)
	}

	for _, stage := range preferences.RememberedStages {
		value := cli.FormatInfo("(not set)")
		if v, ok := all[stage]; ok {
			value = preferences.FormatTemperature(v) + " °C"
		}
		if _, err := fmt.Fprintf(out, "%-12s %s\n", stage.String()+":", value); err != nil {
			return err
		}
	}
	return nil
}

func parseRememberableStage(arg string) (model.Stage, error) {
	stage, err := model.ParseStage(arg)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("unknown stage %q", arg), err)
	}
	if !preferences.Rememberable(stage) {
		return 0, common.NewUserError(
			fmt.Sprintf("%s has no remembered default; only yellowing and first crack do", stage),
			preferences.ErrNotRememberable)
	}
	return stage, nil
}

func setDefault(ctx context.Context, defaults *preferences.Defaults, out io.Writer, stageArg, tempArg string) error {
	stage, err := parseRememberableStage(stageArg)
	if err != nil {
		return err
	}

	temp, err := strconv.ParseFloat(tempArg, 64)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("invalid temperature %q", tempArg), err)
	}

	if err := defaults.Remember(ctx, stage, temp); err != nil {
		return err
	}

	slog.Debug("Remembered default temperature", "stage", stage.Key(), "temperature", temp)
	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s default set to %s °C", stage, preferences.FormatTemperature(temp))))
	return err
}

func clearDefault(ctx context.Context, defaults *preferences.Defaults, out io.Writer, stageArg string) error {
	stage, err := parseRememberableStage(stageArg)
	if err != nil {
		return err
	}

	if err := defaults.Forget(ctx, stage); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s default cleared", stage)))
	return err
}
