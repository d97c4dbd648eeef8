package main

import (
	"github.com/Veraticus/the-roast-must-rise/internal/api"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Start an HTTP server exposing POST /calculate, the remembered defaults
under /defaults and GET /version. Shuts down gracefully on ctrl+c.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			return withDefaults(ctx, func(defaults *preferences.Defaults) error {
				return api.NewServer(defaults, version).Serve(ctx, settings.ServerAddr)
			})
		},
	}

	cmd.Flags().String("addr", "", "listen address (default: 127.0.0.1:8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
