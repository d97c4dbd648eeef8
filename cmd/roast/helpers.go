package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/the-roast-must-rise/internal/config"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// loadSettings reads the typed settings from the global viper instance.
func loadSettings() (*config.Settings, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the preferences database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, settings.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// withDefaults runs fn with remembered defaults backed by the configured database.
func withDefaults(ctx context.Context, fn func(*preferences.Defaults) error) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(preferences.New(store))
}

// outputFormat returns the --output flag when set, otherwise output.format.
func outputFormat(cmd *cobra.Command) (string, error) {
	format := viper.GetString("output.format")
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		format = f.Value.String()
	}

	format = strings.ToLower(format)
	if err := config.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}
