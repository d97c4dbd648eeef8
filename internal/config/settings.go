// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-roast-must-rise/internal/common"
	"github.com/spf13/viper"
)

// Defaults applied when a key is absent from the config file and environment.
const (
	DefaultDatabasePath = "$HOME/.local/share/roast/roast.db"
	DefaultOutputFormat = "table"
	DefaultServerAddr   = "127.0.0.1:8080"
	DefaultTheme        = "default"
)

// OutputFormats lists the accepted values for output.format.
var OutputFormats = []string{"table", "json", "yaml"}

// Settings is the typed view of the viper configuration.
type Settings struct {
	DatabasePath string
	OutputFormat string
	ServerAddr   string
	LogLevel     string
	LogFormat    string
	Theme        string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("tui.theme", DefaultTheme)
}

// Load reads settings from v and validates them.
// The database path is returned with ~ and environment variables expanded.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		OutputFormat: strings.ToLower(v.GetString("output.format")),
		ServerAddr:   v.GetString("server.addr"),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
		Theme:        v.GetString("tui.theme"),
	}

	if s.DatabasePath == "" {
		s.DatabasePath = ExpandPath(DefaultDatabasePath)
	}
	if s.OutputFormat == "" {
		s.OutputFormat = DefaultOutputFormat
	}

	if err := ValidateOutputFormat(s.OutputFormat); err != nil {
		return nil, err
	}

	return s, nil
}

// ValidateOutputFormat checks format against OutputFormats.
func ValidateOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("%w: output format %q (want one of %s)",
		common.ErrInvalidConfig, format, strings.Join(OutputFormats, ", "))
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
