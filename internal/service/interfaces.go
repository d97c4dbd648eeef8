// Package service defines the interfaces for all application services.
package service

import "context"

// PreferenceStore is a small key-value store for values remembered between runs.
type PreferenceStore interface {
	// GetPreference returns common.ErrNotFound when key has no value.
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
	DeletePreference(ctx context.Context, key string) error
	ListPreferences(ctx context.Context) (map[string]string, error)
	Close() error
}
