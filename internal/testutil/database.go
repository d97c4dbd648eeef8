// Package testutil provides shared test helpers: an isolated in-memory
// preferences database and a set of known-good roast fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/storage"
)

// TestDB represents a test database with the defaults layered on top of it.
type TestDB struct {
	Storage  *storage.SQLiteStorage
	Defaults *preferences.Defaults
	t        *testing.T
}

// Seeds are remembered temperatures written before a test starts.
type Seeds map[model.Stage]float64

// SetupTestDB creates a new in-memory test database holding seeds.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.Seeds{model.StageYellowing: 170})
func SetupTestDB(t *testing.T, seeds Seeds) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Seeds: seeds})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Seeds          Seeds
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	defaults := preferences.New(store)
	for stage, v := range opts.Seeds {
		if err := defaults.Remember(ctx, stage, v); err != nil {
			t.Fatalf("failed to seed %s default: %v", stage, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage:  store,
		Defaults: defaults,
		t:        t,
	}
}

// MustDefault returns the remembered temperature for stage or fails the test.
func (db *TestDB) MustDefault(stage model.Stage) float64 {
	db.t.Helper()

	v, ok, err := db.Defaults.Temperature(context.Background(), stage)
	if err != nil {
		db.t.Fatalf("failed to read %s default: %v", stage, err)
	}
	if !ok {
		db.t.Fatalf("no default remembered for %s", stage)
	}
	return v
}
