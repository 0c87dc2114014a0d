package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/config"
	"github.com/Veraticus/spendwise/internal/llm"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/storage"
)

// openStorage opens and migrates the configured database. Callers must run the cleanup.
func (a *app) openStorage(ctx context.Context) (*storage.SQLiteStorage, func(), error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath(a.v))
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	}
	return store, cleanup, nil
}

// newGateway wires the AI gateway to the stored credential and model preference.
func (a *app) newGateway(store *storage.SQLiteStorage) (*llm.Gateway, error) {
	limits := config.LoadGateway(a.v)
	return llm.NewGateway(llm.Config{
		Credentials:    store.Credentials(),
		Models:         store.Models(),
		Logger:         a.logger,
		GeminiBaseURL:  limits.GeminiBaseURL,
		OpenAIBaseURL:  limits.OpenAIBaseURL,
		MaxAttempts:    limits.MaxAttempts,
		CallTimeout:    limits.CallTimeout,
		InsightTimeout: limits.InsightTimeout,
		MinInterval:    limits.MinInterval,
	})
}

// updateSnapshot loads the dataset, applies fn, and saves the result.
func (a *app) updateSnapshot(ctx context.Context, fn func(*model.Snapshot) error) (model.Snapshot, error) {
	store, cleanup, err := a.openStorage(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer cleanup()

	snapshot, err := store.Data().Load(ctx)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to load data: %w", err)
	}
	if err := fn(&snapshot); err != nil {
		return model.Snapshot{}, err
	}
	if err := store.Data().Save(ctx, snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to save data: %w", err)
	}
	return snapshot, nil
}

// loadSnapshot returns the stored dataset.
func (a *app) loadSnapshot(ctx context.Context) (model.Snapshot, error) {
	store, cleanup, err := a.openStorage(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer cleanup()

	snapshot, err := store.Data().Load(ctx)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to load data: %w", err)
	}
	return snapshot, nil
}

// addOverrideFlags registers --key and --model on cmd.
func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().String("key", "", "use this API key instead of the stored one")
	cmd.Flags().String("model", "", "use this Gemini model instead of the stored preference")
}

// callOptions turns --key and --model into gateway overrides.
func callOptions(cmd *cobra.Command) []llm.CallOption {
	var opts []llm.CallOption
	if key, _ := cmd.Flags().GetString("key"); key != "" {
		opts = append(opts, llm.WithCredential(key))
	}
	if name, _ := cmd.Flags().GetString("model"); name != "" {
		opts = append(opts, llm.WithModel(name))
	}
	return opts
}

func outf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func outln(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
