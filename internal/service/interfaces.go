// Package service defines the contracts between the gateway and the collaborators
// that own persistent state.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/spendwise/internal/model"
)

// CredentialStore holds the user's opaque AI credential.
// Get returns an empty string when no credential is stored.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, credential string) error
	Remove(ctx context.Context) error
}

// ModelStore holds the user's preferred model name.
// Get returns an empty string when no preference is stored.
type ModelStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, model string) error
}

// DataStore persists the budgeting dataset.
type DataStore interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Save(ctx context.Context, snapshot model.Snapshot) error
	Reset(ctx context.Context) error
}

// RateFetcher retrieves exchange rates relative to a base currency.
type RateFetcher interface {
	Fetch(ctx context.Context, base string) map[string]float64
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	// Sleep waits between attempts. It must return ctx.Err() if ctx ends
	// first. Nil uses a real timer.
	Sleep        func(ctx context.Context, d time.Duration) error
	Logger       *slog.Logger
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ReportWriter exports a snapshot somewhere outside the app and returns where.
type ReportWriter interface {
	Write(ctx context.Context, snapshot model.Snapshot) (string, error)
}
