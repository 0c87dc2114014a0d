package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spendwise/internal/llm"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/service"
)

// Credentials returns the credential store backed by this database.
func (s *SQLiteStorage) Credentials() service.CredentialStore {
	return credentialStore{s: s}
}

// Models returns the model-preference store backed by this database.
func (s *SQLiteStorage) Models() service.ModelStore {
	return modelStore{s: s}
}

// Data returns the budgeting dataset store backed by this database.
func (s *SQLiteStorage) Data() service.DataStore {
	return dataStore{s: s}
}

type credentialStore struct {
	s *SQLiteStorage
}

func (c credentialStore) Get(ctx context.Context) (string, error) {
	value, _, err := c.s.getSetting(ctx, KeyCredential)
	return value, err
}

func (c credentialStore) Set(ctx context.Context, credential string) error {
	if err := validateString(credential, "credential"); err != nil {
		return err
	}
	return c.s.setSetting(ctx, KeyCredential, credential)
}

func (c credentialStore) Remove(ctx context.Context) error {
	return c.s.deleteSetting(ctx, KeyCredential)
}

type modelStore struct {
	s *SQLiteStorage
}

func (m modelStore) Get(ctx context.Context) (string, error) {
	value, _, err := m.s.getSetting(ctx, KeyModel)
	return value, err
}

func (m modelStore) Set(ctx context.Context, name string) error {
	if !llm.IsGeminiModel(name) {
		return fmt.Errorf("%w: %q", ErrInvalidModel, name)
	}
	return m.s.setSetting(ctx, KeyModel, name)
}

type dataStore struct {
	s *SQLiteStorage
}

// Load returns the stored dataset, or the default dataset when nothing usable is stored.
func (d dataStore) Load(ctx context.Context) (model.Snapshot, error) {
	raw, found, err := d.s.getSetting(ctx, KeyData)
	if err != nil {
		return model.Snapshot{}, err
	}
	if !found {
		return model.DefaultSnapshot(), nil
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		slog.Warn("Stored data is unreadable, using defaults", "error", err)
		return model.DefaultSnapshot(), nil
	}
	if snapshot.BaseCurrency == "" {
		snapshot.BaseCurrency = model.DefaultCurrency
	}
	return snapshot, nil
}

func (d dataStore) Save(ctx context.Context, snapshot model.Snapshot) error {
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}
	return d.s.setSetting(ctx, KeyData, string(raw))
}

// Reset removes the stored dataset. Credentials and model preference are kept.
func (d dataStore) Reset(ctx context.Context) error {
	return d.s.deleteSetting(ctx, KeyData)
}
