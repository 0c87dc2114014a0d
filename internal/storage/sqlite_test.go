package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spendwise/internal/model"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStorage_RejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.Migrate(context.Background()))

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestCredentialStore(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	creds := store.Credentials()

	got, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, creds.Set(ctx, "AIzaFirst"))
	require.NoError(t, creds.Set(ctx, "sk-second"))
	got, err = creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-second", got)

	require.ErrorIs(t, creds.Set(ctx, ""), ErrEmptyString)

	require.NoError(t, creds.Remove(ctx))
	got, err = creds.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Removing twice is fine.
	require.NoError(t, creds.Remove(ctx))
}

func TestModelStore(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	models := store.Models()

	got, err := models.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, models.Set(ctx, "gemini-2.0-flash"))
	got, err = models.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", got)

	err = models.Set(ctx, "gpt-4o-mini")
	require.ErrorIs(t, err, ErrInvalidModel)

	got, err = models.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", got)
}

func TestDataStore_LoadDefaults(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	snapshot, err := store.Data().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSnapshot(), snapshot)
}

func TestDataStore_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	data := store.Data()

	snapshot := model.DefaultSnapshot()
	snapshot.Salary = 6200
	snapshot.BaseCurrency = "EUR"
	snapshot.AddTransaction(model.Transaction{
		Date:     time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Amount:   42.5,
		Category: model.CategoryFood,
		Note:     "Groceries",
		Type:     model.TransactionExpense,
	})
	require.NoError(t, data.Save(ctx, snapshot))

	loaded, err := data.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6200.0, loaded.Salary)
	assert.Equal(t, "EUR", loaded.BaseCurrency)
	require.Len(t, loaded.Transactions, 1)
	assert.Equal(t, "Groceries", loaded.Transactions[0].Note)
	assert.Equal(t, "EUR", loaded.Transactions[0].Currency)
	assert.True(t, loaded.Transactions[0].Date.Equal(snapshot.Transactions[0].Date))
}

func TestDataStore_SaveValidates(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		mutate func(*model.Snapshot)
		name   string
	}{
		{name: "negative salary", mutate: func(s *model.Snapshot) { s.Salary = -1 }},
		{name: "blank budget category", mutate: func(s *model.Snapshot) { s.Budgets[0].Category = " " }},
		{name: "negative budget", mutate: func(s *model.Snapshot) { s.Budgets[0].PlannedAmount = -5 }},
		{name: "bad transaction type", mutate: func(s *model.Snapshot) {
			s.Transactions = []model.Transaction{{ID: "t1", Amount: 1, Type: "transfer"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := model.DefaultSnapshot()
			tt.mutate(&snapshot)
			require.ErrorIs(t, store.Data().Save(ctx, snapshot), ErrInvalidSnapshot)
		})
	}
}

func TestDataStore_CorruptDataFallsBack(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.setSetting(ctx, KeyData, "{not json"))

	snapshot, err := store.Data().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSnapshot(), snapshot)
}

func TestDataStore_ResetKeepsCredentials(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Credentials().Set(ctx, "AIzaKeep"))
	require.NoError(t, store.Models().Set(ctx, "gemini-1.5-flash"))

	snapshot := model.DefaultSnapshot()
	snapshot.Salary = 1
	require.NoError(t, store.Data().Save(ctx, snapshot))
	require.NoError(t, store.Data().Reset(ctx))

	loaded, err := store.Data().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, loaded.Salary)

	cred, err := store.Credentials().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaKeep", cred)

	name, err := store.Models().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", name)
}

func TestBackup(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Credentials().Set(ctx, "AIzaBackup"))

	dir := t.TempDir()
	info, err := store.Backup(ctx, dir, "reset")
	require.NoError(t, err)

	_, statErr := os.Stat(info.Path)
	require.NoError(t, statErr)

	copied, err := NewSQLiteStorage(info.Path)
	require.NoError(t, err)
	defer func() { _ = copied.Close() }()
	cred, err := copied.Credentials().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaBackup", cred)

	backups, err := store.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, info.ID, backups[0].ID)
	assert.Equal(t, "reset", backups[0].Reason)
}
