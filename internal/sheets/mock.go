package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/spendwise/internal/model"
)

// MockWriter records exports instead of talking to Google.
type MockWriter struct {
	WriteFunc func(ctx context.Context, snapshot model.Snapshot) (string, error)
	Snapshots []model.Snapshot
	mu        sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write records snapshot and delegates to WriteFunc when set.
func (m *MockWriter) Write(ctx context.Context, snapshot model.Snapshot) (string, error) {
	m.mu.Lock()
	m.Snapshots = append(m.Snapshots, snapshot)
	fn := m.WriteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, snapshot)
	}
	return "mock-spreadsheet", nil
}

// Calls returns how many exports were requested.
func (m *MockWriter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Snapshots)
}
