package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BackupInfo describes a database copy taken before a destructive operation.
type BackupInfo struct {
	CreatedAt time.Time
	ID        string
	Path      string
	Reason    string
}

// Backup copies the database into dir and records the copy.
func (s *SQLiteStorage) Backup(ctx context.Context, dir, reason string) (*BackupInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve backup directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	info := &BackupInfo{
		ID:        uuid.NewString(),
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	info.Path = filepath.Join(absDir, fmt.Sprintf("spendwise-%s-%s.db", info.CreatedAt.Format("20060102-150405"), info.ID[:8]))

	if err := s.vacuumInto(ctx, info.Path); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO backups (id, path, reason, created_at) VALUES (?, ?, ?, ?)`,
		info.ID, info.Path, info.Reason, info.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record backup: %w", err)
	}

	slog.Info("Created backup", "path", info.Path, "reason", reason)
	return info, nil
}

// ListBackups returns recorded backups, newest first.
func (s *SQLiteStorage) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, path, COALESCE(reason, ''), created_at FROM backups ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var backups []BackupInfo
	for rows.Next() {
		var b BackupInfo
		if err := rows.Scan(&b.ID, &b.Path, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan backup: %w", err)
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

func (s *SQLiteStorage) vacuumInto(ctx context.Context, destPath string) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// VACUUM INTO takes no bind parameters, so the path is inlined.
	if strings.ContainsAny(destPath, `'";`) || !filepath.IsAbs(destPath) || strings.Contains(destPath, "..") {
		return fmt.Errorf("invalid backup path: %s", destPath)
	}
	// #nosec G201 - destPath is validated above
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", destPath)); err != nil {
		return fmt.Errorf("failed to copy database: %w", err)
	}
	return nil
}
