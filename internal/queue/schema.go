package queue

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// initSchema creates tables and seeds default settings. Both steps are
// idempotent so every Open may run them.
func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for key, value := range defaultSettings {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode default setting %s: %w", key, err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
			key,
			string(encoded),
		); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
