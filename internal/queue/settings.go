package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Settings keys with defined semantics. The table is extensible; unknown
// keys are stored as strings.
const (
	SettingMaxRetries  = "max_retries"
	SettingBackoffBase = "backoff_base"
)

const (
	defaultMaxRetries  = 3
	defaultBackoffBase = 2
)

var defaultSettings = map[string]int{
	SettingMaxRetries:  defaultMaxRetries,
	SettingBackoffBase: defaultBackoffBase,
}

var numericSettings = map[string]struct{}{
	SettingMaxRetries:  {},
	SettingBackoffBase: {},
}

// Setting returns the decoded value for a settings key. ok is false when the
// key is absent.
func (s *Store) Setting(ctx context.Context, key string) (value any, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read setting %s: %w", key, err)
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return decoded, true, nil
}

// IntSetting returns an integer setting, falling back when the key is
// absent or unreadable. Lookup failures are treated as the fallback so
// transitions never hard-fail on settings reads.
func (s *Store) IntSetting(ctx context.Context, key string, fallback int) int {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		return fallback
	}
	var value int
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fallback
	}
	return value
}

// SetSetting stores a settings value. Numeric keys reject non-integer input
// with ErrInvalidSetting; other keys are stored as strings. Values are
// JSON-encoded in the table.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	var encoded []byte
	if _, numeric := numericSettings[key]; numeric {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s requires an integer, got %q", ErrInvalidSetting, key, value)
		}
		encoded, err = json.Marshal(parsed)
		if err != nil {
			return fmt.Errorf("encode setting %s: %w", key, err)
		}
	} else {
		var err error
		encoded, err = json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode setting %s: %w", key, err)
		}
	}

	if _, err := s.db.ExecContext(
		ctx,
		`REPLACE INTO settings (key, value) VALUES (?, ?)`,
		key,
		string(encoded),
	); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

// AllSettings returns every settings entry with values rendered for display.
func (s *Store) AllSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			settings[key] = raw
			continue
		}
		settings[key] = fmt.Sprint(decoded)
	}
	return settings, rows.Err()
}
