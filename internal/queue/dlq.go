package queue

import (
	"context"
	"fmt"
	"time"
)

// DeadLetters returns dead jobs ordered by creation time.
func (s *Store) DeadLetters(ctx context.Context) ([]*Job, error) {
	return s.List(ctx, StateDead)
}

// RequeueDead resets a dead job to pending with a fresh retry budget:
// attempts back to zero, last_error cleared, available_at now. The update is
// guarded on state so a job that is not currently dead reports ErrNotFound
// without mutation.
func (s *Store) RequeueDead(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET state = ?, attempts = 0, last_error = NULL, available_at = ?, updated_at = ?
         WHERE id = ? AND state = ?`,
		StatePending,
		now.Unix(),
		now.Format(time.RFC3339Nano),
		id,
		StateDead,
	)
	if err != nil {
		return fmt.Errorf("requeue dead job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("requeue rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s is not in the dead-letter queue", ErrNotFound, id)
	}
	return nil
}
