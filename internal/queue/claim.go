package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Claim atomically selects the oldest claimable job and marks it owned by
// workerID. It returns (nil, nil) when nothing is claimable, when another
// claimer won the race for the selected row, or when the database reports
// transient lock contention.
//
// The whole protocol runs inside one exclusive write transaction (the
// connection is opened with _txlock=immediate), which is the only mutual
// exclusion between workers.
func (s *Store) Claim(ctx context.Context, workerID string) (*Job, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		if isContention(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("begin claim tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(
		ctx,
		`SELECT id, command, attempts, max_retries
         FROM jobs
         WHERE state IN (?, ?) AND available_at <= ?
         ORDER BY created_at
         LIMIT 1`,
		StatePending,
		StateFailed,
		now.Unix(),
	)

	var job Job
	err = row.Scan(&job.ID, &job.Command, &job.Attempts, &job.MaxRetries)
	if errors.Is(err, sql.ErrNoRows) {
		if err := tx.Commit(); err != nil {
			return nil, nil
		}
		committed = true
		return nil, nil
	}
	if err != nil {
		if isContention(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select claimable job: %w", err)
	}

	// The state guard re-checks what was just read; under relaxed isolation
	// a racing claimer could have taken the row already.
	res, err := tx.ExecContext(
		ctx,
		`UPDATE jobs
         SET state = ?, worker = ?, updated_at = ?
         WHERE id = ? AND state IN (?, ?)`,
		StateProcessing,
		workerID,
		now.Format(time.RFC3339Nano),
		job.ID,
		StatePending,
		StateFailed,
	)
	if err != nil {
		if isContention(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("mark job processing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("claim rows affected: %w", err)
	}
	if affected == 0 {
		// Lost the race. Report "nothing claimable" rather than retrying the
		// same row, so racing workers cannot starve each other.
		if err := tx.Commit(); err != nil {
			return nil, nil
		}
		committed = true
		return nil, nil
	}

	if err := tx.Commit(); err != nil {
		if isContention(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("commit claim: %w", err)
	}
	committed = true

	job.State = StateProcessing
	job.Worker = workerID
	job.UpdatedAt = now
	return &job, nil
}
