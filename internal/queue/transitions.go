package queue

import (
	"context"
	"fmt"
	"time"
)

// lastErrorOutputLimit bounds how much captured output is persisted in
// last_error. Truncation happens before the summary is composed so the row
// size stays bounded no matter what the command printed.
const lastErrorOutputLimit = 500

// MarkCompleted records a successful run: the job becomes completed with its
// captured output, and the worker assignment is released.
func (s *Store) MarkCompleted(ctx context.Context, id, output string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET state = ?, output = ?, updated_at = ?, worker = NULL
         WHERE id = ?`,
		StateCompleted,
		output,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark job completed: %w", err)
	}
	return nil
}

// MarkFailed records a failed run. The attempt counter increments; while it
// stays within the retry budget the job returns to failed with an
// exponentially delayed available_at, otherwise it dead-letters. backoff_base
// is read from settings at failure time so operators can tune it live. The
// resulting state is returned.
func (s *Store) MarkFailed(ctx context.Context, job *Job, exitCode int, output string) (State, error) {
	attempts := job.Attempts + 1
	lastError := failureSummary(exitCode, output)
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	if attempts > job.MaxRetries {
		_, err := s.db.ExecContext(
			ctx,
			`UPDATE jobs
             SET state = ?, attempts = ?, last_error = ?, updated_at = ?, worker = NULL
             WHERE id = ?`,
			StateDead,
			attempts,
			lastError,
			timestamp,
			job.ID,
		)
		if err != nil {
			return "", fmt.Errorf("mark job dead: %w", err)
		}
		return StateDead, nil
	}

	base := s.IntSetting(ctx, SettingBackoffBase, defaultBackoffBase)
	availableAt := now.Unix() + BackoffDelay(base, attempts)

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET state = ?, attempts = ?, last_error = ?, updated_at = ?, available_at = ?, worker = NULL
         WHERE id = ?`,
		StateFailed,
		attempts,
		lastError,
		timestamp,
		availableAt,
		job.ID,
	)
	if err != nil {
		return "", fmt.Errorf("mark job failed: %w", err)
	}
	return StateFailed, nil
}

// BackoffDelay returns base^attempts in seconds, using integer
// exponentiation. attempts is the post-increment count, so the first retry of
// a job waits base^1 seconds.
func BackoffDelay(base, attempts int) int64 {
	delay := int64(1)
	for i := 0; i < attempts; i++ {
		delay *= int64(base)
	}
	return delay
}

func failureSummary(exitCode int, output string) string {
	if len(output) > lastErrorOutputLimit {
		output = output[:lastErrorOutputLimit]
	}
	return fmt.Sprintf("exit %d: %s", exitCode, output)
}
