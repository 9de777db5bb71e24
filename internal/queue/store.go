package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"queuectl/internal/config"
)

// Store manages job persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the queue database. The connection uses
// BEGIN IMMEDIATE for transactions so concurrent claimers are strictly
// ordered by SQLite's write lock.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "queue.db")
	db, err := sql.Open("sqlite", dbPath+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the queue database file.
func (s *Store) Path() string {
	return s.path
}

// Enqueue validates and inserts a new pending job. An empty Submission.ID
// gets a generated UUID; a nil MaxRetries defaults from the max_retries
// setting.
func (s *Store) Enqueue(ctx context.Context, sub Submission) (*Job, error) {
	command := strings.TrimSpace(sub.Command)
	if command == "" {
		return nil, fmt.Errorf("%w: command is required", ErrInvalidJob)
	}

	id := strings.TrimSpace(sub.ID)
	if id == "" {
		id = uuid.NewString()
	}

	maxRetries := s.IntSetting(ctx, SettingMaxRetries, defaultMaxRetries)
	if sub.MaxRetries != nil {
		maxRetries = *sub.MaxRetries
	}
	if maxRetries < 0 {
		return nil, fmt.Errorf("%w: max_retries must not be negative", ErrInvalidJob)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO jobs (id, command, state, attempts, max_retries, created_at, updated_at, available_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		command,
		StatePending,
		0,
		maxRetries,
		timestamp,
		timestamp,
		now.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a job by identifier. It returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// List returns jobs filtered by state set (or all jobs when no state is
// provided), ordered by creation time.
func (s *Store) List(ctx context.Context, states ...State) ([]*Job, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	orderClause := ` ORDER BY created_at`

	if len(states) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(states))
		args := make([]any, len(states))
		for i, state := range states {
			args[i] = state
		}
		query := baseQuery + ` WHERE state IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Stats returns a count of jobs grouped by state.
func (s *Store) Stats(ctx context.Context) (map[State]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT state, COUNT(1) FROM jobs GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("queue stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[State]int)
	for rows.Next() {
		var state State
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		stats[state] = count
	}
	return stats, rows.Err()
}

const jobColumns = "id, command, state, attempts, max_retries, created_at, updated_at, available_at, last_error, worker, output"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id          string
		command     string
		stateStr    string
		attempts    int
		maxRetries  int
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
		availableAt sql.NullInt64
		lastError   sql.NullString
		worker      sql.NullString
		output      sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&command,
		&stateStr,
		&attempts,
		&maxRetries,
		&createdRaw,
		&updatedRaw,
		&availableAt,
		&lastError,
		&worker,
		&output,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:          id,
		Command:     command,
		State:       State(stateStr),
		Attempts:    attempts,
		MaxRetries:  maxRetries,
		AvailableAt: availableAt.Int64,
		LastError:   lastError.String,
		Worker:      worker.String,
		Output:      output.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		job.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		job.UpdatedAt = updated
	}
	return job, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isContention classifies transient SQLite lock errors. Claim treats these
// as "nothing claimable right now" so the caller's poll loop self-heals.
func isContention(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "busy")
}
