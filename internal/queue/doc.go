// Package queue persists background jobs in SQLite and owns their lifecycle.
//
// The Store manages the database connection, schema initialization, and the
// job state machine: enqueue, claim, completion, failure with exponential
// backoff, dead-lettering, and requeue. All mutual exclusion between workers
// is delegated to SQLite's exclusive write transactions; the claim protocol
// never relies on in-process locking, so multiple worker processes can share
// one database safely.
//
// Operator-tunable queue behavior (max_retries, backoff_base) lives in the
// settings table rather than the process configuration so it can be changed
// while workers are running.
//
// Treat this package as the single source of truth for queue semantics; when
// you add new states or columns, update schema.sql alongside the model.
package queue
