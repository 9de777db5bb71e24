// Package config loads, validates, and normalizes the queuectl configuration
// file.
//
// The TOML file covers process-level concerns: directories, worker pool
// sizing, poll cadence, and log output. Queue behavior that operators tune
// live (max_retries, backoff_base) deliberately lives in the database
// settings table instead, managed through `queuectl config set`.
package config
