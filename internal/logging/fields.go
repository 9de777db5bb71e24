package logging

// Standardized attribute keys shared across components.
const (
	FieldComponent = "component"
	FieldJobID     = "job_id"
	FieldWorker    = "worker"
	FieldState     = "state"
	FieldAttempts  = "attempts"
	FieldExitCode  = "exit_code"
)
