package queue

import (
	"strings"
	"time"
)

// State represents the lifecycle of a job.
type State string

const (
	StatePending    State = "pending"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateDead       State = "dead"
)

var allStates = []State{
	StatePending,
	StateProcessing,
	StateCompleted,
	StateFailed,
	StateDead,
}

var stateSet = func() map[State]struct{} {
	set := make(map[State]struct{}, len(allStates))
	for _, state := range allStates {
		set[state] = struct{}{}
	}
	return set
}()

// AllStates returns the ordered list of known states.
func AllStates() []State {
	cp := make([]State, len(allStates))
	copy(cp, allStates)
	return cp
}

// ParseState converts a string into a known State.
func ParseState(value string) (State, bool) {
	normalized := State(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := stateSet[normalized]
	return normalized, ok
}

// Job represents one persisted work item.
type Job struct {
	ID          string
	Command     string
	State       State
	Attempts    int
	MaxRetries  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AvailableAt int64
	LastError   string
	Worker      string
	Output      string
}

// IsTerminal reports whether the job is in a state workers will never pick up
// again without operator intervention.
func (j Job) IsTerminal() bool {
	return j.State == StateCompleted || j.State == StateDead
}

// Submission describes a job to enqueue. ID and MaxRetries are optional;
// an empty ID gets a generated UUID and a nil MaxRetries falls back to the
// max_retries setting.
type Submission struct {
	ID         string
	Command    string
	MaxRetries *int
}
