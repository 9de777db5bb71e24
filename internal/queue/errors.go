package queue

import "errors"

// ErrInvalidJob indicates a submission with a missing or malformed command.
// The job is never persisted.
var ErrInvalidJob = errors.New("invalid job")

// ErrDuplicateID indicates a caller-supplied job id that already exists.
// The existing row is left untouched.
var ErrDuplicateID = errors.New("duplicate job id")

// ErrNotFound indicates the target job is absent or not in the required state.
var ErrNotFound = errors.New("job not found")

// ErrInvalidSetting indicates a non-numeric value supplied for a numeric
// settings key. The stored value is unchanged.
var ErrInvalidSetting = errors.New("invalid setting value")
