package clock

import "errors"

// Every rejection of a clock action is one of these conditions. They
// are expected, recoverable-by-caller results, never process-fatal;
// the HTTP layer maps them to status codes.
var (
	ErrNotConfigured  = errors.New("user is not configured for attendance tracking")
	ErrNonWorkingDay  = errors.New("today is not a working day for this user")
	ErrOutsideWindow  = errors.New("clock action outside the permitted time window")
	ErrPastEndOfDay   = errors.New("clock action after scheduled end of day")
	ErrAlreadyOpen    = errors.New("an open clock session already exists")
	ErrNoOpenSession  = errors.New("no open clock session to close")
	ErrRecordNotFound = errors.New("clock record not found")
)
