package salary

import "errors"

var (
	ErrNothingToFinalize    = errors.New("no confirmed salaries to finalize")
	ErrBucketNotFound       = errors.New("finalized month not found")
	ErrConfirmedOutOfRange  = errors.New("confirmed salary index out of range")
	ErrNoSummaryForEmployee = errors.New("employee has no attendance summary")
	ErrNoRateSet            = errors.New("employee has no hourly rate set")
	ErrInvalidMonthKey      = errors.New("month key is required")
	ErrInvalidRate          = errors.New("hourly rate must not be negative")
)
