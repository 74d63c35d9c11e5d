package attendance

import "errors"

var (
	ErrNoActiveReport     = errors.New("no active attendance report")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDuplicateEmployee  = errors.New("employee id already exists")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidDuration    = errors.New("invalid worked duration")
	ErrNotManualEmployee  = errors.New("employee is not operator-added")
	ErrEmployeeIDRequired = errors.New("employee id is required")
)
