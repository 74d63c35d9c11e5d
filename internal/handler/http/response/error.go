package response

import (
	"errors"
	"net/http"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/blackhole-hr/attendance-backend-go/internal/service/processor"
	workspaceService "github.com/blackhole-hr/attendance-backend-go/internal/service/workspace"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, workspaceService.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoActiveReport):
		NotFound(w, "No active report")
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrDuplicateEmployee):
		Conflict(w, "Employee id already exists")
	case errors.Is(err, attendance.ErrNotManualEmployee):
		BadRequest(w, "Employee is not manually added", nil)
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Date must be YYYY-MM-DD", nil)
	case errors.Is(err, attendance.ErrInvalidDuration):
		BadRequest(w, "Worked hours must be H:MM", nil)
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		BadRequest(w, "Employee id is required", nil)

	// Salary domain errors
	case errors.Is(err, salary.ErrNoSummaryForEmployee):
		NotFound(w, "No attendance summary for employee")
	case errors.Is(err, salary.ErrNoRateSet):
		BadRequest(w, "No hourly rate set for employee", nil)
	case errors.Is(err, salary.ErrInvalidRate):
		BadRequest(w, "Hourly rate must not be negative", nil)
	case errors.Is(err, salary.ErrNothingToFinalize):
		BadRequest(w, "No confirmed salaries to finalize", nil)
	case errors.Is(err, salary.ErrConfirmedOutOfRange):
		NotFound(w, "Confirmed salary entry not found")
	case errors.Is(err, salary.ErrBucketNotFound):
		NotFound(w, "Finalized month not found")
	case errors.Is(err, salary.ErrInvalidMonthKey):
		BadRequest(w, "Month key is required", nil)

	// Processor errors
	case errors.Is(err, processor.ErrEmptySheet):
		BadRequest(w, "Spreadsheet has no usable rows", nil)
	case errors.Is(err, processor.ErrNoEmployees):
		BadRequest(w, "No employee blocks found in spreadsheet", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
