package salary

import (
	"strings"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SetRateRequest assigns an hourly rate to one employee.
type SetRateRequest struct {
	HourRate decimal.Decimal `json:"hour_rate"`
}

func (r SetRateRequest) Validate() error {
	if r.HourRate.IsNegative() {
		return ErrInvalidRate
	}
	return nil
}

// ConfirmRequest confirms one or more employees in a single call. Batch
// confirmation silently skips employees without a positive rate or without a
// summary row.
type ConfirmRequest struct {
	EmployeeIDs []attendance.FlexibleID `json:"employee_ids"`
}

func (r ConfirmRequest) Validate() error {
	if len(r.EmployeeIDs) == 0 {
		return validator.ValidationErrors{{Field: "employee_ids", Message: "at least one id is required"}}
	}
	return nil
}

// ConfirmResponse reports what a confirm call actually snapshotted.
type ConfirmResponse struct {
	Confirmed []Record `json:"confirmed"`
	Skipped   []string `json:"skipped,omitempty"`
}

// UpdateConfirmedRequest edits a confirmed record in place. The three fields
// are mutually dependent; whichever is present drives the recompute, and an
// absent field keeps its previous value.
type UpdateConfirmedRequest struct {
	TotalDuration *string          `json:"total_hours,omitempty"`
	HourRate      *decimal.Decimal `json:"hour_rate,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
}

// FinalizeRequest moves the confirmed set into a named month bucket.
type FinalizeRequest struct {
	MonthKey string `json:"month_key"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

// Validate trims the key before checking it, so " June 2024 " and
// "June 2024" address the same bucket.
func (r *FinalizeRequest) Validate() error {
	r.MonthKey = strings.TrimSpace(r.MonthKey)
	if !validator.IsValidMonthKey(r.MonthKey) {
		return ErrInvalidMonthKey
	}
	return nil
}

// SetPaidRequest replaces the paid-employee id set for one month key.
type SetPaidRequest struct {
	EmployeeIDs []attendance.FlexibleID `json:"employee_ids"`
}
