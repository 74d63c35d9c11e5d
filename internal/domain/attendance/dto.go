package attendance

import (
	"strconv"
	"strings"

	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// FlexibleID accepts an employee id as either a JSON string or a JSON
// number. Source documents mix the two; everything internal compares ids by
// their normalized string form only.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*f = FlexibleID(strings.TrimSpace(unquoted))
		return nil
	}
	if s == "null" {
		*f = ""
		return nil
	}
	// Numbers pass through as their literal text, trimming a float suffix
	// the way "5.0" and 5 must both key as "5".
	if fv, err := strconv.ParseFloat(s, 64); err == nil && fv == float64(int64(fv)) {
		*f = FlexibleID(strconv.FormatInt(int64(fv), 10))
		return nil
	}
	*f = FlexibleID(s)
	return nil
}

func (f FlexibleID) String() string { return string(f) }

// UpsertDayRequest edits one daily record via the calendar UI.
type UpsertDayRequest struct {
	EmployeeID FlexibleID `json:"employee_id"`
	Date       string     `json:"date"`
	Status     string     `json:"status"`
	Worked     string     `json:"worked_hours"`
	PunchInfo  string     `json:"punches,omitempty"`
}

func (r UpsertDayRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID.String()) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddManualEmployeeRequest registers an operator-added employee.
type AddManualEmployeeRequest struct {
	EmployeeID   FlexibleID       `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	HourRate     *decimal.Decimal `json:"hour_rate,omitempty"`
}

func (r AddManualEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID.String()) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{Field: "employee_name", Message: "is required"})
	}
	if r.HourRate != nil && r.HourRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hour_rate", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReportResponse is the active report merged with manual employees.
type ReportResponse struct {
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	DailyReport    []DailyRecord     `json:"daily_report"`
	MonthlySummary []EmployeeSummary `json:"monthly_summary"`
	Statistics     Statistics        `json:"statistics"`
	OutputFile     string            `json:"output_file,omitempty"`
}

// ExtraStatistics is the deeper statistics block behind the dashboard view.
type ExtraStatistics struct {
	TopPerformer      *EmployeeSummary  `json:"top_performer,omitempty"`
	AttendanceRate    decimal.Decimal   `json:"attendance_rate"`
	HoursDistribution HoursDistribution `json:"hours_distribution"`
}

type HoursDistribution struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
}
