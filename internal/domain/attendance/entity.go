package attendance

import (
	"fmt"
	"time"

	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
	"github.com/shopspring/decimal"
)

// DailyRecord is one attendance entry for one employee on one calendar date.
type DailyRecord struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name,omitempty"`
	Date         string            `json:"date"` // YYYY-MM-DD, local calendar date
	Status       Status            `json:"status"`
	Worked       duration.Duration `json:"worked_hours"`
	PunchCount   int               `json:"punch_count,omitempty"`
	PunchInfo    string            `json:"punches,omitempty"`
}

// EmployeeSummary is one employee's aggregated attendance for the active
// month. For regular employees it may carry the backend's pre-aggregated
// totals until a day record is edited; manual employees are always derived
// from their own daily records.
type EmployeeSummary struct {
	EmployeeID       string            `json:"employee_id"`
	EmployeeName     string            `json:"employee_name"`
	TotalDuration    duration.Duration `json:"total_hours"`
	PresentDays      int               `json:"present_days"`
	AbsentDays       int               `json:"absent_days"`
	AutoAssignedDays int               `json:"auto_assigned_days"`
	IsManual         bool              `json:"is_manual,omitempty"`
}

// Statistics is the global block recomputed from all summary rows.
type Statistics struct {
	TotalHours          decimal.Decimal `json:"total_hours"`
	TotalEmployees      int             `json:"total_employees"`
	TotalRecords        int             `json:"total_records"`
	PresentDays         int             `json:"present_days"`
	AbsentDays          int             `json:"absent_days"`
	AutoAssignedDays    int             `json:"auto_assigned_days"`
	AvgHoursPerEmployee decimal.Decimal `json:"avg_hours_per_employee"`
	AvgPresentDays      decimal.Decimal `json:"avg_present_days"`
}

// Report is the active report document for one processed month. It is
// replaced wholesale on re-upload and cleared when a month is finalized.
type Report struct {
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	DailyReport    []DailyRecord     `json:"daily_report"`
	MonthlySummary []EmployeeSummary `json:"monthly_summary"`
	Statistics     Statistics        `json:"statistics"`
	OutputFile     string            `json:"output_file,omitempty"`
}

// DateKey builds the YYYY-MM-DD map key from local calendar components.
// Never derive the key by string-slicing an ISO timestamp; parsing one under
// a UTC offset can shift the date across midnight.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDateKey validates an incoming YYYY-MM-DD string and renormalizes it
// through local calendar components.
func ParseDateKey(s string) (string, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateKey(t), nil
}
