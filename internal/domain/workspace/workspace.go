// Package workspace holds one user's entire application state: the active
// report document plus the operator-maintained collections around it. All
// mutation goes through the workspace manager, which republishes whole
// collections; nothing aliases into these maps from outside.
package workspace

import (
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

type Workspace struct {
	// Report is the active report document, nil when no upload has been
	// processed (or after finalize cleared it).
	Report *attendance.Report

	// ManualEmployees are operator-added summary rows; they survive
	// re-uploads until explicitly deleted.
	ManualEmployees []attendance.EmployeeSummary

	// ManualDailyRecords maps a manual employee id to its daily records.
	ManualDailyRecords map[string][]attendance.DailyRecord

	// HourRates maps employee id to operator-entered hourly rate.
	HourRates map[string]decimal.Decimal

	// Confirmed is the editable set of salary snapshots not yet archived.
	Confirmed []salary.Record

	// Finalized maps month key to its archived bucket.
	Finalized map[string]salary.MonthBucket

	// Paid maps month key to the employee ids marked paid for that month.
	Paid map[string][]string
}

func New() *Workspace {
	return &Workspace{
		ManualDailyRecords: make(map[string][]attendance.DailyRecord),
		HourRates:          make(map[string]decimal.Decimal),
		Finalized:          make(map[string]salary.MonthBucket),
		Paid:               make(map[string][]string),
	}
}

// HasEmployee reports whether the id exists among backend-derived or manual
// employees.
func (w *Workspace) HasEmployee(employeeID string) bool {
	if w.Report != nil {
		for _, s := range w.Report.MonthlySummary {
			if s.EmployeeID == employeeID {
				return true
			}
		}
	}
	for _, s := range w.ManualEmployees {
		if s.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// SummaryFor finds the summary row for an employee across both populations.
func (w *Workspace) SummaryFor(employeeID string) (attendance.EmployeeSummary, bool) {
	if w.Report != nil {
		for _, s := range w.Report.MonthlySummary {
			if s.EmployeeID == employeeID {
				return s, true
			}
		}
	}
	for _, s := range w.ManualEmployees {
		if s.EmployeeID == employeeID {
			return s, true
		}
	}
	return attendance.EmployeeSummary{}, false
}
