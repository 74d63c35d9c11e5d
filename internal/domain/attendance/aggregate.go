package attendance

import (
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
	"github.com/shopspring/decimal"
)

// ClassifyDay assigns a record to exactly one day-count bucket. Rules are
// evaluated in priority order; the first match wins:
//
//  1. work-from-home counts as auto-assigned (visually distinct upstream)
//  2. the assigned family (admin-selected, system-assigned, punch error)
//     counts as auto-assigned
//  3. absent, or zero worked time outside the assigned family, counts absent
//  4. present, or any positive worked time, counts present
//
// A status outside the vocabulary with positive worked time but no present
// marker still lands in present via rule 4, so in practice nothing stays
// uncounted; the fall-through exists because the counters are not guaranteed
// to sum to the record count.
func ClassifyDay(status Status, worked duration.Duration) DayClass {
	switch {
	case status == StatusWorkFromHome:
		return ClassAutoAssigned
	case isAssignedFamily(status):
		return ClassAutoAssigned
	case status == StatusAbsent, worked == 0:
		return ClassAbsent
	case status == StatusPresent, worked > 0:
		return ClassPresent
	default:
		return ClassUncounted
	}
}

// Aggregate folds an employee's daily records into a summary row. Counts are
// mutually exclusive per day; the total is always the sum of worked
// durations.
func Aggregate(records []DailyRecord) (total duration.Duration, present, absent, auto int) {
	for _, rec := range records {
		total = duration.Add(total, rec.Worked)
		switch ClassifyDay(rec.Status, rec.Worked) {
		case ClassPresent:
			present++
		case ClassAbsent:
			absent++
		case ClassAutoAssigned:
			auto++
		}
	}
	return total, present, absent, auto
}

// Summarize rebuilds a summary row for one employee from its records,
// keeping identity fields intact.
func Summarize(employeeID, employeeName string, isManual bool, records []DailyRecord) EmployeeSummary {
	total, present, absent, auto := Aggregate(records)
	return EmployeeSummary{
		EmployeeID:       employeeID,
		EmployeeName:     employeeName,
		TotalDuration:    total,
		PresentDays:      present,
		AbsentDays:       absent,
		AutoAssignedDays: auto,
		IsManual:         isManual,
	}
}

// ComputeStatistics recomputes the global block from every summary row.
// totalRecords is the count of daily records behind those rows.
func ComputeStatistics(summaries []EmployeeSummary, totalRecords int) Statistics {
	stats := Statistics{
		TotalHours:          decimal.Zero,
		TotalRecords:        totalRecords,
		TotalEmployees:      len(summaries),
		AvgHoursPerEmployee: decimal.Zero,
		AvgPresentDays:      decimal.Zero,
	}

	for _, s := range summaries {
		stats.TotalHours = stats.TotalHours.Add(s.TotalDuration.DecimalHours())
		stats.PresentDays += s.PresentDays
		stats.AbsentDays += s.AbsentDays
		stats.AutoAssignedDays += s.AutoAssignedDays
	}

	if len(summaries) > 0 {
		n := decimal.NewFromInt(int64(len(summaries)))
		stats.AvgHoursPerEmployee = stats.TotalHours.Div(n)
		stats.AvgPresentDays = decimal.NewFromInt(int64(stats.PresentDays)).Div(n)
	}

	return stats
}
