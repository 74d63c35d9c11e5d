package attendance

import "context"

// Service defines the attendance operations exposed to handlers. The
// authenticated user comes from the JWT claims in ctx; every operation is
// isolated to that user's workspace.
type Service interface {
	// SetActiveReport installs a freshly processed report document,
	// replacing the previous one wholesale.
	SetActiveReport(ctx context.Context, report *Report) (ReportResponse, error)

	// ActiveReport returns the active report merged with manual employees
	// and recomputed statistics.
	ActiveReport(ctx context.Context) (ReportResponse, error)

	// ExtraStatistics computes the secondary statistics block over the
	// active report.
	ExtraStatistics(ctx context.Context) (ExtraStatistics, error)

	// UpsertDay replaces or appends one daily record for an employee and
	// re-aggregates that employee plus the global statistics.
	UpsertDay(ctx context.Context, req UpsertDayRequest) (ReportResponse, error)

	// RecordsFor lists an employee's daily records, date ascending.
	RecordsFor(ctx context.Context, employeeID string) ([]DailyRecord, error)

	// AddManualEmployee registers an operator-added employee. The id must be
	// unique across manual and backend-derived employees.
	AddManualEmployee(ctx context.Context, req AddManualEmployeeRequest) (EmployeeSummary, error)

	// RemoveManualEmployee deletes a manual employee and cascades into the
	// confirmed set, hour rates, and paid marks.
	RemoveManualEmployee(ctx context.Context, employeeID string) error
}
