package workspace

import (
	"context"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// Repository is the thin persistence adapter behind the workspace manager.
// Every write is a full-collection replace for one user; there are no
// partial-field patches. Implementations must isolate data by user id.
//
// Writes are best-effort from the caller's point of view: the manager logs
// failures and keeps serving the in-memory state.
type Repository interface {
	// Load assembles the whole workspace for a user. A user with no stored
	// data gets a fresh empty workspace, not an error.
	Load(ctx context.Context, userID string) (*Workspace, error)

	// SaveReport upserts the active report keyed by user, year and month.
	SaveReport(ctx context.Context, userID string, report *attendance.Report) error

	// ClearReports deletes all stored report documents for the user.
	// Finalizing a month goes through here; there is no undo.
	ClearReports(ctx context.Context, userID string) error

	// SaveManualEmployees replaces the manual employee rows together with
	// their daily records.
	SaveManualEmployees(ctx context.Context, userID string, employees []attendance.EmployeeSummary, records map[string][]attendance.DailyRecord) error

	// SaveHourRates replaces the hourly-rate map.
	SaveHourRates(ctx context.Context, userID string, rates map[string]decimal.Decimal) error

	// SaveConfirmed replaces the confirmed salary set.
	SaveConfirmed(ctx context.Context, userID string, records []salary.Record) error

	// SaveFinalized replaces the finalized month buckets.
	SaveFinalized(ctx context.Context, userID string, buckets map[string]salary.MonthBucket) error

	// SavePaid replaces the paid-employee map.
	SavePaid(ctx context.Context, userID string, paid map[string][]string) error
}
