package salary

import "context"

// Service defines the salary lifecycle operations. The authenticated user
// comes from the JWT claims in ctx.
type Service interface {
	// SetHourRate assigns an hourly rate to an employee; rates live apart
	// from summaries and survive re-uploads.
	SetHourRate(ctx context.Context, employeeID string, req SetRateRequest) error

	// Confirm snapshots salaries into the confirmed set, upserting by
	// employee id. A single unknown or rate-less employee is an error; in a
	// batch such employees are skipped and reported.
	Confirm(ctx context.Context, req ConfirmRequest) (ConfirmResponse, error)

	// Confirmed lists the in-progress confirmed set.
	Confirmed(ctx context.Context) ([]Record, error)

	// UpdateConfirmed edits one confirmed record by index, recomputing the
	// dependent fields.
	UpdateConfirmed(ctx context.Context, index int, req UpdateConfirmedRequest) (Record, error)

	// DeleteConfirmed removes one confirmed record and clears that
	// employee's hour rate.
	DeleteConfirmed(ctx context.Context, index int) error

	// Finalize merges the confirmed set into the named month bucket, then
	// clears the confirmed set and the active report.
	Finalize(ctx context.Context, req FinalizeRequest) (MonthBucket, error)

	// Unfinalize moves a bucket's records back into the confirmed set
	// (existing confirmed entries win on conflict) and deletes the bucket.
	Unfinalize(ctx context.Context, monthKey string) ([]Record, error)

	// DeleteBucket permanently removes a finalized month. Irreversible.
	DeleteBucket(ctx context.Context, monthKey string) error

	// Finalized lists every finalized month, most recent first.
	Finalized(ctx context.Context) ([]MonthBucket, error)

	// SetPaid replaces the set of employees marked paid for a month key.
	SetPaid(ctx context.Context, monthKey string, req SetPaidRequest) error

	// Paid returns the paid-employee map keyed by month key.
	Paid(ctx context.Context) (map[string][]string, error)
}
