// Package memory is the no-database workspace store. It backs tests and the
// STORE_TYPE=memory mode, keeping every collection per user behind a mutex.
package memory

import (
	"context"
	"sync"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/workspace"
	"github.com/shopspring/decimal"
)

type WorkspaceRepository struct {
	mu     sync.Mutex
	states map[string]*workspace.Workspace
}

func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{states: make(map[string]*workspace.Workspace)}
}

func (r *WorkspaceRepository) Load(_ context.Context, userID string) (*workspace.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.states[userID]
	if !ok {
		return workspace.New(), nil
	}
	return cloneWorkspace(stored), nil
}

func (r *WorkspaceRepository) SaveReport(_ context.Context, userID string, report *attendance.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws := r.stateFor(userID)
	if report == nil {
		ws.Report = nil
		return nil
	}
	clone := *report
	clone.DailyReport = append([]attendance.DailyRecord(nil), report.DailyReport...)
	clone.MonthlySummary = append([]attendance.EmployeeSummary(nil), report.MonthlySummary...)
	ws.Report = &clone
	return nil
}

func (r *WorkspaceRepository) ClearReports(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stateFor(userID).Report = nil
	return nil
}

func (r *WorkspaceRepository) SaveManualEmployees(_ context.Context, userID string, employees []attendance.EmployeeSummary, records map[string][]attendance.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws := r.stateFor(userID)
	ws.ManualEmployees = append([]attendance.EmployeeSummary(nil), employees...)
	ws.ManualDailyRecords = make(map[string][]attendance.DailyRecord, len(records))
	for id, recs := range records {
		ws.ManualDailyRecords[id] = append([]attendance.DailyRecord(nil), recs...)
	}
	return nil
}

func (r *WorkspaceRepository) SaveHourRates(_ context.Context, userID string, rates map[string]decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws := r.stateFor(userID)
	ws.HourRates = make(map[string]decimal.Decimal, len(rates))
	for id, rate := range rates {
		ws.HourRates[id] = rate
	}
	return nil
}

func (r *WorkspaceRepository) SaveConfirmed(_ context.Context, userID string, confirmed []salary.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stateFor(userID).Confirmed = append([]salary.Record(nil), confirmed...)
	return nil
}

func (r *WorkspaceRepository) SaveFinalized(_ context.Context, userID string, buckets map[string]salary.MonthBucket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws := r.stateFor(userID)
	ws.Finalized = make(map[string]salary.MonthBucket, len(buckets))
	for key, bucket := range buckets {
		bucket.Employees = append([]salary.Record(nil), bucket.Employees...)
		ws.Finalized[key] = bucket
	}
	return nil
}

func (r *WorkspaceRepository) SavePaid(_ context.Context, userID string, paid map[string][]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws := r.stateFor(userID)
	ws.Paid = make(map[string][]string, len(paid))
	for key, ids := range paid {
		ws.Paid[key] = append([]string(nil), ids...)
	}
	return nil
}

func (r *WorkspaceRepository) stateFor(userID string) *workspace.Workspace {
	ws, ok := r.states[userID]
	if !ok {
		ws = workspace.New()
		r.states[userID] = ws
	}
	return ws
}

func cloneWorkspace(src *workspace.Workspace) *workspace.Workspace {
	dst := workspace.New()
	if src.Report != nil {
		report := *src.Report
		report.DailyReport = append([]attendance.DailyRecord(nil), src.Report.DailyReport...)
		report.MonthlySummary = append([]attendance.EmployeeSummary(nil), src.Report.MonthlySummary...)
		dst.Report = &report
	}
	dst.ManualEmployees = append([]attendance.EmployeeSummary(nil), src.ManualEmployees...)
	for id, recs := range src.ManualDailyRecords {
		dst.ManualDailyRecords[id] = append([]attendance.DailyRecord(nil), recs...)
	}
	for id, rate := range src.HourRates {
		dst.HourRates[id] = rate
	}
	dst.Confirmed = append([]salary.Record(nil), src.Confirmed...)
	for key, bucket := range src.Finalized {
		bucket.Employees = append([]salary.Record(nil), bucket.Employees...)
		dst.Finalized[key] = bucket
	}
	for key, ids := range src.Paid {
		dst.Paid[key] = append([]string(nil), ids...)
	}
	return dst
}
