package salary

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
	domainWorkspace "github.com/blackhole-hr/attendance-backend-go/internal/domain/workspace"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/validator"
	workspaceService "github.com/blackhole-hr/attendance-backend-go/internal/service/workspace"
	"github.com/google/uuid"
)

type SalaryServiceImpl struct {
	states *workspaceService.Manager
	logger *slog.Logger
	now    func() time.Time
}

func NewSalaryService(states *workspaceService.Manager, logger *slog.Logger) salary.Service {
	return &SalaryServiceImpl{states: states, logger: logger, now: time.Now}
}

func (s *SalaryServiceImpl) SetHourRate(ctx context.Context, employeeID string, req salary.SetRateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if validator.IsEmpty(employeeID) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "is required"}}
	}

	return s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		if req.HourRate.IsZero() {
			delete(ws.HourRates, employeeID)
		} else {
			ws.HourRates[employeeID] = req.HourRate
		}
		p.HourRates(ws)
		return nil
	})
}

func (s *SalaryServiceImpl) Confirm(ctx context.Context, req salary.ConfirmRequest) (salary.ConfirmResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ConfirmResponse{}, err
	}

	single := len(req.EmployeeIDs) == 1

	var resp salary.ConfirmResponse
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		for _, flexID := range req.EmployeeIDs {
			employeeID := flexID.String()

			summary, ok := ws.SummaryFor(employeeID)
			if !ok {
				if single {
					return salary.ErrNoSummaryForEmployee
				}
				resp.Skipped = append(resp.Skipped, employeeID)
				continue
			}

			rate, ok := ws.HourRates[employeeID]
			if !ok || !rate.IsPositive() {
				if single {
					return salary.ErrNoRateSet
				}
				resp.Skipped = append(resp.Skipped, employeeID)
				continue
			}

			rec := salary.Record{
				EmployeeID:    employeeID,
				EmployeeName:  summary.EmployeeName,
				TotalDuration: summary.TotalDuration,
				HourRate:      rate,
				Salary:        salary.Compute(summary.TotalDuration, rate),
				ConfirmedAt:   s.now(),
			}
			upsertConfirmed(ws, rec)
			resp.Confirmed = append(resp.Confirmed, rec)
		}

		if len(resp.Confirmed) > 0 {
			p.Confirmed(ws)
		}
		return nil
	})
	return resp, err
}

func (s *SalaryServiceImpl) Confirmed(ctx context.Context) ([]salary.Record, error) {
	var out []salary.Record
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, _ *workspaceService.Persister) error {
		out = append(out, ws.Confirmed...)
		return nil
	})
	return out, err
}

func (s *SalaryServiceImpl) UpdateConfirmed(ctx context.Context, index int, req salary.UpdateConfirmedRequest) (salary.Record, error) {
	var updated salary.Record
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		if index < 0 || index >= len(ws.Confirmed) {
			return salary.ErrConfirmedOutOfRange
		}

		rec := ws.Confirmed[index]

		// Duration, rate and salary are mutually dependent. A provided
		// duration or rate drives salary = hours x rate; a provided salary
		// alone back-derives the rate. Absent fields keep their previous
		// values, never an implicit zero.
		durationChanged := false
		if req.TotalDuration != nil && *req.TotalDuration != "" {
			d, err := duration.Parse(*req.TotalDuration)
			if err != nil {
				return err
			}
			rec.TotalDuration = d
			durationChanged = true
		}

		rateChanged := false
		if req.HourRate != nil {
			if req.HourRate.IsNegative() {
				return salary.ErrInvalidRate
			}
			rec.HourRate = *req.HourRate
			rateChanged = true
		}

		switch {
		case durationChanged || rateChanged:
			rec.Salary = salary.Compute(rec.TotalDuration, rec.HourRate)
		case req.Salary != nil:
			rec.Salary = *req.Salary
			if hours := rec.TotalDuration.DecimalHours(); hours.IsPositive() {
				rec.HourRate = rec.Salary.Div(hours)
			}
		}

		ws.Confirmed[index] = rec
		updated = rec
		p.Confirmed(ws)
		return nil
	})
	return updated, err
}

func (s *SalaryServiceImpl) DeleteConfirmed(ctx context.Context, index int) error {
	return s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		if index < 0 || index >= len(ws.Confirmed) {
			return salary.ErrConfirmedOutOfRange
		}

		employeeID := ws.Confirmed[index].EmployeeID
		ws.Confirmed = append(ws.Confirmed[:index], ws.Confirmed[index+1:]...)

		// The employee reverts to "no rate set" in the summary view.
		delete(ws.HourRates, employeeID)

		p.Confirmed(ws)
		p.HourRates(ws)
		return nil
	})
}

func (s *SalaryServiceImpl) Finalize(ctx context.Context, req salary.FinalizeRequest) (salary.MonthBucket, error) {
	if err := req.Validate(); err != nil {
		return salary.MonthBucket{}, err
	}

	var out salary.MonthBucket
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		if len(ws.Confirmed) == 0 {
			return salary.ErrNothingToFinalize
		}

		bucket, ok := ws.Finalized[req.MonthKey]
		if !ok {
			bucket = salary.MonthBucket{
				ID:       uuid.NewString(),
				MonthKey: req.MonthKey,
				Month:    req.Month,
				Year:     req.Year,
			}
		}
		bucket.FinalizedAt = s.now()
		bucket.Merge(ws.Confirmed)
		ws.Finalized[req.MonthKey] = bucket

		// Finalizing is one-way: the confirmed set and the active report
		// are cleared, the operator re-uploads for the next period.
		ws.Confirmed = nil
		ws.Report = nil

		p.Finalized(ws)
		p.Confirmed(ws)
		p.Report(ws)

		out = bucket
		out.Employees = append([]salary.Record(nil), bucket.Employees...)
		return nil
	})
	return out, err
}

func (s *SalaryServiceImpl) Unfinalize(ctx context.Context, monthKey string) ([]salary.Record, error) {
	var out []salary.Record
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		bucket, ok := ws.Finalized[monthKey]
		if !ok {
			return salary.ErrBucketNotFound
		}

		// Existing confirmed entries win on conflict; bucket entries only
		// fill the gaps.
		confirmed := make(map[string]bool, len(ws.Confirmed))
		for _, rec := range ws.Confirmed {
			confirmed[rec.EmployeeID] = true
		}
		for _, rec := range bucket.Employees {
			if !confirmed[rec.EmployeeID] {
				ws.Confirmed = append(ws.Confirmed, rec)
			}
		}

		delete(ws.Finalized, monthKey)

		p.Confirmed(ws)
		p.Finalized(ws)

		out = append(out, ws.Confirmed...)
		return nil
	})
	return out, err
}

func (s *SalaryServiceImpl) DeleteBucket(ctx context.Context, monthKey string) error {
	return s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		if _, ok := ws.Finalized[monthKey]; !ok {
			return salary.ErrBucketNotFound
		}
		delete(ws.Finalized, monthKey)
		delete(ws.Paid, monthKey)
		p.Finalized(ws)
		p.Paid(ws)
		return nil
	})
}

func (s *SalaryServiceImpl) Finalized(ctx context.Context) ([]salary.MonthBucket, error) {
	var out []salary.MonthBucket
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, _ *workspaceService.Persister) error {
		for _, bucket := range ws.Finalized {
			// Detach the employee slice so a later merge into the bucket
			// cannot rewrite an already returned response.
			bucket.Employees = append([]salary.Record(nil), bucket.Employees...)
			out = append(out, bucket)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].FinalizedAt.After(out[j].FinalizedAt) })
		return nil
	})
	return out, err
}

func (s *SalaryServiceImpl) SetPaid(ctx context.Context, monthKey string, req salary.SetPaidRequest) error {
	if !validator.IsValidMonthKey(monthKey) {
		return salary.ErrInvalidMonthKey
	}
	return s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		ids := make([]string, 0, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			ids = append(ids, id.String())
		}
		if len(ids) == 0 {
			delete(ws.Paid, monthKey)
		} else {
			ws.Paid[monthKey] = ids
		}
		p.Paid(ws)
		return nil
	})
}

func (s *SalaryServiceImpl) Paid(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string)
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, _ *workspaceService.Persister) error {
		for monthKey, ids := range ws.Paid {
			out[monthKey] = append([]string(nil), ids...)
		}
		return nil
	})
	return out, err
}

func upsertConfirmed(ws *domainWorkspace.Workspace, rec salary.Record) {
	for i := range ws.Confirmed {
		if ws.Confirmed[i].EmployeeID == rec.EmployeeID {
			ws.Confirmed[i] = rec
			return
		}
	}
	ws.Confirmed = append(ws.Confirmed, rec)
}
