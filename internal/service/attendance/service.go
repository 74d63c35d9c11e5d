package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	domainWorkspace "github.com/blackhole-hr/attendance-backend-go/internal/domain/workspace"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
	workspaceService "github.com/blackhole-hr/attendance-backend-go/internal/service/workspace"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	states *workspaceService.Manager
	logger *slog.Logger
}

func NewAttendanceService(states *workspaceService.Manager, logger *slog.Logger) attendance.Service {
	return &AttendanceServiceImpl{states: states, logger: logger}
}

func (s *AttendanceServiceImpl) SetActiveReport(ctx context.Context, report *attendance.Report) (attendance.ReportResponse, error) {
	var resp attendance.ReportResponse
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		// The new document replaces the previous one wholesale. Manual
		// employees persist across uploads.
		ws.Report = report
		refreshStatistics(ws)
		p.Report(ws)
		resp = buildResponse(ws)
		return nil
	})
	return resp, err
}

func (s *AttendanceServiceImpl) ActiveReport(ctx context.Context) (attendance.ReportResponse, error) {
	var resp attendance.ReportResponse
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, _ *workspaceService.Persister) error {
		if ws.Report == nil && len(ws.ManualEmployees) == 0 {
			return attendance.ErrNoActiveReport
		}
		resp = buildResponse(ws)
		return nil
	})
	return resp, err
}

func (s *AttendanceServiceImpl) UpsertDay(ctx context.Context, req attendance.UpsertDayRequest) (attendance.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ReportResponse{}, err
	}

	employeeID := req.EmployeeID.String()

	dateKey, err := attendance.ParseDateKey(req.Date)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	// A blank duration is an explicit zero; anything else must parse.
	var worked duration.Duration
	if req.Worked != "" {
		worked, err = duration.Parse(req.Worked)
		if err != nil {
			return attendance.ReportResponse{}, fmt.Errorf("%w: %v", attendance.ErrInvalidDuration, err)
		}
	}

	status := attendance.Canonicalize(req.Status)

	var resp attendance.ReportResponse
	err = s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		summary, ok := ws.SummaryFor(employeeID)
		if !ok {
			return attendance.ErrEmployeeNotFound
		}

		rec := attendance.DailyRecord{
			EmployeeID:   employeeID,
			EmployeeName: summary.EmployeeName,
			Date:         dateKey,
			Status:       status,
			Worked:       worked,
			PunchInfo:    req.PunchInfo,
		}

		if summary.IsManual {
			ws.ManualDailyRecords[employeeID] = upsertByDate(ws.ManualDailyRecords[employeeID], rec)
			s.reaggregateManual(ws, employeeID)
			refreshStatistics(ws)
			p.ManualEmployees(ws)
			p.Report(ws)
		} else {
			if ws.Report == nil {
				return attendance.ErrNoActiveReport
			}
			ws.Report.DailyReport = upsertByDate(ws.Report.DailyReport, rec)
			// One edit supersedes the backend's per-employee totals for the
			// whole document: every regular summary with daily records gets
			// rebuilt from them, then the statistics cascade.
			reaggregateRegular(ws.Report)
			refreshStatistics(ws)
			p.Report(ws)
		}

		resp = buildResponse(ws)
		return nil
	})
	return resp, err
}

func (s *AttendanceServiceImpl) RecordsFor(ctx context.Context, employeeID string) ([]attendance.DailyRecord, error) {
	var out []attendance.DailyRecord
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, _ *workspaceService.Persister) error {
		summary, ok := ws.SummaryFor(employeeID)
		if !ok {
			return attendance.ErrEmployeeNotFound
		}

		if summary.IsManual {
			out = append(out, ws.ManualDailyRecords[employeeID]...)
		} else if ws.Report != nil {
			for _, rec := range ws.Report.DailyReport {
				if rec.EmployeeID == employeeID {
					out = append(out, rec)
				}
			}
		}

		// YYYY-MM-DD keys sort chronologically as strings.
		sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
		return nil
	})
	return out, err
}

func (s *AttendanceServiceImpl) AddManualEmployee(ctx context.Context, req attendance.AddManualEmployeeRequest) (attendance.EmployeeSummary, error) {
	if err := req.Validate(); err != nil {
		return attendance.EmployeeSummary{}, err
	}

	employeeID := req.EmployeeID.String()

	var created attendance.EmployeeSummary
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		if ws.HasEmployee(employeeID) {
			return attendance.ErrDuplicateEmployee
		}

		created = attendance.EmployeeSummary{
			EmployeeID:   employeeID,
			EmployeeName: req.EmployeeName,
			IsManual:     true,
		}
		ws.ManualEmployees = append(ws.ManualEmployees, created)
		ws.ManualDailyRecords[employeeID] = nil

		if req.HourRate != nil && req.HourRate.IsPositive() {
			ws.HourRates[employeeID] = *req.HourRate
			p.HourRates(ws)
		}

		refreshStatistics(ws)
		p.ManualEmployees(ws)
		return nil
	})
	return created, err
}

func (s *AttendanceServiceImpl) RemoveManualEmployee(ctx context.Context, employeeID string) error {
	return s.states.With(ctx, func(ws *domainWorkspace.Workspace, p *workspaceService.Persister) error {
		summary, ok := ws.SummaryFor(employeeID)
		if !ok {
			return attendance.ErrEmployeeNotFound
		}
		if !summary.IsManual {
			return attendance.ErrNotManualEmployee
		}

		kept := ws.ManualEmployees[:0]
		for _, emp := range ws.ManualEmployees {
			if emp.EmployeeID != employeeID {
				kept = append(kept, emp)
			}
		}
		ws.ManualEmployees = kept
		delete(ws.ManualDailyRecords, employeeID)

		// Cascade: confirmed set, hour rate, paid marks.
		confirmed := ws.Confirmed[:0]
		for _, rec := range ws.Confirmed {
			if rec.EmployeeID != employeeID {
				confirmed = append(confirmed, rec)
			}
		}
		ws.Confirmed = confirmed
		delete(ws.HourRates, employeeID)
		for monthKey, ids := range ws.Paid {
			keptIDs := ids[:0]
			for _, id := range ids {
				if id != employeeID {
					keptIDs = append(keptIDs, id)
				}
			}
			if len(keptIDs) == 0 {
				delete(ws.Paid, monthKey)
			} else {
				ws.Paid[monthKey] = keptIDs
			}
		}

		refreshStatistics(ws)
		p.ManualEmployees(ws)
		p.Confirmed(ws)
		p.HourRates(ws)
		p.Paid(ws)
		return nil
	})
}

func (s *AttendanceServiceImpl) ExtraStatistics(ctx context.Context) (attendance.ExtraStatistics, error) {
	var out attendance.ExtraStatistics
	err := s.states.With(ctx, func(ws *domainWorkspace.Workspace, _ *workspaceService.Persister) error {
		resp := buildResponse(ws)
		if len(resp.MonthlySummary) == 0 {
			return attendance.ErrNoActiveReport
		}

		hours := make([]decimal.Decimal, 0, len(resp.MonthlySummary))
		var top attendance.EmployeeSummary
		present, absent := 0, 0
		for i, emp := range resp.MonthlySummary {
			hours = append(hours, emp.TotalDuration.DecimalHours())
			present += emp.PresentDays
			absent += emp.AbsentDays
			if i == 0 || emp.TotalDuration > top.TotalDuration {
				top = emp
			}
		}

		sort.Slice(hours, func(i, j int) bool { return hours[i].LessThan(hours[j]) })

		out.TopPerformer = &top
		if present+absent > 0 {
			out.AttendanceRate = decimal.NewFromInt(int64(present)).
				Div(decimal.NewFromInt(int64(present + absent))).
				Mul(decimal.NewFromInt(100))
		} else {
			out.AttendanceRate = decimal.Zero
		}

		n := len(hours)
		out.HoursDistribution = attendance.HoursDistribution{
			Min:  hours[0],
			Max:  hours[n-1],
			Mean: resp.Statistics.AvgHoursPerEmployee,
		}
		if n%2 == 1 {
			out.HoursDistribution.Median = hours[n/2]
		} else {
			out.HoursDistribution.Median = hours[n/2-1].Add(hours[n/2]).Div(decimal.NewFromInt(2))
		}
		return nil
	})
	return out, err
}

// upsertByDate replaces the record matching employee+date, else appends.
func upsertByDate(records []attendance.DailyRecord, rec attendance.DailyRecord) []attendance.DailyRecord {
	for i := range records {
		if records[i].EmployeeID == rec.EmployeeID && records[i].Date == rec.Date {
			records[i] = rec
			return records
		}
	}
	return append(records, rec)
}

// reaggregateManual rebuilds one manual employee's summary row from its
// daily records.
func (s *AttendanceServiceImpl) reaggregateManual(ws *domainWorkspace.Workspace, employeeID string) {
	for i, emp := range ws.ManualEmployees {
		if emp.EmployeeID == employeeID {
			row := attendance.Summarize(emp.EmployeeID, emp.EmployeeName, true, ws.ManualDailyRecords[employeeID])
			ws.ManualEmployees[i] = row
			return
		}
	}
}

// reaggregateRegular rebuilds every regular summary that has daily records.
// Rows the backend summarized but that carry no daily records keep their
// pre-aggregated totals.
func reaggregateRegular(report *attendance.Report) {
	byEmployee := make(map[string][]attendance.DailyRecord)
	for _, rec := range report.DailyReport {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	for i, emp := range report.MonthlySummary {
		records, ok := byEmployee[emp.EmployeeID]
		if !ok {
			continue
		}
		row := attendance.Summarize(emp.EmployeeID, emp.EmployeeName, false, records)
		report.MonthlySummary[i] = row
		delete(byEmployee, emp.EmployeeID)
	}

	// Daily records for employees missing a summary row create one.
	var newIDs []string
	for id := range byEmployee {
		newIDs = append(newIDs, id)
	}
	sort.Strings(newIDs)
	for _, id := range newIDs {
		records := byEmployee[id]
		name := records[0].EmployeeName
		report.MonthlySummary = append(report.MonthlySummary, attendance.Summarize(id, name, false, records))
	}
}

// refreshStatistics recomputes the stored statistics block over both
// populations so the persisted document stays consistent.
func refreshStatistics(ws *domainWorkspace.Workspace) {
	if ws.Report == nil {
		return
	}
	summaries, totalRecords := mergedSummaries(ws)
	ws.Report.Statistics = attendance.ComputeStatistics(summaries, totalRecords)
}

func mergedSummaries(ws *domainWorkspace.Workspace) ([]attendance.EmployeeSummary, int) {
	var summaries []attendance.EmployeeSummary
	totalRecords := 0
	if ws.Report != nil {
		summaries = append(summaries, ws.Report.MonthlySummary...)
		totalRecords += len(ws.Report.DailyReport)
	}
	summaries = append(summaries, ws.ManualEmployees...)
	for _, records := range ws.ManualDailyRecords {
		totalRecords += len(records)
	}
	return summaries, totalRecords
}

func buildResponse(ws *domainWorkspace.Workspace) attendance.ReportResponse {
	summaries, totalRecords := mergedSummaries(ws)

	resp := attendance.ReportResponse{
		MonthlySummary: summaries,
		Statistics:     attendance.ComputeStatistics(summaries, totalRecords),
	}
	if ws.Report != nil {
		resp.Year = ws.Report.Year
		resp.Month = ws.Report.Month
		// Snapshot the daily records: later upserts rewrite the workspace
		// slice in place and must not reach into responses already returned.
		resp.DailyReport = append([]attendance.DailyRecord(nil), ws.Report.DailyReport...)
		resp.OutputFile = ws.Report.OutputFile
	}
	return resp
}
