package attendance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceDomain "github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/blackhole-hr/attendance-backend-go/internal/repository/memory"
	workspaceService "github.com/blackhole-hr/attendance-backend-go/internal/service/workspace"
)

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newService(t *testing.T) attendanceDomain.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := workspaceService.NewManager(memory.NewWorkspaceRepository(), logger, time.Second)
	return NewAttendanceService(manager, logger)
}

func mustParse(t *testing.T, s string) duration.Duration {
	t.Helper()
	d, err := duration.Parse(s)
	require.NoError(t, err)
	return d
}

func TestActiveReportWithoutUpload(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.ActiveReport(ctx)
	assert.ErrorIs(t, err, attendanceDomain.ErrNoActiveReport)
}

func TestSetActiveReportReplacesWholesale(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 5,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "1", EmployeeName: "Alice", TotalDuration: 8 * 60, PresentDays: 1},
		},
	})
	require.NoError(t, err)

	resp, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "2", EmployeeName: "Bob", TotalDuration: 9 * 60, PresentDays: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, resp.Month)
	require.Len(t, resp.MonthlySummary, 1)
	assert.Equal(t, "2", resp.MonthlySummary[0].EmployeeID)
}

// Three records for one employee: a worked day, an absent day and a
// work-from-home day must land in three different day buckets while the total
// keeps summing every worked duration.
func TestUpsertDayAggregation(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "7", EmployeeName: "Alice"},
		},
	})
	require.NoError(t, err)

	days := []attendanceDomain.UpsertDayRequest{
		{EmployeeID: "7", Date: "2024-06-03", Status: "Present", Worked: "8:30"},
		{EmployeeID: "7", Date: "2024-06-04", Status: "Absent", Worked: "0:00"},
		{EmployeeID: "7", Date: "2024-06-05", Status: "Work From Home", Worked: "8:00"},
	}
	var resp attendanceDomain.ReportResponse
	for _, req := range days {
		resp, err = svc.UpsertDay(ctx, req)
		require.NoError(t, err)
	}

	require.Len(t, resp.MonthlySummary, 1)
	row := resp.MonthlySummary[0]
	assert.Equal(t, mustParse(t, "16:30"), row.TotalDuration)
	assert.Equal(t, 1, row.PresentDays)
	assert.Equal(t, 1, row.AbsentDays)
	assert.Equal(t, 1, row.AutoAssignedDays)

	// Statistics cascade from the rebuilt summary.
	assert.Equal(t, 3, resp.Statistics.TotalRecords)
	assert.Equal(t, 1, resp.Statistics.PresentDays)
	assert.True(t, resp.Statistics.TotalHours.Equal(decimal.RequireFromString("16.5")),
		"got %s", resp.Statistics.TotalHours)
}

func TestUpsertDayReplacesSameDate(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "7", EmployeeName: "Alice"},
		},
	})
	require.NoError(t, err)

	_, err = svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "7", Date: "2024-06-03", Status: "Present", Worked: "8:00",
	})
	require.NoError(t, err)

	resp, err := svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "7", Date: "2024-06-03", Status: "Present", Worked: "6:15",
	})
	require.NoError(t, err)

	require.Len(t, resp.DailyReport, 1)
	assert.Equal(t, mustParse(t, "6:15"), resp.MonthlySummary[0].TotalDuration)
}

func TestUpsertDayValidation(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "7", Date: "03/06/2024", Status: "Present", Worked: "8:00",
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "7", Date: "2024-06-03", Status: "Present", Worked: "8.5",
	})
	assert.ErrorIs(t, err, attendanceDomain.ErrInvalidDuration)

	_, err = svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "7", Date: "2024-06-03", Status: "Present", Worked: "8:00",
	})
	assert.ErrorIs(t, err, attendanceDomain.ErrEmployeeNotFound)
}

func TestManualEmployeeLifecycle(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	hourRate := decimal.NewFromInt(150)
	created, err := svc.AddManualEmployee(ctx, attendanceDomain.AddManualEmployeeRequest{
		EmployeeID: "m1", EmployeeName: "Carol", HourRate: &hourRate,
	})
	require.NoError(t, err)
	assert.True(t, created.IsManual)

	_, err = svc.AddManualEmployee(ctx, attendanceDomain.AddManualEmployeeRequest{
		EmployeeID: "m1", EmployeeName: "Carol",
	})
	assert.ErrorIs(t, err, attendanceDomain.ErrDuplicateEmployee)

	// Manual employees are visible even without an uploaded report, and
	// their days aggregate from their own records.
	_, err = svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "m1", Date: "2024-06-03", Status: "Present", Worked: "4:00",
	})
	require.NoError(t, err)

	resp, err := svc.ActiveReport(ctx)
	require.NoError(t, err)
	require.Len(t, resp.MonthlySummary, 1)
	assert.Equal(t, mustParse(t, "4:00"), resp.MonthlySummary[0].TotalDuration)

	require.NoError(t, svc.RemoveManualEmployee(ctx, "m1"))
	_, err = svc.ActiveReport(ctx)
	assert.ErrorIs(t, err, attendanceDomain.ErrNoActiveReport)

	err = svc.RemoveManualEmployee(ctx, "m1")
	assert.ErrorIs(t, err, attendanceDomain.ErrEmployeeNotFound)
}

func TestRemoveManualEmployeeRejectsRegular(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "1", EmployeeName: "Alice"},
		},
	})
	require.NoError(t, err)

	err = svc.RemoveManualEmployee(ctx, "1")
	assert.ErrorIs(t, err, attendanceDomain.ErrNotManualEmployee)
}

func TestManualEmployeesSurviveReupload(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.AddManualEmployee(ctx, attendanceDomain.AddManualEmployeeRequest{
		EmployeeID: "m1", EmployeeName: "Carol",
	})
	require.NoError(t, err)

	resp, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "1", EmployeeName: "Alice"},
		},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(resp.MonthlySummary))
	for _, row := range resp.MonthlySummary {
		ids = append(ids, row.EmployeeID)
	}
	assert.ElementsMatch(t, []string{"1", "m1"}, ids)
}

func TestRecordsForSortsByDate(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.AddManualEmployee(ctx, attendanceDomain.AddManualEmployeeRequest{
		EmployeeID: "m1", EmployeeName: "Carol",
	})
	require.NoError(t, err)

	for _, date := range []string{"2024-06-10", "2024-06-02", "2024-06-07"} {
		_, err = svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
			EmployeeID: "m1", Date: date, Status: "Present", Worked: "8:00",
		})
		require.NoError(t, err)
	}

	records, err := svc.RecordsFor(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2024-06-02", records[0].Date)
	assert.Equal(t, "2024-06-07", records[1].Date)
	assert.Equal(t, "2024-06-10", records[2].Date)

	_, err = svc.RecordsFor(ctx, "nobody")
	assert.ErrorIs(t, err, attendanceDomain.ErrEmployeeNotFound)
}

func TestExtraStatistics(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.ExtraStatistics(ctx)
	assert.ErrorIs(t, err, attendanceDomain.ErrNoActiveReport)

	_, err = svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "1", EmployeeName: "Alice", TotalDuration: 10 * 60, PresentDays: 3},
			{EmployeeID: "2", EmployeeName: "Bob", TotalDuration: 6 * 60, PresentDays: 2, AbsentDays: 1},
			{EmployeeID: "3", EmployeeName: "Cara", TotalDuration: 8 * 60, PresentDays: 2, AbsentDays: 2},
		},
	})
	require.NoError(t, err)

	stats, err := svc.ExtraStatistics(ctx)
	require.NoError(t, err)

	require.NotNil(t, stats.TopPerformer)
	assert.Equal(t, "1", stats.TopPerformer.EmployeeID)

	// 7 present of 10 counted days.
	assert.True(t, stats.AttendanceRate.Equal(decimal.NewFromInt(70)), "got %s", stats.AttendanceRate)

	assert.True(t, stats.HoursDistribution.Min.Equal(decimal.NewFromInt(6)))
	assert.True(t, stats.HoursDistribution.Max.Equal(decimal.NewFromInt(10)))
	assert.True(t, stats.HoursDistribution.Median.Equal(decimal.NewFromInt(8)))
	assert.True(t, stats.HoursDistribution.Mean.Equal(decimal.NewFromInt(8)))
}

func TestUpsertDayForUnlistedEmployeeCreatesSummary(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "1", EmployeeName: "Alice"},
		},
		DailyReport: []attendanceDomain.DailyRecord{
			{EmployeeID: "2", EmployeeName: "Bob", Date: "2024-06-03", Status: attendanceDomain.StatusPresent, Worked: 8 * 60},
		},
	})
	require.NoError(t, err)

	resp, err := svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "1", Date: "2024-06-03", Status: "Present", Worked: "7:00",
	})
	require.NoError(t, err)

	// Bob had daily records but no summary row; the rebuild creates one.
	require.Len(t, resp.MonthlySummary, 2)
	byID := make(map[string]attendanceDomain.EmployeeSummary)
	for _, row := range resp.MonthlySummary {
		byID[row.EmployeeID] = row
	}
	assert.Equal(t, mustParse(t, "7:00"), byID["1"].TotalDuration)
	assert.Equal(t, mustParse(t, "8:00"), byID["2"].TotalDuration)
}

// A returned report is a snapshot: editing the same day afterwards must not
// reach back into it.
func TestUpsertDayLeavesEarlierResponseIntact(t *testing.T) {
	svc := newService(t)
	ctx := authedContext(t, "u1")

	_, err := svc.SetActiveReport(ctx, &attendanceDomain.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendanceDomain.EmployeeSummary{
			{EmployeeID: "7", EmployeeName: "Alice"},
		},
	})
	require.NoError(t, err)

	_, err = svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "7", Date: "2024-06-03", Status: "Present", Worked: "8:00",
	})
	require.NoError(t, err)

	held, err := svc.ActiveReport(ctx)
	require.NoError(t, err)
	require.Len(t, held.DailyReport, 1)

	_, err = svc.UpsertDay(ctx, attendanceDomain.UpsertDayRequest{
		EmployeeID: "7", Date: "2024-06-03", Status: "Present", Worked: "6:15",
	})
	require.NoError(t, err)

	assert.Equal(t, mustParse(t, "8:00"), held.DailyReport[0].Worked)
}
