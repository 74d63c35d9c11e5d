package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
)

func TestLoadUnknownUserReturnsBlankWorkspace(t *testing.T) {
	repo := NewWorkspaceRepository()

	ws, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Nil(t, ws.Report)
	assert.Empty(t, ws.ManualEmployees)
	assert.NotNil(t, ws.HourRates)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := NewWorkspaceRepository()
	ctx := context.Background()

	report := &attendance.Report{
		Year: 2024, Month: 6,
		MonthlySummary: []attendance.EmployeeSummary{
			{EmployeeID: "1", EmployeeName: "Alice", TotalDuration: 8 * 60},
		},
	}
	require.NoError(t, repo.SaveReport(ctx, "u1", report))
	require.NoError(t, repo.SaveHourRates(ctx, "u1", map[string]decimal.Decimal{
		"1": decimal.NewFromInt(100),
	}))
	require.NoError(t, repo.SaveConfirmed(ctx, "u1", []salary.Record{
		{EmployeeID: "1", Salary: decimal.NewFromInt(800)},
	}))

	ws, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, ws.Report)
	assert.Equal(t, 6, ws.Report.Month)
	assert.True(t, ws.HourRates["1"].Equal(decimal.NewFromInt(100)))
	require.Len(t, ws.Confirmed, 1)

	// Other users stay isolated.
	other, err := repo.Load(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, other.Report)
}

func TestLoadReturnsCopies(t *testing.T) {
	repo := NewWorkspaceRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveConfirmed(ctx, "u1", []salary.Record{
		{EmployeeID: "1", Salary: decimal.NewFromInt(800)},
	}))

	ws, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	ws.Confirmed[0].EmployeeID = "mutated"

	fresh, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "1", fresh.Confirmed[0].EmployeeID)
}

func TestClearReports(t *testing.T) {
	repo := NewWorkspaceRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveReport(ctx, "u1", &attendance.Report{Year: 2024, Month: 6}))
	require.NoError(t, repo.ClearReports(ctx, "u1"))

	ws, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, ws.Report)
}
