package processor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
)

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	return NewProcessor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// buildExport fabricates a workbook in the biometric terminal's layout: two
// title rows, a header row with day-number columns, then ID/punch row pairs.
func buildExport(t *testing.T, blocks [][2][]interface{}) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, setRow(f, 1, []interface{}{"Attendance Record Report"}))
	require.NoError(t, setRow(f, 2, []interface{}{}))

	header := []interface{}{"Employee ID", "Employee Name"}
	for day := 1; day <= 31; day++ {
		header = append(header, day)
	}
	require.NoError(t, setRow(f, 3, header))

	rowNum := 4
	for _, block := range blocks {
		require.NoError(t, setRow(f, rowNum, block[0]))
		require.NoError(t, setRow(f, rowNum+1, block[1]))
		rowNum += 2
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow("Sheet1", cell, &values)
}

// identityRow matches the terminal layout: "ID:" in column 0, the id in
// column 2, "Name:" in column 8 and the name in column 10.
func identityRow(id interface{}, name string) []interface{} {
	return []interface{}{"ID:", "", id, "", "", "", "", "", "Name:", "", name}
}

// punchRow places punch cells under the day columns, which start at column 2
// (day 1) in the fabricated header.
func punchRow(days map[int]string) []interface{} {
	row := make([]interface{}, 2+31)
	for day, cell := range days {
		row[1+day] = cell
	}
	return row
}

func TestProcessBuildsReport(t *testing.T) {
	p := newProcessor(t)

	input := buildExport(t, [][2][]interface{}{
		{
			identityRow(5, "Alice"),
			punchRow(map[int]string{
				1: "09:00 17:30", // present, 8:30
				2: "",            // absent
				3: "10:00",       // missing punch-out
			}),
		},
		{
			identityRow("7.0", "Bob"),
			punchRow(map[int]string{
				1: "09:00 13:00 14:00 18:00", // split shift, 8:00
				2: "09:00 13:00 18:00",       // odd count, punch error
			}),
		},
	})

	report, err := p.Process(input, Options{Year: 2024, Month: 6})
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 6, report.Month)
	require.Len(t, report.MonthlySummary, 2)

	byID := make(map[string]attendance.EmployeeSummary)
	for _, row := range report.MonthlySummary {
		byID[row.EmployeeID] = row
	}

	alice := byID["5"]
	assert.Equal(t, duration.Duration(16*60+30), alice.TotalDuration, "8:30 + 0 + 8:00 credited")
	assert.Equal(t, 1, alice.PresentDays)
	assert.Equal(t, 1, alice.AbsentDays)
	assert.Equal(t, 1, alice.AutoAssignedDays)

	// "7.0" normalizes to "7".
	bob, ok := byID["7"]
	require.True(t, ok)
	assert.Equal(t, duration.Duration(16*60), bob.TotalDuration)
	assert.Equal(t, 1, bob.PresentDays)
	assert.Equal(t, 1, bob.AutoAssignedDays)

	assert.Equal(t, len(report.DailyReport), report.Statistics.TotalRecords)
	assert.Equal(t, 2, report.Statistics.TotalEmployees)
}

func TestProcessSelectedDates(t *testing.T) {
	p := newProcessor(t)

	input := buildExport(t, [][2][]interface{}{
		{
			identityRow(1, "Alice"),
			punchRow(map[int]string{
				1: "",            // selected: admin assigned
				2: "09:00 17:00", // selected but punched: unaffected
			}),
		},
	})

	report, err := p.Process(input, Options{
		Year: 2024, Month: 6,
		SelectedDates: []string{"2024-06-01", "2024-06-02"},
	})
	require.NoError(t, err)

	require.Len(t, report.DailyReport, 2)
	assert.Equal(t, attendance.StatusAdminAssigned, report.DailyReport[0].Status)
	assert.Equal(t, DefaultMaxHours, report.DailyReport[0].Worked)
	assert.Equal(t, attendance.StatusPresent, report.DailyReport[1].Status)

	// Admin-assigned days never count absent.
	assert.Equal(t, 0, report.MonthlySummary[0].AbsentDays)
	assert.Equal(t, 1, report.MonthlySummary[0].AutoAssignedDays)
}

func TestProcessMaxHoursOverride(t *testing.T) {
	p := newProcessor(t)

	input := buildExport(t, [][2][]interface{}{
		{identityRow(1, "Alice"), punchRow(map[int]string{1: "10:00"})},
	})

	report, err := p.Process(input, Options{Year: 2024, Month: 6, MaxHours: 12 * 60})
	require.NoError(t, err)

	require.Len(t, report.DailyReport, 1)
	assert.Equal(t, duration.Duration(12*60), report.DailyReport[0].Worked)
}

func TestProcessNoEmployees(t *testing.T) {
	p := newProcessor(t)

	input := buildExport(t, nil)
	_, err := p.Process(input, Options{Year: 2024, Month: 6})
	assert.ErrorIs(t, err, ErrNoEmployees)
}

func TestProcessSkipsDaysPastMonthEnd(t *testing.T) {
	p := newProcessor(t)

	input := buildExport(t, [][2][]interface{}{
		{identityRow(1, "Alice"), punchRow(map[int]string{30: "09:00 17:00", 31: "09:00 17:00"})},
	})

	// June has 30 days; the day-31 column must not leak into July.
	report, err := p.Process(input, Options{Year: 2024, Month: 6})
	require.NoError(t, err)
	require.Len(t, report.DailyReport, 1)
	assert.Equal(t, "2024-06-30", report.DailyReport[0].Date)
}
