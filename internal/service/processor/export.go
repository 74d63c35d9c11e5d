package processor

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
)

const (
	sheetDaily   = "Daily Attendance"
	sheetSummary = "Monthly Summary"
)

var dailyHeaders = []string{
	"Employee ID", "Employee Name", "Date", "Punch Count", "Punches", "Worked Hours", "Status",
}

var summaryHeaders = []string{
	"Employee ID", "Employee Name", "Present Days", "Absent Days", "Auto Assigned Days", "Total Hours",
}

// Export writes the report as a formatted two-sheet workbook.
func (p *Processor) Export(report *attendance.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetDaily); err != nil {
		return fmt.Errorf("failed to name daily sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeDailySheet(f, report); err != nil {
		return err
	}
	if err := writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := applyStyles(f, len(report.DailyReport), len(report.MonthlySummary)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeDailySheet(f *excelize.File, report *attendance.Report) error {
	if err := writeRow(f, sheetDaily, 1, toAny(dailyHeaders)); err != nil {
		return err
	}
	for i, rec := range report.DailyReport {
		row := []interface{}{
			rec.EmployeeID,
			rec.EmployeeName,
			rec.Date,
			rec.PunchCount,
			rec.PunchInfo,
			duration.Format(rec.Worked),
			string(rec.Status),
		}
		if err := writeRow(f, sheetDaily, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report *attendance.Report) error {
	if err := writeRow(f, sheetSummary, 1, toAny(summaryHeaders)); err != nil {
		return err
	}
	for i, emp := range report.MonthlySummary {
		row := []interface{}{
			emp.EmployeeID,
			emp.EmployeeName,
			emp.PresentDays,
			emp.AbsentDays,
			emp.AutoAssignedDays,
			duration.Format(emp.TotalDuration),
		}
		if err := writeRow(f, sheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", row, sheet, err)
	}
	return nil
}

func applyStyles(f *excelize.File, dailyRows, summaryRows int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}

	sheets := []struct {
		name    string
		columns int
		rows    int
	}{
		{sheetDaily, len(dailyHeaders), dailyRows},
		{sheetSummary, len(summaryHeaders), summaryRows},
	}
	for _, s := range sheets {
		lastCol, err := excelize.ColumnNumberToName(s.columns)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, "A1", lastCol+"1", headerStyle); err != nil {
			return err
		}
		if s.rows > 0 {
			if err := f.SetCellStyle(s.name, "A2", fmt.Sprintf("%s%d", lastCol, s.rows+1), bodyStyle); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(s.name, "A", lastCol, 18); err != nil {
			return err
		}
	}
	return nil
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}
