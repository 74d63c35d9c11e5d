// Package processor converts biometric punch-in/out spreadsheet exports into
// the report document: daily records, monthly summaries and the statistics
// block.
package processor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
)

var (
	ErrEmptySheet  = errors.New("spreadsheet has no usable rows")
	ErrNoEmployees = errors.New("no employee blocks found in spreadsheet")
)

// DefaultMaxHours is credited for missing punch-outs, punch errors and
// admin-selected dates when the request does not override it.
const DefaultMaxHours = duration.Duration(8 * 60)

// Options configures one processing run.
type Options struct {
	Year  int
	Month int

	// MaxHours overrides DefaultMaxHours when positive.
	MaxHours duration.Duration

	// SelectedDates lists YYYY-MM-DD dates credited with max hours for
	// every employee who has no punches that day.
	SelectedDates []string
}

type Processor struct {
	logger *slog.Logger
}

func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{logger: logger}
}

// employeeBlock is one employee's row pair from the wide-format sheet:
// an identity row ("ID: ... Name: ...") followed by a punch row whose cells
// line up with the day-number header columns.
type employeeBlock struct {
	id      string
	name    string
	punches map[int]string // day of month -> raw cell
}

// Process reads a biometric export and builds the report document.
func (p *Processor) Process(r io.Reader, opts Options) (*attendance.Report, error) {
	maxHours := opts.MaxHours
	if maxHours <= 0 {
		maxHours = DefaultMaxHours
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	headerRow := detectHeaderRow(rows)
	dayColumns := mapDayColumns(rows[headerRow])
	p.logger.Info("parsed spreadsheet layout",
		slog.Int("header_row", headerRow),
		slog.Int("day_columns", len(dayColumns)))

	blocks := extractEmployeeBlocks(rows[headerRow+1:], dayColumns)
	if len(blocks) == 0 {
		return nil, ErrNoEmployees
	}
	p.logger.Info("extracted employee blocks", slog.Int("employees", len(blocks)))

	selected := make(map[string]bool, len(opts.SelectedDates))
	for _, d := range opts.SelectedDates {
		selected[d] = true
	}

	report := &attendance.Report{Year: opts.Year, Month: opts.Month}
	for _, block := range blocks {
		records := p.buildDailyRecords(block, opts.Year, opts.Month, maxHours, selected)
		report.DailyReport = append(report.DailyReport, records...)
		report.MonthlySummary = append(report.MonthlySummary,
			attendance.Summarize(block.id, block.name, false, records))
	}

	sort.Slice(report.MonthlySummary, func(i, j int) bool {
		return report.MonthlySummary[i].EmployeeID < report.MonthlySummary[j].EmployeeID
	})
	report.Statistics = attendance.ComputeStatistics(report.MonthlySummary, len(report.DailyReport))

	return report, nil
}

func (p *Processor) buildDailyRecords(block employeeBlock, year, month int, maxHours duration.Duration, selected map[string]bool) []attendance.DailyRecord {
	days := make([]int, 0, len(block.punches))
	for day := range block.punches {
		days = append(days, day)
	}
	sort.Ints(days)

	records := make([]attendance.DailyRecord, 0, len(days))
	for _, day := range days {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		if date.Day() != day {
			// Day column past the end of this month (e.g. 31 in June).
			continue
		}
		dateKey := attendance.DateKey(date)

		punches := extractPunches(block.punches[day])

		var worked duration.Duration
		var status attendance.Status
		var info string
		if selected[dateKey] && len(punches) == 0 {
			worked, status, info = maxHours, attendance.StatusAdminAssigned, "Admin selected date"
		} else {
			worked, status, info = applyPunchLogic(punches, maxHours)
		}

		records = append(records, attendance.DailyRecord{
			EmployeeID:   block.id,
			EmployeeName: block.name,
			Date:         dateKey,
			Status:       status,
			Worked:       worked,
			PunchCount:   len(punches),
			PunchInfo:    info,
		})
	}
	return records
}

// detectHeaderRow finds the row carrying the day-number columns. Preferred
// marker is an "Employee ID"/"Employee Name" cell; the fallback is any row
// with at least five day-number cells; failing both, row 3 (exports put two
// title rows and a blank above the header).
func detectHeaderRow(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			c := strings.ToLower(strings.TrimSpace(cell))
			if c == "employee id" || c == "employee name" {
				return i
			}
		}
	}

	for i, row := range rows {
		if len(mapDayColumns(row)) >= 5 {
			return i
		}
	}

	if len(rows) > 3 {
		return 3
	}
	return 0
}

// mapDayColumns maps day-of-month to column index for every header cell that
// parses as an integer 1..31.
func mapDayColumns(header []string) map[int]int {
	columns := make(map[int]int)
	for col, cell := range header {
		day, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			if f, ferr := strconv.ParseFloat(strings.TrimSpace(cell), 64); ferr == nil && f == float64(int(f)) {
				day = int(f)
			} else {
				continue
			}
		}
		if day >= 1 && day <= 31 {
			columns[day] = col
		}
	}
	return columns
}

// extractEmployeeBlocks walks the data rows pairing each "ID:" identity row
// with the punch row beneath it.
func extractEmployeeBlocks(rows [][]string, dayColumns map[int]int) []employeeBlock {
	var blocks []employeeBlock

	for i := 0; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || !strings.EqualFold(strings.TrimSpace(row[0]), "ID:") {
			continue
		}

		id := identityCell(row, 2)
		name := identityCell(row, 10)
		if id == "" || name == "" || i+1 >= len(rows) {
			continue
		}

		punchRow := rows[i+1]
		punches := make(map[int]string, len(dayColumns))
		for day, col := range dayColumns {
			if col < len(punchRow) {
				punches[day] = punchRow[col]
			}
		}

		blocks = append(blocks, employeeBlock{id: normalizeID(id), name: name, punches: punches})
		i++ // skip the punch row
	}

	return blocks
}

func identityCell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// normalizeID strips a float suffix so "5.0" and "5" key identically.
func normalizeID(raw string) string {
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return raw
}
