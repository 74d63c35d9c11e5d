package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
	"github.com/blackhole-hr/attendance-backend-go/internal/domain/workspace"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/database"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
)

type workspaceRepository struct {
	db *database.DB
}

func NewWorkspaceRepository(db *database.DB) workspace.Repository {
	return &workspaceRepository{db: db}
}

func (r *workspaceRepository) Load(ctx context.Context, userID string) (*workspace.Workspace, error) {
	ws := workspace.New()

	if err := r.loadReport(ctx, userID, ws); err != nil {
		return nil, err
	}
	if err := r.loadManualEmployees(ctx, userID, ws); err != nil {
		return nil, err
	}
	if err := r.loadHourRates(ctx, userID, ws); err != nil {
		return nil, err
	}
	if err := r.loadConfirmed(ctx, userID, ws); err != nil {
		return nil, err
	}
	if err := r.loadFinalized(ctx, userID, ws); err != nil {
		return nil, err
	}
	if err := r.loadPaid(ctx, userID, ws); err != nil {
		return nil, err
	}

	return ws, nil
}

func (r *workspaceRepository) loadReport(ctx context.Context, userID string, ws *workspace.Workspace) error {
	query := `
		SELECT document
		FROM attendance_reports
		WHERE user_id = $1
		ORDER BY year DESC, month DESC
		LIMIT 1
	`

	var document []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&document)
	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	var report attendance.Report
	if err := json.Unmarshal(document, &report); err != nil {
		return fmt.Errorf("failed to decode report document: %w", err)
	}
	ws.Report = &report
	return nil
}

func (r *workspaceRepository) loadManualEmployees(ctx context.Context, userID string, ws *workspace.Workspace) error {
	query := `
		SELECT employee_id, employee_name, total_minutes,
		       present_days, absent_days, auto_assigned_days, daily_records
		FROM manual_users
		WHERE user_id = $1
		ORDER BY employee_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to load manual users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var emp attendance.EmployeeSummary
		var totalMinutes int
		var dailyRecords []byte
		if err := rows.Scan(
			&emp.EmployeeID, &emp.EmployeeName, &totalMinutes,
			&emp.PresentDays, &emp.AbsentDays, &emp.AutoAssignedDays, &dailyRecords,
		); err != nil {
			return fmt.Errorf("failed to scan manual user: %w", err)
		}
		emp.TotalDuration = duration.Duration(totalMinutes)
		emp.IsManual = true

		var records []attendance.DailyRecord
		if len(dailyRecords) > 0 {
			if err := json.Unmarshal(dailyRecords, &records); err != nil {
				return fmt.Errorf("failed to decode daily records for %s: %w", emp.EmployeeID, err)
			}
		}

		ws.ManualEmployees = append(ws.ManualEmployees, emp)
		ws.ManualDailyRecords[emp.EmployeeID] = records
	}
	return rows.Err()
}

func (r *workspaceRepository) loadHourRates(ctx context.Context, userID string, ws *workspace.Workspace) error {
	query := `SELECT employee_id, hour_rate FROM hour_rates WHERE user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to load hour rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var employeeID string
		var rate decimal.Decimal
		if err := rows.Scan(&employeeID, &rate); err != nil {
			return fmt.Errorf("failed to scan hour rate: %w", err)
		}
		ws.HourRates[employeeID] = rate
	}
	return rows.Err()
}

func (r *workspaceRepository) loadConfirmed(ctx context.Context, userID string, ws *workspace.Workspace) error {
	query := `
		SELECT employee_id, employee_name, total_minutes, hour_rate, salary, confirmed_at
		FROM confirmed_salaries
		WHERE user_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to load confirmed salaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec salary.Record
		var totalMinutes int
		if err := rows.Scan(
			&rec.EmployeeID, &rec.EmployeeName, &totalMinutes,
			&rec.HourRate, &rec.Salary, &rec.ConfirmedAt,
		); err != nil {
			return fmt.Errorf("failed to scan confirmed salary: %w", err)
		}
		rec.TotalDuration = duration.Duration(totalMinutes)
		ws.Confirmed = append(ws.Confirmed, rec)
	}
	return rows.Err()
}

func (r *workspaceRepository) loadFinalized(ctx context.Context, userID string, ws *workspace.Workspace) error {
	query := `
		SELECT id, month_key, month, year, finalized_at, total_salary, employees
		FROM finalized_salaries
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to load finalized salaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket salary.MonthBucket
		var employees []byte
		if err := rows.Scan(
			&bucket.ID, &bucket.MonthKey, &bucket.Month, &bucket.Year,
			&bucket.FinalizedAt, &bucket.TotalSalary, &employees,
		); err != nil {
			return fmt.Errorf("failed to scan finalized salary: %w", err)
		}
		if len(employees) > 0 {
			if err := json.Unmarshal(employees, &bucket.Employees); err != nil {
				return fmt.Errorf("failed to decode bucket employees for %s: %w", bucket.MonthKey, err)
			}
		}
		ws.Finalized[bucket.MonthKey] = bucket
	}
	return rows.Err()
}

func (r *workspaceRepository) loadPaid(ctx context.Context, userID string, ws *workspace.Workspace) error {
	query := `SELECT month_key, employee_ids FROM paid_employees WHERE user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to load paid employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var monthKey string
		var ids []string
		if err := rows.Scan(&monthKey, &ids); err != nil {
			return fmt.Errorf("failed to scan paid employees: %w", err)
		}
		ws.Paid[monthKey] = ids
	}
	return rows.Err()
}

func (r *workspaceRepository) SaveReport(ctx context.Context, userID string, report *attendance.Report) error {
	document, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report document: %w", err)
	}

	query := `
		INSERT INTO attendance_reports (user_id, year, month, document, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, year, month) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = NOW()
	`

	return r.inTx(ctx, func(tx pgx.Tx) error {
		// One active document per user; other months are stale uploads.
		if _, err := tx.Exec(ctx,
			`DELETE FROM attendance_reports WHERE user_id = $1 AND (year <> $2 OR month <> $3)`,
			userID, report.Year, report.Month,
		); err != nil {
			return fmt.Errorf("failed to clear stale reports: %w", err)
		}
		if _, err := tx.Exec(ctx, query, userID, report.Year, report.Month, document); err != nil {
			return fmt.Errorf("failed to upsert report: %w", err)
		}
		return nil
	})
}

func (r *workspaceRepository) ClearReports(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM attendance_reports WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear reports: %w", err)
	}
	return nil
}

func (r *workspaceRepository) SaveManualEmployees(ctx context.Context, userID string, employees []attendance.EmployeeSummary, records map[string][]attendance.DailyRecord) error {
	query := `
		INSERT INTO manual_users (
			user_id, employee_id, employee_name, total_minutes,
			present_days, absent_days, auto_assigned_days, daily_records
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM manual_users WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear manual users: %w", err)
		}
		for _, emp := range employees {
			dailyRecords, err := json.Marshal(records[emp.EmployeeID])
			if err != nil {
				return fmt.Errorf("failed to encode daily records for %s: %w", emp.EmployeeID, err)
			}
			if _, err := tx.Exec(ctx, query,
				userID, emp.EmployeeID, emp.EmployeeName, emp.TotalDuration.Minutes(),
				emp.PresentDays, emp.AbsentDays, emp.AutoAssignedDays, dailyRecords,
			); err != nil {
				return fmt.Errorf("failed to insert manual user %s: %w", emp.EmployeeID, err)
			}
		}
		return nil
	})
}

func (r *workspaceRepository) SaveHourRates(ctx context.Context, userID string, rates map[string]decimal.Decimal) error {
	query := `INSERT INTO hour_rates (user_id, employee_id, hour_rate) VALUES ($1, $2, $3)`

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM hour_rates WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear hour rates: %w", err)
		}
		for employeeID, rate := range rates {
			if _, err := tx.Exec(ctx, query, userID, employeeID, rate); err != nil {
				return fmt.Errorf("failed to insert hour rate for %s: %w", employeeID, err)
			}
		}
		return nil
	})
}

func (r *workspaceRepository) SaveConfirmed(ctx context.Context, userID string, confirmed []salary.Record) error {
	query := `
		INSERT INTO confirmed_salaries (
			user_id, position, employee_id, employee_name,
			total_minutes, hour_rate, salary, confirmed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM confirmed_salaries WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear confirmed salaries: %w", err)
		}
		for i, rec := range confirmed {
			if _, err := tx.Exec(ctx, query,
				userID, i, rec.EmployeeID, rec.EmployeeName,
				rec.TotalDuration.Minutes(), rec.HourRate, rec.Salary, rec.ConfirmedAt,
			); err != nil {
				return fmt.Errorf("failed to insert confirmed salary for %s: %w", rec.EmployeeID, err)
			}
		}
		return nil
	})
}

func (r *workspaceRepository) SaveFinalized(ctx context.Context, userID string, buckets map[string]salary.MonthBucket) error {
	query := `
		INSERT INTO finalized_salaries (
			user_id, id, month_key, month, year, finalized_at, total_salary, employees
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM finalized_salaries WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear finalized salaries: %w", err)
		}
		for _, bucket := range buckets {
			employees, err := json.Marshal(bucket.Employees)
			if err != nil {
				return fmt.Errorf("failed to encode bucket employees for %s: %w", bucket.MonthKey, err)
			}
			if _, err := tx.Exec(ctx, query,
				userID, bucket.ID, bucket.MonthKey, bucket.Month, bucket.Year,
				bucket.FinalizedAt, bucket.TotalSalary, employees,
			); err != nil {
				return fmt.Errorf("failed to insert finalized salary %s: %w", bucket.MonthKey, err)
			}
		}
		return nil
	})
}

func (r *workspaceRepository) SavePaid(ctx context.Context, userID string, paid map[string][]string) error {
	query := `INSERT INTO paid_employees (user_id, month_key, employee_ids) VALUES ($1, $2, $3)`

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM paid_employees WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear paid employees: %w", err)
		}
		for monthKey, ids := range paid {
			if _, err := tx.Exec(ctx, query, userID, monthKey, ids); err != nil {
				return fmt.Errorf("failed to insert paid employees for %s: %w", monthKey, err)
			}
		}
		return nil
	})
}

func (r *workspaceRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
