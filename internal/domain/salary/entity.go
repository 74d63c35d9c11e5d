package salary

import (
	"time"

	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
	"github.com/shopspring/decimal"
)

// Record is one confirmed salary snapshot. It is computed from the summary
// and rate at confirmation time; later rate changes do not touch it.
type Record struct {
	EmployeeID    string            `json:"employee_id"`
	EmployeeName  string            `json:"employee_name"`
	TotalDuration duration.Duration `json:"total_hours"`
	HourRate      decimal.Decimal   `json:"hour_rate"`
	Salary        decimal.Decimal   `json:"salary"`
	ConfirmedAt   time.Time         `json:"confirmed_at"`
}

// Compute derives the salary from fractional hours times the hourly rate.
func Compute(total duration.Duration, rate decimal.Decimal) decimal.Decimal {
	return total.DecimalHours().Mul(rate)
}

// MonthBucket archives the finalized salaries of one calendar month.
type MonthBucket struct {
	ID          string          `json:"id"`
	MonthKey    string          `json:"month_key"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	FinalizedAt time.Time       `json:"finalized_at"`
	Employees   []Record        `json:"employees"`
	TotalSalary decimal.Decimal `json:"total_salary"`
}

// Merge upserts records into the bucket by employee id, new snapshot wins,
// and recomputes the total.
func (b *MonthBucket) Merge(records []Record) {
	for _, rec := range records {
		replaced := false
		for i := range b.Employees {
			if b.Employees[i].EmployeeID == rec.EmployeeID {
				b.Employees[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			b.Employees = append(b.Employees, rec)
		}
	}
	b.RecomputeTotal()
}

// RecomputeTotal restores the bucket invariant
// TotalSalary == sum of employee salaries.
func (b *MonthBucket) RecomputeTotal() {
	total := decimal.Zero
	for _, rec := range b.Employees {
		total = total.Add(rec.Salary)
	}
	b.TotalSalary = total
}
