package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
)

func TestCompute(t *testing.T) {
	// 8:30 at 100/h = 850.
	got := Compute(duration.Duration(8*60+30), decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(850)), "got %s", got)

	got = Compute(0, decimal.NewFromInt(100))
	assert.True(t, got.IsZero())
}

func TestMonthBucketMerge(t *testing.T) {
	bucket := MonthBucket{MonthKey: "June 2024", Month: 6, Year: 2024}

	bucket.Merge([]Record{
		{EmployeeID: "1", Salary: decimal.NewFromInt(500), ConfirmedAt: time.Now()},
	})
	assert.Len(t, bucket.Employees, 1)
	assert.True(t, bucket.TotalSalary.Equal(decimal.NewFromInt(500)))

	// A new snapshot for the same employee replaces, a new employee appends.
	bucket.Merge([]Record{
		{EmployeeID: "1", Salary: decimal.NewFromInt(600)},
		{EmployeeID: "2", Salary: decimal.NewFromInt(300)},
	})
	assert.Len(t, bucket.Employees, 2)
	assert.True(t, bucket.TotalSalary.Equal(decimal.NewFromInt(900)), "got %s", bucket.TotalSalary)
}

func TestRecomputeTotal(t *testing.T) {
	bucket := MonthBucket{
		Employees: []Record{
			{EmployeeID: "1", Salary: decimal.NewFromInt(100)},
			{EmployeeID: "2", Salary: decimal.NewFromInt(250)},
		},
	}
	bucket.RecomputeTotal()
	assert.True(t, bucket.TotalSalary.Equal(decimal.NewFromInt(350)))
}
