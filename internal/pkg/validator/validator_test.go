package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_id", Message: "is required"},
		{Field: "date", Message: "must be YYYY-MM-DD"},
	}

	assert.Equal(t, "employee_id: is required; date: must be YYYY-MM-DD", errs.Error())
	assert.Equal(t, map[string]string{
		"employee_id": "is required",
		"date":        "must be YYYY-MM-DD",
	}, errs.ToMap())
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-06-01")
	assert.True(t, ok)

	_, ok = IsValidDate("2024-13-01")
	assert.False(t, ok)

	_, ok = IsValidDate("01/06/2024")
	assert.False(t, ok)
}

func TestIsSafeFilename(t *testing.T) {
	assert.True(t, IsSafeFilename("Attendance_Report_June_2024.xlsx"))
	assert.False(t, IsSafeFilename("../secrets.txt"))
	assert.False(t, IsSafeFilename("dir/file.xlsx"))
	assert.False(t, IsSafeFilename(`dir\file.xlsx`))
	assert.False(t, IsSafeFilename(""))
}

func TestIsValidMonthKey(t *testing.T) {
	assert.True(t, IsValidMonthKey("June 2024"))
	assert.False(t, IsValidMonthKey("   "))
}
