package attendance

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"", StatusUnknown},
		{"Present", StatusPresent},
		{"present", StatusPresent},
		{"Absent", StatusAbsent},
		{"Work From Home", StatusWorkFromHome},
		{"wfh", StatusWorkFromHome},
		{"System Assigned – Missing Punch-Out", StatusMissingPunchOut},
		{"Punch Error – Auto Assigned", StatusPunchError},
		{"Admin Assigned", StatusAdminAssigned},
		{"admin selected", StatusAdminAssigned},
		{"Auto Assigned", StatusAutoAssigned},
		{"something else", StatusUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonicalize(tt.raw), "raw %q", tt.raw)
	}
}

func TestClassifyDay(t *testing.T) {
	eight := duration.Duration(8 * 60)

	tests := []struct {
		name   string
		status Status
		worked duration.Duration
		want   DayClass
	}{
		{"present with hours", StatusPresent, eight, ClassPresent},
		{"positive hours alone count present", StatusUnknown, eight, ClassPresent},
		{"absent", StatusAbsent, 0, ClassAbsent},
		{"zero hours count absent", StatusUnknown, 0, ClassAbsent},
		{"present label with zero hours is absent", StatusPresent, 0, ClassAbsent},
		{"wfh is auto assigned", StatusWorkFromHome, eight, ClassAutoAssigned},
		{"admin assigned", StatusAdminAssigned, eight, ClassAutoAssigned},
		{"missing punch-out", StatusMissingPunchOut, eight, ClassAutoAssigned},
		{"punch error", StatusPunchError, eight, ClassAutoAssigned},
		{"assigned family wins over zero hours", StatusAdminAssigned, 0, ClassAutoAssigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDay(tt.status, tt.worked))
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []DailyRecord{
		{Date: "2024-06-03", Status: StatusPresent, Worked: 8*60 + 30},
		{Date: "2024-06-04", Status: StatusAbsent, Worked: 0},
		{Date: "2024-06-05", Status: StatusWorkFromHome, Worked: 8 * 60},
	}

	row := Summarize("7", "Alice", false, records)
	assert.Equal(t, duration.Duration(16*60+30), row.TotalDuration)
	assert.Equal(t, 1, row.PresentDays)
	assert.Equal(t, 1, row.AbsentDays)
	assert.Equal(t, 1, row.AutoAssignedDays)
	assert.False(t, row.IsManual)
}

func TestComputeStatistics(t *testing.T) {
	summaries := []EmployeeSummary{
		{EmployeeID: "1", TotalDuration: 10 * 60, PresentDays: 2},
		{EmployeeID: "2", TotalDuration: 6 * 60, PresentDays: 1, AbsentDays: 1},
	}

	stats := ComputeStatistics(summaries, 4)
	assert.Equal(t, 2, stats.TotalEmployees)
	assert.Equal(t, 4, stats.TotalRecords)
	assert.Equal(t, 3, stats.PresentDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.True(t, stats.TotalHours.Equal(decimal.NewFromInt(16)))
	assert.True(t, stats.AvgHoursPerEmployee.Equal(decimal.NewFromInt(8)))
	assert.True(t, stats.AvgPresentDays.Equal(decimal.RequireFromString("1.5")))
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil, 0)
	assert.Equal(t, 0, stats.TotalEmployees)
	assert.True(t, stats.AvgHoursPerEmployee.IsZero())
	assert.True(t, stats.AvgPresentDays.IsZero())
}

func TestFlexibleIDUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"abc"`, "abc"},
		{`" 5 "`, "5"},
		{`5`, "5"},
		{`5.0`, "5"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id FlexibleID
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &id), "raw %s", tt.raw)
		assert.Equal(t, tt.want, id.String(), "raw %s", tt.raw)
	}
}

func TestParseDateKey(t *testing.T) {
	key, err := ParseDateKey("2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", key)

	_, err = ParseDateKey("03/06/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
