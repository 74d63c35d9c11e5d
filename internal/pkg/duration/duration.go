// Package duration holds worked time as whole minutes and converts it to and
// from the "H:MM" form used across attendance reports. Decimal hours exist only
// at the salary boundary; storing them loses minutes, so nothing here persists
// them.
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Duration is a non-negative span of time in minutes.
type Duration int

var (
	ErrMissingColon   = errors.New("duration must be in H:MM form")
	ErrNotNumeric     = errors.New("duration parts must be numeric")
	ErrMinutesRange   = errors.New("minutes must be between 0 and 59")
	ErrNegativeHours  = errors.New("hours must not be negative")
)

// Parse converts an "H:MM" string into a Duration. Hours are unbounded,
// minutes must be in [0,59]. Malformed input is an error; callers that want
// the legacy zero-on-error behavior use ParseLenient.
func Parse(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse %q: %w", s, ErrMissingColon)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, ErrNotNumeric)
	}
	if hours < 0 {
		return 0, fmt.Errorf("parse %q: %w", s, ErrNegativeHours)
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, ErrNotNumeric)
	}
	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse %q: %w", s, ErrMinutesRange)
	}

	return Duration(hours*60 + minutes), nil
}

// ParseLenient accepts "H:MM", a bare decimal-hours number ("8.5"), or
// garbage, returning zero for anything it cannot read. Only ingestion paths
// that must tolerate legacy data use this; zero means "unset" there.
func ParseLenient(s string) Duration {
	if d, err := Parse(s); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && f >= 0 {
		return FromHours(f)
	}
	return 0
}

// Format renders a duration as "H:MM". Negative values are formatted by
// absolute value; a Duration should never be negative in the first place.
func Format(d Duration) string {
	m := int(d)
	if m < 0 {
		m = -m
	}
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

func (d Duration) String() string { return Format(d) }

// Minutes returns the raw minute count.
func (d Duration) Minutes() int { return int(d) }

// Add returns the minute-sum of two durations.
func Add(a, b Duration) Duration { return a + b }

// Sum folds Add over the zero duration.
func Sum(ds []Duration) Duration {
	var total Duration
	for _, d := range ds {
		total = Add(total, d)
	}
	return total
}

// Scale multiplies a duration by a factor, rounding to the nearest minute.
func Scale(d Duration, factor float64) Duration {
	return Duration(math.Round(float64(d) * factor))
}

// FromHours converts decimal hours to a Duration, rounding to the nearest
// minute.
func FromHours(hours float64) Duration {
	return Duration(math.Round(hours * 60))
}

// DecimalHours converts the duration to fractional hours for salary
// arithmetic. Never store the result; round-tripping through decimal hours is
// lossy for most minute values.
func (d Duration) DecimalHours() decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(decimal.NewFromInt(60))
}

// MarshalJSON emits the canonical "H:MM" string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(Format(d))), nil
}

// UnmarshalJSON accepts either the canonical "H:MM" string or a bare number
// of decimal hours. The number form exists because older stored documents
// persisted decimal hours; new writes always use the string form.
func (d *Duration) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*d = ParseLenient(unquoted)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("duration: cannot unmarshal %s", s)
	}
	*d = FromHours(f)
	return nil
}
