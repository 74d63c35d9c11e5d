package duration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want Duration
	}{
		{"0:00", 0},
		{"8:30", 510},
		{"08:05", 485},
		{"16:30", 990},
		{"100:59", 6059},
		{" 7:45 ", 465},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		in      string
		wantErr error
	}{
		{"830", ErrMissingColon},
		{"8:30:00", ErrMissingColon},
		{"", ErrMissingColon},
		{"x:30", ErrNotNumeric},
		{"8:yy", ErrNotNumeric},
		{"8:60", ErrMinutesRange},
		{"8:-1", ErrMinutesRange},
		{"-1:30", ErrNegativeHours},
	}

	for _, tc := range cases {
		_, err := Parse(tc.in)
		assert.ErrorIs(t, err, tc.wantErr, tc.in)
	}
}

func TestParseLenient(t *testing.T) {
	assert.Equal(t, Duration(510), ParseLenient("8:30"))
	assert.Equal(t, Duration(510), ParseLenient("8.5"))
	assert.Equal(t, Duration(0), ParseLenient("not a duration"))
	assert.Equal(t, Duration(0), ParseLenient(""))
}

func TestFormat_RoundTrip(t *testing.T) {
	// parse(format(m)) == m for every valid minute count.
	for m := 0; m <= 3*24*60; m++ {
		got, err := Parse(Format(Duration(m)))
		require.NoError(t, err)
		require.Equal(t, Duration(m), got)
	}
}

func TestFormat_Negative(t *testing.T) {
	assert.Equal(t, "8:30", Format(Duration(-510)))
}

func TestSum(t *testing.T) {
	ds := []Duration{510, 0, 480}
	assert.Equal(t, Duration(990), Sum(ds))
	assert.Equal(t, "16:30", Sum(ds).String())
	assert.Equal(t, Duration(0), Sum(nil))

	// Commutative: order does not matter.
	assert.Equal(t, Sum([]Duration{480, 510, 0}), Sum(ds))
}

func TestScale(t *testing.T) {
	assert.Equal(t, Duration(240), Scale(480, 0.5))
	assert.Equal(t, Duration(720), Scale(480, 1.5))
	// 90 * 0.333 = 29.97 -> rounds to 30
	assert.Equal(t, Duration(30), Scale(90, 0.333))
}

func TestDecimalHours(t *testing.T) {
	assert.Equal(t, "8.5", Duration(510).DecimalHours().String())
	assert.Equal(t, "10", Duration(600).DecimalHours().String())
	assert.True(t, Duration(0).DecimalHours().IsZero())
}

func TestFromHours(t *testing.T) {
	assert.Equal(t, Duration(510), FromHours(8.5))
	assert.Equal(t, Duration(485), FromHours(8.083333))
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(Duration(510))
	require.NoError(t, err)
	assert.Equal(t, `"8:30"`, string(b))

	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"16:30"`), &d))
	assert.Equal(t, Duration(990), d)

	// Legacy documents stored decimal hours as numbers.
	require.NoError(t, json.Unmarshal([]byte(`8.5`), &d))
	assert.Equal(t, Duration(510), d)
}
