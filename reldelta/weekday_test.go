package reldelta_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/delta-engine/reldelta"
)

func TestFreeConstructors(t *testing.T) {
	assert.Equal(t, reldelta.Weekday{Day: 0, N: 1}, reldelta.Monday())
	assert.Equal(t, reldelta.Weekday{Day: 4, N: 2}, reldelta.Friday(2))
	assert.Equal(t, reldelta.Weekday{Day: 6, N: -1}, reldelta.Sunday(-1))
}

func TestParseWeekdayCode(t *testing.T) {
	day, err := reldelta.ParseWeekdayCode("MO")
	require.NoError(t, err)
	assert.Equal(t, 0, day)

	day, err = reldelta.ParseWeekdayCode("su")
	require.NoError(t, err)
	assert.Equal(t, 6, day, "codes are case-insensitive")

	_, err = reldelta.ParseWeekdayCode("xx")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, reldelta.ErrInvalidWeekday))
	var codeErr *reldelta.WeekdayCodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "xx", codeErr.Code)
}

func TestNewWeekday_RangeValidation(t *testing.T) {
	_, err := reldelta.NewWeekday(7, 1)
	assert.Error(t, err)
	var numErr *reldelta.WeekdayNumberError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, 7, numErr.Value)

	_, err = reldelta.NewWeekday(-1, 1)
	assert.Error(t, err)
}

func TestResolveWeekday_Shapes(t *testing.T) {
	// GIVEN the four accepted input shapes
	// THEN all resolve to the same canonical value
	cases := []struct {
		name string
		in   any
		want reldelta.Weekday
	}{
		{"value", reldelta.Tuesday(), reldelta.Weekday{Day: 1, N: 1}},
		{"pointer", ptrWeekday(reldelta.Tuesday()), reldelta.Weekday{Day: 1, N: 1}},
		{"bare code", 1, reldelta.Weekday{Day: 1, N: 1}},
		{"bare string", "TU", reldelta.Weekday{Day: 1, N: 1}},
		{"pair string", []any{"TU", 3}, reldelta.Weekday{Day: 1, N: 3}},
		{"pair numeric", []any{float64(1), float64(-2)}, reldelta.Weekday{Day: 1, N: -2}},
		{"pair truncates n", []any{"TU", 2.9}, reldelta.Weekday{Day: 1, N: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := reldelta.ResolveWeekday(tc.in)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestResolveWeekday_Nil(t *testing.T) {
	got, err := reldelta.ResolveWeekday(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveWeekday_Invalid(t *testing.T) {
	for _, in := range []any{"xx", 7, []any{"MO", 1, 2}, []any{}, 3.5} {
		_, err := reldelta.ResolveWeekday(in)
		assert.Error(t, err, "input %v should be rejected", in)
	}
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "MO", reldelta.Monday().String())
	assert.Equal(t, "+2FR", reldelta.Friday(2).String())
	assert.Equal(t, "-1SU", reldelta.Sunday(-1).String())
}

func ptrWeekday(w reldelta.Weekday) *reldelta.Weekday { return &w }
