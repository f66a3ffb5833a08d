package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("dateReceived", "2025-01-05")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDate("dateReceived", "2025-01-05T08:30:00+08:00")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 30, 0, 0, time.UTC), *got)

	got, err = ParseDate("dateReceived", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDate("dateReceived", "not-a-date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dateReceived")
}

func TestParseOptionalNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want *float64
		fail bool
	}{
		{raw: `5`, want: f(5)},
		{raw: `3.5`, want: f(3.5)},
		{raw: `"7"`, want: f(7)},
		{raw: `""`, want: nil},
		{raw: `null`, want: nil},
		{raw: ``, want: nil},
		{raw: `"abc"`, fail: true},
		{raw: `[1]`, fail: true},
	}
	for _, tc := range cases {
		got, err := ParseOptionalNumber("targetDays", json.RawMessage(tc.raw))
		if tc.fail {
			assert.Error(t, err, "raw %q", tc.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tc.raw)
		if tc.want == nil {
			assert.Nil(t, got, "raw %q", tc.raw)
		} else {
			require.NotNil(t, got, "raw %q", tc.raw)
			assert.Equal(t, *tc.want, *got, "raw %q", tc.raw)
		}
	}
}

func TestParseTicketPatchAllowList(t *testing.T) {
	patch, err := ParseTicketPatch([]byte(`{
		"status": "Released",
		"remarks": "rush",
		"targetDays": "3",
		"dateRelease": "2025-01-10",
		"_id": "should-be-ignored",
		"ref": "should-be-ignored",
		"processingDays": 99
	}`))
	require.NoError(t, err)

	require.NotNil(t, patch.Status)
	assert.Equal(t, "Released", *patch.Status)
	require.NotNil(t, patch.Remarks)
	assert.Equal(t, "rush", *patch.Remarks)
	assert.True(t, patch.TargetDaysSet)
	require.NotNil(t, patch.TargetDays)
	assert.Equal(t, 3.0, *patch.TargetDays)
	assert.True(t, patch.DateReleaseSet)
	require.NotNil(t, patch.DateRelease)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), *patch.DateRelease)
}

func TestParseTicketPatchNullAndEmpty(t *testing.T) {
	// null clears a date; empty string counts as not supplied.
	patch, err := ParseTicketPatch([]byte(`{"dateRelease": null, "scheduleRelease": ""}`))
	require.NoError(t, err)
	assert.True(t, patch.DateReleaseSet)
	assert.Nil(t, patch.DateRelease)
	assert.False(t, patch.ScheduleReleaseSet)

	// null on a string field clears it to empty.
	patch, err = ParseTicketPatch([]byte(`{"remarks": null}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Remarks)
	assert.Equal(t, "", *patch.Remarks)
}

func TestParseTicketPatchInvalidBody(t *testing.T) {
	_, err := ParseTicketPatch([]byte(`[1,2,3]`))
	require.Error(t, err)
	assert.Equal(t, "Invalid JSON body", err.Error())

	_, err = ParseTicketPatch([]byte(`{"dateRelease": "not-a-date"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dateRelease")
}

func f(v float64) *float64 { return &v }
