package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func fp(f float64) *float64 { return &f }

func TestComputeTimeliness(t *testing.T) {
	tests := []struct {
		name      string
		received  *time.Time
		released  *time.Time
		target    *float64
		wantDays  *int
		wantLabel string
	}{
		{
			name:      "missing release date",
			received:  ts("2025-01-01T00:00:00Z"),
			released:  nil,
			wantDays:  nil,
			wantLabel: "",
		},
		{
			name:      "missing receipt date",
			received:  nil,
			released:  ts("2025-01-05T00:00:00Z"),
			wantDays:  nil,
			wantLabel: "",
		},
		{
			name:      "same day no target",
			received:  ts("2025-01-01T08:00:00Z"),
			released:  ts("2025-01-01T16:00:00Z"),
			wantDays:  ip(0),
			wantLabel: "On time",
		},
		{
			name:      "four whole days no target",
			received:  ts("2025-01-01T00:00:00Z"),
			released:  ts("2025-01-05T00:00:00Z"),
			wantDays:  ip(4),
			wantLabel: "Delayed (4 days)",
		},
		{
			name:      "partial day floors down",
			received:  ts("2025-01-01T12:00:00Z"),
			released:  ts("2025-01-05T11:59:59Z"),
			wantDays:  ip(3),
			wantLabel: "Delayed (3 days)",
		},
		{
			name:      "release before receipt clamps to zero",
			received:  ts("2025-01-10T00:00:00Z"),
			released:  ts("2025-01-05T00:00:00Z"),
			wantDays:  ip(0),
			wantLabel: "On time",
		},
		{
			name:      "within target",
			received:  ts("2025-01-01T00:00:00Z"),
			released:  ts("2025-01-05T00:00:00Z"),
			target:    fp(5),
			wantDays:  ip(4),
			wantLabel: "On time",
		},
		{
			name:      "exactly on target",
			received:  ts("2025-01-01T00:00:00Z"),
			released:  ts("2025-01-05T00:00:00Z"),
			target:    fp(4),
			wantDays:  ip(4),
			wantLabel: "On time",
		},
		{
			name:      "past target counts the overshoot",
			received:  ts("2025-01-01T00:00:00Z"),
			released:  ts("2025-01-08T00:00:00Z"),
			target:    fp(3),
			wantDays:  ip(7),
			wantLabel: "Delayed (4 days)",
		},
		{
			name:      "zero target same day",
			received:  ts("2025-01-01T00:00:00Z"),
			released:  ts("2025-01-01T06:00:00Z"),
			target:    fp(0),
			wantDays:  ip(0),
			wantLabel: "On time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, label := ComputeTimeliness(tt.received, tt.released, tt.target)
			if tt.wantDays == nil {
				assert.Nil(t, days)
			} else {
				require.NotNil(t, days)
				assert.Equal(t, *tt.wantDays, *days)
			}
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestComputeTimelinessIdempotent(t *testing.T) {
	ticket := &Ticket{
		DateReceived: ts("2025-03-03T00:00:00Z"),
		DateRelease:  ts("2025-03-10T00:00:00Z"),
		TargetDays:   fp(5),
	}
	ticket.Recompute()
	firstDays, firstLabel := ticket.ProcessingDays, ticket.Timeliness
	ticket.Recompute()
	require.NotNil(t, ticket.ProcessingDays)
	assert.Equal(t, *firstDays, *ticket.ProcessingDays)
	assert.Equal(t, firstLabel, ticket.Timeliness)
	assert.Equal(t, 7, *ticket.ProcessingDays)
	assert.Equal(t, "Delayed (2 days)", ticket.Timeliness)
}

func TestEffectiveProcessingDays(t *testing.T) {
	stored := 9
	withStored := &Ticket{ProcessingDays: &stored}
	require.NotNil(t, withStored.EffectiveProcessingDays())
	assert.Equal(t, 9, *withStored.EffectiveProcessingDays())

	computed := &Ticket{
		DateReceived: ts("2025-01-01T00:00:00Z"),
		DateRelease:  ts("2025-01-03T00:00:00Z"),
	}
	require.NotNil(t, computed.EffectiveProcessingDays())
	assert.Equal(t, 2, *computed.EffectiveProcessingDays())

	unknown := &Ticket{DateReceived: ts("2025-01-01T00:00:00Z")}
	assert.Nil(t, unknown.EffectiveProcessingDays())
}

func ip(n int) *int { return &n }
