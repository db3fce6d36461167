package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cadenceSettings() *Settings {
	return &Settings{
		AutoReview:        true,
		BaseCadence:       []int{1, 3, 7},
		ConfidenceFactors: ConfidenceFactors{Low: 0.5, High: 1.5},
	}
}

func singleUnitTree(unit *Unit) []*Discipline {
	return []*Discipline{{
		UID: "d1", Name: "Physiology", Weight: 1,
		Topics: []*Topic{{UID: "t1", Name: "Cardio", Units: []*Unit{unit}}},
	}}
}

func TestBuildReviewTasksFirstReviewUsesLowFactor(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	unit := &Unit{
		UID: "u1", Name: "Heart cycle", LastStudied: "2026-03-01",
		History: []ReviewLog{{Date: "2026-03-01", Confidence: 1}},
	}

	due := BuildReviewTasks(singleUnitTree(unit), cadenceSettings(), today)
	require.Len(t, due, 1)
	// round(1 * 0.5) rounds half away from zero to 1
	assert.Equal(t, "2026-03-02", due[0].DueDate)
	assert.Equal(t, "u1", due[0].Unit.UID)
}

func TestBuildReviewTasksConfidenceScaling(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	settings := cadenceSettings()

	tests := []struct {
		name    string
		history []ReviewLog
		wantDue string
	}{
		{
			"second review, neutral confidence",
			[]ReviewLog{{Date: "2026-02-20", Confidence: 3}, {Date: "2026-03-01", Confidence: 3}},
			"2026-03-04", // base 3, factor 1
		},
		{
			"second review, high confidence pushes out",
			[]ReviewLog{{Date: "2026-02-20", Confidence: 3}, {Date: "2026-03-01", Confidence: 5}},
			"2026-03-06", // round(3 * 1.5) = 5
		},
		{
			"third review, low confidence pulls in",
			[]ReviewLog{{Date: "2026-02-01", Confidence: 3}, {Date: "2026-02-15", Confidence: 3}, {Date: "2026-03-01", Confidence: 2}},
			"2026-03-05", // round(7 * 0.5) = 4
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &Unit{UID: "u1", LastStudied: "2026-03-01", History: tt.history}
			due := BuildReviewTasks(singleUnitTree(unit), settings, today)
			require.Len(t, due, 1)
			assert.Equal(t, tt.wantDue, due[0].DueDate)
		})
	}
}

func TestBuildReviewTasksCadenceExhausted(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	unit := &Unit{
		UID: "u1", LastStudied: "2026-03-01",
		History: []ReviewLog{
			{Date: "2026-01-01", Confidence: 3},
			{Date: "2026-01-15", Confidence: 3},
			{Date: "2026-02-01", Confidence: 3},
			{Date: "2026-03-01", Confidence: 3},
		},
	}

	// History length 4 exceeds the 3-step cadence: mastered, nothing due.
	assert.Empty(t, BuildReviewTasks(singleUnitTree(unit), cadenceSettings(), today))
}

func TestBuildReviewTasksSkipsUnstudied(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	unit := &Unit{UID: "u1", Name: "Fresh"}

	assert.Empty(t, BuildReviewTasks(singleUnitTree(unit), cadenceSettings(), today))
}

func TestBuildReviewTasksDropsPastDue(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	unit := &Unit{
		UID: "u1", LastStudied: "2026-02-01",
		History: []ReviewLog{{Date: "2026-02-01", Confidence: 3}},
	}

	// Due 2026-02-02, long elapsed: dropped, not retroactively inserted.
	assert.Empty(t, BuildReviewTasks(singleUnitTree(unit), cadenceSettings(), today))
}

func TestBuildReviewTasksDisabled(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	settings := cadenceSettings()
	settings.AutoReview = false
	unit := &Unit{
		UID: "u1", LastStudied: "2026-03-01",
		History: []ReviewLog{{Date: "2026-03-01", Confidence: 3}},
	}

	assert.Empty(t, BuildReviewTasks(singleUnitTree(unit), settings, today))
}
