package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var scoreToday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func scoreDiscipline() *Discipline {
	return &Discipline{UID: "disc-1", Name: "Anatomy", Weight: 2}
}

func TestScoreBaseComponents(t *testing.T) {
	discipline := scoreDiscipline()
	unit := &Unit{UID: "u1", Difficulty: 3, Incidence: IncidenceMedium, Confidence: 3}

	// 2*20 + 3*5 + 5 + (6-3)*10 + 1000 (never studied)
	assert.InDelta(t, 40+15+5+30+1000, Score(unit, discipline, nil, scoreToday), 1e-9)
}

func TestScoreConfidenceDefaultsToMid(t *testing.T) {
	discipline := scoreDiscipline()
	unset := &Unit{UID: "u1", Difficulty: 1, Incidence: IncidenceLow}
	mid := &Unit{UID: "u2", Difficulty: 1, Incidence: IncidenceLow, Confidence: 3}

	assert.Equal(t, Score(mid, discipline, nil, scoreToday), Score(unset, discipline, nil, scoreToday))
}

func TestScoreUnstudiedBeatsRecentlyStudied(t *testing.T) {
	discipline := scoreDiscipline()
	unstudied := &Unit{UID: "u1", Difficulty: 3, Incidence: IncidenceHigh, Confidence: 3}
	recent := &Unit{UID: "u2", Difficulty: 3, Incidence: IncidenceHigh, Confidence: 3,
		LastStudied: "2026-02-28", History: []ReviewLog{{Date: "2026-02-28", Confidence: 3}}}

	assert.Greater(t, Score(unstudied, discipline, nil, scoreToday), Score(recent, discipline, nil, scoreToday))
}

func TestScoreRecencyBrackets(t *testing.T) {
	discipline := scoreDiscipline()
	base := 40.0 + 15 + 5 + 30 // weight, difficulty 3, medium, confidence 3

	tests := []struct {
		name        string
		lastStudied string
		want        float64
	}{
		{"studied 2 days ago", "2026-02-27", base * 0.1},
		{"studied 5 days ago", "2026-02-24", base * 0.5},
		{"studied 15 days ago", "2026-02-14", base + 15},
		{"studied 40 days ago", "2026-01-20", base + 50},
		{"studied 100 days ago", "2025-11-21", base + 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &Unit{UID: "u", Difficulty: 3, Incidence: IncidenceMedium, Confidence: 3, LastStudied: tt.lastStudied}
			assert.InDelta(t, tt.want, Score(unit, discipline, nil, scoreToday), 1e-9)
		})
	}
}

func TestScoreExamPhases(t *testing.T) {
	group1 := &Discipline{UID: "g1", Weight: 1}
	group2 := &Discipline{UID: "g2", Weight: 1}
	phases := []ExamPhase{
		{ExamDate: "2026-04-01", DisciplineUIDs: []string{"g1"}, Boost: 150},
		{ExamDate: "2026-06-01", DisciplineUIDs: []string{"g2"}, Boost: 500},
	}
	unit := func() *Unit { return &Unit{UID: "u", Difficulty: 1, Incidence: IncidenceLow, Confidence: 3} }
	raw := 20.0 + 5 + 1 + 30 + UnstudiedBonus

	// Before the first exam: its group gets the boost, the later group nothing.
	before := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, raw+150, Score(unit(), group1, phases, before), 1e-9)
	assert.InDelta(t, raw, Score(unit(), group2, phases, before), 1e-9)

	// Between exams: group 2 boosted, group 1 collapsed.
	between := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, raw*0.01, Score(unit(), group1, phases, between), 1e-9)
	assert.InDelta(t, raw+500, Score(unit(), group2, phases, between), 1e-9)

	// After the final exam: no adjustment for anyone.
	after := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, raw, Score(unit(), group1, phases, after), 1e-9)
	assert.InDelta(t, raw, Score(unit(), group2, phases, after), 1e-9)
}

func TestTierOf(t *testing.T) {
	assert.Equal(t, TierLow, TierOf(0))
	assert.Equal(t, TierLow, TierOf(59.9))
	assert.Equal(t, TierMedium, TierOf(60))
	assert.Equal(t, TierMedium, TierOf(119.9))
	assert.Equal(t, TierHigh, TierOf(120))
	assert.Equal(t, TierHigh, TierOf(1100))
}
