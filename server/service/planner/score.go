package planner

import "time"

// Tier is the display band of a priority score.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Score computes the priority of a unit within its discipline for "today".
// Higher means more urgent. The heuristic is additive/multiplicative:
//
//	base       = discipline weight x 20
//	difficulty = difficulty x 5
//	incidence  = 1 / 5 / 10
//	confidence = (6 - confidence) x 10
//
// then a recency adjustment (just-studied material is strongly suppressed,
// long-untouched material is bumped), a large constant bonus for material
// never studied at all, and finally the exam-phase adjustment.
func Score(unit *Unit, discipline *Discipline, phases []ExamPhase, today time.Time) float64 {
	today = Normalize(today)

	confidence := unit.Confidence
	if confidence < 1 || confidence > 5 {
		confidence = DefaultConfidence
	}

	score := discipline.Weight * 20
	score += float64(unit.Difficulty) * 5
	score += unit.Incidence.Weight()
	score += float64(6-confidence) * 10

	if last, ok := ParseDate(unit.LastStudied); ok {
		daysSince := DaysBetween(last, today)
		switch {
		case daysSince <= 3:
			score *= 0.1
		case daysSince <= 7:
			score *= 0.5
		case daysSince > 90:
			score += 100
		case daysSince > 30:
			score += 50
		default:
			score += 15
		}
	} else {
		score += UnstudiedBonus
	}

	return applyExamPhases(score, discipline.UID, phases, today)
}

// applyExamPhases adjusts the score for exam proximity. The first phase whose
// exam date is not yet past is the active one: its disciplines gain the phase
// boost. Disciplines of phases already behind "today" collapse to near zero;
// their exam is over. Once every phase has passed there is no adjustment.
func applyExamPhases(score float64, disciplineUID string, phases []ExamPhase, today time.Time) float64 {
	active := -1
	for i, phase := range phases {
		examDate, ok := ParseDate(phase.ExamDate)
		if !ok {
			continue
		}
		if !examDate.Before(today) {
			active = i
			break
		}
	}

	// Once every phase has passed the planner stops adjusting entirely.
	if active == -1 {
		return score
	}

	for i, phase := range phases {
		if !phaseContains(phase, disciplineUID) {
			continue
		}
		if i == active {
			score += phase.Boost
		} else if i < active {
			// This discipline's exam is over; revision pressure collapses.
			score *= 0.01
		}
	}
	return score
}

func phaseContains(phase ExamPhase, disciplineUID string) bool {
	for _, uid := range phase.DisciplineUIDs {
		if uid == disciplineUID {
			return true
		}
	}
	return false
}

// TierOf bands a score for display.
func TierOf(score float64) Tier {
	switch {
	case score < 60:
		return TierLow
	case score < 120:
		return TierMedium
	default:
		return TierHigh
	}
}
