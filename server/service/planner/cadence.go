package planner

import (
	"math"
	"time"
)

// DueReview is a review obligation derived from a unit's study history,
// waiting for a calendar slot.
type DueReview struct {
	Unit       *Unit
	Topic      *Topic
	Discipline *Discipline
	DueDate    string
}

// BuildReviewTasks derives due reviews from study history. A unit's position
// in the cadence is its history length minus one; a unit that has exhausted
// the cadence is considered mastered and generates nothing further. The base
// interval is scaled by the confidence of the most recent study event, and
// reviews that fell due before "today" are dropped rather than retroactively
// inserted.
func BuildReviewTasks(disciplines []*Discipline, settings *Settings, today time.Time) []DueReview {
	if !settings.AutoReview {
		return nil
	}
	today = Normalize(today)

	var due []DueReview
	for _, discipline := range disciplines {
		for _, topic := range discipline.Topics {
			for _, unit := range topic.Units {
				if len(unit.History) == 0 {
					continue
				}
				cadenceIndex := len(unit.History) - 1
				if cadenceIndex >= len(settings.BaseCadence) {
					continue
				}
				last, ok := ParseDate(unit.LastStudied)
				if !ok {
					continue
				}

				interval := reviewInterval(settings, cadenceIndex, unit.History[len(unit.History)-1].Confidence)
				dueDate := AddDays(last, interval)
				if dueDate.Before(today) {
					continue
				}
				due = append(due, DueReview{
					Unit:       unit,
					Topic:      topic,
					Discipline: discipline,
					DueDate:    FormatDate(dueDate),
				})
			}
		}
	}
	return due
}

// reviewInterval scales the cadence interval by the last recorded confidence.
// Shaky recall (<= 2) pulls the review closer, solid recall (>= 4) pushes it
// out. Never less than one day.
func reviewInterval(settings *Settings, cadenceIndex, lastConfidence int) int {
	base := float64(settings.BaseCadence[cadenceIndex])

	factor := 1.0
	switch {
	case lastConfidence <= 2:
		factor = settings.ConfidenceFactors.Low
	case lastConfidence >= 4:
		factor = settings.ConfidenceFactors.High
	}

	interval := int(math.Round(base * factor))
	if interval < 1 {
		interval = 1
	}
	return interval
}
