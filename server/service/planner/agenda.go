package planner

import (
	"fmt"
	"sort"
	"time"
)

// Result carries the generated plan map plus scheduling counters for the
// caller's logging. DroppedReviews counts due reviews that found no slot;
// the planner does not defer them to another day.
type Result struct {
	Plans            map[string]*DailyPlan
	ScheduledStudy   int
	ScheduledReviews int
	DroppedReviews   int
}

// Reorganize builds a fresh 90-day agenda from the discipline tree and
// settings. The inputs are read-only; the returned map is newly constructed
// on every call.
func Reorganize(disciplines []*Discipline, settings *Settings, today time.Time) map[string]*DailyPlan {
	return Plan(disciplines, settings, today).Plans
}

// Plan is Reorganize with scheduling counters.
//
// The horizon is seeded with one DailyPlan per date, rest days excluded from
// placement. Due reviews land on their due date when capacity allows, then
// remaining capacity is filled greedily with the highest-priority units not
// already claimed by a review. Each unit is placed at most once across the
// whole horizon per run.
func Plan(disciplines []*Discipline, settings *Settings, today time.Time) *Result {
	today = Normalize(today)
	result := &Result{Plans: make(map[string]*DailyPlan, HorizonDays)}

	dates := make([]string, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		day := AddDays(today, i)
		date := FormatDate(day)
		dates = append(dates, date)
		result.Plans[date] = &DailyPlan{
			Date:      date,
			Tasks:     []*Task{},
			IsRestDay: !IsStudyDay(day.Weekday(), settings.StudyDaysPerWeek),
		}
	}

	// Phase 1: place due reviews on their due dates. Minute capacity, the
	// review cap and the per-discipline cap all apply; a review that fits
	// none of them is dropped, not deferred.
	dueReviews := BuildReviewTasks(disciplines, settings, today)
	minutesUsed := make(map[string]int, HorizonDays)
	reviewCount := make(map[string]int, HorizonDays)
	for _, due := range dueReviews {
		plan, ok := result.Plans[due.DueDate]
		if !ok || plan.IsRestDay {
			result.DroppedReviews++
			continue
		}
		if minutesUsed[due.DueDate]+ReviewTaskMinutes > settings.DailyStudyMinutes ||
			reviewCount[due.DueDate] >= settings.MaxReviewsPerDay {
			result.DroppedReviews++
			continue
		}
		sameDiscipline := 0
		for _, task := range plan.Tasks {
			if task.DisciplineUID == due.Discipline.UID {
				sameDiscipline++
			}
		}
		if sameDiscipline >= settings.MaxTasksPerDisciplinePerDay {
			result.DroppedReviews++
			continue
		}
		plan.Tasks = append(plan.Tasks, newTask(TaskTypeReview, due.DueDate, due.Unit, due.Topic, due.Discipline, ReviewTaskMinutes))
		minutesUsed[due.DueDate] += ReviewTaskMinutes
		reviewCount[due.DueDate]++
		result.ScheduledReviews++
	}

	// Phase 2: greedy fill with scored study candidates. Units already owed
	// a review this cycle are excluded; a unit either reviews or studies,
	// never both.
	reviewing := make(map[string]bool, len(dueReviews))
	for _, due := range dueReviews {
		reviewing[due.Unit.UID] = true
	}
	candidates := buildCandidates(disciplines, settings, reviewing, today)

	placed := make([]bool, len(candidates))
	remaining := len(candidates)
	for _, date := range dates {
		if remaining == 0 {
			break
		}
		plan := result.Plans[date]
		if plan.IsRestDay {
			continue
		}
		minutes := minutesUsed[date]
		perDiscipline := make(map[string]int)
		for _, task := range plan.Tasks {
			perDiscipline[task.DisciplineUID]++
		}

		for {
			idx := -1
			for i, c := range candidates {
				if placed[i] {
					continue
				}
				if minutes+StudyTaskMinutes > settings.DailyStudyMinutes {
					// Capacity constraint fails for every remaining
					// candidate; the day is done.
					break
				}
				if perDiscipline[c.discipline.UID] >= settings.MaxTasksPerDisciplinePerDay {
					continue
				}
				idx = i
				break
			}
			if idx == -1 {
				break
			}
			c := candidates[idx]
			plan.Tasks = append(plan.Tasks, newTask(TaskTypeStudy, date, c.unit, c.topic, c.discipline, StudyTaskMinutes))
			minutes += StudyTaskMinutes
			perDiscipline[c.discipline.UID]++
			placed[idx] = true
			remaining--
			result.ScheduledStudy++
		}
		minutesUsed[date] = minutes
	}

	return result
}

// IsStudyDay reports whether a weekday is schedulable for the given
// days-per-week preference. Counts 1 through 4 map to fixed canonical
// weekday subsets; anything unrecognized fails closed.
func IsStudyDay(weekday time.Weekday, studyDaysPerWeek int) bool {
	switch studyDaysPerWeek {
	case 7:
		return true
	case 6:
		return weekday != time.Sunday
	case 5:
		return weekday != time.Saturday && weekday != time.Sunday
	case 4:
		return weekday == time.Monday || weekday == time.Tuesday ||
			weekday == time.Thursday || weekday == time.Friday
	case 3:
		return weekday == time.Monday || weekday == time.Wednesday || weekday == time.Friday
	case 2:
		return weekday == time.Monday || weekday == time.Wednesday
	case 1:
		return weekday == time.Monday
	default:
		return false
	}
}

type candidate struct {
	unit       *Unit
	topic      *Topic
	discipline *Discipline
	score      float64
	index      int // flatten order, the explicit sort tiebreak
}

// buildCandidates flattens and scores every unit not already claimed by a
// review, sorted by (-score, flatten order) so ties resolve deterministically.
func buildCandidates(disciplines []*Discipline, settings *Settings, reviewing map[string]bool, today time.Time) []candidate {
	var candidates []candidate
	for _, discipline := range disciplines {
		for _, topic := range discipline.Topics {
			for _, unit := range topic.Units {
				if reviewing[unit.UID] {
					continue
				}
				candidates = append(candidates, candidate{
					unit:       unit,
					topic:      topic,
					discipline: discipline,
					score:      Score(unit, discipline, settings.ExamPhases, today),
					index:      len(candidates),
				})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].index < candidates[j].index
	})
	return candidates
}

// newTask builds a task value with a UID derived from its placement, keeping
// re-planning deterministic for identical inputs.
func newTask(taskType TaskType, date string, unit *Unit, topic *Topic, discipline *Discipline, duration int) *Task {
	return &Task{
		UID:            fmt.Sprintf("%s/%s/%s", date, taskType, unit.UID),
		Type:           taskType,
		UnitUID:        unit.UID,
		UnitName:       unit.Name,
		TopicName:      topic.Name,
		DisciplineUID:  discipline.UID,
		DisciplineName: discipline.Name,
		Duration:       duration,
	}
}
