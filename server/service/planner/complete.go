package planner

import "time"

// Completion is the user feedback recorded when a task is finished.
type Completion struct {
	UnitUID    string
	Confidence int // 1..5
	Notes      string
}

// CompleteTask records a completion against a unit: appends to its history,
// stamps its last-studied date, and marks the matching task in today's plan
// as completed. The discipline tree and plan map are copied on write at the
// entities touched; the inputs themselves are left untouched. When
// AutoReplanOnComplete is set the whole plan map is regenerated from the
// updated tree.
//
// Returns false when the unit UID is unknown; nothing is modified then.
func CompleteTask(disciplines []*Discipline, plans map[string]*DailyPlan, settings *Settings, c Completion, today time.Time) ([]*Discipline, map[string]*DailyPlan, bool) {
	today = Normalize(today)
	confidence := c.Confidence
	if confidence < 1 {
		confidence = 1
	} else if confidence > 5 {
		confidence = 5
	}

	updated, found := recordCompletion(disciplines, c.UnitUID, confidence, c.Notes, today)
	if !found {
		return disciplines, plans, false
	}

	if settings.AutoReplanOnComplete {
		return updated, Reorganize(updated, settings, today), true
	}
	return updated, stampPlans(plans, c.UnitUID, confidence, c.Notes, today), true
}

// recordCompletion clones the path down to the completed unit and mutates
// only the clone. Untouched disciplines, topics and units stay shared.
func recordCompletion(disciplines []*Discipline, unitUID string, confidence int, notes string, today time.Time) ([]*Discipline, bool) {
	date := FormatDate(today)
	found := false

	updated := make([]*Discipline, len(disciplines))
	for di, discipline := range disciplines {
		updated[di] = discipline
		if found {
			continue
		}
		for ti, topic := range discipline.Topics {
			for ui, unit := range topic.Units {
				if unit.UID != unitUID {
					continue
				}

				newUnit := *unit
				newUnit.History = append(append([]ReviewLog(nil), unit.History...), ReviewLog{
					Date:       date,
					Confidence: confidence,
					Notes:      notes,
				})
				newUnit.LastStudied = date
				newUnit.Confidence = confidence

				newTopic := *topic
				newTopic.Units = append([]*Unit(nil), topic.Units...)
				newTopic.Units[ui] = &newUnit

				newDiscipline := *discipline
				newDiscipline.Topics = append([]*Topic(nil), discipline.Topics...)
				newDiscipline.Topics[ti] = &newTopic

				updated[di] = &newDiscipline
				found = true
				break
			}
			if found {
				break
			}
		}
	}
	return updated, found
}

// stampPlans marks the unit's task in today's plan as completed, copying the
// touched day and task.
func stampPlans(plans map[string]*DailyPlan, unitUID string, confidence int, notes string, today time.Time) map[string]*DailyPlan {
	date := FormatDate(today)
	plan, ok := plans[date]
	if !ok {
		return plans
	}

	updated := make(map[string]*DailyPlan, len(plans))
	for k, v := range plans {
		updated[k] = v
	}

	newPlan := *plan
	newPlan.Tasks = append([]*Task(nil), plan.Tasks...)
	for i, task := range newPlan.Tasks {
		if task.UnitUID != unitUID || task.Completed {
			continue
		}
		newTask := *task
		newTask.Completed = true
		newTask.CompletionDate = date
		newTask.Confidence = confidence
		newTask.Notes = notes
		newPlan.Tasks[i] = &newTask
		break
	}
	updated[date] = &newPlan
	return updated
}
