package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteTaskRecordsHistory(t *testing.T) {
	tree := buildTree(2, 2)
	settings := agendaSettings()
	settings.AutoReplanOnComplete = false
	plans := Reorganize(tree, settings, agendaToday)

	updated, _, ok := CompleteTask(tree, plans, settings, Completion{
		UnitUID:    "d0-u1",
		Confidence: 4,
		Notes:      "solid",
	}, agendaToday)
	require.True(t, ok)

	unit := updated[0].Topics[0].Units[1]
	require.Len(t, unit.History, 1)
	assert.Equal(t, FormatDate(agendaToday), unit.History[0].Date)
	assert.Equal(t, 4, unit.History[0].Confidence)
	assert.Equal(t, "solid", unit.History[0].Notes)
	assert.Equal(t, FormatDate(agendaToday), unit.LastStudied)
	assert.Equal(t, 4, unit.Confidence)
}

func TestCompleteTaskDoesNotMutateInputs(t *testing.T) {
	tree := buildTree(1, 1)
	settings := agendaSettings()
	settings.AutoReplanOnComplete = false
	plans := Reorganize(tree, settings, agendaToday)

	treeBefore, err := json.Marshal(tree)
	require.NoError(t, err)
	plansBefore, err := json.Marshal(plans)
	require.NoError(t, err)

	_, _, ok := CompleteTask(tree, plans, settings, Completion{UnitUID: "d0-u0", Confidence: 3}, agendaToday)
	require.True(t, ok)

	treeAfter, err := json.Marshal(tree)
	require.NoError(t, err)
	plansAfter, err := json.Marshal(plans)
	require.NoError(t, err)
	assert.JSONEq(t, string(treeBefore), string(treeAfter))
	assert.JSONEq(t, string(plansBefore), string(plansAfter))
}

func TestCompleteTaskStampsTodaysTask(t *testing.T) {
	tree := buildTree(1, 1)
	settings := agendaSettings()
	settings.AutoReplanOnComplete = false
	plans := Reorganize(tree, settings, agendaToday)

	_, updatedPlans, ok := CompleteTask(tree, plans, settings, Completion{
		UnitUID:    "d0-u0",
		Confidence: 2,
		Notes:      "struggled",
	}, agendaToday)
	require.True(t, ok)

	today := updatedPlans[FormatDate(agendaToday)]
	require.NotNil(t, today)
	require.NotEmpty(t, today.Tasks)
	task := today.Tasks[0]
	assert.True(t, task.Completed)
	assert.Equal(t, FormatDate(agendaToday), task.CompletionDate)
	assert.Equal(t, 2, task.Confidence)
	assert.Equal(t, "struggled", task.Notes)
}

func TestCompleteTaskAutoReplan(t *testing.T) {
	tree := buildTree(1, 2)
	settings := agendaSettings()
	settings.AutoReplanOnComplete = true
	plans := Reorganize(tree, settings, agendaToday)

	updated, replanned, ok := CompleteTask(tree, plans, settings, Completion{UnitUID: "d0-u0", Confidence: 5}, agendaToday)
	require.True(t, ok)
	require.Len(t, replanned, HorizonDays)

	// The whole map is regenerated from the updated tree: the completed unit
	// is no longer a fresh-study candidate anywhere in the horizon.
	for _, plan := range replanned {
		for _, task := range plan.Tasks {
			if task.UnitUID == "d0-u0" {
				assert.Equal(t, TaskTypeReview, task.Type)
			}
		}
	}

	// And the replan must match re-running the scheduler by hand.
	manual := Reorganize(updated, settings, agendaToday)
	replannedJSON, err := json.Marshal(replanned)
	require.NoError(t, err)
	manualJSON, err := json.Marshal(manual)
	require.NoError(t, err)
	assert.JSONEq(t, string(manualJSON), string(replannedJSON))
}

func TestCompleteTaskUnknownUnit(t *testing.T) {
	tree := buildTree(1, 1)
	settings := agendaSettings()
	plans := Reorganize(tree, settings, agendaToday)

	sameTree, samePlans, ok := CompleteTask(tree, plans, settings, Completion{UnitUID: "missing", Confidence: 3}, agendaToday)
	assert.False(t, ok)
	assert.Equal(t, tree, sameTree)
	assert.Equal(t, plans, samePlans)
}

func TestCompleteTaskClampsConfidence(t *testing.T) {
	tree := buildTree(1, 1)
	settings := agendaSettings()
	settings.AutoReplanOnComplete = false
	plans := Reorganize(tree, settings, agendaToday)

	updated, _, ok := CompleteTask(tree, plans, settings, Completion{UnitUID: "d0-u0", Confidence: 9}, agendaToday)
	require.True(t, ok)
	assert.Equal(t, 5, updated[0].Topics[0].Units[0].Confidence)
}
