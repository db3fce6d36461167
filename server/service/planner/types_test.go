package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsNormalize(t *testing.T) {
	s := &Settings{
		DailyStudyMinutes: -10,
		StudyDaysPerWeek:  12,
	}
	s.Normalize()

	assert.Equal(t, DefaultDailyStudyMinutes, s.DailyStudyMinutes)
	assert.Equal(t, DefaultStudyDaysPerWeek, s.StudyDaysPerWeek)
	assert.Equal(t, DefaultMaxTasksPerDisciplinePerDay, s.MaxTasksPerDisciplinePerDay)
	assert.Equal(t, DefaultMaxReviewsPerDay, s.MaxReviewsPerDay)
	assert.Equal(t, DefaultBaseCadence, s.BaseCadence)
	assert.Equal(t, 0.5, s.ConfidenceFactors.Low)
	assert.Equal(t, 1.5, s.ConfidenceFactors.High)
}

func TestSettingsNormalizeKeepsValidValues(t *testing.T) {
	s := &Settings{
		DailyStudyMinutes:           60,
		StudyDaysPerWeek:            3,
		MaxTasksPerDisciplinePerDay: 1,
		MaxReviewsPerDay:            2,
		BaseCadence:                 []int{2, 4},
		ConfidenceFactors:           ConfidenceFactors{Low: 0.7, High: 2},
	}
	s.Normalize()

	assert.Equal(t, 60, s.DailyStudyMinutes)
	assert.Equal(t, 3, s.StudyDaysPerWeek)
	assert.Equal(t, []int{2, 4}, s.BaseCadence)
	assert.Equal(t, 0.7, s.ConfidenceFactors.Low)
}

func TestIncidenceWeight(t *testing.T) {
	assert.Equal(t, float64(1), IncidenceLow.Weight())
	assert.Equal(t, float64(5), IncidenceMedium.Weight())
	assert.Equal(t, float64(10), IncidenceHigh.Weight())
	assert.Equal(t, float64(1), Incidence("").Weight())
}
