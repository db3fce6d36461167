package planner

const (
	// HorizonDays is the fixed planning window, inclusive of today.
	HorizonDays = 90

	// StudyTaskMinutes is the fixed duration of a fresh-study task.
	StudyTaskMinutes = 45

	// ReviewTaskMinutes is the fixed duration of a review task.
	ReviewTaskMinutes = 25

	// DefaultConfidence is assumed when a unit has no recorded confidence.
	DefaultConfidence = 3

	// UnstudiedBonus dominates the score of any already-studied unit so that
	// first-contact material always ranks ahead of revision material.
	UnstudiedBonus = 1000
)

// Default settings applied by Settings.Normalize for missing or invalid fields.
const (
	DefaultDailyStudyMinutes           = 120
	DefaultStudyDaysPerWeek            = 6
	DefaultMaxTasksPerDisciplinePerDay = 2
	DefaultMaxReviewsPerDay            = 3
)

// DefaultBaseCadence is the escalating review interval sequence in days.
var DefaultBaseCadence = []int{1, 3, 7, 15, 30, 60}
