package planner

// Incidence is the exam-relevance tag of a study unit.
type Incidence string

const (
	IncidenceLow    Incidence = "low"
	IncidenceMedium Incidence = "medium"
	IncidenceHigh   Incidence = "high"
)

// Weight maps the incidence tag to its scoring weight.
func (i Incidence) Weight() float64 {
	switch i {
	case IncidenceHigh:
		return 10
	case IncidenceMedium:
		return 5
	default:
		return 1
	}
}

// ReviewLog is one recorded study event. Insertion order is the
// chronological order of recording; the slice is never re-sorted.
type ReviewLog struct {
	Date       string `json:"date"`
	Confidence int    `json:"confidence"`
	Notes      string `json:"notes,omitempty"`
}

// Unit is the atomic schedulable study item (a subtopic).
type Unit struct {
	UID        string    `json:"uid"`
	Name       string    `json:"name"`
	Difficulty int       `json:"difficulty"` // 1..5
	Incidence  Incidence `json:"incidence"`
	Confidence int       `json:"confidence"` // 1..5, 0 means unset
	// LastStudied is a date-only string (YYYY-MM-DD), empty when the unit
	// has never been studied.
	LastStudied string      `json:"lastStudied,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	History     []ReviewLog `json:"history,omitempty"`
}

// Studied reports whether the unit has any recorded study.
func (u *Unit) Studied() bool {
	return u.LastStudied != ""
}

// Topic is a pure grouping container carrying a display name.
type Topic struct {
	UID   string  `json:"uid"`
	Name  string  `json:"name"`
	Units []*Unit `json:"units"`
}

// Discipline is a top-level subject owning topics and their units.
type Discipline struct {
	UID    string   `json:"uid"`
	Name   string   `json:"name"`
	Weight float64  `json:"weight"`
	Topics []*Topic `json:"topics"`
}

// ConfidenceFactors scale the base review interval by the confidence of the
// most recent study event.
type ConfidenceFactors struct {
	Low  float64 `json:"low"`  // applied when last confidence <= 2
	High float64 `json:"high"` // applied when last confidence >= 4
}

// ExamPhase boosts a set of disciplines until its exam date has passed.
// Phases are evaluated in date order; once a phase's exam date is behind
// "today" its disciplines are de-prioritized to near zero.
type ExamPhase struct {
	ExamDate       string   `json:"examDate"` // YYYY-MM-DD
	DisciplineUIDs []string `json:"disciplineUids"`
	Boost          float64  `json:"boost"`
}

// Settings is the planner configuration.
type Settings struct {
	DailyStudyMinutes           int               `json:"dailyStudyMinutes"`
	StudyDaysPerWeek            int               `json:"studyDaysPerWeek"`
	MaxTasksPerDisciplinePerDay int               `json:"maxTasksPerDisciplinePerDay"`
	MaxReviewsPerDay            int               `json:"maxReviewsPerDay"`
	AutoReplanOnComplete        bool              `json:"autoReplanOnComplete"`
	AutoReview                  bool              `json:"autoReview"`
	BaseCadence                 []int             `json:"baseCadence"`
	ConfidenceFactors           ConfidenceFactors `json:"confidenceFactors"`
	ExamPhases                  []ExamPhase       `json:"examPhases,omitempty"`
}

// DefaultSettings returns the settings a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		DailyStudyMinutes:           DefaultDailyStudyMinutes,
		StudyDaysPerWeek:            DefaultStudyDaysPerWeek,
		MaxTasksPerDisciplinePerDay: DefaultMaxTasksPerDisciplinePerDay,
		MaxReviewsPerDay:            DefaultMaxReviewsPerDay,
		AutoReplanOnComplete:        true,
		AutoReview:                  true,
		BaseCadence:                 append([]int(nil), DefaultBaseCadence...),
		ConfidenceFactors:           ConfidenceFactors{Low: 0.5, High: 1.5},
	}
}

// Normalize replaces invalid fields with safe defaults so the scheduler can
// always run. Violations are configuration errors, not planner failures.
func (s *Settings) Normalize() {
	if s.DailyStudyMinutes <= 0 {
		s.DailyStudyMinutes = DefaultDailyStudyMinutes
	}
	if s.StudyDaysPerWeek < 1 || s.StudyDaysPerWeek > 7 {
		s.StudyDaysPerWeek = DefaultStudyDaysPerWeek
	}
	if s.MaxTasksPerDisciplinePerDay <= 0 {
		s.MaxTasksPerDisciplinePerDay = DefaultMaxTasksPerDisciplinePerDay
	}
	if s.MaxReviewsPerDay <= 0 {
		s.MaxReviewsPerDay = DefaultMaxReviewsPerDay
	}
	if len(s.BaseCadence) == 0 {
		s.BaseCadence = append([]int(nil), DefaultBaseCadence...)
	}
	if s.ConfidenceFactors.Low <= 0 {
		s.ConfidenceFactors.Low = 0.5
	}
	if s.ConfidenceFactors.High <= 0 {
		s.ConfidenceFactors.High = 1.5
	}
}

// TaskType distinguishes fresh study from spaced-repetition review.
type TaskType string

const (
	TaskTypeStudy  TaskType = "study"
	TaskTypeReview TaskType = "review"
)

// Task is one unit scheduled on one date. Tasks are values regenerated
// wholesale on every re-plan; the UID is derived from date, type and unit so
// identical inputs yield identical output.
type Task struct {
	UID            string   `json:"uid"`
	Type           TaskType `json:"type"`
	UnitUID        string   `json:"unitUid"`
	UnitName       string   `json:"unitName"`
	TopicName      string   `json:"topicName"`
	DisciplineUID  string   `json:"disciplineUid"`
	DisciplineName string   `json:"disciplineName"`
	Duration       int      `json:"duration"` // minutes
	Completed      bool     `json:"completed"`
	CompletionDate string   `json:"completionDate,omitempty"`
	Confidence     int      `json:"confidence,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// DailyPlan is the ordered task list for one calendar date.
type DailyPlan struct {
	Date      string  `json:"date"`
	Tasks     []*Task `json:"tasks"`
	IsRestDay bool    `json:"isRestDay"`
}

// Minutes returns the total scheduled minutes of the day.
func (p *DailyPlan) Minutes() int {
	total := 0
	for _, t := range p.Tasks {
		total += t.Duration
	}
	return total
}
