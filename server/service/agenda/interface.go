package agenda

import (
	"context"

	"github.com/studyforge/studyforge/server/service/planner"
)

// Service defines the business logic interface for agenda management. It sits
// between the HTTP layer and the store, and is the only place that runs the
// planner against persisted state.
type Service interface {
	// CurrentAgenda returns the stored agenda. When no agenda has been
	// generated yet, one is generated and persisted first.
	CurrentAgenda(ctx context.Context) (*Agenda, error)

	// Reorganize regenerates the agenda from the current discipline tree
	// and persists it, replacing any previous one.
	Reorganize(ctx context.Context) (*Agenda, error)

	// CompleteTask records a completion against a study unit: a study log
	// row is appended, the unit's confidence and last-studied date are
	// updated, and the stored agenda is stamped or regenerated depending
	// on settings. Returns the resulting agenda.
	CompleteTask(ctx context.Context, complete *CompleteTaskRequest) (*Agenda, error)

	// Settings returns the active planner settings.
	Settings(ctx context.Context) (planner.Settings, error)

	// UpdateSettings persists new planner settings and regenerates the
	// agenda under them.
	UpdateSettings(ctx context.Context, settings planner.Settings) (planner.Settings, error)

	// Stats summarizes the discipline tree and the stored agenda.
	Stats(ctx context.Context) (*Stats, error)
}

// Agenda is the planner output plus its generation metadata.
type Agenda struct {
	// GeneratedTs is the unix timestamp of the planner run.
	GeneratedTs int64 `json:"generatedTs"`
	// HorizonStart is the first date of the planning horizon, YYYY-MM-DD.
	HorizonStart string `json:"horizonStart"`
	// Plans maps date strings to that day's plan. Rest days are present
	// with empty task lists.
	Plans map[string]*planner.DailyPlan `json:"plans"`
}

// CompleteTaskRequest is the request to record a task completion.
type CompleteTaskRequest struct {
	UnitUID    string `json:"unitUid"`
	Confidence int    `json:"confidence"`
	Notes      string `json:"notes"`
}

// Stats summarizes the tree and the agenda for dashboards.
type Stats struct {
	Disciplines    int                `json:"disciplines"`
	Topics         int                `json:"topics"`
	Units          int                `json:"units"`
	StudiedUnits   int                `json:"studiedUnits"`
	UnstudiedUnits int                `json:"unstudiedUnits"`
	TierCounts     map[string]int     `json:"tierCounts"`
	DueReviews     int                `json:"dueReviews"`
	PlannedMinutes int                `json:"plannedMinutes"`
	CompletedTasks int                `json:"completedTasks"`
	PerDiscipline  []*DisciplineStats `json:"perDiscipline"`
}

// DisciplineStats is the per-discipline breakdown.
type DisciplineStats struct {
	UID            string  `json:"uid"`
	Name           string  `json:"name"`
	Units          int     `json:"units"`
	StudiedUnits   int     `json:"studiedUnits"`
	ReviewsDone    int     `json:"reviewsDone"`
	AvgConfidence  float64 `json:"avgConfidence"`
	NextReviewDate string  `json:"nextReviewDate,omitempty"`
}
