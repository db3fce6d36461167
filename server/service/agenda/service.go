// Package agenda runs the study planner against persisted state. It loads
// the discipline tree and planner settings from the store, invokes the pure
// planner, and persists the resulting agenda snapshot. All mutation of
// planner state funnels through this package.
package agenda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studyforge/studyforge/server/service/planner"
	"github.com/studyforge/studyforge/store"
)

// ErrUnitNotFound is returned when a completion references an unknown unit.
var ErrUnitNotFound = errors.New("study unit not found")

// Store is the interface for store operations needed by the agenda service.
type Store interface {
	PlannerTree(ctx context.Context) ([]*planner.Discipline, error)
	GetPlannerSettings(ctx context.Context) (planner.Settings, error)
	UpsertPlannerSettings(ctx context.Context, settings planner.Settings) (planner.Settings, error)
	GetAgendaSnapshot(ctx context.Context) (*store.AgendaSnapshot, error)
	UpsertAgendaSnapshot(ctx context.Context, upsert *store.AgendaSnapshot) (*store.AgendaSnapshot, error)
	GetStudyUnit(ctx context.Context, find *store.FindStudyUnit) (*store.StudyUnit, error)
	UpdateStudyUnit(ctx context.Context, update *store.UpdateStudyUnit) error
	CreateStudyLog(ctx context.Context, create *store.StudyLog) (*store.StudyLog, error)
}

type service struct {
	store Store
	// now is injectable so tests can pin the planning horizon.
	now func() time.Time
}

// NewService creates a new agenda service.
func NewService(store *store.Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) CurrentAgenda(ctx context.Context) (*Agenda, error) {
	snapshot, err := s.store.GetAgendaSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda snapshot: %w", err)
	}
	if snapshot == nil {
		return s.Reorganize(ctx)
	}
	return decodeSnapshot(snapshot)
}

func (s *service) Reorganize(ctx context.Context) (*Agenda, error) {
	started := time.Now()

	tree, err := s.store.PlannerTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load discipline tree: %w", err)
	}
	settings, err := s.store.GetPlannerSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load planner settings: %w", err)
	}

	today := planner.Normalize(s.now())
	result := planner.Plan(tree, &settings, today)

	agenda, err := s.persistPlans(ctx, result.Plans, today)
	if err != nil {
		return nil, err
	}

	slog.Info("agenda reorganized",
		slog.String("horizonStart", agenda.HorizonStart),
		slog.Int("scheduledStudy", result.ScheduledStudy),
		slog.Int("scheduledReviews", result.ScheduledReviews),
		slog.Duration("duration", time.Since(started)))
	if result.DroppedReviews > 0 {
		slog.Warn("reviews dropped for capacity", slog.Int("dropped", result.DroppedReviews))
	}
	return agenda, nil
}

func (s *service) CompleteTask(ctx context.Context, complete *CompleteTaskRequest) (*Agenda, error) {
	if complete.UnitUID == "" {
		return nil, fmt.Errorf("%w: empty uid", ErrUnitNotFound)
	}
	unit, err := s.store.GetStudyUnit(ctx, &store.FindStudyUnit{UID: &complete.UnitUID})
	if err != nil {
		return nil, fmt.Errorf("failed to get study unit: %w", err)
	}
	if unit == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, complete.UnitUID)
	}

	tree, err := s.store.PlannerTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load discipline tree: %w", err)
	}
	settings, err := s.store.GetPlannerSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load planner settings: %w", err)
	}
	plans, err := s.currentPlans(ctx)
	if err != nil {
		return nil, err
	}

	today := planner.Normalize(s.now())
	confidence := complete.Confidence
	if confidence < 1 {
		confidence = 1
	} else if confidence > 5 {
		confidence = 5
	}

	_, updatedPlans, found := planner.CompleteTask(tree, plans, &settings, planner.Completion{
		UnitUID:    complete.UnitUID,
		Confidence: confidence,
		Notes:      complete.Notes,
	}, today)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, complete.UnitUID)
	}

	date := planner.FormatDate(today)
	if _, err := s.store.CreateStudyLog(ctx, &store.StudyLog{
		UnitID:     unit.ID,
		Date:       date,
		Confidence: int32(confidence),
		Notes:      complete.Notes,
	}); err != nil {
		return nil, fmt.Errorf("failed to create study log: %w", err)
	}
	confidence32 := int32(confidence)
	if err := s.store.UpdateStudyUnit(ctx, &store.UpdateStudyUnit{
		ID:          unit.ID,
		Confidence:  &confidence32,
		LastStudied: &date,
	}); err != nil {
		return nil, fmt.Errorf("failed to update study unit: %w", err)
	}

	agenda, err := s.persistPlans(ctx, updatedPlans, today)
	if err != nil {
		return nil, err
	}
	slog.Info("task completed",
		slog.String("unit", complete.UnitUID),
		slog.Int("confidence", confidence),
		slog.Bool("replanned", settings.AutoReplanOnComplete))
	return agenda, nil
}

func (s *service) Settings(ctx context.Context) (planner.Settings, error) {
	return s.store.GetPlannerSettings(ctx)
}

func (s *service) UpdateSettings(ctx context.Context, settings planner.Settings) (planner.Settings, error) {
	settings.Normalize()
	saved, err := s.store.UpsertPlannerSettings(ctx, settings)
	if err != nil {
		return planner.Settings{}, fmt.Errorf("failed to save planner settings: %w", err)
	}
	// New settings invalidate the stored agenda; regenerate under them.
	if _, err := s.Reorganize(ctx); err != nil {
		return planner.Settings{}, err
	}
	return saved, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	tree, err := s.store.PlannerTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load discipline tree: %w", err)
	}
	settings, err := s.store.GetPlannerSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load planner settings: %w", err)
	}

	today := planner.Normalize(s.now())
	due := planner.BuildReviewTasks(tree, &settings, today)

	stats := &Stats{
		Disciplines:   len(tree),
		TierCounts:    map[string]int{},
		DueReviews:    len(due),
		PerDiscipline: make([]*DisciplineStats, 0, len(tree)),
	}
	for _, discipline := range tree {
		disciplineStats := &DisciplineStats{
			UID:  discipline.UID,
			Name: discipline.Name,
		}
		confidenceSum, confidenceCount := 0, 0
		stats.Topics += len(discipline.Topics)
		for _, topic := range discipline.Topics {
			stats.Units += len(topic.Units)
			disciplineStats.Units += len(topic.Units)
			for _, unit := range topic.Units {
				if unit.Studied() {
					stats.StudiedUnits++
					disciplineStats.StudiedUnits++
				} else {
					stats.UnstudiedUnits++
				}
				disciplineStats.ReviewsDone += len(unit.History)
				if unit.Confidence >= 1 && unit.Confidence <= 5 {
					confidenceSum += unit.Confidence
					confidenceCount++
				}
				tier := planner.TierOf(planner.Score(unit, discipline, settings.ExamPhases, today))
				stats.TierCounts[string(tier)]++
			}
		}
		if confidenceCount > 0 {
			disciplineStats.AvgConfidence = float64(confidenceSum) / float64(confidenceCount)
		}
		for _, review := range due {
			if review.Discipline.UID != discipline.UID {
				continue
			}
			if disciplineStats.NextReviewDate == "" || review.DueDate < disciplineStats.NextReviewDate {
				disciplineStats.NextReviewDate = review.DueDate
			}
		}
		stats.PerDiscipline = append(stats.PerDiscipline, disciplineStats)
	}

	plans, err := s.currentPlans(ctx)
	if err != nil {
		return nil, err
	}
	for _, plan := range plans {
		stats.PlannedMinutes += plan.Minutes()
		for _, task := range plan.Tasks {
			if task.Completed {
				stats.CompletedTasks++
			}
		}
	}
	return stats, nil
}

// currentPlans returns the stored plan map, empty when no agenda exists yet.
func (s *service) currentPlans(ctx context.Context) (map[string]*planner.DailyPlan, error) {
	snapshot, err := s.store.GetAgendaSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda snapshot: %w", err)
	}
	if snapshot == nil {
		return map[string]*planner.DailyPlan{}, nil
	}
	agenda, err := decodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	return agenda.Plans, nil
}

func (s *service) persistPlans(ctx context.Context, plans map[string]*planner.DailyPlan, today time.Time) (*Agenda, error) {
	payload, err := json.Marshal(plans)
	if err != nil {
		return nil, fmt.Errorf("failed to encode agenda: %w", err)
	}
	snapshot := &store.AgendaSnapshot{
		GeneratedTs:  s.now().Unix(),
		HorizonStart: planner.FormatDate(today),
		Payload:      string(payload),
	}
	if _, err := s.store.UpsertAgendaSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save agenda snapshot: %w", err)
	}
	return &Agenda{
		GeneratedTs:  snapshot.GeneratedTs,
		HorizonStart: snapshot.HorizonStart,
		Plans:        plans,
	}, nil
}

func decodeSnapshot(snapshot *store.AgendaSnapshot) (*Agenda, error) {
	plans := map[string]*planner.DailyPlan{}
	if err := json.Unmarshal([]byte(snapshot.Payload), &plans); err != nil {
		return nil, fmt.Errorf("failed to decode agenda snapshot: %w", err)
	}
	return &Agenda{
		GeneratedTs:  snapshot.GeneratedTs,
		HorizonStart: snapshot.HorizonStart,
		Plans:        plans,
	}, nil
}
