package store

import "context"

// AgendaSnapshot is the persisted output of the most recent planner run.
// Plans are values regenerated wholesale, so a single row replaced on every
// reorganize is the whole persistence story for the calendar.
type AgendaSnapshot struct {
	ID           int32
	GeneratedTs  int64
	HorizonStart string // date-only, YYYY-MM-DD
	// Payload is the JSON-encoded map of date string to DailyPlan.
	Payload string
}

// UpsertAgendaSnapshot replaces the stored agenda.
func (s *Store) UpsertAgendaSnapshot(ctx context.Context, upsert *AgendaSnapshot) (*AgendaSnapshot, error) {
	return s.driver.UpsertAgendaSnapshot(ctx, upsert)
}

// GetAgendaSnapshot returns the stored agenda, nil when none exists yet.
func (s *Store) GetAgendaSnapshot(ctx context.Context) (*AgendaSnapshot, error) {
	return s.driver.GetAgendaSnapshot(ctx)
}
