package store

import "context"

// StudyLog is one recorded completion event against a study unit. Rows are
// append-only; insertion order is the chronological order of recording.
type StudyLog struct {
	ID         int32
	CreatedTs  int64
	UnitID     int32
	Date       string // date-only, YYYY-MM-DD
	Confidence int32  // 1..5
	Notes      string
}

// FindStudyLog is the find condition for study log.
type FindStudyLog struct {
	UnitID *int32
	Limit  *int
}

// CreateStudyLog appends a study log row.
func (s *Store) CreateStudyLog(ctx context.Context, create *StudyLog) (*StudyLog, error) {
	log, err := s.driver.CreateStudyLog(ctx, create)
	if err != nil {
		return nil, err
	}
	s.invalidateTreeCache()
	return log, nil
}

// ListStudyLogs lists study logs in insertion order.
func (s *Store) ListStudyLogs(ctx context.Context, find *FindStudyLog) ([]*StudyLog, error) {
	return s.driver.ListStudyLogs(ctx, find)
}
