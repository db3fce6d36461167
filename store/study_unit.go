package store

import "context"

// StudyUnit is the object representing the atomic schedulable study item.
type StudyUnit struct {
	ID         int32
	UID        string
	CreatedTs  int64
	UpdatedTs  int64
	TopicID    int32
	Name       string
	Difficulty int32  // 1..5
	Incidence  string // low / medium / high
	Confidence int32  // 1..5, 0 means unset
	// LastStudied is a date-only string (YYYY-MM-DD), nil when never studied.
	LastStudied *string
	Notes       string
	SortOrder   int32
}

// FindStudyUnit is the find condition for study unit.
type FindStudyUnit struct {
	ID      *int32
	UID     *string
	TopicID *int32
}

// UpdateStudyUnit is the update request for study unit.
type UpdateStudyUnit struct {
	ID          int32
	Name        *string
	Difficulty  *int32
	Incidence   *string
	Confidence  *int32
	LastStudied *string
	Notes       *string
	SortOrder   *int32
}

// DeleteStudyUnit is the delete request for study unit.
type DeleteStudyUnit struct {
	ID int32
}

// CreateStudyUnit creates a new study unit.
func (s *Store) CreateStudyUnit(ctx context.Context, create *StudyUnit) (*StudyUnit, error) {
	unit, err := s.driver.CreateStudyUnit(ctx, create)
	if err != nil {
		return nil, err
	}
	s.invalidateTreeCache()
	return unit, nil
}

// ListStudyUnits lists study units with filter, ordered by sort order.
func (s *Store) ListStudyUnits(ctx context.Context, find *FindStudyUnit) ([]*StudyUnit, error) {
	return s.driver.ListStudyUnits(ctx, find)
}

// GetStudyUnit gets a single study unit.
func (s *Store) GetStudyUnit(ctx context.Context, find *FindStudyUnit) (*StudyUnit, error) {
	list, err := s.driver.ListStudyUnits(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateStudyUnit updates a study unit.
func (s *Store) UpdateStudyUnit(ctx context.Context, update *UpdateStudyUnit) error {
	if err := s.driver.UpdateStudyUnit(ctx, update); err != nil {
		return err
	}
	s.invalidateTreeCache()
	return nil
}

// DeleteStudyUnit deletes a study unit and its history.
func (s *Store) DeleteStudyUnit(ctx context.Context, delete *DeleteStudyUnit) error {
	if err := s.driver.DeleteStudyUnit(ctx, delete); err != nil {
		return err
	}
	s.invalidateTreeCache()
	return nil
}
