package store

import "context"

// Discipline is the object representing a top-level study subject.
type Discipline struct {
	ID        int32
	UID       string
	CreatedTs int64
	UpdatedTs int64
	Name      string
	Weight    float64
	SortOrder int32
}

// FindDiscipline is the find condition for discipline.
type FindDiscipline struct {
	ID  *int32
	UID *string
}

// UpdateDiscipline is the update request for discipline.
type UpdateDiscipline struct {
	ID        int32
	Name      *string
	Weight    *float64
	SortOrder *int32
}

// DeleteDiscipline is the delete request for discipline. Topics, units and
// study logs underneath are removed by cascade.
type DeleteDiscipline struct {
	ID int32
}

// CreateDiscipline creates a new discipline.
func (s *Store) CreateDiscipline(ctx context.Context, create *Discipline) (*Discipline, error) {
	discipline, err := s.driver.CreateDiscipline(ctx, create)
	if err != nil {
		return nil, err
	}
	s.invalidateTreeCache()
	return discipline, nil
}

// ListDisciplines lists disciplines with filter, ordered by sort order.
func (s *Store) ListDisciplines(ctx context.Context, find *FindDiscipline) ([]*Discipline, error) {
	return s.driver.ListDisciplines(ctx, find)
}

// GetDiscipline gets a single discipline.
func (s *Store) GetDiscipline(ctx context.Context, find *FindDiscipline) (*Discipline, error) {
	list, err := s.driver.ListDisciplines(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateDiscipline updates a discipline.
func (s *Store) UpdateDiscipline(ctx context.Context, update *UpdateDiscipline) error {
	if err := s.driver.UpdateDiscipline(ctx, update); err != nil {
		return err
	}
	s.invalidateTreeCache()
	return nil
}

// DeleteDiscipline deletes a discipline and everything underneath it.
func (s *Store) DeleteDiscipline(ctx context.Context, delete *DeleteDiscipline) error {
	if err := s.driver.DeleteDiscipline(ctx, delete); err != nil {
		return err
	}
	s.invalidateTreeCache()
	return nil
}
