package store

import "context"

// Topic is the object representing a grouping of study units inside a
// discipline. It carries no scheduling semantics of its own.
type Topic struct {
	ID           int32
	UID          string
	CreatedTs    int64
	UpdatedTs    int64
	DisciplineID int32
	Name         string
	SortOrder    int32
}

// FindTopic is the find condition for topic.
type FindTopic struct {
	ID           *int32
	UID          *string
	DisciplineID *int32
}

// UpdateTopic is the update request for topic.
type UpdateTopic struct {
	ID        int32
	Name      *string
	SortOrder *int32
}

// DeleteTopic is the delete request for topic.
type DeleteTopic struct {
	ID int32
}

// CreateTopic creates a new topic.
func (s *Store) CreateTopic(ctx context.Context, create *Topic) (*Topic, error) {
	topic, err := s.driver.CreateTopic(ctx, create)
	if err != nil {
		return nil, err
	}
	s.invalidateTreeCache()
	return topic, nil
}

// ListTopics lists topics with filter, ordered by sort order.
func (s *Store) ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error) {
	return s.driver.ListTopics(ctx, find)
}

// GetTopic gets a single topic.
func (s *Store) GetTopic(ctx context.Context, find *FindTopic) (*Topic, error) {
	list, err := s.driver.ListTopics(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateTopic updates a topic.
func (s *Store) UpdateTopic(ctx context.Context, update *UpdateTopic) error {
	if err := s.driver.UpdateTopic(ctx, update); err != nil {
		return err
	}
	s.invalidateTreeCache()
	return nil
}

// DeleteTopic deletes a topic and its units.
func (s *Store) DeleteTopic(ctx context.Context, delete *DeleteTopic) error {
	if err := s.driver.DeleteTopic(ctx, delete); err != nil {
		return err
	}
	s.invalidateTreeCache()
	return nil
}
