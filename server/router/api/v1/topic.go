package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyforge/studyforge/internal/util"
	"github.com/studyforge/studyforge/store"
)

// Topic is the wire representation of a topic.
type Topic struct {
	UID           string `json:"uid"`
	DisciplineUID string `json:"disciplineUid"`
	Name          string `json:"name"`
	SortOrder     int32  `json:"sortOrder"`
	CreatedTs     int64  `json:"createdTs"`
	UpdatedTs     int64  `json:"updatedTs"`
}

// CreateTopicRequest is the request to create a topic.
type CreateTopicRequest struct {
	Name      string `json:"name"`
	SortOrder int32  `json:"sortOrder"`
}

// UpdateTopicRequest carries a partial topic update.
type UpdateTopicRequest struct {
	Name      *string `json:"name"`
	SortOrder *int32  `json:"sortOrder"`
}

func (s *APIV1Service) convertTopic(c echo.Context, topic *store.Topic) (*Topic, error) {
	discipline, err := s.Store.GetDiscipline(c.Request().Context(), &store.FindDiscipline{ID: &topic.DisciplineID})
	if err != nil {
		return nil, err
	}
	response := &Topic{
		UID:       topic.UID,
		Name:      topic.Name,
		SortOrder: topic.SortOrder,
		CreatedTs: topic.CreatedTs,
		UpdatedTs: topic.UpdatedTs,
	}
	if discipline != nil {
		response.DisciplineUID = discipline.UID
	}
	return response, nil
}

// CreateTopic creates a topic under a discipline.
// POST /api/v1/disciplines/:uid/topics
func (s *APIV1Service) CreateTopic(c echo.Context) error {
	ctx := c.Request().Context()
	disciplineUID := c.Param("uid")
	discipline, err := s.Store.GetDiscipline(ctx, &store.FindDiscipline{UID: &disciplineUID})
	if err != nil {
		return internalError(c, "get discipline", err)
	}
	if discipline == nil {
		return notFound(c, "discipline not found")
	}

	request := &CreateTopicRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.Name == "" {
		return badRequest(c, "name is required")
	}

	topic, err := s.Store.CreateTopic(ctx, &store.Topic{
		UID:          util.GenUID(),
		DisciplineID: discipline.ID,
		Name:         request.Name,
		SortOrder:    request.SortOrder,
	})
	if err != nil {
		return internalError(c, "create topic", err)
	}
	response, err := s.convertTopic(c, topic)
	if err != nil {
		return internalError(c, "create topic", err)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTopic returns one topic by UID.
// GET /api/v1/topics/:uid
func (s *APIV1Service) GetTopic(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &uid})
	if err != nil {
		return internalError(c, "get topic", err)
	}
	if topic == nil {
		return notFound(c, "topic not found")
	}
	response, err := s.convertTopic(c, topic)
	if err != nil {
		return internalError(c, "get topic", err)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateTopic applies a partial update to a topic.
// PATCH /api/v1/topics/:uid
func (s *APIV1Service) UpdateTopic(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &uid})
	if err != nil {
		return internalError(c, "get topic", err)
	}
	if topic == nil {
		return notFound(c, "topic not found")
	}

	request := &UpdateTopicRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.Name != nil && *request.Name == "" {
		return badRequest(c, "name cannot be empty")
	}

	if err := s.Store.UpdateTopic(ctx, &store.UpdateTopic{
		ID:        topic.ID,
		Name:      request.Name,
		SortOrder: request.SortOrder,
	}); err != nil {
		return internalError(c, "update topic", err)
	}

	updated, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &uid})
	if err != nil {
		return internalError(c, "get topic", err)
	}
	response, err := s.convertTopic(c, updated)
	if err != nil {
		return internalError(c, "update topic", err)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteTopic removes a topic and its units.
// DELETE /api/v1/topics/:uid
func (s *APIV1Service) DeleteTopic(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &uid})
	if err != nil {
		return internalError(c, "get topic", err)
	}
	if topic == nil {
		return notFound(c, "topic not found")
	}
	if err := s.Store.DeleteTopic(ctx, &store.DeleteTopic{ID: topic.ID}); err != nil {
		return internalError(c, "delete topic", err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
