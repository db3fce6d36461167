package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyforge/studyforge/internal/util"
	"github.com/studyforge/studyforge/store"
)

// Discipline is the wire representation of a discipline.
type Discipline struct {
	UID       string  `json:"uid"`
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	SortOrder int32   `json:"sortOrder"`
	CreatedTs int64   `json:"createdTs"`
	UpdatedTs int64   `json:"updatedTs"`
}

// CreateDisciplineRequest is the request to create a discipline.
type CreateDisciplineRequest struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	SortOrder int32   `json:"sortOrder"`
}

// UpdateDisciplineRequest carries a partial discipline update.
type UpdateDisciplineRequest struct {
	Name      *string  `json:"name"`
	Weight    *float64 `json:"weight"`
	SortOrder *int32   `json:"sortOrder"`
}

func convertDiscipline(discipline *store.Discipline) *Discipline {
	return &Discipline{
		UID:       discipline.UID,
		Name:      discipline.Name,
		Weight:    discipline.Weight,
		SortOrder: discipline.SortOrder,
		CreatedTs: discipline.CreatedTs,
		UpdatedTs: discipline.UpdatedTs,
	}
}

// ListDisciplines returns all disciplines in sort order.
// GET /api/v1/disciplines
func (s *APIV1Service) ListDisciplines(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := s.Store.ListDisciplines(ctx, &store.FindDiscipline{})
	if err != nil {
		return internalError(c, "list disciplines", err)
	}
	response := make([]*Discipline, 0, len(list))
	for _, discipline := range list {
		response = append(response, convertDiscipline(discipline))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateDiscipline creates a new discipline.
// POST /api/v1/disciplines
func (s *APIV1Service) CreateDiscipline(c echo.Context) error {
	ctx := c.Request().Context()
	request := &CreateDisciplineRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.Name == "" {
		return badRequest(c, "name is required")
	}
	if request.Weight <= 0 {
		return badRequest(c, "weight must be positive")
	}

	discipline, err := s.Store.CreateDiscipline(ctx, &store.Discipline{
		UID:       util.GenUID(),
		Name:      request.Name,
		Weight:    request.Weight,
		SortOrder: request.SortOrder,
	})
	if err != nil {
		return internalError(c, "create discipline", err)
	}
	return c.JSON(http.StatusOK, convertDiscipline(discipline))
}

// GetDiscipline returns one discipline by UID.
// GET /api/v1/disciplines/:uid
func (s *APIV1Service) GetDiscipline(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	discipline, err := s.Store.GetDiscipline(ctx, &store.FindDiscipline{UID: &uid})
	if err != nil {
		return internalError(c, "get discipline", err)
	}
	if discipline == nil {
		return notFound(c, "discipline not found")
	}
	return c.JSON(http.StatusOK, convertDiscipline(discipline))
}

// UpdateDiscipline applies a partial update to a discipline.
// PATCH /api/v1/disciplines/:uid
func (s *APIV1Service) UpdateDiscipline(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	discipline, err := s.Store.GetDiscipline(ctx, &store.FindDiscipline{UID: &uid})
	if err != nil {
		return internalError(c, "get discipline", err)
	}
	if discipline == nil {
		return notFound(c, "discipline not found")
	}

	request := &UpdateDisciplineRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.Name != nil && *request.Name == "" {
		return badRequest(c, "name cannot be empty")
	}
	if request.Weight != nil && *request.Weight <= 0 {
		return badRequest(c, "weight must be positive")
	}

	if err := s.Store.UpdateDiscipline(ctx, &store.UpdateDiscipline{
		ID:        discipline.ID,
		Name:      request.Name,
		Weight:    request.Weight,
		SortOrder: request.SortOrder,
	}); err != nil {
		return internalError(c, "update discipline", err)
	}

	updated, err := s.Store.GetDiscipline(ctx, &store.FindDiscipline{UID: &uid})
	if err != nil {
		return internalError(c, "get discipline", err)
	}
	return c.JSON(http.StatusOK, convertDiscipline(updated))
}

// DeleteDiscipline removes a discipline and everything underneath it.
// DELETE /api/v1/disciplines/:uid
func (s *APIV1Service) DeleteDiscipline(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	discipline, err := s.Store.GetDiscipline(ctx, &store.FindDiscipline{UID: &uid})
	if err != nil {
		return internalError(c, "get discipline", err)
	}
	if discipline == nil {
		return notFound(c, "discipline not found")
	}
	if err := s.Store.DeleteDiscipline(ctx, &store.DeleteDiscipline{ID: discipline.ID}); err != nil {
		return internalError(c, "delete discipline", err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
