package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyforge/studyforge/internal/util"
	"github.com/studyforge/studyforge/plugin/filter"
	"github.com/studyforge/studyforge/server/service/planner"
	"github.com/studyforge/studyforge/store"
)

// StudyUnit is the wire representation of a study unit.
type StudyUnit struct {
	UID         string `json:"uid"`
	TopicUID    string `json:"topicUid"`
	Name        string `json:"name"`
	Difficulty  int32  `json:"difficulty"`
	Incidence   string `json:"incidence"`
	Confidence  int32  `json:"confidence,omitempty"`
	LastStudied string `json:"lastStudied,omitempty"`
	Notes       string `json:"notes,omitempty"`
	SortOrder   int32  `json:"sortOrder"`
	CreatedTs   int64  `json:"createdTs"`
	UpdatedTs   int64  `json:"updatedTs"`
}

// ListedStudyUnit is a study unit with its tree context and current
// priority, returned by list.
type ListedStudyUnit struct {
	UID            string  `json:"uid"`
	Name           string  `json:"name"`
	Difficulty     int     `json:"difficulty"`
	Incidence      string  `json:"incidence"`
	Confidence     int     `json:"confidence,omitempty"`
	LastStudied    string  `json:"lastStudied,omitempty"`
	TopicName      string  `json:"topicName"`
	DisciplineName string  `json:"disciplineName"`
	Score          float64 `json:"score"`
	Tier           string  `json:"tier"`
}

// CreateStudyUnitRequest is the request to create a study unit.
type CreateStudyUnitRequest struct {
	Name       string `json:"name"`
	Difficulty int32  `json:"difficulty"`
	Incidence  string `json:"incidence"`
	Notes      string `json:"notes"`
	SortOrder  int32  `json:"sortOrder"`
}

// UpdateStudyUnitRequest carries a partial study unit update.
type UpdateStudyUnitRequest struct {
	Name       *string `json:"name"`
	Difficulty *int32  `json:"difficulty"`
	Incidence  *string `json:"incidence"`
	Notes      *string `json:"notes"`
	SortOrder  *int32  `json:"sortOrder"`
}

func validIncidence(incidence string) bool {
	switch incidence {
	case "low", "medium", "high":
		return true
	}
	return false
}

func convertStudyUnit(unit *store.StudyUnit, topicUID string) *StudyUnit {
	response := &StudyUnit{
		UID:        unit.UID,
		TopicUID:   topicUID,
		Name:       unit.Name,
		Difficulty: unit.Difficulty,
		Incidence:  unit.Incidence,
		Confidence: unit.Confidence,
		Notes:      unit.Notes,
		SortOrder:  unit.SortOrder,
		CreatedTs:  unit.CreatedTs,
		UpdatedTs:  unit.UpdatedTs,
	}
	if unit.LastStudied != nil {
		response.LastStudied = *unit.LastStudied
	}
	return response
}

// CreateStudyUnit creates a study unit under a topic.
// POST /api/v1/topics/:uid/units
func (s *APIV1Service) CreateStudyUnit(c echo.Context) error {
	ctx := c.Request().Context()
	topicUID := c.Param("uid")
	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &topicUID})
	if err != nil {
		return internalError(c, "get topic", err)
	}
	if topic == nil {
		return notFound(c, "topic not found")
	}

	request := &CreateStudyUnitRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.Name == "" {
		return badRequest(c, "name is required")
	}
	if request.Difficulty < 1 || request.Difficulty > 5 {
		return badRequest(c, "difficulty must be between 1 and 5")
	}
	if !validIncidence(request.Incidence) {
		return badRequest(c, "incidence must be low, medium or high")
	}

	unit, err := s.Store.CreateStudyUnit(ctx, &store.StudyUnit{
		UID:        util.GenUID(),
		TopicID:    topic.ID,
		Name:       request.Name,
		Difficulty: request.Difficulty,
		Incidence:  request.Incidence,
		Notes:      request.Notes,
		SortOrder:  request.SortOrder,
	})
	if err != nil {
		return internalError(c, "create study unit", err)
	}
	return c.JSON(http.StatusOK, convertStudyUnit(unit, topicUID))
}

// ListStudyUnits returns all units, optionally narrowed by a CEL filter.
// GET /api/v1/units?filter=difficulty >= 4 && incidence == "high"
func (s *APIV1Service) ListStudyUnits(c echo.Context) error {
	ctx := c.Request().Context()

	var unitFilter *filter.Filter
	if expression := c.QueryParam("filter"); expression != "" {
		parsed, err := filter.Parse(s.filterEnv, expression)
		if err != nil {
			return badRequest(c, err.Error())
		}
		unitFilter = parsed
	}

	tree, err := s.Store.PlannerTree(ctx)
	if err != nil {
		return internalError(c, "list study units", err)
	}
	settings, err := s.Store.GetPlannerSettings(ctx)
	if err != nil {
		return internalError(c, "list study units", err)
	}
	today := time.Now()

	response := make([]*ListedStudyUnit, 0)
	for _, discipline := range tree {
		for _, topic := range discipline.Topics {
			for _, unit := range topic.Units {
				if unitFilter != nil {
					matched, err := unitFilter.Match(map[string]any{
						"name":       unit.Name,
						"difficulty": int64(unit.Difficulty),
						"incidence":  string(unit.Incidence),
						"confidence": int64(unit.Confidence),
						"studied":    unit.Studied(),
						"topic":      topic.Name,
						"discipline": discipline.Name,
					})
					if err != nil {
						return badRequest(c, err.Error())
					}
					if !matched {
						continue
					}
				}
				score := planner.Score(unit, discipline, settings.ExamPhases, today)
				response = append(response, &ListedStudyUnit{
					UID:            unit.UID,
					Name:           unit.Name,
					Difficulty:     unit.Difficulty,
					Incidence:      string(unit.Incidence),
					Confidence:     unit.Confidence,
					LastStudied:    unit.LastStudied,
					TopicName:      topic.Name,
					DisciplineName: discipline.Name,
					Score:          score,
					Tier:           string(planner.TierOf(score)),
				})
			}
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetStudyUnit returns one study unit by UID.
// GET /api/v1/units/:uid
func (s *APIV1Service) GetStudyUnit(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	unit, err := s.Store.GetStudyUnit(ctx, &store.FindStudyUnit{UID: &uid})
	if err != nil {
		return internalError(c, "get study unit", err)
	}
	if unit == nil {
		return notFound(c, "study unit not found")
	}
	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{ID: &unit.TopicID})
	if err != nil {
		return internalError(c, "get study unit", err)
	}
	topicUID := ""
	if topic != nil {
		topicUID = topic.UID
	}
	return c.JSON(http.StatusOK, convertStudyUnit(unit, topicUID))
}

// UpdateStudyUnit applies a partial update to a study unit. Confidence and
// last-studied are owned by task completion and cannot be set here.
// PATCH /api/v1/units/:uid
func (s *APIV1Service) UpdateStudyUnit(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	unit, err := s.Store.GetStudyUnit(ctx, &store.FindStudyUnit{UID: &uid})
	if err != nil {
		return internalError(c, "get study unit", err)
	}
	if unit == nil {
		return notFound(c, "study unit not found")
	}

	request := &UpdateStudyUnitRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.Name != nil && *request.Name == "" {
		return badRequest(c, "name cannot be empty")
	}
	if request.Difficulty != nil && (*request.Difficulty < 1 || *request.Difficulty > 5) {
		return badRequest(c, "difficulty must be between 1 and 5")
	}
	if request.Incidence != nil && !validIncidence(*request.Incidence) {
		return badRequest(c, "incidence must be low, medium or high")
	}

	if err := s.Store.UpdateStudyUnit(ctx, &store.UpdateStudyUnit{
		ID:         unit.ID,
		Name:       request.Name,
		Difficulty: request.Difficulty,
		Incidence:  request.Incidence,
		Notes:      request.Notes,
		SortOrder:  request.SortOrder,
	}); err != nil {
		return internalError(c, "update study unit", err)
	}

	updated, err := s.Store.GetStudyUnit(ctx, &store.FindStudyUnit{UID: &uid})
	if err != nil {
		return internalError(c, "get study unit", err)
	}
	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{ID: &updated.TopicID})
	if err != nil {
		return internalError(c, "get study unit", err)
	}
	topicUID := ""
	if topic != nil {
		topicUID = topic.UID
	}
	return c.JSON(http.StatusOK, convertStudyUnit(updated, topicUID))
}

// DeleteStudyUnit removes a study unit and its study logs.
// DELETE /api/v1/units/:uid
func (s *APIV1Service) DeleteStudyUnit(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	unit, err := s.Store.GetStudyUnit(ctx, &store.FindStudyUnit{UID: &uid})
	if err != nil {
		return internalError(c, "get study unit", err)
	}
	if unit == nil {
		return notFound(c, "study unit not found")
	}
	if err := s.Store.DeleteStudyUnit(ctx, &store.DeleteStudyUnit{ID: unit.ID}); err != nil {
		return internalError(c, "delete study unit", err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// GetStudyUnitNotes returns a unit's notes, rendered to HTML on request.
// GET /api/v1/units/:uid/notes?format=html
func (s *APIV1Service) GetStudyUnitNotes(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	unit, err := s.Store.GetStudyUnit(ctx, &store.FindStudyUnit{UID: &uid})
	if err != nil {
		return internalError(c, "get study unit", err)
	}
	if unit == nil {
		return notFound(c, "study unit not found")
	}

	if c.QueryParam("format") == "html" {
		rendered, err := s.MarkdownService.Render(unit.Notes)
		if err != nil {
			return internalError(c, "render notes", err)
		}
		return c.HTML(http.StatusOK, rendered)
	}
	return c.JSON(http.StatusOK, map[string]string{"notes": unit.Notes})
}
