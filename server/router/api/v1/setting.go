package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyforge/studyforge/server/service/planner"
)

// GetSettings returns the active planner settings.
// GET /api/v1/settings
func (s *APIV1Service) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	settings, err := s.AgendaService.Settings(ctx)
	if err != nil {
		return internalError(c, "get settings", err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the planner settings and regenerates the agenda.
// Exam phases must carry valid dates; everything else is normalized to safe
// defaults rather than rejected.
// PUT /api/v1/settings
func (s *APIV1Service) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	request := planner.Settings{}
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	for _, phase := range request.ExamPhases {
		if _, ok := planner.ParseDate(phase.ExamDate); !ok {
			return badRequest(c, "exam phase date must be YYYY-MM-DD")
		}
		if phase.Boost < 0 {
			return badRequest(c, "exam phase boost cannot be negative")
		}
	}

	saved, err := s.AgendaService.UpdateSettings(ctx, request)
	if err != nil {
		return internalError(c, "update settings", err)
	}
	return c.JSON(http.StatusOK, saved)
}
