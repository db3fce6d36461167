package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetStats summarizes the discipline tree and the stored agenda.
// GET /api/v1/stats
func (s *APIV1Service) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := s.AgendaService.Stats(ctx)
	if err != nil {
		return internalError(c, "get stats", err)
	}
	return c.JSON(http.StatusOK, stats)
}
