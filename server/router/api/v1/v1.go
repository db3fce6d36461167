// Package v1 exposes the JSON HTTP API. Handlers translate between wire
// types and the store/service layers; no planning logic lives here.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/google/cel-go/cel"
	"github.com/labstack/echo/v4"

	"github.com/studyforge/studyforge/internal/profile"
	"github.com/studyforge/studyforge/plugin/filter"
	"github.com/studyforge/studyforge/plugin/markdown"
	"github.com/studyforge/studyforge/server/service/agenda"
	"github.com/studyforge/studyforge/store"
)

type APIV1Service struct {
	Profile         *profile.Profile
	Store           *store.Store
	AgendaService   agenda.Service
	MarkdownService markdown.Service

	filterEnv *cel.Env
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) (*APIV1Service, error) {
	filterEnv, err := filter.Env()
	if err != nil {
		return nil, err
	}
	return &APIV1Service{
		Profile:         profile,
		Store:           store,
		AgendaService:   agenda.NewService(store),
		MarkdownService: markdown.NewService(),
		filterEnv:       filterEnv,
	}, nil
}

// RegisterRoutes registers all v1 routes on the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	g := echoServer.Group("/api/v1")

	g.GET("/disciplines", s.ListDisciplines)
	g.POST("/disciplines", s.CreateDiscipline)
	g.GET("/disciplines/:uid", s.GetDiscipline)
	g.PATCH("/disciplines/:uid", s.UpdateDiscipline)
	g.DELETE("/disciplines/:uid", s.DeleteDiscipline)

	g.POST("/disciplines/:uid/topics", s.CreateTopic)
	g.GET("/topics/:uid", s.GetTopic)
	g.PATCH("/topics/:uid", s.UpdateTopic)
	g.DELETE("/topics/:uid", s.DeleteTopic)

	g.POST("/topics/:uid/units", s.CreateStudyUnit)
	g.GET("/units", s.ListStudyUnits)
	g.GET("/units/:uid", s.GetStudyUnit)
	g.PATCH("/units/:uid", s.UpdateStudyUnit)
	g.DELETE("/units/:uid", s.DeleteStudyUnit)
	g.GET("/units/:uid/notes", s.GetStudyUnitNotes)

	g.GET("/agenda", s.GetAgenda)
	g.POST("/agenda/reorganize", s.ReorganizeAgenda)
	g.POST("/agenda/tasks/complete", s.CompleteTask)
	g.GET("/agenda/feed", s.GetAgendaFeed)

	g.GET("/settings", s.GetSettings)
	g.PUT("/settings", s.UpdateSettings)

	g.GET("/stats", s.GetStats)
	g.GET("/export", s.ExportTree)
	g.POST("/import", s.ImportTree)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Message string `json:"message"`
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: message})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Message: message})
}

func internalError(c echo.Context, action string, err error) error {
	slog.Error("request failed", slog.String("action", action), slog.Any("error", err))
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "failed to " + action})
}
