package v1

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/studyforge/studyforge/server/service/agenda"
	"github.com/studyforge/studyforge/server/service/planner"
)

// GetAgenda returns the current agenda, generating one when none exists.
// An optional from/to date range narrows the returned days.
// GET /api/v1/agenda?from=2026-03-01&to=2026-03-07
func (s *APIV1Service) GetAgenda(c echo.Context) error {
	ctx := c.Request().Context()
	current, err := s.AgendaService.CurrentAgenda(ctx)
	if err != nil {
		return internalError(c, "get agenda", err)
	}

	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from != "" || to != "" {
		if from != "" {
			if _, ok := planner.ParseDate(from); !ok {
				return badRequest(c, "invalid from date, want YYYY-MM-DD")
			}
		}
		if to != "" {
			if _, ok := planner.ParseDate(to); !ok {
				return badRequest(c, "invalid to date, want YYYY-MM-DD")
			}
		}
		narrowed := make(map[string]*planner.DailyPlan, len(current.Plans))
		for date, plan := range current.Plans {
			if from != "" && date < from {
				continue
			}
			if to != "" && date > to {
				continue
			}
			narrowed[date] = plan
		}
		current = &agenda.Agenda{
			GeneratedTs:  current.GeneratedTs,
			HorizonStart: current.HorizonStart,
			Plans:        narrowed,
		}
	}
	return c.JSON(http.StatusOK, current)
}

// ReorganizeAgenda regenerates the agenda from the current tree.
// POST /api/v1/agenda/reorganize
func (s *APIV1Service) ReorganizeAgenda(c echo.Context) error {
	ctx := c.Request().Context()
	regenerated, err := s.AgendaService.Reorganize(ctx)
	if err != nil {
		return internalError(c, "reorganize agenda", err)
	}
	return c.JSON(http.StatusOK, regenerated)
}

// CompleteTask records a task completion.
// POST /api/v1/agenda/tasks/complete
func (s *APIV1Service) CompleteTask(c echo.Context) error {
	ctx := c.Request().Context()
	request := &agenda.CompleteTaskRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.UnitUID == "" {
		return badRequest(c, "unitUid is required")
	}
	if request.Confidence < 1 || request.Confidence > 5 {
		return badRequest(c, "confidence must be between 1 and 5")
	}

	updated, err := s.AgendaService.CompleteTask(ctx, request)
	if err != nil {
		if errors.Is(err, agenda.ErrUnitNotFound) {
			return notFound(c, "study unit not found")
		}
		return internalError(c, "complete task", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// GetAgendaFeed serves the agenda as an Atom feed, one entry per upcoming
// study day, for calendar and reader apps.
// GET /api/v1/agenda/feed
func (s *APIV1Service) GetAgendaFeed(c echo.Context) error {
	ctx := c.Request().Context()
	current, err := s.AgendaService.CurrentAgenda(ctx)
	if err != nil {
		return internalError(c, "get agenda feed", err)
	}

	baseURL := s.Profile.InstanceURL
	feed := &feeds.Feed{
		Title:       "Study agenda",
		Link:        &feeds.Link{Href: baseURL + "/api/v1/agenda"},
		Description: "Planned study and review tasks",
		Created:     time.Unix(current.GeneratedTs, 0).UTC(),
	}

	dates := make([]string, 0, len(current.Plans))
	for date, plan := range current.Plans {
		if len(plan.Tasks) == 0 {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		plan := current.Plans[date]
		day, _ := planner.ParseDate(date)
		description := ""
		for _, task := range plan.Tasks {
			description += fmt.Sprintf("[%s] %s - %s (%d min)\n", task.Type, task.DisciplineName, task.UnitName, task.Duration)
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          baseURL + "/api/v1/agenda#" + date,
			Title:       fmt.Sprintf("%s: %d tasks, %d min", date, len(plan.Tasks), plan.Minutes()),
			Link:        &feeds.Link{Href: baseURL + "/api/v1/agenda?from=" + date + "&to=" + date},
			Description: description,
			Created:     day,
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return internalError(c, "render agenda feed", err)
	}
	return c.Blob(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(atom))
}
