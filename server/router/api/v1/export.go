package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyforge/studyforge/internal/util"
	"github.com/studyforge/studyforge/server/service/planner"
	"github.com/studyforge/studyforge/store"
)

// TreeExport is the portable dump of the whole planning state.
type TreeExport struct {
	Version     string                `json:"version"`
	ExportedTs  int64                 `json:"exportedTs"`
	Disciplines []*planner.Discipline `json:"disciplines"`
	Settings    planner.Settings      `json:"settings"`
}

// ExportTree dumps the discipline tree, study history and settings as JSON.
// GET /api/v1/export
func (s *APIV1Service) ExportTree(c echo.Context) error {
	ctx := c.Request().Context()
	tree, err := s.Store.PlannerTree(ctx)
	if err != nil {
		return internalError(c, "export tree", err)
	}
	settings, err := s.AgendaService.Settings(ctx)
	if err != nil {
		return internalError(c, "export tree", err)
	}
	return c.JSON(http.StatusOK, &TreeExport{
		Version:     s.Profile.Version,
		ExportedTs:  time.Now().Unix(),
		Disciplines: tree,
		Settings:    settings,
	})
}

// ImportTree loads a previously exported dump. Disciplines are added to the
// existing tree; UIDs from the dump are kept so completions and exports stay
// stable across machines. Importing a dump twice fails on the UID constraint
// rather than duplicating material.
// POST /api/v1/import
func (s *APIV1Service) ImportTree(c echo.Context) error {
	ctx := c.Request().Context()
	dump := &TreeExport{}
	if err := c.Bind(dump); err != nil {
		return badRequest(c, "malformed request body")
	}
	if len(dump.Disciplines) == 0 {
		return badRequest(c, "dump contains no disciplines")
	}

	imported := 0
	for _, discipline := range dump.Disciplines {
		if discipline.Name == "" {
			return badRequest(c, "discipline name is required")
		}
		uid := discipline.UID
		if uid == "" {
			uid = util.GenUID()
		}
		weight := discipline.Weight
		if weight <= 0 {
			weight = 1
		}
		created, err := s.Store.CreateDiscipline(ctx, &store.Discipline{
			UID:    uid,
			Name:   discipline.Name,
			Weight: weight,
		})
		if err != nil {
			return internalError(c, "import discipline", err)
		}
		for _, topic := range discipline.Topics {
			if err := s.importTopic(c, created.ID, topic); err != nil {
				return err
			}
		}
		imported++
	}

	// The tree changed shape; regenerate the agenda against it.
	if _, err := s.AgendaService.Reorganize(ctx); err != nil {
		return internalError(c, "import tree", err)
	}
	return c.JSON(http.StatusOK, map[string]int{"importedDisciplines": imported})
}

func (s *APIV1Service) importTopic(c echo.Context, disciplineID int32, topic *planner.Topic) error {
	ctx := c.Request().Context()
	uid := topic.UID
	if uid == "" {
		uid = util.GenUID()
	}
	created, err := s.Store.CreateTopic(ctx, &store.Topic{
		UID:          uid,
		DisciplineID: disciplineID,
		Name:         topic.Name,
	})
	if err != nil {
		return internalError(c, "import topic", err)
	}
	for _, unit := range topic.Units {
		if err := s.importUnit(c, created.ID, unit); err != nil {
			return err
		}
	}
	return nil
}

func (s *APIV1Service) importUnit(c echo.Context, topicID int32, unit *planner.Unit) error {
	ctx := c.Request().Context()
	uid := unit.UID
	if uid == "" {
		uid = util.GenUID()
	}
	incidence := string(unit.Incidence)
	if !validIncidence(incidence) {
		incidence = "low"
	}
	difficulty := int32(unit.Difficulty)
	if difficulty < 1 || difficulty > 5 {
		difficulty = 1
	}
	row := &store.StudyUnit{
		UID:        uid,
		TopicID:    topicID,
		Name:       unit.Name,
		Difficulty: difficulty,
		Incidence:  incidence,
		Confidence: int32(unit.Confidence),
		Notes:      unit.Notes,
	}
	if unit.LastStudied != "" {
		lastStudied := unit.LastStudied
		row.LastStudied = &lastStudied
	}
	created, err := s.Store.CreateStudyUnit(ctx, row)
	if err != nil {
		return internalError(c, "import study unit", err)
	}
	for _, log := range unit.History {
		if _, err := s.Store.CreateStudyLog(ctx, &store.StudyLog{
			UnitID:     created.ID,
			Date:       log.Date,
			Confidence: int32(log.Confidence),
			Notes:      log.Notes,
		}); err != nil {
			return internalError(c, "import study log", err)
		}
	}
	return nil
}
