package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/internal/profile"
	"github.com/studyforge/studyforge/server/service/agenda"
	"github.com/studyforge/studyforge/server/service/planner"
)

// fakeAgendaService returns canned data; handlers are what is under test.
type fakeAgendaService struct {
	agenda    *agenda.Agenda
	completed *agenda.CompleteTaskRequest
}

func (f *fakeAgendaService) CurrentAgenda(_ context.Context) (*agenda.Agenda, error) {
	return f.agenda, nil
}

func (f *fakeAgendaService) Reorganize(_ context.Context) (*agenda.Agenda, error) {
	return f.agenda, nil
}

func (f *fakeAgendaService) CompleteTask(_ context.Context, complete *agenda.CompleteTaskRequest) (*agenda.Agenda, error) {
	if complete.UnitUID == "missing" {
		return nil, agenda.ErrUnitNotFound
	}
	f.completed = complete
	return f.agenda, nil
}

func (f *fakeAgendaService) Settings(_ context.Context) (planner.Settings, error) {
	return planner.DefaultSettings(), nil
}

func (f *fakeAgendaService) UpdateSettings(_ context.Context, settings planner.Settings) (planner.Settings, error) {
	return settings, nil
}

func (f *fakeAgendaService) Stats(_ context.Context) (*agenda.Stats, error) {
	return &agenda.Stats{}, nil
}

func testAgenda() *agenda.Agenda {
	return &agenda.Agenda{
		GeneratedTs:  1772409600,
		HorizonStart: "2026-03-02",
		Plans: map[string]*planner.DailyPlan{
			"2026-03-02": {Date: "2026-03-02", Tasks: []*planner.Task{{
				UID:            "2026-03-02/study/unit-a",
				Type:           planner.TaskTypeStudy,
				UnitUID:        "unit-a",
				UnitName:       "Free Speech",
				DisciplineName: "Constitutional Law",
				Duration:       45,
			}}},
			"2026-03-03": {Date: "2026-03-03", Tasks: []*planner.Task{}},
			"2026-03-08": {Date: "2026-03-08", Tasks: []*planner.Task{}, IsRestDay: true},
		},
	}
}

func newTestAPIService(fake *fakeAgendaService) *APIV1Service {
	return &APIV1Service{
		Profile:       &profile.Profile{InstanceURL: "https://study.example.com"},
		AgendaService: fake,
	}
}

func TestGetAgendaRange(t *testing.T) {
	e := echo.New()
	svc := newTestAPIService(&fakeAgendaService{agenda: testAgenda()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agenda?from=2026-03-02&to=2026-03-03", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, svc.GetAgenda(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &agenda.Agenda{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.Len(t, response.Plans, 2)
	assert.Contains(t, response.Plans, "2026-03-02")
	assert.NotContains(t, response.Plans, "2026-03-08")
}

func TestGetAgendaRejectsBadDate(t *testing.T) {
	e := echo.New()
	svc := newTestAPIService(&fakeAgendaService{agenda: testAgenda()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agenda?from=03-02-2026", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, svc.GetAgenda(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteTaskValidation(t *testing.T) {
	e := echo.New()
	fake := &fakeAgendaService{agenda: testAgenda()}
	svc := newTestAPIService(fake)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/agenda/tasks/complete", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, svc.CompleteTask(e.NewContext(req, rec)))
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, post(`{"confidence":3}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"unitUid":"unit-a","confidence":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"unitUid":"unit-a","confidence":6}`).Code)
	assert.Equal(t, http.StatusNotFound, post(`{"unitUid":"missing","confidence":3}`).Code)

	rec := post(`{"unitUid":"unit-a","confidence":4,"notes":"done"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.completed)
	assert.Equal(t, "unit-a", fake.completed.UnitUID)
	assert.Equal(t, 4, fake.completed.Confidence)
}

func TestGetAgendaFeed(t *testing.T) {
	e := echo.New()
	svc := newTestAPIService(&fakeAgendaService{agenda: testAgenda()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agenda/feed", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, svc.GetAgendaFeed(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/atom+xml")
	assert.Contains(t, body, "Free Speech")
	// Empty days carry no entry.
	assert.NotContains(t, body, "2026-03-03:")
}
