package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/server/service/planner"
	"github.com/studyforge/studyforge/store"
)

// MockStoreForAgenda is an in-memory implementation of the Store interface.
type MockStoreForAgenda struct {
	tree     []*planner.Discipline
	settings *planner.Settings
	snapshot *store.AgendaSnapshot
	units    []*store.StudyUnit
	logs     []*store.StudyLog
}

func (m *MockStoreForAgenda) PlannerTree(_ context.Context) ([]*planner.Discipline, error) {
	return m.tree, nil
}

func (m *MockStoreForAgenda) GetPlannerSettings(_ context.Context) (planner.Settings, error) {
	if m.settings == nil {
		return planner.DefaultSettings(), nil
	}
	return *m.settings, nil
}

func (m *MockStoreForAgenda) UpsertPlannerSettings(_ context.Context, settings planner.Settings) (planner.Settings, error) {
	m.settings = &settings
	return settings, nil
}

func (m *MockStoreForAgenda) GetAgendaSnapshot(_ context.Context) (*store.AgendaSnapshot, error) {
	return m.snapshot, nil
}

func (m *MockStoreForAgenda) UpsertAgendaSnapshot(_ context.Context, upsert *store.AgendaSnapshot) (*store.AgendaSnapshot, error) {
	upsert.ID = 1
	m.snapshot = upsert
	return upsert, nil
}

func (m *MockStoreForAgenda) GetStudyUnit(_ context.Context, find *store.FindStudyUnit) (*store.StudyUnit, error) {
	for _, unit := range m.units {
		if find.UID != nil && unit.UID != *find.UID {
			continue
		}
		if find.ID != nil && unit.ID != *find.ID {
			continue
		}
		return unit, nil
	}
	return nil, nil
}

func (m *MockStoreForAgenda) UpdateStudyUnit(_ context.Context, update *store.UpdateStudyUnit) error {
	for _, unit := range m.units {
		if unit.ID != update.ID {
			continue
		}
		if update.Confidence != nil {
			unit.Confidence = *update.Confidence
		}
		if update.LastStudied != nil {
			unit.LastStudied = update.LastStudied
		}
	}
	// Mirror the update into the planner tree the way the real store's
	// cache invalidation would.
	for _, discipline := range m.tree {
		for _, topic := range discipline.Topics {
			for _, unit := range topic.Units {
				if update.LastStudied != nil && unitID(m.units, unit.UID) == update.ID {
					unit.LastStudied = *update.LastStudied
					if update.Confidence != nil {
						unit.Confidence = int(*update.Confidence)
					}
				}
			}
		}
	}
	return nil
}

func (m *MockStoreForAgenda) CreateStudyLog(_ context.Context, create *store.StudyLog) (*store.StudyLog, error) {
	create.ID = int32(len(m.logs) + 1)
	m.logs = append(m.logs, create)
	return create, nil
}

func unitID(units []*store.StudyUnit, uid string) int32 {
	for _, unit := range units {
		if unit.UID == uid {
			return unit.ID
		}
	}
	return 0
}

func newTestService(mock *MockStoreForAgenda, today string) *service {
	day, _ := planner.ParseDate(today)
	return &service{store: mock, now: func() time.Time { return day }}
}

func testTree() []*planner.Discipline {
	return []*planner.Discipline{
		{
			UID: "disc-law", Name: "Constitutional Law", Weight: 5,
			Topics: []*planner.Topic{
				{
					UID: "top-rights", Name: "Fundamental Rights",
					Units: []*planner.Unit{
						{UID: "unit-a", Name: "Free Speech", Difficulty: 3, Incidence: planner.IncidenceHigh},
						{UID: "unit-b", Name: "Due Process", Difficulty: 4, Incidence: planner.IncidenceMedium},
					},
				},
			},
		},
	}
}

func testUnits() []*store.StudyUnit {
	return []*store.StudyUnit{
		{ID: 1, UID: "unit-a", TopicID: 1, Name: "Free Speech"},
		{ID: 2, UID: "unit-b", TopicID: 1, Name: "Due Process"},
	}
}

func TestReorganizePersistsSnapshot(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	agenda, err := svc.Reorganize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", agenda.HorizonStart)
	assert.Len(t, agenda.Plans, planner.HorizonDays)

	require.NotNil(t, mock.snapshot)
	assert.Equal(t, "2026-03-02", mock.snapshot.HorizonStart)
	assert.NotEmpty(t, mock.snapshot.Payload)
}

func TestCurrentAgendaGeneratesWhenEmpty(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	require.Nil(t, mock.snapshot)
	agenda, err := svc.CurrentAgenda(context.Background())
	require.NoError(t, err)
	assert.Len(t, agenda.Plans, planner.HorizonDays)
	assert.NotNil(t, mock.snapshot)
}

func TestCurrentAgendaReturnsStored(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	first, err := svc.Reorganize(context.Background())
	require.NoError(t, err)

	// Mutating the tree afterwards must not change the stored agenda.
	mock.tree = nil
	second, err := svc.CurrentAgenda(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.HorizonStart, second.HorizonStart)
	assert.Len(t, second.Plans, planner.HorizonDays)
}

func TestCompleteTaskRecordsLogAndUnit(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	_, err := svc.Reorganize(context.Background())
	require.NoError(t, err)

	agenda, err := svc.CompleteTask(context.Background(), &CompleteTaskRequest{
		UnitUID:    "unit-a",
		Confidence: 4,
		Notes:      "solid",
	})
	require.NoError(t, err)
	require.NotNil(t, agenda)

	require.Len(t, mock.logs, 1)
	assert.Equal(t, int32(1), mock.logs[0].UnitID)
	assert.Equal(t, "2026-03-02", mock.logs[0].Date)
	assert.Equal(t, int32(4), mock.logs[0].Confidence)
	assert.Equal(t, "solid", mock.logs[0].Notes)

	require.NotNil(t, mock.units[0].LastStudied)
	assert.Equal(t, "2026-03-02", *mock.units[0].LastStudied)
	assert.Equal(t, int32(4), mock.units[0].Confidence)
}

func TestCompleteTaskClampsConfidence(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	_, err := svc.CompleteTask(context.Background(), &CompleteTaskRequest{
		UnitUID:    "unit-b",
		Confidence: 9,
	})
	require.NoError(t, err)
	require.Len(t, mock.logs, 1)
	assert.Equal(t, int32(5), mock.logs[0].Confidence)
}

func TestCompleteTaskUnknownUnit(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	_, err := svc.CompleteTask(context.Background(), &CompleteTaskRequest{
		UnitUID:    "nope",
		Confidence: 3,
	})
	assert.ErrorIs(t, err, ErrUnitNotFound)
	assert.Empty(t, mock.logs)
}

func TestUpdateSettingsRegeneratesAgenda(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	settings := planner.DefaultSettings()
	settings.DailyStudyMinutes = 45
	saved, err := svc.UpdateSettings(context.Background(), settings)
	require.NoError(t, err)
	assert.Equal(t, 45, saved.DailyStudyMinutes)

	require.NotNil(t, mock.snapshot)
	agenda, err := svc.CurrentAgenda(context.Background())
	require.NoError(t, err)
	// One 45-minute study slot per study day.
	for _, plan := range agenda.Plans {
		assert.LessOrEqual(t, plan.Minutes(), 45)
	}
}

func TestStats(t *testing.T) {
	mock := &MockStoreForAgenda{tree: testTree(), units: testUnits()}
	svc := newTestService(mock, "2026-03-02")

	_, err := svc.Reorganize(context.Background())
	require.NoError(t, err)
	_, err = svc.CompleteTask(context.Background(), &CompleteTaskRequest{UnitUID: "unit-a", Confidence: 4})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Disciplines)
	assert.Equal(t, 1, stats.Topics)
	assert.Equal(t, 2, stats.Units)
	assert.Equal(t, 1, stats.StudiedUnits)
	assert.Equal(t, 1, stats.UnstudiedUnits)
	assert.Positive(t, stats.PlannedMinutes)

	require.Len(t, stats.PerDiscipline, 1)
	breakdown := stats.PerDiscipline[0]
	assert.Equal(t, "disc-law", breakdown.UID)
	assert.Equal(t, 2, breakdown.Units)
	assert.Equal(t, 1, breakdown.StudiedUnits)
}
