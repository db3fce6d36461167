package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Discipline model related methods.
	CreateDiscipline(ctx context.Context, create *Discipline) (*Discipline, error)
	ListDisciplines(ctx context.Context, find *FindDiscipline) ([]*Discipline, error)
	UpdateDiscipline(ctx context.Context, update *UpdateDiscipline) error
	DeleteDiscipline(ctx context.Context, delete *DeleteDiscipline) error

	// Topic model related methods.
	CreateTopic(ctx context.Context, create *Topic) (*Topic, error)
	ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error)
	UpdateTopic(ctx context.Context, update *UpdateTopic) error
	DeleteTopic(ctx context.Context, delete *DeleteTopic) error

	// StudyUnit model related methods.
	CreateStudyUnit(ctx context.Context, create *StudyUnit) (*StudyUnit, error)
	ListStudyUnits(ctx context.Context, find *FindStudyUnit) ([]*StudyUnit, error)
	UpdateStudyUnit(ctx context.Context, update *UpdateStudyUnit) error
	DeleteStudyUnit(ctx context.Context, delete *DeleteStudyUnit) error

	// StudyLog model related methods (append-only).
	CreateStudyLog(ctx context.Context, create *StudyLog) (*StudyLog, error)
	ListStudyLogs(ctx context.Context, find *FindStudyLog) ([]*StudyLog, error)

	// Setting model related methods.
	UpsertSetting(ctx context.Context, upsert *Setting) (*Setting, error)
	GetSetting(ctx context.Context, name string) (*Setting, error)

	// AgendaSnapshot model related methods.
	UpsertAgendaSnapshot(ctx context.Context, upsert *AgendaSnapshot) (*AgendaSnapshot, error)
	GetAgendaSnapshot(ctx context.Context) (*AgendaSnapshot, error)
}
