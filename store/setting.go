package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/studyforge/studyforge/server/service/planner"
)

// Setting names used by the server.
const (
	// SettingPlanner holds the JSON-encoded planner.Settings value.
	SettingPlanner = "planner"
	// SettingSchemaVersion guards schema migrations.
	SettingSchemaVersion = "schema_version"
)

// Setting is a named configuration row.
type Setting struct {
	Name  string
	Value string
}

// UpsertSetting creates or replaces a setting row.
func (s *Store) UpsertSetting(ctx context.Context, upsert *Setting) (*Setting, error) {
	setting, err := s.driver.UpsertSetting(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.settingCache.Set(ctx, setting.Name, setting)
	return setting, nil
}

// GetSetting gets a setting row by name, nil when absent.
func (s *Store) GetSetting(ctx context.Context, name string) (*Setting, error) {
	if cached, ok := s.settingCache.Get(ctx, name); ok {
		if setting, ok := cached.(*Setting); ok {
			return setting, nil
		}
	}
	setting, err := s.driver.GetSetting(ctx, name)
	if err != nil {
		return nil, err
	}
	if setting != nil {
		s.settingCache.Set(ctx, name, setting)
	}
	return setting, nil
}

// GetPlannerSettings loads the planner settings, falling back to (and
// normalizing with) the defaults when the row is missing or unreadable.
func (s *Store) GetPlannerSettings(ctx context.Context) (planner.Settings, error) {
	settings := planner.DefaultSettings()

	row, err := s.GetSetting(ctx, SettingPlanner)
	if err != nil {
		return settings, err
	}
	if row != nil {
		if err := json.Unmarshal([]byte(row.Value), &settings); err != nil {
			return planner.DefaultSettings(), errors.Wrap(err, "malformed planner settings row")
		}
	}
	settings.Normalize()
	return settings, nil
}

// UpsertPlannerSettings persists the planner settings after normalizing.
func (s *Store) UpsertPlannerSettings(ctx context.Context, settings planner.Settings) (planner.Settings, error) {
	settings.Normalize()
	value, err := json.Marshal(settings)
	if err != nil {
		return settings, errors.Wrap(err, "failed to encode planner settings")
	}
	if _, err := s.UpsertSetting(ctx, &Setting{Name: SettingPlanner, Value: string(value)}); err != nil {
		return settings, err
	}
	return settings, nil
}
