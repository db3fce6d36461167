package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/studyforge/studyforge/internal/version"
)

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName is the full schema applied to fresh installations.
const LatestSchemaFileName = "LATEST.sql"

// Migrate initializes the database schema for a fresh installation and
// records the schema version. Already-initialized databases are left alone;
// the schema_version setting guards reruns.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}
	if initialized {
		current, err := s.GetSetting(ctx, SettingSchemaVersion)
		if err != nil {
			return errors.Wrap(err, "failed to read schema version")
		}
		if current != nil {
			slog.Debug("database already initialized", slog.String("schema_version", current.Value))
			return nil
		}
	}

	if !initialized {
		schemaPath := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
		buf, err := migrationFS.ReadFile(schemaPath)
		if err != nil {
			return errors.Wrapf(err, "failed to read latest schema %q", schemaPath)
		}
		if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		slog.Info("database schema initialized", slog.String("driver", s.profile.Driver))
	}

	if _, err := s.UpsertSetting(ctx, &Setting{
		Name:  SettingSchemaVersion,
		Value: version.GetCurrentVersion(s.profile.Mode),
	}); err != nil {
		return errors.Wrap(err, "failed to record schema version")
	}
	return nil
}
