// Package migration creates the caller-analysis schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_callers",
		SQL: `CREATE TABLE IF NOT EXISTS callers (
  id                 UUID        PRIMARY KEY,
  phone_number       TEXT        NOT NULL,
  display_name       TEXT        NOT NULL DEFAULT '',
  organization       TEXT        NOT NULL,
  total_calls        INTEGER     NOT NULL DEFAULT 0 CHECK (total_calls >= 0),
  total_duration_sec BIGINT      NOT NULL DEFAULT 0 CHECK (total_duration_sec >= 0),
  last_call_at       TIMESTAMPTZ NOT NULL,
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (organization, phone_number)
);`,
	},
	{
		Name: "create_table_caller_tags",
		SQL: `CREATE TABLE IF NOT EXISTS caller_tags (
  caller_id UUID NOT NULL REFERENCES callers (id) ON DELETE CASCADE,
  tag       TEXT NOT NULL,
  PRIMARY KEY (caller_id, tag)
);`,
	},
	{
		Name: "create_index_callers_listing",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_callers_last_call ON callers (last_call_at DESC, id DESC);`,
	},
	{
		Name: "create_index_callers_organization",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_callers_organization ON callers (organization);`,
	},
	{
		Name: "create_index_caller_tags_tag",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_caller_tags_tag ON caller_tags (tag);`,
	},
}

// EnsureMigrated runs every step when the callers table is missing. An existing table means
// the schema is already in place and nothing is executed.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	start := time.Now()
	log := logger.With().Str("module", "database").Str("component", "migration").Logger()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.callers') IS NOT NULL").Scan(&exists); err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("sentinel check failed")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		log.Info().Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Int("steps", len(steps)).Msg("migration starting")
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).
				Str("migration_step", step.Name).
				Dur("step_duration", time.Since(stepStart)).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug().Str("migration_step", step.Name).Dur("step_duration", time.Since(stepStart)).Msg("migration step applied")
	}

	log.Info().Dur("duration", time.Since(start)).Msg("migration complete")
	return nil
}
