package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username   TEXT        NOT NULL UNIQUE,
  first_name TEXT        NOT NULL DEFAULT '',
  last_name  TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_companies",
		SQL: `CREATE TABLE IF NOT EXISTS companies (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_roles",
		SQL: `CREATE TABLE IF NOT EXISTS roles (
  id   UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  name TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "seed_role_ceo",
		SQL:  `INSERT INTO roles (name) VALUES ('CEO') ON CONFLICT (name) DO NOTHING;`,
	},
	{
		Name: "create_table_user_roles",
		SQL: `CREATE TABLE IF NOT EXISTS user_roles (
  user_id            UUID    NOT NULL REFERENCES users (id),
  role_id            UUID    NOT NULL REFERENCES roles (id),
  company_id         UUID    NOT NULL REFERENCES companies (id),
  is_success_manager BOOLEAN NOT NULL DEFAULT false,
  PRIMARY KEY (user_id, role_id)
);`,
	},
	{
		Name: "create_table_reportee_trackers",
		SQL: `CREATE TABLE IF NOT EXISTS reportee_trackers (
  senior_id   UUID NOT NULL REFERENCES users (id),
  reportee_id UUID NOT NULL REFERENCES users (id),
  PRIMARY KEY (senior_id, reportee_id)
);`,
	},
	{
		Name: "create_table_direct_reports",
		SQL: `CREATE TABLE IF NOT EXISTS direct_reports (
  id        UUID  PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id   UUID  NOT NULL UNIQUE REFERENCES users (id),
  documents JSONB NOT NULL DEFAULT '[]'::jsonb
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id               UUID        PRIMARY KEY,
  title            TEXT        NOT NULL,
  priority         TEXT        NOT NULL CHECK (priority IN ('Low', 'Medium', 'High')),
  status           TEXT        NOT NULL CHECK (status IN ('Private', 'Shared')),
  owner            UUID        NOT NULL,
  link             TEXT        NOT NULL,
  is_file_uploaded BOOLEAN     NOT NULL DEFAULT false,
  file_name        TEXT,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  is_active        BOOLEAN     NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_index_documents_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents (owner);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_reportee_trackers_reportee",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reportee_trackers_reportee ON reportee_trackers (reportee_id);`,
	},
	{
		Name: "create_index_user_roles_company",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_user_roles_company ON user_roles (company_id);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
