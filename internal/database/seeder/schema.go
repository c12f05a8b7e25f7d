package seeder

import (
	"context"

	"portfolio-api/internal/database"
)

// SchemaSeeder applies the idempotent DDL for every table the API reads
// and writes. It runs first so the data seeders can rely on the schema.
type SchemaSeeder struct{}

func (SchemaSeeder) Name() string { return "schema" }

// The unique index on lower(name) is what turns a concurrent
// find-or-create of the same skill name into a detectable unique
// violation. The skill_sources unique key guarantees at most one source
// row per (skill, type, reference).
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS skills (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		proficiency TEXT NOT NULL DEFAULT '',
		level INT NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		display_order INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS skills_name_lower_key ON skills (lower(name))`,

	`CREATE TABLE IF NOT EXISTS skill_sources (
		skill_id UUID NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
		source_type TEXT NOT NULL,
		reference_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (skill_id, source_type, reference_id)
	)`,
	`CREATE INDEX IF NOT EXISTS skill_sources_skill_id_idx ON skill_sources (skill_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		repo_url TEXT NOT NULL DEFAULT '',
		live_url TEXT NOT NULL DEFAULT '',
		technologies TEXT[] NOT NULL DEFAULT '{}',
		skill_ids UUID[] NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS certifications (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		issuer TEXT NOT NULL DEFAULT '',
		credential_id TEXT NOT NULL DEFAULT '',
		credential_url TEXT NOT NULL DEFAULT '',
		issued_at TIMESTAMPTZ,
		skills JSONB NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS education (
		id UUID PRIMARY KEY,
		institution TEXT NOT NULL,
		degree TEXT NOT NULL DEFAULT '',
		field_of_study TEXT NOT NULL DEFAULT '',
		start_year INT NOT NULL DEFAULT 0,
		end_year INT NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		skills JSONB NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func (SchemaSeeder) Run(ctx context.Context, db database.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
