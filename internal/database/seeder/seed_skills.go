package seeder

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"

	"github.com/google/uuid"
)

// SkillsSeeder plants a starter skill set with manual sources, so a
// fresh install renders a non-empty skills section before any project
// or import has run. Existing names are left untouched.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "proficiency", "is_active"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name        string
		Category    string
		Proficiency string
	}{
		{Name: "Go", Category: "Language", Proficiency: "advanced"},
		{Name: "TypeScript", Category: "Language", Proficiency: "advanced"},
		{Name: "PostgreSQL", Category: "Database", Proficiency: "advanced"},
		{Name: "Redis", Category: "Database", Proficiency: "intermediate"},
		{Name: "Docker", Category: "DevOps/Cloud", Proficiency: "intermediate"},
	}

	for _, it := range items {
		id := uuid.New()
		affected, err := tx.Exec(ctx,
			`INSERT INTO skills (id, name, category, proficiency, is_active)
			 VALUES ($1, $2, $3, $4, TRUE)
			 ON CONFLICT (lower(name)) DO NOTHING`,
			id, it.Name, it.Category, it.Proficiency,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_sources (skill_id, source_type, reference_id)
			 VALUES ($1, 'manual', '')
			 ON CONFLICT (skill_id, source_type, reference_id) DO NOTHING`,
			id,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
