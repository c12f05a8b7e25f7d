package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/content"

	"github.com/google/uuid"
)

var ErrEducationNotFound = errors.New("education record not found")

type EducationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (content.Education, error)
	ListAll(ctx context.Context) ([]content.Education, error)
	ListActive(ctx context.Context) ([]content.Education, error)
	Create(ctx context.Context, e content.Education) error
	Save(ctx context.Context, e content.Education) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresEducationRepository struct {
	db database.DB
}

func NewPostgresEducationRepository(db database.DB) *PostgresEducationRepository {
	return &PostgresEducationRepository{db: db}
}

const educationColumns = `id, institution, degree, field_of_study, start_year, end_year, description, skills, is_active, display_order, created_at, updated_at`

func (r *PostgresEducationRepository) FindByID(ctx context.Context, id uuid.UUID) (content.Education, error) {
	row := r.db.QueryRow(ctx, `SELECT `+educationColumns+` FROM education WHERE id = $1`, id)
	e, err := scanEducation(row)
	if err != nil {
		if isNoRows(err) {
			return content.Education{}, ErrEducationNotFound
		}
		return content.Education{}, err
	}
	return e, nil
}

func (r *PostgresEducationRepository) ListAll(ctx context.Context) ([]content.Education, error) {
	return r.list(ctx, `SELECT `+educationColumns+` FROM education ORDER BY display_order ASC, end_year DESC`)
}

func (r *PostgresEducationRepository) ListActive(ctx context.Context) ([]content.Education, error) {
	return r.list(ctx, `SELECT `+educationColumns+` FROM education WHERE is_active ORDER BY display_order ASC, end_year DESC`)
}

func (r *PostgresEducationRepository) list(ctx context.Context, query string) ([]content.Education, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]content.Education, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEducationRepository) Create(ctx context.Context, e content.Education) error {
	skillsJSON, err := json.Marshal(emptyIfNilEduSkills(e.Skills))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = r.db.Exec(ctx,
		`INSERT INTO education (id, institution, degree, field_of_study, start_year, end_year, description, skills, is_active, display_order, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)`,
		e.ID, e.Institution, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear, e.Description,
		skillsJSON, e.IsActive, e.Order, now,
	)
	return err
}

func (r *PostgresEducationRepository) Save(ctx context.Context, e content.Education) error {
	skillsJSON, err := json.Marshal(emptyIfNilEduSkills(e.Skills))
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE education SET institution=$2, degree=$3, field_of_study=$4, start_year=$5, end_year=$6, description=$7, skills=$8, is_active=$9, display_order=$10, updated_at=$11
		 WHERE id = $1`,
		e.ID, e.Institution, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear, e.Description,
		skillsJSON, e.IsActive, e.Order, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEducationNotFound
	}
	return nil
}

func (r *PostgresEducationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM education WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEducationNotFound
	}
	return nil
}

func scanEducation(row database.Row) (content.Education, error) {
	var e content.Education
	var skillsJSON []byte
	err := row.Scan(
		&e.ID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartYear, &e.EndYear, &e.Description,
		&skillsJSON, &e.IsActive, &e.Order, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return content.Education{}, err
	}
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &e.Skills); err != nil {
			return content.Education{}, err
		}
	}
	return e, nil
}

func emptyIfNilEduSkills(s []content.EducationSkillEntry) []content.EducationSkillEntry {
	if s == nil {
		return []content.EducationSkillEntry{}
	}
	return s
}
