package repository

import (
	"context"
	"errors"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/content"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (content.Project, error)
	ListAll(ctx context.Context) ([]content.Project, error)
	ListActive(ctx context.Context) ([]content.Project, error)
	Create(ctx context.Context, p content.Project) error
	Save(ctx context.Context, p content.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, title, description, repo_url, live_url, technologies, skill_ids, is_active, display_order, created_at, updated_at`

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (content.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if isNoRows(err) {
			return content.Project{}, ErrProjectNotFound
		}
		return content.Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) ListAll(ctx context.Context) ([]content.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY display_order ASC, created_at DESC`)
}

func (r *PostgresProjectRepository) ListActive(ctx context.Context) ([]content.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE is_active ORDER BY display_order ASC, created_at DESC`)
}

func (r *PostgresProjectRepository) list(ctx context.Context, query string) ([]content.Project, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]content.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p content.Project) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, title, description, repo_url, live_url, technologies, skill_ids, is_active, display_order, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)`,
		p.ID, p.Title, p.Description, p.RepoURL, p.LiveURL,
		p.Technologies, p.SkillIDs, p.IsActive, p.Order, now,
	)
	return err
}

func (r *PostgresProjectRepository) Save(ctx context.Context, p content.Project) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE projects SET title=$2, description=$3, repo_url=$4, live_url=$5, technologies=$6, skill_ids=$7, is_active=$8, display_order=$9, updated_at=$10
		 WHERE id = $1`,
		p.ID, p.Title, p.Description, p.RepoURL, p.LiveURL,
		p.Technologies, p.SkillIDs, p.IsActive, p.Order, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func scanProject(row database.Row) (content.Project, error) {
	var p content.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.RepoURL, &p.LiveURL,
		&p.Technologies, &p.SkillIDs, &p.IsActive, &p.Order, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
