package repository

import (
	"context"
	"errors"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	// FindByName matches the trimmed name case-insensitively and exactly.
	FindByName(ctx context.Context, name string) (skill.Skill, error)
	ListAll(ctx context.Context) ([]skill.Skill, error)
	ListActive(ctx context.Context) ([]skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) error
	Save(ctx context.Context, s skill.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IsUniqueViolation reports a Postgres unique-constraint failure, used to
// turn a lost find-or-create race into a re-read instead of an error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, name, category, proficiency, level, description, display_order, is_active, created_at, updated_at`

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	s, err := scanSkill(row)
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	if err := r.loadSources(ctx, &s); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) FindByName(ctx context.Context, name string) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE lower(name) = lower(btrim($1)) LIMIT 1`,
		name,
	)
	s, err := scanSkill(row)
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	if err := r.loadSources(ctx, &s); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY display_order ASC, name ASC`)
}

func (r *PostgresSkillRepository) ListActive(ctx context.Context) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE is_active ORDER BY display_order ASC, name ASC`)
}

func (r *PostgresSkillRepository) list(ctx context.Context, query string) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadSourcesBulk(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	now := time.Now().UTC()
	_, err = tx.Exec(ctx,
		`INSERT INTO skills (id, name, category, proficiency, level, description, display_order, is_active, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)`,
		s.ID, s.Name, s.Category, s.Proficiency, s.Level, s.Description, s.Order, s.IsActive, now,
	)
	if err != nil {
		return err
	}

	if err := insertSources(ctx, tx, s.ID, s.Sources); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Save rewrites the skill row and replaces its source entries in one
// transaction; the unique (skill_id, source_type, reference_id) key keeps
// the dedup invariant even if two writers interleave.
func (r *PostgresSkillRepository) Save(ctx context.Context, s skill.Skill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE skills SET name=$2, category=$3, proficiency=$4, level=$5, description=$6, display_order=$7, is_active=$8, updated_at=$9
		 WHERE id = $1`,
		s.ID, s.Name, s.Category, s.Proficiency, s.Level, s.Description, s.Order, s.IsActive, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM skill_sources WHERE skill_id = $1`, s.ID); err != nil {
		return err
	}
	if err := insertSources(ctx, tx, s.ID, s.Sources); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) loadSources(ctx context.Context, s *skill.Skill) error {
	rows, err := r.db.Query(ctx,
		`SELECT source_type, reference_id FROM skill_sources WHERE skill_id = $1 ORDER BY created_at ASC`,
		s.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var src skill.Source
		if err := rows.Scan(&src.Type, &src.ReferenceID); err != nil {
			return err
		}
		s.Sources = append(s.Sources, src)
	}
	return rows.Err()
}

func (r *PostgresSkillRepository) loadSourcesBulk(ctx context.Context, skills []skill.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT skill_id, source_type, reference_id FROM skill_sources WHERE skill_id = ANY($1) ORDER BY created_at ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	bySkill := make(map[uuid.UUID][]skill.Source, len(skills))
	for rows.Next() {
		var id uuid.UUID
		var src skill.Source
		if err := rows.Scan(&id, &src.Type, &src.ReferenceID); err != nil {
			return err
		}
		bySkill[id] = append(bySkill[id], src)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range skills {
		skills[i].Sources = bySkill[skills[i].ID]
	}
	return nil
}

func insertSources(ctx context.Context, tx database.Tx, skillID uuid.UUID, sources []skill.Source) error {
	for _, src := range sources {
		_, err := tx.Exec(ctx,
			`INSERT INTO skill_sources (id, skill_id, source_type, reference_id)
			 VALUES ($1,$2,$3,$4)
			 ON CONFLICT (skill_id, source_type, reference_id) DO NOTHING`,
			uuid.New(), skillID, src.Type, src.ReferenceID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type skillScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row skillScanner) (skill.Skill, error) {
	var s skill.Skill
	err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Proficiency, &s.Level,
		&s.Description, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}
