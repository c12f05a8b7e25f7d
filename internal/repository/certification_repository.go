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

var ErrCertificationNotFound = errors.New("certification not found")

type CertificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (content.Certification, error)
	ListAll(ctx context.Context) ([]content.Certification, error)
	ListActive(ctx context.Context) ([]content.Certification, error)
	Create(ctx context.Context, c content.Certification) error
	Save(ctx context.Context, c content.Certification) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCertificationRepository struct {
	db database.DB
}

func NewPostgresCertificationRepository(db database.DB) *PostgresCertificationRepository {
	return &PostgresCertificationRepository{db: db}
}

const certificationColumns = `id, title, issuer, credential_id, credential_url, issued_at, skills, is_active, display_order, created_at, updated_at`

func (r *PostgresCertificationRepository) FindByID(ctx context.Context, id uuid.UUID) (content.Certification, error) {
	row := r.db.QueryRow(ctx, `SELECT `+certificationColumns+` FROM certifications WHERE id = $1`, id)
	c, err := scanCertification(row)
	if err != nil {
		if isNoRows(err) {
			return content.Certification{}, ErrCertificationNotFound
		}
		return content.Certification{}, err
	}
	return c, nil
}

func (r *PostgresCertificationRepository) ListAll(ctx context.Context) ([]content.Certification, error) {
	return r.list(ctx, `SELECT `+certificationColumns+` FROM certifications ORDER BY display_order ASC, issued_at DESC NULLS LAST`)
}

func (r *PostgresCertificationRepository) ListActive(ctx context.Context) ([]content.Certification, error) {
	return r.list(ctx, `SELECT `+certificationColumns+` FROM certifications WHERE is_active ORDER BY display_order ASC, issued_at DESC NULLS LAST`)
}

func (r *PostgresCertificationRepository) list(ctx context.Context, query string) ([]content.Certification, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]content.Certification, 0)
	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCertificationRepository) Create(ctx context.Context, c content.Certification) error {
	skillsJSON, err := json.Marshal(emptyIfNilCertSkills(c.Skills))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = r.db.Exec(ctx,
		`INSERT INTO certifications (id, title, issuer, credential_id, credential_url, issued_at, skills, is_active, display_order, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)`,
		c.ID, c.Title, c.Issuer, c.CredentialID, c.CredentialURL, c.IssuedAt,
		skillsJSON, c.IsActive, c.Order, now,
	)
	return err
}

func (r *PostgresCertificationRepository) Save(ctx context.Context, c content.Certification) error {
	skillsJSON, err := json.Marshal(emptyIfNilCertSkills(c.Skills))
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE certifications SET title=$2, issuer=$3, credential_id=$4, credential_url=$5, issued_at=$6, skills=$7, is_active=$8, display_order=$9, updated_at=$10
		 WHERE id = $1`,
		c.ID, c.Title, c.Issuer, c.CredentialID, c.CredentialURL, c.IssuedAt,
		skillsJSON, c.IsActive, c.Order, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCertificationNotFound
	}
	return nil
}

func (r *PostgresCertificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM certifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCertificationNotFound
	}
	return nil
}

func scanCertification(row database.Row) (content.Certification, error) {
	var c content.Certification
	var skillsJSON []byte
	err := row.Scan(
		&c.ID, &c.Title, &c.Issuer, &c.CredentialID, &c.CredentialURL, &c.IssuedAt,
		&skillsJSON, &c.IsActive, &c.Order, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return content.Certification{}, err
	}
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &c.Skills); err != nil {
			return content.Certification{}, err
		}
	}
	return c, nil
}

func emptyIfNilCertSkills(s []content.CertificationSkill) []content.CertificationSkill {
	if s == nil {
		return []content.CertificationSkill{}
	}
	return s
}
