package skillgraph

import (
	"context"
	"errors"
	"strings"

	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository"

	"github.com/google/uuid"
)

// Resolver maps a loose identifier to exactly one stored skill, or nil.
// Callers treat nil as "not found"; only store failures surface as errors.
type Resolver struct {
	skills repository.SkillRepository
}

func NewResolver(skills repository.SkillRepository) *Resolver {
	return &Resolver{skills: skills}
}

// Resolve tries, in order: the identifier's name (case-insensitive exact
// match on the cleaned value), its id field, and finally the raw string —
// id lookup first when the raw value is in id format, name lookup
// otherwise.
func (r *Resolver) Resolve(ctx context.Context, ident Identifier) (*skill.Skill, error) {
	if name := CleanName(ident.Name); name != "" {
		s, err := r.byName(ctx, name)
		if err != nil || s != nil {
			return s, err
		}
		// An id on the object only matters when the name missed.
	}

	if id := strings.TrimSpace(ident.ID); id != "" {
		uid, err := uuid.Parse(id)
		if err == nil {
			return r.byID(ctx, uid)
		}
	}

	raw := strings.TrimSpace(ident.Raw)
	if raw == "" {
		return nil, nil
	}
	if uid, err := uuid.Parse(raw); err == nil {
		s, err := r.byID(ctx, uid)
		if err != nil || s != nil {
			return s, err
		}
	}
	if name := CleanName(raw); name != "" {
		return r.byName(ctx, name)
	}
	return nil, nil
}

func (r *Resolver) byID(ctx context.Context, id uuid.UUID) (*skill.Skill, error) {
	s, err := r.skills.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Resolver) byName(ctx context.Context, name string) (*skill.Skill, error) {
	s, err := r.skills.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// CleanName strips the punctuation noise upstream extraction reliably
// introduces: leading/trailing quotes and parentheses, embedded double
// quotes, and runs of whitespace. Applied before every creation and
// every dedup comparison.
func CleanName(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'`()")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.Join(strings.Fields(s), " ")
}
