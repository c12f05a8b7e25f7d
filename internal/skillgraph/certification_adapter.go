package skillgraph

import (
	"context"
	"errors"
	"strings"

	"portfolio-api/internal/domain/content"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository"

	"github.com/google/uuid"
)

// CertificationAdapter wraps the certification store. Certifications
// embed skill objects; the name is the only join key.
type CertificationAdapter struct {
	repo repository.CertificationRepository
}

func NewCertificationAdapter(repo repository.CertificationRepository) *CertificationAdapter {
	return &CertificationAdapter{repo: repo}
}

func (a *CertificationAdapter) Type() skill.SourceType { return skill.SourceCertification }

func (a *CertificationAdapter) Get(ctx context.Context, id uuid.UUID) (Entity, error) {
	c, err := a.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCertificationNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	return &certificationEntity{c: &c}, nil
}

func (a *CertificationAdapter) ListAll(ctx context.Context) ([]Entity, error) {
	items, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, 0, len(items))
	for i := range items {
		out = append(out, &certificationEntity{c: &items[i]})
	}
	return out, nil
}

func (a *CertificationAdapter) Save(ctx context.Context, e Entity) error {
	ce, ok := e.(*certificationEntity)
	if !ok {
		return errors.New("certification adapter: foreign entity")
	}
	return a.repo.Save(ctx, *ce.c)
}

type certificationEntity struct {
	c *content.Certification
}

func (e *certificationEntity) ID() uuid.UUID  { return e.c.ID }
func (e *certificationEntity) Title() string  { return e.c.Title }
func (e *certificationEntity) IsActive() bool { return e.c.IsActive }

func (e *certificationEntity) SkillIdentifiers() []Identifier {
	out := make([]Identifier, 0, len(e.c.Skills))
	for _, cs := range e.c.Skills {
		out = append(out, NameIdentifier(cs.Name))
	}
	return out
}

func (e *certificationEntity) ContainsSkill(s *skill.Skill) bool {
	for _, cs := range e.c.Skills {
		if strings.EqualFold(CleanName(cs.Name), s.Name) {
			return true
		}
	}
	return false
}

func (e *certificationEntity) AttachSkill(s *skill.Skill) bool {
	if e.ContainsSkill(s) {
		return false
	}
	proficiency := s.Proficiency
	if proficiency == "" {
		proficiency = DefaultProficiency
	}
	e.c.Skills = append(e.c.Skills, content.CertificationSkill{
		Name:        s.Name,
		Proficiency: proficiency,
	})
	return true
}

func (e *certificationEntity) DetachSkill(s *skill.Skill) bool {
	kept := e.c.Skills[:0]
	changed := false
	for _, cs := range e.c.Skills {
		if strings.EqualFold(CleanName(cs.Name), s.Name) {
			changed = true
			continue
		}
		kept = append(kept, cs)
	}
	e.c.Skills = kept
	return changed
}

func (e *certificationEntity) PruneSkills(keep func(Identifier) bool) bool {
	kept := e.c.Skills[:0]
	changed := false
	for _, cs := range e.c.Skills {
		if !keep(NameIdentifier(cs.Name)) {
			changed = true
			continue
		}
		kept = append(kept, cs)
	}
	e.c.Skills = kept
	return changed
}
