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

// ProjectAdapter wraps the project store. Projects keep skill
// associations as free-text technology names, mirrored by a resolved
// skill-id list the synchronizer maintains.
type ProjectAdapter struct {
	repo repository.ProjectRepository
}

func NewProjectAdapter(repo repository.ProjectRepository) *ProjectAdapter {
	return &ProjectAdapter{repo: repo}
}

func (a *ProjectAdapter) Type() skill.SourceType { return skill.SourceProject }

func (a *ProjectAdapter) Get(ctx context.Context, id uuid.UUID) (Entity, error) {
	p, err := a.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	return &projectEntity{p: &p}, nil
}

func (a *ProjectAdapter) ListAll(ctx context.Context) ([]Entity, error) {
	items, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, 0, len(items))
	for i := range items {
		out = append(out, &projectEntity{p: &items[i]})
	}
	return out, nil
}

func (a *ProjectAdapter) Save(ctx context.Context, e Entity) error {
	pe, ok := e.(*projectEntity)
	if !ok {
		return errors.New("project adapter: foreign entity")
	}
	return a.repo.Save(ctx, *pe.p)
}

type projectEntity struct {
	p *content.Project
}

func (e *projectEntity) ID() uuid.UUID  { return e.p.ID }
func (e *projectEntity) Title() string  { return e.p.Title }
func (e *projectEntity) IsActive() bool { return e.p.IsActive }

func (e *projectEntity) SkillIdentifiers() []Identifier {
	out := make([]Identifier, 0, len(e.p.Technologies)+len(e.p.SkillIDs))
	for _, name := range e.p.Technologies {
		out = append(out, NameIdentifier(name))
	}
	for _, id := range e.p.SkillIDs {
		out = append(out, IDIdentifier(id.String()))
	}
	return out
}

func (e *projectEntity) ContainsSkill(s *skill.Skill) bool {
	for _, name := range e.p.Technologies {
		if strings.EqualFold(CleanName(name), s.Name) {
			return true
		}
	}
	for _, id := range e.p.SkillIDs {
		if id == s.ID {
			return true
		}
	}
	return false
}

func (e *projectEntity) AttachSkill(s *skill.Skill) bool {
	if e.ContainsSkill(s) {
		return false
	}
	e.p.Technologies = append(e.p.Technologies, s.Name)
	e.p.SkillIDs = append(e.p.SkillIDs, s.ID)
	return true
}

func (e *projectEntity) DetachSkill(s *skill.Skill) bool {
	changed := false

	techs := e.p.Technologies[:0]
	for _, name := range e.p.Technologies {
		if strings.EqualFold(CleanName(name), s.Name) {
			changed = true
			continue
		}
		techs = append(techs, name)
	}
	e.p.Technologies = techs

	ids := e.p.SkillIDs[:0]
	for _, id := range e.p.SkillIDs {
		if id == s.ID {
			changed = true
			continue
		}
		ids = append(ids, id)
	}
	e.p.SkillIDs = ids

	return changed
}

func (e *projectEntity) PruneSkills(keep func(Identifier) bool) bool {
	changed := false

	techs := e.p.Technologies[:0]
	for _, name := range e.p.Technologies {
		if !keep(NameIdentifier(name)) {
			changed = true
			continue
		}
		techs = append(techs, name)
	}
	e.p.Technologies = techs

	ids := e.p.SkillIDs[:0]
	for _, id := range e.p.SkillIDs {
		if !keep(IDIdentifier(id.String())) {
			changed = true
			continue
		}
		ids = append(ids, id)
	}
	e.p.SkillIDs = ids

	return changed
}
