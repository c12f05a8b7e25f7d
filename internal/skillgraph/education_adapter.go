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

// EducationAdapter wraps the education store. Education rows tolerate a
// mixed skill list — legacy name strings, legacy id strings, and object
// entries — so every comparison here has to try both keys.
type EducationAdapter struct {
	repo repository.EducationRepository
}

func NewEducationAdapter(repo repository.EducationRepository) *EducationAdapter {
	return &EducationAdapter{repo: repo}
}

func (a *EducationAdapter) Type() skill.SourceType { return skill.SourceEducation }

func (a *EducationAdapter) Get(ctx context.Context, id uuid.UUID) (Entity, error) {
	ed, err := a.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEducationNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	return &educationEntity{e: &ed}, nil
}

func (a *EducationAdapter) ListAll(ctx context.Context) ([]Entity, error) {
	items, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, 0, len(items))
	for i := range items {
		out = append(out, &educationEntity{e: &items[i]})
	}
	return out, nil
}

func (a *EducationAdapter) Save(ctx context.Context, e Entity) error {
	ee, ok := e.(*educationEntity)
	if !ok {
		return errors.New("education adapter: foreign entity")
	}
	return a.repo.Save(ctx, *ee.e)
}

type educationEntity struct {
	e *content.Education
}

func (e *educationEntity) ID() uuid.UUID  { return e.e.ID }
func (e *educationEntity) IsActive() bool { return e.e.IsActive }

func (e *educationEntity) Title() string {
	if e.e.Degree != "" {
		return e.e.Degree + ", " + e.e.Institution
	}
	return e.e.Institution
}

func (e *educationEntity) SkillIdentifiers() []Identifier {
	out := make([]Identifier, 0, len(e.e.Skills))
	for _, entry := range e.e.Skills {
		out = append(out, identifierFromEntry(entry))
	}
	return out
}

func identifierFromEntry(entry content.EducationSkillEntry) Identifier {
	return Identifier{Name: entry.Name, ID: entry.SkillID}
}

func entryMatches(entry content.EducationSkillEntry, s *skill.Skill) bool {
	if entry.SkillID != "" && strings.EqualFold(entry.SkillID, s.ID.String()) {
		return true
	}
	return entry.Name != "" && strings.EqualFold(CleanName(entry.Name), s.Name)
}

func (e *educationEntity) ContainsSkill(s *skill.Skill) bool {
	for _, entry := range e.e.Skills {
		if entryMatches(entry, s) {
			return true
		}
	}
	return false
}

func (e *educationEntity) AttachSkill(s *skill.Skill) bool {
	if e.ContainsSkill(s) {
		return false
	}
	proficiency := s.Proficiency
	if proficiency == "" {
		proficiency = DefaultProficiency
	}
	e.e.Skills = append(e.e.Skills, content.NewEducationSkillName(s.Name, proficiency, false))
	return true
}

func (e *educationEntity) DetachSkill(s *skill.Skill) bool {
	kept := e.e.Skills[:0]
	changed := false
	for _, entry := range e.e.Skills {
		if entryMatches(entry, s) {
			changed = true
			continue
		}
		kept = append(kept, entry)
	}
	e.e.Skills = kept
	return changed
}

func (e *educationEntity) PruneSkills(keep func(Identifier) bool) bool {
	kept := e.e.Skills[:0]
	changed := false
	for _, entry := range e.e.Skills {
		if !keep(identifierFromEntry(entry)) {
			changed = true
			continue
		}
		kept = append(kept, entry)
	}
	e.e.Skills = kept
	return changed
}
