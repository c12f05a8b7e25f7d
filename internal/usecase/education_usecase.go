package usecase

import (
	"context"
	"errors"
	"strings"

	"portfolio-api/internal/domain/content"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/infrastructure/cache"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/skillgraph"
	"portfolio-api/internal/ws"

	"github.com/google/uuid"
)

const cacheKeyEducationPublic = cache.KeyEducationPrefix + "public"

type EducationUsecase struct {
	education repository.EducationRepository
	graph     *skillgraph.Synchronizer
	cache     Cache
}

func NewEducationUsecase(education repository.EducationRepository, graph *skillgraph.Synchronizer, c Cache) *EducationUsecase {
	return &EducationUsecase{education: education, graph: graph, cache: c}
}

// EducationSkillInput accepts either a display name or a skill id, the
// same looseness the stored rows have.
type EducationSkillInput struct {
	Name        string
	SkillID     string
	Proficiency string
	Verified    bool
}

type EducationInput struct {
	Institution  string
	Degree       string
	FieldOfStudy string
	StartYear    int
	EndYear      int
	Description  string
	Skills       []EducationSkillInput
	IsActive     bool
	Order        int
}

func (u *EducationUsecase) ListPublicEducation(ctx context.Context) ([]content.Education, error) {
	var cached []content.Education
	if cacheGet(ctx, u.cache, cacheKeyEducationPublic, &cached) {
		return cached, nil
	}

	items, err := u.education.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, u.cache, cacheKeyEducationPublic, items)
	return items, nil
}

func (u *EducationUsecase) ListAllEducation(ctx context.Context) ([]content.Education, error) {
	return u.education.ListAll(ctx)
}

func (u *EducationUsecase) GetEducation(ctx context.Context, id uuid.UUID) (content.Education, error) {
	e, err := u.education.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEducationNotFound) {
			return content.Education{}, ErrNotFound
		}
		return content.Education{}, err
	}
	return e, nil
}

func (u *EducationUsecase) CreateEducation(ctx context.Context, in EducationInput) (content.Education, error) {
	institution := strings.TrimSpace(in.Institution)
	if institution == "" {
		return content.Education{}, ErrInvalidInput
	}

	e := content.Education{
		ID:           uuid.New(),
		Institution:  institution,
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		StartYear:    in.StartYear,
		EndYear:      in.EndYear,
		Description:  strings.TrimSpace(in.Description),
		Skills:       buildEducationSkills(in.Skills),
		IsActive:     in.IsActive,
		Order:        in.Order,
	}
	if err := u.education.Create(ctx, e); err != nil {
		return content.Education{}, err
	}

	if err := u.syncEducationSkills(ctx, e); err != nil {
		return content.Education{}, err
	}

	invalidateEntity(ctx, u.cache, cache.KeyEducationPrefix)
	return e, nil
}

func (u *EducationUsecase) UpdateEducation(ctx context.Context, id uuid.UUID, in EducationInput) (content.Education, error) {
	e, err := u.GetEducation(ctx, id)
	if err != nil {
		return content.Education{}, err
	}

	institution := strings.TrimSpace(in.Institution)
	if institution == "" {
		return content.Education{}, ErrInvalidInput
	}

	newSkills := buildEducationSkills(in.Skills)
	dropped := droppedEducationEntries(e.Skills, newSkills)

	e.Institution = institution
	e.Degree = strings.TrimSpace(in.Degree)
	e.FieldOfStudy = strings.TrimSpace(in.FieldOfStudy)
	e.StartYear = in.StartYear
	e.EndYear = in.EndYear
	e.Description = strings.TrimSpace(in.Description)
	e.Skills = newSkills
	e.IsActive = in.IsActive
	e.Order = in.Order

	if err := u.education.Save(ctx, e); err != nil {
		return content.Education{}, err
	}
	if err := u.syncEducationSkills(ctx, e); err != nil {
		return content.Education{}, err
	}

	for _, ident := range dropped {
		if err := u.graph.RemoveSkillSource(ctx, ident, skill.SourceEducation, id.String()); err != nil {
			return content.Education{}, err
		}
	}

	invalidateEntity(ctx, u.cache, cache.KeyEducationPrefix)
	return e, nil
}

func (u *EducationUsecase) DeleteEducation(ctx context.Context, id uuid.UUID) error {
	e, err := u.GetEducation(ctx, id)
	if err != nil {
		return err
	}

	if err := u.education.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEducationNotFound) {
			return ErrNotFound
		}
		return err
	}

	for _, ident := range educationIdentifiers(e.Skills) {
		if err := u.graph.RemoveSkillSource(ctx, ident, skill.SourceEducation, id.String()); err != nil {
			return err
		}
	}

	invalidateEntity(ctx, u.cache, cache.KeyEducationPrefix)
	return nil
}

func (u *EducationUsecase) syncEducationSkills(ctx context.Context, e content.Education) error {
	synced, err := u.graph.SyncSkills(ctx, educationIdentifiers(e.Skills), skill.SourceEducation, e.ID.String())
	if err != nil {
		return err
	}
	ws.NotifySkillSync(string(skill.SourceEducation), e.ID.String(), len(synced))
	return nil
}

func buildEducationSkills(in []EducationSkillInput) []content.EducationSkillEntry {
	out := make([]content.EducationSkillEntry, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		entry := content.EducationSkillEntry{
			Name:        skillgraph.CleanName(s.Name),
			SkillID:     strings.TrimSpace(s.SkillID),
			Proficiency: strings.TrimSpace(s.Proficiency),
			Verified:    s.Verified,
		}
		key := educationEntryKey(entry)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// educationEntryKey prefers the skill id; entries without one key on the
// folded name.
func educationEntryKey(e content.EducationSkillEntry) string {
	if id := strings.TrimSpace(e.SkillID); id != "" {
		return "id:" + strings.ToLower(id)
	}
	if name := skillgraph.CleanName(e.Name); name != "" {
		return "name:" + strings.ToLower(name)
	}
	return ""
}

func droppedEducationEntries(before, after []content.EducationSkillEntry) []skillgraph.Identifier {
	keep := make(map[string]struct{}, len(after))
	for _, e := range after {
		keep[educationEntryKey(e)] = struct{}{}
	}

	var dropped []skillgraph.Identifier
	seen := make(map[string]struct{}, len(before))
	for _, e := range before {
		key := educationEntryKey(e)
		if key == "" {
			continue
		}
		if _, ok := keep[key]; ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dropped = append(dropped, skillgraph.Identifier{Name: e.Name, ID: e.SkillID})
	}
	return dropped
}

func educationIdentifiers(entries []content.EducationSkillEntry) []skillgraph.Identifier {
	out := make([]skillgraph.Identifier, 0, len(entries))
	for _, e := range entries {
		out = append(out, skillgraph.Identifier{Name: e.Name, ID: e.SkillID})
	}
	return out
}
