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

const cacheKeyProjectsPublic = cache.KeyProjectsPrefix + "public"

type ProjectUsecase struct {
	projects repository.ProjectRepository
	graph    *skillgraph.Synchronizer
	cache    Cache
}

func NewProjectUsecase(projects repository.ProjectRepository, graph *skillgraph.Synchronizer, c Cache) *ProjectUsecase {
	return &ProjectUsecase{projects: projects, graph: graph, cache: c}
}

type ProjectInput struct {
	Title        string
	Description  string
	RepoURL      string
	LiveURL      string
	Technologies []string
	IsActive     bool
	Order        int
}

func (u *ProjectUsecase) ListPublicProjects(ctx context.Context) ([]content.Project, error) {
	var cached []content.Project
	if cacheGet(ctx, u.cache, cacheKeyProjectsPublic, &cached) {
		return cached, nil
	}

	items, err := u.projects.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, u.cache, cacheKeyProjectsPublic, items)
	return items, nil
}

func (u *ProjectUsecase) ListAllProjects(ctx context.Context) ([]content.Project, error) {
	return u.projects.ListAll(ctx)
}

func (u *ProjectUsecase) GetProject(ctx context.Context, id uuid.UUID) (content.Project, error) {
	p, err := u.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return content.Project{}, ErrNotFound
		}
		return content.Project{}, err
	}
	return p, nil
}

// CreateProject persists the project, then syncs each technology name
// into the skill graph and mirrors the resolved ids back onto the row.
func (u *ProjectUsecase) CreateProject(ctx context.Context, in ProjectInput) (content.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return content.Project{}, ErrInvalidInput
	}

	p := content.Project{
		ID:           uuid.New(),
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		RepoURL:      strings.TrimSpace(in.RepoURL),
		LiveURL:      strings.TrimSpace(in.LiveURL),
		Technologies: cleanNames(in.Technologies),
		IsActive:     in.IsActive,
		Order:        in.Order,
	}
	if err := u.projects.Create(ctx, p); err != nil {
		return content.Project{}, err
	}

	p, err := u.syncProjectSkills(ctx, p)
	if err != nil {
		return content.Project{}, err
	}

	invalidateEntity(ctx, u.cache, cache.KeyProjectsPrefix)
	return p, nil
}

// UpdateProject applies the input, re-syncs the new technology list and
// withdraws the project's source link from every dropped name. The
// entity is saved before the withdrawals so visibility recalculation
// sees the new state.
func (u *ProjectUsecase) UpdateProject(ctx context.Context, id uuid.UUID, in ProjectInput) (content.Project, error) {
	p, err := u.GetProject(ctx, id)
	if err != nil {
		return content.Project{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return content.Project{}, ErrInvalidInput
	}

	newTechs := cleanNames(in.Technologies)
	dropped := removedNames(p.Technologies, newTechs)

	p.Title = title
	p.Description = strings.TrimSpace(in.Description)
	p.RepoURL = strings.TrimSpace(in.RepoURL)
	p.LiveURL = strings.TrimSpace(in.LiveURL)
	p.Technologies = newTechs
	p.IsActive = in.IsActive
	p.Order = in.Order
	p.SkillIDs = nil

	p, err = u.syncProjectSkills(ctx, p)
	if err != nil {
		return content.Project{}, err
	}

	for _, name := range dropped {
		if err := u.graph.RemoveSkillSource(ctx, skillgraph.NameIdentifier(name), skill.SourceProject, id.String()); err != nil {
			return content.Project{}, err
		}
	}

	invalidateEntity(ctx, u.cache, cache.KeyProjectsPrefix)
	return p, nil
}

// DeleteProject removes the row first, then withdraws its source link
// from every skill it referenced so their visibility re-derives against
// the post-delete state.
func (u *ProjectUsecase) DeleteProject(ctx context.Context, id uuid.UUID) error {
	p, err := u.GetProject(ctx, id)
	if err != nil {
		return err
	}

	if err := u.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrNotFound
		}
		return err
	}

	for _, name := range p.Technologies {
		if err := u.graph.RemoveSkillSource(ctx, skillgraph.NameIdentifier(name), skill.SourceProject, id.String()); err != nil {
			return err
		}
	}

	invalidateEntity(ctx, u.cache, cache.KeyProjectsPrefix)
	return nil
}

func (u *ProjectUsecase) syncProjectSkills(ctx context.Context, p content.Project) (content.Project, error) {
	synced, err := u.graph.SyncSkills(ctx, nameIdentifiers(p.Technologies), skill.SourceProject, p.ID.String())
	if err != nil {
		return content.Project{}, err
	}

	p.SkillIDs = make([]uuid.UUID, 0, len(synced))
	for _, s := range synced {
		p.SkillIDs = append(p.SkillIDs, s.ID)
	}
	if err := u.projects.Save(ctx, p); err != nil {
		return content.Project{}, err
	}

	ws.NotifySkillSync(string(skill.SourceProject), p.ID.String(), len(synced))
	return p, nil
}
