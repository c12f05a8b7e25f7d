package usecase

import (
	"context"
	"log"
	"strings"
	"testing"

	"portfolio-api/internal/domain/content"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/skillgraph"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeSkillStore struct {
	skills map[uuid.UUID]skill.Skill
}

func (f *fakeSkillStore) FindByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	s, ok := f.skills[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return cloneSkillRecord(s), nil
}

func (f *fakeSkillStore) FindByName(_ context.Context, name string) (skill.Skill, error) {
	for _, s := range f.skills {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return cloneSkillRecord(s), nil
		}
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (f *fakeSkillStore) ListAll(_ context.Context) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(f.skills))
	for _, s := range f.skills {
		out = append(out, cloneSkillRecord(s))
	}
	return out, nil
}

func (f *fakeSkillStore) ListActive(ctx context.Context) ([]skill.Skill, error) {
	all, _ := f.ListAll(ctx)
	out := all[:0]
	for _, s := range all {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSkillStore) Create(_ context.Context, s skill.Skill) error {
	for _, existing := range f.skills {
		if strings.EqualFold(existing.Name, s.Name) {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	f.skills[s.ID] = cloneSkillRecord(s)
	return nil
}

func (f *fakeSkillStore) Save(_ context.Context, s skill.Skill) error {
	if _, ok := f.skills[s.ID]; !ok {
		return repository.ErrSkillNotFound
	}
	f.skills[s.ID] = cloneSkillRecord(s)
	return nil
}

func (f *fakeSkillStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.skills[id]; !ok {
		return repository.ErrSkillNotFound
	}
	delete(f.skills, id)
	return nil
}

func cloneSkillRecord(s skill.Skill) skill.Skill {
	out := s
	out.Sources = append([]skill.Source(nil), s.Sources...)
	return out
}

type fakeProjectStore struct {
	projects map[uuid.UUID]content.Project
}

func (f *fakeProjectStore) FindByID(_ context.Context, id uuid.UUID) (content.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return content.Project{}, repository.ErrProjectNotFound
	}
	return cloneProjectRecord(p), nil
}

func (f *fakeProjectStore) ListAll(_ context.Context) ([]content.Project, error) {
	out := make([]content.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, cloneProjectRecord(p))
	}
	return out, nil
}

func (f *fakeProjectStore) ListActive(ctx context.Context) ([]content.Project, error) {
	all, _ := f.ListAll(ctx)
	out := all[:0]
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) Create(_ context.Context, p content.Project) error {
	f.projects[p.ID] = cloneProjectRecord(p)
	return nil
}

func (f *fakeProjectStore) Save(_ context.Context, p content.Project) error {
	if _, ok := f.projects[p.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	f.projects[p.ID] = cloneProjectRecord(p)
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func cloneProjectRecord(p content.Project) content.Project {
	out := p
	out.Technologies = append([]string(nil), p.Technologies...)
	out.SkillIDs = append([]uuid.UUID(nil), p.SkillIDs...)
	return out
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func newProjectFixture() (*ProjectUsecase, *fakeSkillStore, *fakeProjectStore) {
	skills := &fakeSkillStore{skills: make(map[uuid.UUID]skill.Skill)}
	projects := &fakeProjectStore{projects: make(map[uuid.UUID]content.Project)}
	logger := log.New(nopWriter{}, "", 0)

	graph := skillgraph.NewSynchronizer(
		skills,
		skillgraph.NewResolver(skills),
		[]skillgraph.EntityAdapter{skillgraph.NewProjectAdapter(projects)},
		logger,
	)
	return NewProjectUsecase(projects, graph, nil), skills, projects
}

func TestCreateProjectSyncsSkillsAndMirrorsIDs(t *testing.T) {
	uc, skills, projects := newProjectFixture()
	ctx := context.Background()

	p, err := uc.CreateProject(ctx, ProjectInput{
		Title:        "Portfolio API",
		Technologies: []string{"Go", `"PostgreSQL"`, "go"},
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(p.Technologies) != 2 {
		t.Fatalf("technologies = %v, want deduplicated pair", p.Technologies)
	}
	if len(p.SkillIDs) != 2 {
		t.Fatalf("skill id mirror = %v, want 2 entries", p.SkillIDs)
	}
	if len(skills.skills) != 2 {
		t.Fatalf("stored skills = %d, want 2", len(skills.skills))
	}

	stored := projects.projects[p.ID]
	if len(stored.SkillIDs) != 2 {
		t.Fatalf("persisted mirror = %v", stored.SkillIDs)
	}
	for _, s := range skills.skills {
		if !s.HasSource(skill.SourceProject, p.ID.String()) {
			t.Errorf("skill %s missing project source", s.Name)
		}
	}
}

func TestUpdateProjectWithdrawsDroppedTechnologies(t *testing.T) {
	uc, skills, _ := newProjectFixture()
	ctx := context.Background()

	p, err := uc.CreateProject(ctx, ProjectInput{
		Title:        "API",
		Technologies: []string{"Go", "Redis"},
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.UpdateProject(ctx, p.ID, ProjectInput{
		Title:        "API",
		Technologies: []string{"Go"},
		IsActive:     true,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var redis skill.Skill
	for _, s := range skills.skills {
		if s.Name == "Redis" {
			redis = s
		}
	}
	if redis.ID == uuid.Nil {
		t.Fatal("Redis record should still exist")
	}
	if redis.HasSource(skill.SourceProject, p.ID.String()) {
		t.Errorf("dropped technology kept its source: %+v", redis.Sources)
	}
	if redis.IsActive {
		t.Error("skill with no remaining references must deactivate")
	}
}

func TestDeleteProjectWithdrawsAllSources(t *testing.T) {
	uc, skills, projects := newProjectFixture()
	ctx := context.Background()

	p, err := uc.CreateProject(ctx, ProjectInput{
		Title:        "API",
		Technologies: []string{"Go", "Docker"},
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(projects.projects) != 0 {
		t.Fatal("project row should be gone")
	}
	for _, s := range skills.skills {
		if s.HasSource(skill.SourceProject, p.ID.String()) {
			t.Errorf("skill %s kept a source to the deleted project", s.Name)
		}
		if s.IsActive {
			t.Errorf("skill %s lost its only reference and must deactivate", s.Name)
		}
	}
}

func TestUpdateProjectUnknownID(t *testing.T) {
	uc, _, _ := newProjectFixture()
	if _, err := uc.UpdateProject(context.Background(), uuid.New(), ProjectInput{Title: "x"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
