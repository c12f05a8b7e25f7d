package skillgraph

import (
	"context"
	"log"
	"strings"

	"portfolio-api/internal/domain/content"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory stands-ins for the Postgres repositories. They copy slices on
// every read and write so a caller mutating a returned value cannot reach
// the stored one, matching what a real round trip gives you.

type memSkillStore struct {
	skills map[uuid.UUID]skill.Skill
	// createCalls lets race tests observe how often Create was attempted.
	createCalls int
}

func newMemSkillStore() *memSkillStore {
	return &memSkillStore{skills: make(map[uuid.UUID]skill.Skill)}
}

func cloneSkill(s skill.Skill) skill.Skill {
	out := s
	out.Sources = append([]skill.Source(nil), s.Sources...)
	return out
}

func (m *memSkillStore) FindByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	s, ok := m.skills[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return cloneSkill(s), nil
}

func (m *memSkillStore) FindByName(_ context.Context, name string) (skill.Skill, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range m.skills {
		if strings.ToLower(s.Name) == want {
			return cloneSkill(s), nil
		}
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (m *memSkillStore) ListAll(_ context.Context) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		out = append(out, cloneSkill(s))
	}
	return out, nil
}

func (m *memSkillStore) ListActive(ctx context.Context) ([]skill.Skill, error) {
	all, _ := m.ListAll(ctx)
	out := all[:0]
	for _, s := range all {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSkillStore) Create(_ context.Context, s skill.Skill) error {
	m.createCalls++
	for _, existing := range m.skills {
		if strings.EqualFold(existing.Name, s.Name) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "skills_name_lower_key"}
		}
	}
	m.skills[s.ID] = cloneSkill(s)
	return nil
}

func (m *memSkillStore) Save(_ context.Context, s skill.Skill) error {
	if _, ok := m.skills[s.ID]; !ok {
		return repository.ErrSkillNotFound
	}
	m.skills[s.ID] = cloneSkill(s)
	return nil
}

func (m *memSkillStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.skills[id]; !ok {
		return repository.ErrSkillNotFound
	}
	delete(m.skills, id)
	return nil
}

type memProjectStore struct {
	projects map[uuid.UUID]content.Project
}

func newMemProjectStore() *memProjectStore {
	return &memProjectStore{projects: make(map[uuid.UUID]content.Project)}
}

func cloneProject(p content.Project) content.Project {
	out := p
	out.Technologies = append([]string(nil), p.Technologies...)
	out.SkillIDs = append([]uuid.UUID(nil), p.SkillIDs...)
	return out
}

func (m *memProjectStore) FindByID(_ context.Context, id uuid.UUID) (content.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return content.Project{}, repository.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (m *memProjectStore) ListAll(_ context.Context) ([]content.Project, error) {
	out := make([]content.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, cloneProject(p))
	}
	return out, nil
}

func (m *memProjectStore) ListActive(ctx context.Context) ([]content.Project, error) {
	all, _ := m.ListAll(ctx)
	out := all[:0]
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjectStore) Create(_ context.Context, p content.Project) error {
	m.projects[p.ID] = cloneProject(p)
	return nil
}

func (m *memProjectStore) Save(_ context.Context, p content.Project) error {
	if _, ok := m.projects[p.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	m.projects[p.ID] = cloneProject(p)
	return nil
}

func (m *memProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

type memCertificationStore struct {
	certs map[uuid.UUID]content.Certification
}

func newMemCertificationStore() *memCertificationStore {
	return &memCertificationStore{certs: make(map[uuid.UUID]content.Certification)}
}

func cloneCertification(c content.Certification) content.Certification {
	out := c
	out.Skills = append([]content.CertificationSkill(nil), c.Skills...)
	return out
}

func (m *memCertificationStore) FindByID(_ context.Context, id uuid.UUID) (content.Certification, error) {
	c, ok := m.certs[id]
	if !ok {
		return content.Certification{}, repository.ErrCertificationNotFound
	}
	return cloneCertification(c), nil
}

func (m *memCertificationStore) ListAll(_ context.Context) ([]content.Certification, error) {
	out := make([]content.Certification, 0, len(m.certs))
	for _, c := range m.certs {
		out = append(out, cloneCertification(c))
	}
	return out, nil
}

func (m *memCertificationStore) ListActive(ctx context.Context) ([]content.Certification, error) {
	all, _ := m.ListAll(ctx)
	out := all[:0]
	for _, c := range all {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCertificationStore) Create(_ context.Context, c content.Certification) error {
	m.certs[c.ID] = cloneCertification(c)
	return nil
}

func (m *memCertificationStore) Save(_ context.Context, c content.Certification) error {
	if _, ok := m.certs[c.ID]; !ok {
		return repository.ErrCertificationNotFound
	}
	m.certs[c.ID] = cloneCertification(c)
	return nil
}

func (m *memCertificationStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.certs[id]; !ok {
		return repository.ErrCertificationNotFound
	}
	delete(m.certs, id)
	return nil
}

type memEducationStore struct {
	records map[uuid.UUID]content.Education
}

func newMemEducationStore() *memEducationStore {
	return &memEducationStore{records: make(map[uuid.UUID]content.Education)}
}

func cloneEducation(e content.Education) content.Education {
	out := e
	out.Skills = append([]content.EducationSkillEntry(nil), e.Skills...)
	return out
}

func (m *memEducationStore) FindByID(_ context.Context, id uuid.UUID) (content.Education, error) {
	e, ok := m.records[id]
	if !ok {
		return content.Education{}, repository.ErrEducationNotFound
	}
	return cloneEducation(e), nil
}

func (m *memEducationStore) ListAll(_ context.Context) ([]content.Education, error) {
	out := make([]content.Education, 0, len(m.records))
	for _, e := range m.records {
		out = append(out, cloneEducation(e))
	}
	return out, nil
}

func (m *memEducationStore) ListActive(ctx context.Context) ([]content.Education, error) {
	all, _ := m.ListAll(ctx)
	out := all[:0]
	for _, e := range all {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEducationStore) Create(_ context.Context, e content.Education) error {
	m.records[e.ID] = cloneEducation(e)
	return nil
}

func (m *memEducationStore) Save(_ context.Context, e content.Education) error {
	if _, ok := m.records[e.ID]; !ok {
		return repository.ErrEducationNotFound
	}
	m.records[e.ID] = cloneEducation(e)
	return nil
}

func (m *memEducationStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return repository.ErrEducationNotFound
	}
	delete(m.records, id)
	return nil
}

// graph bundles a synchronizer wired against in-memory stores.
type graph struct {
	skills    *memSkillStore
	projects  *memProjectStore
	certs     *memCertificationStore
	education *memEducationStore
	sync      *Synchronizer
}

func newTestGraph() *graph {
	g := &graph{
		skills:    newMemSkillStore(),
		projects:  newMemProjectStore(),
		certs:     newMemCertificationStore(),
		education: newMemEducationStore(),
	}
	adapters := []EntityAdapter{
		NewProjectAdapter(g.projects),
		NewCertificationAdapter(g.certs),
		NewEducationAdapter(g.education),
	}
	logger := log.New(discard{}, "", 0)
	g.sync = NewSynchronizer(g.skills, NewResolver(g.skills), adapters, logger)
	return g
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func (g *graph) mustSkill(name string) skill.Skill {
	s, err := g.skills.FindByName(context.Background(), name)
	if err != nil {
		panic("skill not in store: " + name)
	}
	return s
}
