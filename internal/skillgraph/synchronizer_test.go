package skillgraph

import (
	"context"
	"errors"
	"log"
	"testing"

	"portfolio-api/internal/domain/content"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository"

	"github.com/google/uuid"
)

func TestSyncSkillsCreatesMissingSkills(t *testing.T) {
	g := newTestGraph()
	refID := uuid.NewString()

	out, err := g.sync.SyncSkills(context.Background(),
		ParseIdentifiers([]any{"Go", "PostgreSQL"}),
		skill.SourceProject, refID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(out))
	}

	goSkill := g.mustSkill("Go")
	if goSkill.Category != CategoryLanguage {
		t.Errorf("category = %q, want %q", goSkill.Category, CategoryLanguage)
	}
	if goSkill.Proficiency != DefaultProficiency {
		t.Errorf("proficiency = %q, want %q", goSkill.Proficiency, DefaultProficiency)
	}
	if !goSkill.IsActive {
		t.Error("new skill should be active")
	}
	if !goSkill.HasSource(skill.SourceProject, refID) {
		t.Errorf("missing project source, sources=%+v", goSkill.Sources)
	}
}

func TestSyncSkillsDeduplicatesVariants(t *testing.T) {
	g := newTestGraph()

	out, err := g.sync.SyncSkills(context.Background(),
		ParseIdentifiers([]any{"React", `"react"`, "  REACT  "}),
		skill.SourceProject, uuid.NewString())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 deduplicated skill, got %d", len(out))
	}
	if out[0].Name != "React" {
		t.Errorf("first-seen casing should win, got %q", out[0].Name)
	}
	if len(g.skills.skills) != 1 {
		t.Fatalf("expected a single stored skill, got %d", len(g.skills.skills))
	}
}

func TestSyncSkillsThreeSourcesOneSkill(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()

	projectID := uuid.NewString()
	certID := uuid.NewString()
	eduID := uuid.NewString()

	for _, call := range []struct {
		raw    string
		source skill.SourceType
		ref    string
	}{
		{"PostgreSQL", skill.SourceProject, projectID},
		{"postgresql", skill.SourceCertification, certID},
		{`"PostgreSQL"`, skill.SourceEducation, eduID},
	} {
		if _, err := g.sync.SyncSkills(ctx, ParseIdentifiers([]any{call.raw}), call.source, call.ref); err != nil {
			t.Fatalf("sync %s: %v", call.source, err)
		}
	}

	if len(g.skills.skills) != 1 {
		t.Fatalf("variants must converge on one record, got %d", len(g.skills.skills))
	}
	s := g.mustSkill("PostgreSQL")
	if len(s.Sources) != 3 {
		t.Fatalf("expected 3 sources, got %+v", s.Sources)
	}
	for _, want := range []skill.Source{
		{Type: skill.SourceProject, ReferenceID: projectID},
		{Type: skill.SourceCertification, ReferenceID: certID},
		{Type: skill.SourceEducation, ReferenceID: eduID},
	} {
		if !s.HasSource(want.Type, want.ReferenceID) {
			t.Errorf("missing source %+v", want)
		}
	}
}

func TestSyncSkillsIdempotent(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	refID := uuid.NewString()
	in := ParseIdentifiers([]any{"Docker"})

	for i := 0; i < 3; i++ {
		if _, err := g.sync.SyncSkills(ctx, in, skill.SourceProject, refID); err != nil {
			t.Fatalf("sync #%d: %v", i, err)
		}
	}

	s := g.mustSkill("Docker")
	if len(s.Sources) != 1 {
		t.Fatalf("repeated sync must not duplicate sources, got %+v", s.Sources)
	}
}

func TestSyncSkillsResolvesIDToStoredName(t *testing.T) {
	g := newTestGraph()
	stored := skill.Skill{ID: uuid.New(), Name: "Kubernetes", IsActive: true}
	g.skills.skills[stored.ID] = stored

	out, err := g.sync.SyncSkills(context.Background(),
		ParseIdentifiers([]any{stored.ID.String()}),
		skill.SourceCertification, uuid.NewString())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(out) != 1 || out[0].ID != stored.ID {
		t.Fatalf("id input should hit the stored record, got %+v", out)
	}
	if len(g.skills.skills) != 1 {
		t.Fatalf("no new skill should be created, got %d", len(g.skills.skills))
	}
}

func TestSyncSkillsSkipsNoise(t *testing.T) {
	g := newTestGraph()

	out, err := g.sync.SyncSkills(context.Background(),
		ParseIdentifiers([]any{"", "   ", uuid.NewString(), `""`}),
		skill.SourceProject, uuid.NewString())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("blank and unresolvable-id entries must be skipped, got %+v", out)
	}
	if len(g.skills.skills) != 0 {
		t.Fatalf("nothing should be created, got %d", len(g.skills.skills))
	}
}

func TestSyncSkillsReactivatesInactiveSkill(t *testing.T) {
	g := newTestGraph()
	dormant := skill.Skill{ID: uuid.New(), Name: "Flask", IsActive: false}
	g.skills.skills[dormant.ID] = dormant

	if _, err := g.sync.SyncSkills(context.Background(),
		ParseIdentifiers([]any{"Flask"}),
		skill.SourceProject, uuid.NewString()); err != nil {
		t.Fatalf("sync: %v", err)
	}

	if !g.mustSkill("Flask").IsActive {
		t.Error("fresh reference must re-activate the skill")
	}
}

func TestSyncSkillsRejectsInvalidSourceType(t *testing.T) {
	g := newTestGraph()
	_, err := g.sync.SyncSkills(context.Background(),
		ParseIdentifiers([]any{"Go"}), skill.SourceType("bogus"), "")
	if !errors.Is(err, ErrInvalidSourceType) {
		t.Fatalf("expected ErrInvalidSourceType, got %v", err)
	}
}

// racingSkillStore simulates a concurrent writer: the first Create sneaks
// the same name in under another id, then reports a unique violation.
type racingSkillStore struct {
	*memSkillStore
	winnerID uuid.UUID
}

func (r *racingSkillStore) Create(ctx context.Context, s skill.Skill) error {
	if _, err := r.memSkillStore.FindByName(ctx, s.Name); err == nil {
		return r.memSkillStore.Create(ctx, s)
	}
	winner := s
	winner.ID = r.winnerID
	if err := r.memSkillStore.Create(ctx, winner); err != nil {
		return err
	}
	return r.memSkillStore.Create(ctx, s)
}

func TestSyncSkillsLostCreateRaceRereads(t *testing.T) {
	store := &racingSkillStore{memSkillStore: newMemSkillStore(), winnerID: uuid.New()}
	sync := NewSynchronizer(store, NewResolver(store), nil, log.New(discard{}, "", 0))

	out, err := sync.SyncSkills(context.Background(),
		ParseIdentifiers([]any{"Terraform"}), skill.SourceManual, "")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(out) != 1 || out[0].ID != store.winnerID {
		t.Fatalf("loser must adopt the winner's record, got %+v", out)
	}
	if len(store.skills) != 1 {
		t.Fatalf("expected exactly one stored skill, got %d", len(store.skills))
	}
}

func TestRemoveSkillSourceDeactivatesWhenLastReferenceGoes(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	refID := uuid.NewString()

	if _, err := g.sync.SyncSkills(ctx, ParseIdentifiers([]any{"Svelte"}), skill.SourceProject, refID); err != nil {
		t.Fatalf("sync: %v", err)
	}

	if err := g.sync.RemoveSkillSource(ctx, NameIdentifier("Svelte"), skill.SourceProject, refID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	s := g.mustSkill("Svelte")
	if len(s.Sources) != 0 {
		t.Fatalf("source should be gone, got %+v", s.Sources)
	}
	if s.IsActive {
		t.Error("skill with no references and no manual source must deactivate")
	}
}

func TestRemoveSkillSourceKeepsManualSkillsActive(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	refID := uuid.NewString()

	if _, err := g.sync.SyncSkills(ctx, ParseIdentifiers([]any{"Rust"}), skill.SourceManual, ""); err != nil {
		t.Fatalf("manual sync: %v", err)
	}
	if _, err := g.sync.SyncSkills(ctx, ParseIdentifiers([]any{"Rust"}), skill.SourceProject, refID); err != nil {
		t.Fatalf("project sync: %v", err)
	}

	if err := g.sync.RemoveSkillSource(ctx, NameIdentifier("Rust"), skill.SourceProject, refID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	s := g.mustSkill("Rust")
	if !s.IsActive {
		t.Error("manually created skill must survive losing its entity references")
	}
	if !s.HasManualSource() {
		t.Errorf("manual source should remain, got %+v", s.Sources)
	}
}

func TestRemoveSkillSourceIsIdempotent(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()

	// Unknown skill, then known skill without the source.
	if err := g.sync.RemoveSkillSource(ctx, NameIdentifier("ghost"), skill.SourceProject, uuid.NewString()); err != nil {
		t.Fatalf("remove unknown skill: %v", err)
	}

	if _, err := g.sync.SyncSkills(ctx, ParseIdentifiers([]any{"Vim"}), skill.SourceManual, ""); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if err := g.sync.RemoveSkillSource(ctx, NameIdentifier("Vim"), skill.SourceProject, uuid.NewString()); err != nil {
		t.Fatalf("remove absent source: %v", err)
	}
	vim := g.mustSkill("Vim")
	if !vim.HasManualSource() {
		t.Error("unrelated removal must not touch existing sources")
	}
}

func TestSyncKeepsReferenceVisibleAcrossEntityShapes(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()

	project := content.Project{ID: uuid.New(), Title: "API", Technologies: []string{"Go"}, IsActive: true}
	if err := g.projects.Create(ctx, project); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	synced, err := g.sync.SyncSkills(ctx, ParseIdentifiers([]any{"Go"}), skill.SourceProject, project.ID.String())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	refs, err := g.sync.GetSkillReferences(ctx, IDIdentifier(synced[0].ID.String()))
	if err != nil {
		t.Fatalf("references: %v", err)
	}
	if len(refs.Projects) != 1 || refs.Projects[0].ID != project.ID {
		t.Fatalf("project reference should be visible, got %+v", refs)
	}
}

var _ repository.SkillRepository = (*racingSkillStore)(nil)
