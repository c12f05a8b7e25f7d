package skillgraph

import (
	"context"
	"errors"
	"testing"

	"portfolio-api/internal/domain/content"
	"portfolio-api/internal/domain/skill"

	"github.com/google/uuid"
)

// seedSkill puts a skill straight into the store and returns it.
func seedSkill(g *graph, s skill.Skill) skill.Skill {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	g.skills.skills[s.ID] = s
	return s
}

func TestCanDeleteSkillPartitionsByEntityActivity(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	s := seedSkill(g, skill.Skill{Name: "Go", IsActive: true})

	active := content.Project{ID: uuid.New(), Title: "Live", Technologies: []string{"Go"}, IsActive: true}
	archived := content.Project{ID: uuid.New(), Title: "Old", Technologies: []string{"Go"}, IsActive: false}
	g.projects.Create(ctx, active)
	g.projects.Create(ctx, archived)

	check, err := g.sync.CanDeleteSkill(ctx, s.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if check.CanDelete {
		t.Error("active reference must block deletion")
	}
	if check.TotalReferences != 2 {
		t.Errorf("total = %d, want 2", check.TotalReferences)
	}
	if len(check.ActiveReferences) != 1 || check.ActiveReferences[0].ID != active.ID {
		t.Fatalf("active refs = %+v, want just %s", check.ActiveReferences, active.ID)
	}
}

func TestDeleteSkillBlockedThenAllowedAfterDeactivation(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	s := seedSkill(g, skill.Skill{Name: "React", IsActive: true})

	project := content.Project{ID: uuid.New(), Title: "SPA", Technologies: []string{"React"}, IsActive: true}
	g.projects.Create(ctx, project)

	err := g.sync.DeleteSkill(ctx, s.ID, false)
	conflict, ok := IsConflict(err)
	if !ok {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(conflict.References) != 1 || conflict.References[0].Title != "SPA" {
		t.Fatalf("conflict should name the blocking entity, got %+v", conflict.References)
	}

	project.IsActive = false
	g.projects.Save(ctx, project)

	if err := g.sync.DeleteSkill(ctx, s.ID, false); err != nil {
		t.Fatalf("delete after deactivation: %v", err)
	}
	if _, err := g.skills.FindByID(ctx, s.ID); err == nil {
		t.Error("skill record should be gone")
	}
}

func TestDeleteSkillForceDetachesEverywhere(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	s := seedSkill(g, skill.Skill{Name: "Python", IsActive: true})

	project := content.Project{
		ID:           uuid.New(),
		Title:        "Scraper",
		Technologies: []string{"Python", "Redis"},
		SkillIDs:     []uuid.UUID{s.ID},
		IsActive:     true,
	}
	cert := content.Certification{
		ID:       uuid.New(),
		Title:    "Cloud Cert",
		Skills:   []content.CertificationSkill{{Name: "python"}, {Name: "AWS"}},
		IsActive: true,
	}
	edu := content.Education{
		ID:          uuid.New(),
		Institution: "State University",
		Skills: []content.EducationSkillEntry{
			content.LegacyEducationSkill(s.ID.String()),
			content.NewEducationSkillName("Linear Algebra", "", false),
		},
		IsActive: true,
	}
	g.projects.Create(ctx, project)
	g.certs.Create(ctx, cert)
	g.education.Create(ctx, edu)

	if err := g.sync.DeleteSkill(ctx, s.ID, true); err != nil {
		t.Fatalf("force delete: %v", err)
	}

	gotProject, _ := g.projects.FindByID(ctx, project.ID)
	if len(gotProject.Technologies) != 1 || gotProject.Technologies[0] != "Redis" {
		t.Errorf("technologies = %v, want [Redis]", gotProject.Technologies)
	}
	if len(gotProject.SkillIDs) != 0 {
		t.Errorf("dangling skill ids: %v", gotProject.SkillIDs)
	}

	gotCert, _ := g.certs.FindByID(ctx, cert.ID)
	if len(gotCert.Skills) != 1 || gotCert.Skills[0].Name != "AWS" {
		t.Errorf("cert skills = %+v, want [AWS]", gotCert.Skills)
	}

	gotEdu, _ := g.education.FindByID(ctx, edu.ID)
	if len(gotEdu.Skills) != 1 || gotEdu.Skills[0].Name != "Linear Algebra" {
		t.Errorf("education skills = %+v, want the unrelated entry only", gotEdu.Skills)
	}
}

func TestDeleteSkillUnknownID(t *testing.T) {
	g := newTestGraph()
	if err := g.sync.DeleteSkill(context.Background(), uuid.New(), false); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestHideAndShowSkill(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	s := seedSkill(g, skill.Skill{Name: "Figma", IsActive: true})

	hidden, err := g.sync.HideSkill(ctx, s.ID)
	if err != nil {
		t.Fatalf("hide: %v", err)
	}
	if hidden.IsActive {
		t.Error("hide should clear the flag")
	}

	shown, err := g.sync.ShowSkill(ctx, s.ID)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !shown.IsActive {
		t.Error("show should set the flag")
	}
}

func TestRecalculateSkillVisibility(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()

	// Active but nothing references it and no manual source.
	stale := seedSkill(g, skill.Skill{Name: "Jenkins", IsActive: true,
		Sources: []skill.Source{{Type: skill.SourceProject, ReferenceID: uuid.NewString()}}})

	change, err := g.sync.RecalculateSkillVisibility(ctx, stale.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !change.Changed || change.IsActive {
		t.Fatalf("expected deactivation, got %+v", change)
	}

	// Manual skills never deactivate.
	manual := seedSkill(g, skill.Skill{Name: "Mentoring", IsActive: true,
		Sources: []skill.Source{{Type: skill.SourceManual}}})
	change, err = g.sync.RecalculateSkillVisibility(ctx, manual.ID)
	if err != nil {
		t.Fatalf("recalculate manual: %v", err)
	}
	if change.Changed || !change.IsActive {
		t.Fatalf("manual skill must stay active, got %+v", change)
	}
}

func TestLinkSkillToEntityWritesBothSides(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	s := seedSkill(g, skill.Skill{Name: "GraphQL", Proficiency: "advanced", IsActive: true})

	cert := content.Certification{ID: uuid.New(), Title: "API Cert", IsActive: true}
	g.certs.Create(ctx, cert)

	if err := g.sync.LinkSkillToEntity(ctx, s.ID, skill.SourceCertification, cert.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	gotCert, _ := g.certs.FindByID(ctx, cert.ID)
	if len(gotCert.Skills) != 1 || gotCert.Skills[0].Name != "GraphQL" || gotCert.Skills[0].Proficiency != "advanced" {
		t.Fatalf("cert skills = %+v", gotCert.Skills)
	}

	gotSkill, _ := g.skills.FindByID(ctx, s.ID)
	if !gotSkill.HasSource(skill.SourceCertification, cert.ID.String()) {
		t.Errorf("missing certification source, got %+v", gotSkill.Sources)
	}
}

func TestLinkSkillToEntityDuplicateConflicts(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	s := seedSkill(g, skill.Skill{Name: "Docker", IsActive: true})

	project := content.Project{ID: uuid.New(), Title: "Infra", IsActive: true}
	g.projects.Create(ctx, project)

	if err := g.sync.LinkSkillToEntity(ctx, s.ID, skill.SourceProject, project.ID); err != nil {
		t.Fatalf("first link: %v", err)
	}
	err := g.sync.LinkSkillToEntity(ctx, s.ID, skill.SourceProject, project.ID)
	if _, ok := IsConflict(err); !ok {
		t.Fatalf("duplicate explicit link must conflict, got %v", err)
	}
}

func TestLinkSkillToEntityRejectsNonEntityTypes(t *testing.T) {
	g := newTestGraph()
	for _, st := range []skill.SourceType{skill.SourceManual, skill.SourceGitHub, "bogus"} {
		err := g.sync.LinkSkillToEntity(context.Background(), uuid.New(), st, uuid.New())
		if !errors.Is(err, ErrInvalidSourceType) {
			t.Fatalf("%s: expected ErrInvalidSourceType, got %v", st, err)
		}
	}
}

func TestUnlinkSkillFromEntitySymmetry(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	s := seedSkill(g, skill.Skill{Name: "Tailwind", IsActive: true})

	project := content.Project{ID: uuid.New(), Title: "Site", IsActive: true}
	g.projects.Create(ctx, project)

	if err := g.sync.LinkSkillToEntity(ctx, s.ID, skill.SourceProject, project.ID); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := g.sync.UnlinkSkillFromEntity(ctx, s.ID, skill.SourceProject, project.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}

	gotProject, _ := g.projects.FindByID(ctx, project.ID)
	if len(gotProject.Technologies) != 0 || len(gotProject.SkillIDs) != 0 {
		t.Errorf("entity side not cleaned: %+v", gotProject)
	}
	gotSkill, _ := g.skills.FindByID(ctx, s.ID)
	if len(gotSkill.Sources) != 0 {
		t.Errorf("skill side not cleaned: %+v", gotSkill.Sources)
	}
	if gotSkill.IsActive {
		t.Error("skill with no remaining justification must deactivate")
	}

	// Unlinking again is a no-op.
	if err := g.sync.UnlinkSkillFromEntity(ctx, s.ID, skill.SourceProject, project.ID); err != nil {
		t.Fatalf("repeat unlink: %v", err)
	}
}

func TestBulkLinkSkipsAlreadyLinked(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	first := seedSkill(g, skill.Skill{Name: "Go", IsActive: true})
	second := seedSkill(g, skill.Skill{Name: "Redis", IsActive: true})

	project := content.Project{ID: uuid.New(), Title: "Cache", Technologies: []string{"Go"}, IsActive: true}
	g.projects.Create(ctx, project)

	linked, err := g.sync.BulkLinkSkillsToEntity(ctx, []uuid.UUID{first.ID, second.ID}, skill.SourceProject, project.ID)
	if err != nil {
		t.Fatalf("bulk link: %v", err)
	}
	if linked != 1 {
		t.Fatalf("linked = %d, want 1 (Go already present)", linked)
	}

	unlinked, err := g.sync.BulkUnlinkSkillsFromEntity(ctx, []uuid.UUID{first.ID, second.ID}, skill.SourceProject, project.ID)
	if err != nil {
		t.Fatalf("bulk unlink: %v", err)
	}
	if unlinked != 2 {
		t.Fatalf("unlinked = %d, want 2", unlinked)
	}
	gotProject, _ := g.projects.FindByID(ctx, project.ID)
	if len(gotProject.Technologies) != 0 {
		t.Errorf("technologies should be empty, got %v", gotProject.Technologies)
	}
}

func TestGetSkillReferencesUnknownIsEmpty(t *testing.T) {
	g := newTestGraph()
	refs, err := g.sync.GetSkillReferences(context.Background(), NameIdentifier("nothing"))
	if err != nil {
		t.Fatalf("references: %v", err)
	}
	if refs.total() != 0 {
		t.Fatalf("expected empty references, got %+v", refs)
	}
}

func TestGetSkillUsageStats(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()
	_ = seedSkill(g, skill.Skill{Name: "SQL", IsActive: true, Sources: []skill.Source{
		{Type: skill.SourceProject, ReferenceID: "a"},
		{Type: skill.SourceManual},
	}})

	g.projects.Create(ctx, content.Project{ID: uuid.New(), Technologies: []string{"SQL"}, IsActive: true})
	g.projects.Create(ctx, content.Project{ID: uuid.New(), Technologies: []string{"sql"}, IsActive: false})
	g.certs.Create(ctx, content.Certification{ID: uuid.New(),
		Skills: []content.CertificationSkill{{Name: "SQL"}}, IsActive: true})

	stats, err := g.sync.GetSkillUsageStats(ctx, NameIdentifier("SQL"))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Projects != 2 || stats.Certifications != 1 || stats.Education != 0 {
		t.Errorf("per-type counts wrong: %+v", stats)
	}
	if stats.TotalReferences != 3 || stats.ActiveReferences != 2 {
		t.Errorf("totals wrong: %+v", stats)
	}
	if stats.Sources != 2 || !stats.IsActive {
		t.Errorf("skill fields wrong: %+v", stats)
	}
}

func TestCleanupOrphanedReferences(t *testing.T) {
	g := newTestGraph()
	ctx := context.Background()

	goSkill := seedSkill(g, skill.Skill{Name: "Go", IsActive: true,
		Sources: []skill.Source{{Type: skill.SourceProject, ReferenceID: "p"}}})
	// Referenced only by an archived certification: should deactivate.
	seedSkill(g, skill.Skill{Name: "Perl", IsActive: true,
		Sources: []skill.Source{{Type: skill.SourceCertification, ReferenceID: "c"}}})
	// Hidden but an active project still lists it: should re-activate.
	seedSkill(g, skill.Skill{Name: "Redis", IsActive: false,
		Sources: []skill.Source{{Type: skill.SourceProject, ReferenceID: "p"}}})
	// Manual skills survive with zero references.
	seedSkill(g, skill.Skill{Name: "Public Speaking", IsActive: true,
		Sources: []skill.Source{{Type: skill.SourceManual}}})

	staleID := uuid.New()
	project := content.Project{
		ID:           uuid.New(),
		Title:        "Cache",
		Technologies: []string{"Go", "Redis", "Ghostware"},
		SkillIDs:     []uuid.UUID{goSkill.ID, staleID},
		IsActive:     true,
	}
	cert := content.Certification{ID: uuid.New(), Title: "Legacy Cert",
		Skills: []content.CertificationSkill{{Name: "Perl"}}, IsActive: false}
	edu := content.Education{ID: uuid.New(), Institution: "Tech Institute",
		Skills: []content.EducationSkillEntry{
			content.LegacyEducationSkill(uuid.NewString()),
			content.NewEducationSkillName("Go", "", false),
		}, IsActive: true}
	g.projects.Create(ctx, project)
	g.certs.Create(ctx, cert)
	g.education.Create(ctx, edu)

	report, err := g.sync.CleanupOrphanedReferences(ctx)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if report.EntitiesModified[skill.SourceProject] != 1 {
		t.Errorf("project modifications = %d, want 1", report.EntitiesModified[skill.SourceProject])
	}
	if report.EntitiesModified[skill.SourceEducation] != 1 {
		t.Errorf("education modifications = %d, want 1", report.EntitiesModified[skill.SourceEducation])
	}
	if report.EntitiesModified[skill.SourceCertification] != 0 {
		t.Errorf("certification modifications = %d, want 0", report.EntitiesModified[skill.SourceCertification])
	}
	if report.Errors != 0 {
		t.Errorf("errors = %d, want 0", report.Errors)
	}

	gotProject, _ := g.projects.FindByID(ctx, project.ID)
	if len(gotProject.Technologies) != 2 {
		t.Errorf("technologies = %v, want the two resolvable names", gotProject.Technologies)
	}
	if len(gotProject.SkillIDs) != 1 || gotProject.SkillIDs[0] != goSkill.ID {
		t.Errorf("skill ids = %v, want [%s]", gotProject.SkillIDs, goSkill.ID)
	}

	gotEdu, _ := g.education.FindByID(ctx, edu.ID)
	if len(gotEdu.Skills) != 1 || gotEdu.Skills[0].Name != "Go" {
		t.Errorf("education skills = %+v, want the resolvable entry only", gotEdu.Skills)
	}

	if report.SkillsDeactivated != 1 {
		t.Errorf("deactivated = %d, want 1 (Perl)", report.SkillsDeactivated)
	}
	if report.SkillsActivated != 1 {
		t.Errorf("activated = %d, want 1 (Redis)", report.SkillsActivated)
	}
	if g.mustSkill("Perl").IsActive {
		t.Error("Perl has only an archived reference and must deactivate")
	}
	if !g.mustSkill("Redis").IsActive {
		t.Error("Redis is on an active project and must re-activate")
	}
	if !g.mustSkill("Public Speaking").IsActive {
		t.Error("manual skill must stay active")
	}
	if !g.mustSkill("Go").IsActive {
		t.Error("Go keeps an active reference and must stay active")
	}
}
