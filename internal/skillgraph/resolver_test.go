package skillgraph

import (
	"context"
	"testing"

	"portfolio-api/internal/domain/skill"

	"github.com/google/uuid"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`  React  `, "React"},
		{`"TypeScript"`, "TypeScript"},
		{`'Vue'`, "Vue"},
		{"`Svelte`", "Svelte"},
		{`(Next.js)`, "Next.js"},
		{`Post"gre"SQL`, "PostgreSQL"},
		{"too   many\tspaces", "too many spaces"},
		{`  "  "  `, ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanName(c.in); got != c.want {
			t.Errorf("CleanName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveByNameCaseInsensitive(t *testing.T) {
	g := newTestGraph()
	stored := skill.Skill{ID: uuid.New(), Name: "TypeScript", IsActive: true}
	g.skills.skills[stored.ID] = stored

	resolver := NewResolver(g.skills)
	got, err := resolver.Resolve(context.Background(), NameIdentifier("  typescript "))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || got.ID != stored.ID {
		t.Fatalf("expected stored skill, got %+v", got)
	}
}

func TestResolveNameWinsOverID(t *testing.T) {
	g := newTestGraph()
	byName := skill.Skill{ID: uuid.New(), Name: "Go"}
	byID := skill.Skill{ID: uuid.New(), Name: "Rust"}
	g.skills.skills[byName.ID] = byName
	g.skills.skills[byID.ID] = byID

	resolver := NewResolver(g.skills)
	got, err := resolver.Resolve(context.Background(), Identifier{Name: "go", ID: byID.ID.String()})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || got.ID != byName.ID {
		t.Fatalf("name match should win, got %+v", got)
	}
}

func TestResolveFallsBackToID(t *testing.T) {
	g := newTestGraph()
	stored := skill.Skill{ID: uuid.New(), Name: "Rust"}
	g.skills.skills[stored.ID] = stored

	resolver := NewResolver(g.skills)
	got, err := resolver.Resolve(context.Background(), Identifier{Name: "no such name", ID: stored.ID.String()})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || got.ID != stored.ID {
		t.Fatalf("expected id fallback to find skill, got %+v", got)
	}
}

func TestResolveRawID(t *testing.T) {
	g := newTestGraph()
	stored := skill.Skill{ID: uuid.New(), Name: "Docker"}
	g.skills.skills[stored.ID] = stored

	resolver := NewResolver(g.skills)
	got, err := resolver.Resolve(context.Background(), RawIdentifier(stored.ID.String()))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || got.ID != stored.ID {
		t.Fatalf("raw uuid should resolve by id, got %+v", got)
	}
}

func TestResolveMissesReturnNilWithoutError(t *testing.T) {
	g := newTestGraph()
	resolver := NewResolver(g.skills)

	for _, ident := range []Identifier{
		{},
		NameIdentifier("unknown"),
		RawIdentifier(uuid.NewString()),
		{ID: "not-a-uuid"},
	} {
		got, err := resolver.Resolve(context.Background(), ident)
		if err != nil {
			t.Fatalf("resolve %+v: %v", ident, err)
		}
		if got != nil {
			t.Fatalf("resolve %+v: expected nil, got %+v", ident, got)
		}
	}
}
