package skillgraph

import (
	"context"

	"portfolio-api/internal/domain/skill"

	"github.com/google/uuid"
)

// Entity is the adapter's uniform view of one content record. The three
// content types store skill associations in different native shapes
// (plain strings, embedded objects, mixed legacy entries); these methods
// isolate that so the synchronizer stays shape-agnostic.
type Entity interface {
	ID() uuid.UUID
	Title() string
	IsActive() bool

	// SkillIdentifiers returns whatever the entity currently stores,
	// unresolved.
	SkillIdentifiers() []Identifier
	// ContainsSkill matches by id or case-insensitive name, whichever the
	// entity stores.
	ContainsSkill(s *skill.Skill) bool
	// AttachSkill appends in the entity's native shape. Duplicate attach
	// is a no-op; the return reports whether the entity changed.
	AttachSkill(s *skill.Skill) bool
	// DetachSkill removes every entry matching by id or case-insensitive
	// name. Absent skill is a no-op.
	DetachSkill(s *skill.Skill) bool
	// PruneSkills rewrites the list keeping only entries keep() accepts;
	// the cleanup sweep uses it to drop identifiers that no longer
	// resolve. Returns whether the entity changed.
	PruneSkills(keep func(Identifier) bool) bool
}

// EntityAdapter pairs one content type's shape logic with its store.
type EntityAdapter interface {
	Type() skill.SourceType
	Get(ctx context.Context, id uuid.UUID) (Entity, error)
	ListAll(ctx context.Context) ([]Entity, error)
	Save(ctx context.Context, e Entity) error
}

// EntityRef is the reference-listing view of an entity, returned by the
// read operations and carried inside conflict errors.
type EntityRef struct {
	Type     skill.SourceType `json:"type"`
	ID       uuid.UUID        `json:"id"`
	Title    string           `json:"title"`
	IsActive bool             `json:"is_active"`
}

func refOf(t skill.SourceType, e Entity) EntityRef {
	return EntityRef{Type: t, ID: e.ID(), Title: e.Title(), IsActive: e.IsActive()}
}
