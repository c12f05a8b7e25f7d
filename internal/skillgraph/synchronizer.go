package skillgraph

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository"

	"github.com/google/uuid"
)

// Synchronizer keeps the skill graph consistent: it owns find-or-create
// of skill records, the source links recording which entity references
// which skill, and the cascade/cleanup operations restoring the
// invariant after structural changes.
//
// Operations are scoped per call and sequential inside it; there is no
// cross-call mutual exclusion. The store's case-insensitive unique name
// index turns a concurrent first-create of the same name into a unique
// violation, handled as "lost the race, re-read". A crash between an
// entity write and the matching source write leaves drift that only
// CleanupOrphanedReferences repairs.
type Synchronizer struct {
	skills   repository.SkillRepository
	resolver *Resolver
	adapters []EntityAdapter
	logger   *log.Logger
}

func NewSynchronizer(skills repository.SkillRepository, resolver *Resolver, adapters []EntityAdapter, logger *log.Logger) *Synchronizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Synchronizer{
		skills:   skills,
		resolver: resolver,
		adapters: adapters,
		logger:   logger,
	}
}

// SyncSkills resolves or creates a skill record per identifier and
// records the (sourceType, referenceID) link on each. Malformed or
// unresolvable entries are skipped, never fatal; a store failure aborts
// the call with no partial-commit guarantee. The returned skills are in
// input order, deduplicated, for the caller to mirror into its own
// id-linked field where the entity has one.
func (s *Synchronizer) SyncSkills(ctx context.Context, identifiers []Identifier, sourceType skill.SourceType, referenceID string) ([]skill.Skill, error) {
	if !sourceType.Valid() {
		return nil, ErrInvalidSourceType
	}

	names, err := s.canonicalNames(ctx, identifiers)
	if err != nil {
		return nil, err
	}

	out := make([]skill.Skill, 0, len(names))
	for _, name := range names {
		sk, err := s.findOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if sk.AddSource(sourceType, referenceID) || !sk.IsActive {
			// A fresh reference from a live caller re-activates the skill;
			// the reconciliation sweeps converge the flag afterwards.
			sk.IsActive = true
			if err := s.skills.Save(ctx, sk); err != nil {
				return nil, err
			}
		}
		out = append(out, sk)
	}

	s.logger.Printf("skill sync | source=%s ref=%s in=%d synced=%d", sourceType, referenceID, len(identifiers), len(out))
	return out, nil
}

// canonicalNames normalizes the loose input list into deduplicated
// display names, first-seen casing preserved. Identifiers that look like
// ids or carry structured fields go through the resolver so the stored
// name wins over whatever the caller sent.
func (s *Synchronizer) canonicalNames(ctx context.Context, identifiers []Identifier) ([]string, error) {
	seen := make(map[string]struct{}, len(identifiers))
	out := make([]string, 0, len(identifiers))

	for _, ident := range identifiers {
		if ident.IsZero() {
			continue
		}

		name := ""
		structured := strings.TrimSpace(ident.Name) != "" || strings.TrimSpace(ident.ID) != ""
		if structured || looksLikeSkillID(ident.Raw) {
			resolved, err := s.resolver.Resolve(ctx, ident)
			if err != nil {
				return nil, err
			}
			switch {
			case resolved != nil:
				name = resolved.Name
			case strings.TrimSpace(ident.Name) != "":
				name = CleanName(ident.Name)
			default:
				// A bare id that resolves to nothing is noise; skip it.
				continue
			}
		} else {
			name = CleanName(ident.Raw)
		}

		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func (s *Synchronizer) findOrCreate(ctx context.Context, name string) (skill.Skill, error) {
	existing, err := s.skills.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrSkillNotFound) {
		return skill.Skill{}, err
	}

	created := skill.Skill{
		ID:          uuid.New(),
		Name:        name,
		Category:    InferCategory(name),
		Proficiency: DefaultProficiency,
		IsActive:    true,
	}
	if err := s.skills.Create(ctx, created); err != nil {
		if repository.IsUniqueViolation(err) {
			// Another writer created the name first; use its record.
			return s.skills.FindByName(ctx, name)
		}
		return skill.Skill{}, fmt.Errorf("create skill %q: %w", name, err)
	}
	return created, nil
}

// RemoveSkillSource drops the (sourceType, referenceID) link from the
// identified skill and re-derives its visibility. Idempotent: an absent
// source, or a skill that no longer resolves, is a no-op.
func (s *Synchronizer) RemoveSkillSource(ctx context.Context, ident Identifier, sourceType skill.SourceType, referenceID string) error {
	sk, err := s.resolver.Resolve(ctx, ident)
	if err != nil {
		return err
	}
	if sk == nil {
		return nil
	}

	if !sk.RemoveSource(sourceType, referenceID) {
		return nil
	}
	if _, err := s.recalculateVisibility(ctx, sk); err != nil {
		return err
	}
	return s.skills.Save(ctx, *sk)
}

// adapterFor returns the adapter for an entity source type, or nil for
// manual/github which have no backing entity.
func (s *Synchronizer) adapterFor(t skill.SourceType) EntityAdapter {
	for _, a := range s.adapters {
		if a.Type() == t {
			return a
		}
	}
	return nil
}

// hasActiveReference reports whether any active entity of any type still
// lists the skill, by id or name.
func (s *Synchronizer) hasActiveReference(ctx context.Context, sk *skill.Skill) (bool, error) {
	for _, adapter := range s.adapters {
		entities, err := adapter.ListAll(ctx)
		if err != nil {
			return false, err
		}
		for _, e := range entities {
			if e.IsActive() && e.ContainsSkill(sk) {
				return true, nil
			}
		}
	}
	return false, nil
}

// recalculateVisibility applies the canonical rule in place and reports
// whether the flag changed. The caller persists.
func (s *Synchronizer) recalculateVisibility(ctx context.Context, sk *skill.Skill) (bool, error) {
	hasActive, err := s.hasActiveReference(ctx, sk)
	if err != nil {
		return false, err
	}
	should := sk.ShouldBeActive(hasActive)
	if should == sk.IsActive {
		return false, nil
	}
	sk.IsActive = should
	return true, nil
}
