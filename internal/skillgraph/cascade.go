package skillgraph

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository"

	"github.com/google/uuid"
)

// DeleteCheck is the answer to "may this skill be deleted right now".
// Inactive-only references never block deletion.
type DeleteCheck struct {
	CanDelete        bool        `json:"can_delete"`
	ActiveReferences []EntityRef `json:"active_references"`
	TotalReferences  int         `json:"total_references"`
}

// References groups every entity listing a skill, per content type.
type References struct {
	Projects       []EntityRef `json:"projects"`
	Certifications []EntityRef `json:"certifications"`
	Education      []EntityRef `json:"education"`
}

func (r References) total() int {
	return len(r.Projects) + len(r.Certifications) + len(r.Education)
}

// UsageStats is the counting view of References for admin dashboards.
type UsageStats struct {
	Projects         int  `json:"projects"`
	Certifications   int  `json:"certifications"`
	Education        int  `json:"education"`
	TotalReferences  int  `json:"total_references"`
	ActiveReferences int  `json:"active_references"`
	Sources          int  `json:"sources"`
	IsActive         bool `json:"is_active"`
}

// VisibilityChange reports the outcome of one recalculation.
type VisibilityChange struct {
	SkillID  uuid.UUID `json:"skill_id"`
	Changed  bool      `json:"changed"`
	IsActive bool      `json:"is_active"`
}

// CleanupReport is the result of one orphan-cleanup sweep.
type CleanupReport struct {
	EntitiesModified  map[skill.SourceType]int `json:"entities_modified"`
	SkillsDeactivated int                      `json:"skills_deactivated"`
	SkillsActivated   int                      `json:"skills_activated"`
	Errors            int                      `json:"errors"`
}

func (s *Synchronizer) loadSkill(ctx context.Context, skillID uuid.UUID) (skill.Skill, error) {
	sk, err := s.skills.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return sk, nil
}

// references gathers every entity of every type that lists the skill.
func (s *Synchronizer) references(ctx context.Context, sk *skill.Skill) (References, error) {
	var refs References
	for _, adapter := range s.adapters {
		entities, err := adapter.ListAll(ctx)
		if err != nil {
			return References{}, err
		}
		for _, e := range entities {
			if !e.ContainsSkill(sk) {
				continue
			}
			ref := refOf(adapter.Type(), e)
			switch adapter.Type() {
			case skill.SourceProject:
				refs.Projects = append(refs.Projects, ref)
			case skill.SourceCertification:
				refs.Certifications = append(refs.Certifications, ref)
			case skill.SourceEducation:
				refs.Education = append(refs.Education, ref)
			}
		}
	}
	return refs, nil
}

func activeOf(refs References) []EntityRef {
	var active []EntityRef
	for _, group := range [][]EntityRef{refs.Projects, refs.Certifications, refs.Education} {
		for _, ref := range group {
			if ref.IsActive {
				active = append(active, ref)
			}
		}
	}
	return active
}

// CanDeleteSkill partitions the skill's referencing entities by their own
// active flag; deletion is allowed iff no active referencing entity
// exists. Never errors for "found nothing".
func (s *Synchronizer) CanDeleteSkill(ctx context.Context, skillID uuid.UUID) (DeleteCheck, error) {
	sk, err := s.loadSkill(ctx, skillID)
	if err != nil {
		return DeleteCheck{}, err
	}

	refs, err := s.references(ctx, &sk)
	if err != nil {
		return DeleteCheck{}, err
	}
	active := activeOf(refs)
	return DeleteCheck{
		CanDelete:        len(active) == 0,
		ActiveReferences: active,
		TotalReferences:  refs.total(),
	}, nil
}

// DeleteSkill removes the skill record and detaches it from every
// referencing entity so no dangling id or name survives. Without force,
// active references block the delete with a Conflict naming them.
func (s *Synchronizer) DeleteSkill(ctx context.Context, skillID uuid.UUID, force bool) error {
	sk, err := s.loadSkill(ctx, skillID)
	if err != nil {
		return err
	}

	if !force {
		check, err := s.CanDeleteSkill(ctx, skillID)
		if err != nil {
			return err
		}
		if !check.CanDelete {
			return &ConflictError{
				Message:    fmt.Sprintf("skill %q is referenced by %d active entities", sk.Name, len(check.ActiveReferences)),
				References: check.ActiveReferences,
			}
		}
	}

	for _, adapter := range s.adapters {
		entities, err := adapter.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, e := range entities {
			if !e.DetachSkill(&sk) {
				continue
			}
			if err := adapter.Save(ctx, e); err != nil {
				return err
			}
		}
	}

	if err := s.skills.Delete(ctx, skillID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		return err
	}

	s.logger.Printf("skill deleted | id=%s name=%s force=%t", sk.ID, sk.Name, force)
	return nil
}

// HideSkill is the explicit admin override: flips visibility off without
// touching sources or references.
func (s *Synchronizer) HideSkill(ctx context.Context, skillID uuid.UUID) (skill.Skill, error) {
	return s.setVisibility(ctx, skillID, false)
}

// ShowSkill is the explicit admin override in the other direction.
func (s *Synchronizer) ShowSkill(ctx context.Context, skillID uuid.UUID) (skill.Skill, error) {
	return s.setVisibility(ctx, skillID, true)
}

func (s *Synchronizer) setVisibility(ctx context.Context, skillID uuid.UUID, active bool) (skill.Skill, error) {
	sk, err := s.loadSkill(ctx, skillID)
	if err != nil {
		return skill.Skill{}, err
	}
	if sk.IsActive == active {
		return sk, nil
	}
	sk.IsActive = active
	if err := s.skills.Save(ctx, sk); err != nil {
		return skill.Skill{}, err
	}
	return sk, nil
}

// RecalculateSkillVisibility re-derives "should be active" from the
// canonical rule and reconciles the stored flag, reporting whether it
// changed. Cascades route through this instead of re-deriving the rule
// inline.
func (s *Synchronizer) RecalculateSkillVisibility(ctx context.Context, skillID uuid.UUID) (VisibilityChange, error) {
	sk, err := s.loadSkill(ctx, skillID)
	if err != nil {
		return VisibilityChange{}, err
	}

	changed, err := s.recalculateVisibility(ctx, &sk)
	if err != nil {
		return VisibilityChange{}, err
	}
	if changed {
		if err := s.skills.Save(ctx, sk); err != nil {
			return VisibilityChange{}, err
		}
	}
	return VisibilityChange{SkillID: sk.ID, Changed: changed, IsActive: sk.IsActive}, nil
}

// LinkSkillToEntity attaches the skill to one entity in its native shape
// and records the matching source entry. Unlike the bulk sync, linking
// an already-linked pair fails loudly: this is a single explicit admin
// action, not reconciliation.
func (s *Synchronizer) LinkSkillToEntity(ctx context.Context, skillID uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) error {
	adapter := s.adapterFor(entityType)
	if adapter == nil {
		return ErrInvalidSourceType
	}

	sk, err := s.loadSkill(ctx, skillID)
	if err != nil {
		return err
	}
	entity, err := adapter.Get(ctx, entityID)
	if err != nil {
		return err
	}

	if entity.ContainsSkill(&sk) {
		return &ConflictError{
			Message:    fmt.Sprintf("skill %q is already linked to this %s", sk.Name, entityType),
			References: []EntityRef{refOf(entityType, entity)},
		}
	}

	entity.AttachSkill(&sk)
	if err := adapter.Save(ctx, entity); err != nil {
		return err
	}

	sk.AddSource(entityType, entityID.String())
	if _, err := s.recalculateVisibility(ctx, &sk); err != nil {
		return err
	}
	return s.skills.Save(ctx, sk)
}

// UnlinkSkillFromEntity reverses LinkSkillToEntity. Unlinking an absent
// pair is a no-op; visibility is re-derived afterwards.
func (s *Synchronizer) UnlinkSkillFromEntity(ctx context.Context, skillID uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) error {
	adapter := s.adapterFor(entityType)
	if adapter == nil {
		return ErrInvalidSourceType
	}

	sk, err := s.loadSkill(ctx, skillID)
	if err != nil {
		return err
	}
	entity, err := adapter.Get(ctx, entityID)
	if err != nil {
		return err
	}

	if entity.DetachSkill(&sk) {
		if err := adapter.Save(ctx, entity); err != nil {
			return err
		}
	}

	sk.RemoveSource(entityType, entityID.String())
	if _, err := s.recalculateVisibility(ctx, &sk); err != nil {
		return err
	}
	return s.skills.Save(ctx, sk)
}

// BulkLinkSkillsToEntity links many skills to one entity, skipping pairs
// that are already linked. Returns how many links were made.
func (s *Synchronizer) BulkLinkSkillsToEntity(ctx context.Context, skillIDs []uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) (int, error) {
	linked := 0
	for _, id := range skillIDs {
		err := s.LinkSkillToEntity(ctx, id, entityType, entityID)
		if err != nil {
			if _, conflict := IsConflict(err); conflict {
				continue
			}
			return linked, err
		}
		linked++
	}
	return linked, nil
}

// BulkUnlinkSkillsFromEntity unlinks many skills from one entity.
func (s *Synchronizer) BulkUnlinkSkillsFromEntity(ctx context.Context, skillIDs []uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) (int, error) {
	unlinked := 0
	for _, id := range skillIDs {
		if err := s.UnlinkSkillFromEntity(ctx, id, entityType, entityID); err != nil {
			return unlinked, err
		}
		unlinked++
	}
	return unlinked, nil
}

// GetSkillReferences lists every entity linking to the identified skill.
// An identifier that resolves to nothing returns empty groups, not an
// error: this is a read.
func (s *Synchronizer) GetSkillReferences(ctx context.Context, ident Identifier) (References, error) {
	sk, err := s.resolver.Resolve(ctx, ident)
	if err != nil {
		return References{}, err
	}
	if sk == nil {
		return References{}, nil
	}
	return s.references(ctx, sk)
}

// GetSkillUsageStats is the counting companion of GetSkillReferences.
func (s *Synchronizer) GetSkillUsageStats(ctx context.Context, ident Identifier) (UsageStats, error) {
	sk, err := s.resolver.Resolve(ctx, ident)
	if err != nil {
		return UsageStats{}, err
	}
	if sk == nil {
		return UsageStats{}, nil
	}

	refs, err := s.references(ctx, sk)
	if err != nil {
		return UsageStats{}, err
	}
	return UsageStats{
		Projects:         len(refs.Projects),
		Certifications:   len(refs.Certifications),
		Education:        len(refs.Education),
		TotalReferences:  refs.total(),
		ActiveReferences: len(activeOf(refs)),
		Sources:          len(sk.Sources),
		IsActive:         sk.IsActive,
	}, nil
}

// CleanupOrphanedReferences is the self-healing sweep: every entity
// drops skill identifiers that no longer resolve, then every skill's
// visibility is re-derived from the canonical rule. Single bad records
// are counted and skipped, never fatal — the sweep's job is best-effort
// repair across the whole collection. It is invoked by an external
// trigger (admin action or cron), never scheduled here.
func (s *Synchronizer) CleanupOrphanedReferences(ctx context.Context) (CleanupReport, error) {
	report := CleanupReport{EntitiesModified: make(map[skill.SourceType]int)}

	keep := func(ident Identifier) bool {
		resolved, err := s.resolver.Resolve(ctx, ident)
		if err != nil {
			// Leave the entry alone when the store is unhealthy; a later
			// sweep will catch it.
			report.Errors++
			return true
		}
		return resolved != nil
	}

	// Pass 1: strip orphaned identifiers from every entity.
	remaining := make(map[skill.SourceType][]Entity, len(s.adapters))
	for _, adapter := range s.adapters {
		entities, err := adapter.ListAll(ctx)
		if err != nil {
			s.logger.Printf("cleanup list failed | type=%s error=%v", adapter.Type(), err)
			report.Errors++
			continue
		}
		for _, e := range entities {
			if e.PruneSkills(keep) {
				if err := adapter.Save(ctx, e); err != nil {
					s.logger.Printf("cleanup save failed | type=%s id=%s error=%v", adapter.Type(), e.ID(), err)
					report.Errors++
					continue
				}
				report.EntitiesModified[adapter.Type()]++
			}
		}
		remaining[adapter.Type()] = entities
	}

	// Pass 2: converge every skill's visibility against the pruned state.
	skills, err := s.skills.ListAll(ctx)
	if err != nil {
		return report, err
	}
	for i := range skills {
		sk := skills[i]
		hasActive := false
		for _, entities := range remaining {
			for _, e := range entities {
				if e.IsActive() && e.ContainsSkill(&sk) {
					hasActive = true
					break
				}
			}
			if hasActive {
				break
			}
		}

		should := sk.ShouldBeActive(hasActive)
		if should == sk.IsActive {
			continue
		}
		sk.IsActive = should
		if err := s.skills.Save(ctx, sk); err != nil {
			s.logger.Printf("cleanup skill save failed | id=%s error=%v", sk.ID, err)
			report.Errors++
			continue
		}
		if should {
			report.SkillsActivated++
		} else {
			report.SkillsDeactivated++
		}
	}

	s.logger.Printf("cleanup sweep | modified=%v deactivated=%d activated=%d errors=%d",
		report.EntitiesModified, report.SkillsDeactivated, report.SkillsActivated, report.Errors)
	return report, nil
}
