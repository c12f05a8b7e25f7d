package usecase

import (
	"context"
	"errors"
	"strings"

	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/infrastructure/cache"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/skillgraph"
	"portfolio-api/internal/ws"

	"github.com/google/uuid"
)

const (
	cacheKeySkillsPublic = cache.KeySkillsPrefix + "public"
	cacheKeySkillsAdmin  = cache.KeySkillsPrefix + "admin"
)

type SkillUsecase struct {
	skills repository.SkillRepository
	graph  *skillgraph.Synchronizer
	cache  Cache
}

func NewSkillUsecase(skills repository.SkillRepository, graph *skillgraph.Synchronizer, c Cache) *SkillUsecase {
	return &SkillUsecase{skills: skills, graph: graph, cache: c}
}

// ListPublicSkills returns visible skills only, cache first.
func (u *SkillUsecase) ListPublicSkills(ctx context.Context) ([]skill.Skill, error) {
	var cached []skill.Skill
	if cacheGet(ctx, u.cache, cacheKeySkillsPublic, &cached) {
		return cached, nil
	}

	items, err := u.skills.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, u.cache, cacheKeySkillsPublic, items)
	return items, nil
}

// ListAllSkills is the admin view: hidden skills and sources included.
func (u *SkillUsecase) ListAllSkills(ctx context.Context) ([]skill.Skill, error) {
	var cached []skill.Skill
	if cacheGet(ctx, u.cache, cacheKeySkillsAdmin, &cached) {
		return cached, nil
	}

	items, err := u.skills.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, u.cache, cacheKeySkillsAdmin, items)
	return items, nil
}

func (u *SkillUsecase) GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	s, err := u.skills.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

type CreateSkillInput struct {
	Name        string
	Category    string
	Proficiency string
	Level       int
	Description string
	Order       int
}

// CreateManualSkill records an admin-entered skill. Manual skills stay
// visible with zero entity references.
func (u *SkillUsecase) CreateManualSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	name := skillgraph.CleanName(in.Name)
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	synced, err := u.graph.SyncSkills(ctx,
		[]skillgraph.Identifier{skillgraph.NameIdentifier(name)},
		skill.SourceManual, "")
	if err != nil {
		return skill.Skill{}, err
	}
	if len(synced) == 0 {
		return skill.Skill{}, ErrInvalidInput
	}

	s := synced[0]
	if applySkillFields(&s, in) {
		if err := u.skills.Save(ctx, s); err != nil {
			return skill.Skill{}, err
		}
	}

	invalidateSkills(ctx, u.cache)
	return s, nil
}

func applySkillFields(s *skill.Skill, in CreateSkillInput) bool {
	changed := false
	if c := strings.TrimSpace(in.Category); c != "" && c != s.Category {
		s.Category = c
		changed = true
	}
	if p := strings.TrimSpace(in.Proficiency); p != "" && p != s.Proficiency {
		s.Proficiency = p
		changed = true
	}
	if in.Level > 0 && in.Level != s.Level {
		s.Level = in.Level
		changed = true
	}
	if d := strings.TrimSpace(in.Description); d != "" && d != s.Description {
		s.Description = d
		changed = true
	}
	if in.Order != 0 && in.Order != s.Order {
		s.Order = in.Order
		changed = true
	}
	return changed
}

type UpdateSkillInput struct {
	Category    *string
	Proficiency *string
	Level       *int
	Description *string
	Order       *int
}

// UpdateSkill edits cosmetic fields. The name is not editable here: it
// is the join key into entity technology lists, renames go through
// delete and re-link.
func (u *SkillUsecase) UpdateSkill(ctx context.Context, id uuid.UUID, in UpdateSkillInput) (skill.Skill, error) {
	s, err := u.GetSkill(ctx, id)
	if err != nil {
		return skill.Skill{}, err
	}

	if in.Category != nil {
		s.Category = strings.TrimSpace(*in.Category)
	}
	if in.Proficiency != nil {
		s.Proficiency = strings.TrimSpace(*in.Proficiency)
	}
	if in.Level != nil {
		s.Level = *in.Level
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.Order != nil {
		s.Order = *in.Order
	}

	if err := u.skills.Save(ctx, s); err != nil {
		return skill.Skill{}, err
	}
	invalidateSkills(ctx, u.cache)
	return s, nil
}

func (u *SkillUsecase) CanDeleteSkill(ctx context.Context, id uuid.UUID) (skillgraph.DeleteCheck, error) {
	check, err := u.graph.CanDeleteSkill(ctx, id)
	if errors.Is(err, skillgraph.ErrSkillNotFound) {
		return skillgraph.DeleteCheck{}, ErrNotFound
	}
	return check, err
}

func (u *SkillUsecase) DeleteSkill(ctx context.Context, id uuid.UUID, force bool) error {
	s, err := u.GetSkill(ctx, id)
	if err != nil {
		return err
	}

	if err := u.graph.DeleteSkill(ctx, id, force); err != nil {
		if errors.Is(err, skillgraph.ErrSkillNotFound) {
			return ErrNotFound
		}
		return err
	}

	invalidateSkills(ctx, u.cache)
	ws.NotifySkillDeleted(id.String(), s.Name, force)
	return nil
}

func (u *SkillUsecase) HideSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	s, err := u.graph.HideSkill(ctx, id)
	if errors.Is(err, skillgraph.ErrSkillNotFound) {
		return skill.Skill{}, ErrNotFound
	}
	if err == nil {
		invalidateSkills(ctx, u.cache)
	}
	return s, err
}

func (u *SkillUsecase) ShowSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	s, err := u.graph.ShowSkill(ctx, id)
	if errors.Is(err, skillgraph.ErrSkillNotFound) {
		return skill.Skill{}, ErrNotFound
	}
	if err == nil {
		invalidateSkills(ctx, u.cache)
	}
	return s, err
}

func (u *SkillUsecase) RecalculateVisibility(ctx context.Context, id uuid.UUID) (skillgraph.VisibilityChange, error) {
	change, err := u.graph.RecalculateSkillVisibility(ctx, id)
	if errors.Is(err, skillgraph.ErrSkillNotFound) {
		return skillgraph.VisibilityChange{}, ErrNotFound
	}
	if err == nil && change.Changed {
		invalidateSkills(ctx, u.cache)
	}
	return change, err
}

func (u *SkillUsecase) LinkSkill(ctx context.Context, skillID uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) error {
	err := u.graph.LinkSkillToEntity(ctx, skillID, entityType, entityID)
	if errors.Is(err, skillgraph.ErrSkillNotFound) || errors.Is(err, skillgraph.ErrEntityNotFound) {
		return ErrNotFound
	}
	if err == nil {
		invalidateSkills(ctx, u.cache)
	}
	return err
}

func (u *SkillUsecase) UnlinkSkill(ctx context.Context, skillID uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) error {
	err := u.graph.UnlinkSkillFromEntity(ctx, skillID, entityType, entityID)
	if errors.Is(err, skillgraph.ErrSkillNotFound) || errors.Is(err, skillgraph.ErrEntityNotFound) {
		return ErrNotFound
	}
	if err == nil {
		invalidateSkills(ctx, u.cache)
	}
	return err
}

func (u *SkillUsecase) BulkLinkSkills(ctx context.Context, skillIDs []uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) (int, error) {
	linked, err := u.graph.BulkLinkSkillsToEntity(ctx, skillIDs, entityType, entityID)
	if linked > 0 {
		invalidateSkills(ctx, u.cache)
	}
	return linked, err
}

func (u *SkillUsecase) BulkUnlinkSkills(ctx context.Context, skillIDs []uuid.UUID, entityType skill.SourceType, entityID uuid.UUID) (int, error) {
	unlinked, err := u.graph.BulkUnlinkSkillsFromEntity(ctx, skillIDs, entityType, entityID)
	if unlinked > 0 {
		invalidateSkills(ctx, u.cache)
	}
	return unlinked, err
}

func (u *SkillUsecase) GetSkillReferences(ctx context.Context, id uuid.UUID) (skillgraph.References, error) {
	return u.graph.GetSkillReferences(ctx, skillgraph.IDIdentifier(id.String()))
}

func (u *SkillUsecase) GetSkillUsageStats(ctx context.Context, id uuid.UUID) (skillgraph.UsageStats, error) {
	return u.graph.GetSkillUsageStats(ctx, skillgraph.IDIdentifier(id.String()))
}

// CleanupOrphans runs the reconciliation sweep and pushes the report to
// connected dashboards.
func (u *SkillUsecase) CleanupOrphans(ctx context.Context) (skillgraph.CleanupReport, error) {
	report, err := u.graph.CleanupOrphanedReferences(ctx)
	if err != nil {
		return report, err
	}

	invalidateSkills(ctx, u.cache)

	modified := make(map[string]int, len(report.EntitiesModified))
	for t, n := range report.EntitiesModified {
		modified[string(t)] = n
	}
	ws.NotifyCleanup(modified, report.SkillsDeactivated, report.SkillsActivated, report.Errors)
	return report, nil
}
