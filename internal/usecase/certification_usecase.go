package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-api/internal/domain/content"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/infrastructure/cache"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/skillgraph"
	"portfolio-api/internal/ws"

	"github.com/google/uuid"
)

const cacheKeyCertificationsPublic = cache.KeyCertificationsPrefix + "public"

type CertificationUsecase struct {
	certs repository.CertificationRepository
	graph *skillgraph.Synchronizer
	cache Cache
}

func NewCertificationUsecase(certs repository.CertificationRepository, graph *skillgraph.Synchronizer, c Cache) *CertificationUsecase {
	return &CertificationUsecase{certs: certs, graph: graph, cache: c}
}

type CertificationSkillInput struct {
	Name        string
	Proficiency string
	Verified    bool
}

type CertificationInput struct {
	Title         string
	Issuer        string
	CredentialID  string
	CredentialURL string
	IssuedAt      *time.Time
	Skills        []CertificationSkillInput
	IsActive      bool
	Order         int
}

func (u *CertificationUsecase) ListPublicCertifications(ctx context.Context) ([]content.Certification, error) {
	var cached []content.Certification
	if cacheGet(ctx, u.cache, cacheKeyCertificationsPublic, &cached) {
		return cached, nil
	}

	items, err := u.certs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, u.cache, cacheKeyCertificationsPublic, items)
	return items, nil
}

func (u *CertificationUsecase) ListAllCertifications(ctx context.Context) ([]content.Certification, error) {
	return u.certs.ListAll(ctx)
}

func (u *CertificationUsecase) GetCertification(ctx context.Context, id uuid.UUID) (content.Certification, error) {
	c, err := u.certs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCertificationNotFound) {
			return content.Certification{}, ErrNotFound
		}
		return content.Certification{}, err
	}
	return c, nil
}

func (u *CertificationUsecase) CreateCertification(ctx context.Context, in CertificationInput) (content.Certification, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return content.Certification{}, ErrInvalidInput
	}

	c := content.Certification{
		ID:            uuid.New(),
		Title:         title,
		Issuer:        strings.TrimSpace(in.Issuer),
		CredentialID:  strings.TrimSpace(in.CredentialID),
		CredentialURL: strings.TrimSpace(in.CredentialURL),
		IssuedAt:      in.IssuedAt,
		Skills:        buildCertificationSkills(in.Skills),
		IsActive:      in.IsActive,
		Order:         in.Order,
	}
	if err := u.certs.Create(ctx, c); err != nil {
		return content.Certification{}, err
	}

	if err := u.syncCertificationSkills(ctx, c); err != nil {
		return content.Certification{}, err
	}

	invalidateEntity(ctx, u.cache, cache.KeyCertificationsPrefix)
	return c, nil
}

func (u *CertificationUsecase) UpdateCertification(ctx context.Context, id uuid.UUID, in CertificationInput) (content.Certification, error) {
	c, err := u.GetCertification(ctx, id)
	if err != nil {
		return content.Certification{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return content.Certification{}, ErrInvalidInput
	}

	newSkills := buildCertificationSkills(in.Skills)
	dropped := removedNames(certificationSkillNames(c.Skills), certificationSkillNames(newSkills))

	c.Title = title
	c.Issuer = strings.TrimSpace(in.Issuer)
	c.CredentialID = strings.TrimSpace(in.CredentialID)
	c.CredentialURL = strings.TrimSpace(in.CredentialURL)
	c.IssuedAt = in.IssuedAt
	c.Skills = newSkills
	c.IsActive = in.IsActive
	c.Order = in.Order

	if err := u.certs.Save(ctx, c); err != nil {
		return content.Certification{}, err
	}
	if err := u.syncCertificationSkills(ctx, c); err != nil {
		return content.Certification{}, err
	}

	for _, name := range dropped {
		if err := u.graph.RemoveSkillSource(ctx, skillgraph.NameIdentifier(name), skill.SourceCertification, id.String()); err != nil {
			return content.Certification{}, err
		}
	}

	invalidateEntity(ctx, u.cache, cache.KeyCertificationsPrefix)
	return c, nil
}

func (u *CertificationUsecase) DeleteCertification(ctx context.Context, id uuid.UUID) error {
	c, err := u.GetCertification(ctx, id)
	if err != nil {
		return err
	}

	if err := u.certs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCertificationNotFound) {
			return ErrNotFound
		}
		return err
	}

	for _, name := range certificationSkillNames(c.Skills) {
		if err := u.graph.RemoveSkillSource(ctx, skillgraph.NameIdentifier(name), skill.SourceCertification, id.String()); err != nil {
			return err
		}
	}

	invalidateEntity(ctx, u.cache, cache.KeyCertificationsPrefix)
	return nil
}

func (u *CertificationUsecase) syncCertificationSkills(ctx context.Context, c content.Certification) error {
	names := certificationSkillNames(c.Skills)
	synced, err := u.graph.SyncSkills(ctx, nameIdentifiers(names), skill.SourceCertification, c.ID.String())
	if err != nil {
		return err
	}
	ws.NotifySkillSync(string(skill.SourceCertification), c.ID.String(), len(synced))
	return nil
}

func buildCertificationSkills(in []CertificationSkillInput) []content.CertificationSkill {
	out := make([]content.CertificationSkill, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		name := skillgraph.CleanName(s.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, content.CertificationSkill{
			Name:        name,
			Proficiency: strings.TrimSpace(s.Proficiency),
			Verified:    s.Verified,
		})
	}
	return out
}

func certificationSkillNames(skills []content.CertificationSkill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}
