package handler

import (
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc *usecase.SkillUsecase
}

func NewSkillHandler(uc *usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// RegisterPublicRoutes mounts the unauthenticated read endpoints.
func (h *SkillHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/skills", h.ListPublic)
}

// RegisterAdminRoutes mounts everything behind the auth middleware.
func (h *SkillHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/skills", h.ListAll)
	r.Post("/skills", h.Create)
	r.Post("/skills/cleanup", h.Cleanup)
	r.Get("/skills/:id", h.Get)
	r.Put("/skills/:id", h.Update)
	r.Delete("/skills/:id", h.Delete)
	r.Get("/skills/:id/can-delete", h.CanDelete)
	r.Get("/skills/:id/references", h.References)
	r.Get("/skills/:id/usage", h.UsageStats)
	r.Patch("/skills/:id/hide", h.Hide)
	r.Patch("/skills/:id/show", h.Show)
	r.Post("/skills/:id/recalculate", h.Recalculate)
	r.Post("/skills/:id/link", h.Link)
	r.Post("/skills/:id/unlink", h.Unlink)
	r.Post("/skills/bulk-link", h.BulkLink)
	r.Post("/skills/bulk-unlink", h.BulkUnlink)
}

func (h *SkillHandler) ListPublic(c fiber.Ctx) error {
	items, err := h.uc.ListPublicSkills(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *SkillHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAllSkills(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.uc.GetSkill(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

type createSkillRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
	Level       int    `json:"level"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.CreateManualSkill(c.Context(), usecase.CreateSkillInput{
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Level:       req.Level,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, s)
}

type updateSkillRequest struct {
	Category    *string `json:"category"`
	Proficiency *string `json:"proficiency"`
	Level       *int    `json:"level"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req updateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.UpdateSkill(c.Context(), id, usecase.UpdateSkillInput{
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Level:       req.Level,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	force := c.Query("force") == "true"
	if err := h.uc.DeleteSkill(c.Context(), id, force); err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SkillHandler) CanDelete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	check, err := h.uc.CanDeleteSkill(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, check)
}

func (h *SkillHandler) References(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	refs, err := h.uc.GetSkillReferences(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, refs)
}

func (h *SkillHandler) UsageStats(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.uc.GetSkillUsageStats(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *SkillHandler) Hide(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.uc.HideSkill(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *SkillHandler) Show(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.uc.ShowSkill(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *SkillHandler) Recalculate(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	change, err := h.uc.RecalculateVisibility(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, change)
}

type linkRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

func (req linkRequest) parse() (skill.SourceType, uuid.UUID, error) {
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return "", uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid entity_id", nil, err)
	}
	return skill.SourceType(req.EntityType), entityID, nil
}

func (h *SkillHandler) Link(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req linkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	entityType, entityID, err := req.parse()
	if err != nil {
		return err
	}

	if err := h.uc.LinkSkill(c.Context(), id, entityType, entityID); err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SkillHandler) Unlink(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req linkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	entityType, entityID, err := req.parse()
	if err != nil {
		return err
	}

	if err := h.uc.UnlinkSkill(c.Context(), id, entityType, entityID); err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

type bulkLinkRequest struct {
	SkillIDs   []string `json:"skill_ids"`
	EntityType string   `json:"entity_type"`
	EntityID   string   `json:"entity_id"`
}

func (req bulkLinkRequest) parse() ([]uuid.UUID, skill.SourceType, uuid.UUID, error) {
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return nil, "", uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid entity_id", nil, err)
	}

	ids := make([]uuid.UUID, 0, len(req.SkillIDs))
	for _, raw := range req.SkillIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, "", uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
		}
		ids = append(ids, id)
	}
	return ids, skill.SourceType(req.EntityType), entityID, nil
}

func (h *SkillHandler) BulkLink(c fiber.Ctx) error {
	var req bulkLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	ids, entityType, entityID, err := req.parse()
	if err != nil {
		return err
	}

	linked, err := h.uc.BulkLinkSkills(c.Context(), ids, entityType, entityID)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"linked": linked})
}

func (h *SkillHandler) BulkUnlink(c fiber.Ctx) error {
	var req bulkLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	ids, entityType, entityID, err := req.parse()
	if err != nil {
		return err
	}

	unlinked, err := h.uc.BulkUnlinkSkills(c.Context(), ids, entityType, entityID)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"unlinked": unlinked})
}

func (h *SkillHandler) Cleanup(c fiber.Ctx) error {
	report, err := h.uc.CleanupOrphans(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}
