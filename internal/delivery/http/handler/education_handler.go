package handler

import (
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EducationHandler struct {
	uc *usecase.EducationUsecase
}

type educationSkillRequest struct {
	Name        string `json:"name"`
	SkillID     string `json:"skill_id"`
	Proficiency string `json:"proficiency"`
	Verified    bool   `json:"verified"`
}

type educationRequest struct {
	Institution  string                  `json:"institution"`
	Degree       string                  `json:"degree"`
	FieldOfStudy string                  `json:"field_of_study"`
	StartYear    int                     `json:"start_year"`
	EndYear      int                     `json:"end_year"`
	Description  string                  `json:"description"`
	Skills       []educationSkillRequest `json:"skills"`
	IsActive     bool                    `json:"is_active"`
	Order        int                     `json:"order"`
}

func (req educationRequest) toInput() usecase.EducationInput {
	skills := make([]usecase.EducationSkillInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, usecase.EducationSkillInput{
			Name:        s.Name,
			SkillID:     s.SkillID,
			Proficiency: s.Proficiency,
			Verified:    s.Verified,
		})
	}
	return usecase.EducationInput{
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
		Description:  req.Description,
		Skills:       skills,
		IsActive:     req.IsActive,
		Order:        req.Order,
	}
}

func NewEducationHandler(uc *usecase.EducationUsecase) *EducationHandler {
	return &EducationHandler{uc: uc}
}

func (h *EducationHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/education", h.ListPublic)
}

func (h *EducationHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/education", h.ListAll)
	r.Post("/education", h.Create)
	r.Get("/education/:id", h.Get)
	r.Put("/education/:id", h.Update)
	r.Delete("/education/:id", h.Delete)
}

func (h *EducationHandler) ListPublic(c fiber.Ctx) error {
	items, err := h.uc.ListPublicEducation(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *EducationHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAllEducation(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *EducationHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	e, err := h.uc.GetEducation(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, e)
}

func (h *EducationHandler) Create(c fiber.Ctx) error {
	var req educationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.CreateEducation(c.Context(), req.toInput())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, e)
}

func (h *EducationHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req educationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	e, err := h.uc.UpdateEducation(c.Context(), id, req.toInput())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, e)
}

func (h *EducationHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteEducation(c.Context(), id); err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
