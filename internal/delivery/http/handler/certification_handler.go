package handler

import (
	"time"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CertificationHandler struct {
	uc *usecase.CertificationUsecase
}

type certificationSkillRequest struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
	Verified    bool   `json:"verified"`
}

type certificationRequest struct {
	Title         string                      `json:"title"`
	Issuer        string                      `json:"issuer"`
	CredentialID  string                      `json:"credential_id"`
	CredentialURL string                      `json:"credential_url"`
	IssuedAt      *time.Time                  `json:"issued_at"`
	Skills        []certificationSkillRequest `json:"skills"`
	IsActive      bool                        `json:"is_active"`
	Order         int                         `json:"order"`
}

func (req certificationRequest) toInput() usecase.CertificationInput {
	skills := make([]usecase.CertificationSkillInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, usecase.CertificationSkillInput{
			Name:        s.Name,
			Proficiency: s.Proficiency,
			Verified:    s.Verified,
		})
	}
	return usecase.CertificationInput{
		Title:         req.Title,
		Issuer:        req.Issuer,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
		IssuedAt:      req.IssuedAt,
		Skills:        skills,
		IsActive:      req.IsActive,
		Order:         req.Order,
	}
}

func NewCertificationHandler(uc *usecase.CertificationUsecase) *CertificationHandler {
	return &CertificationHandler{uc: uc}
}

func (h *CertificationHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/certifications", h.ListPublic)
}

func (h *CertificationHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/certifications", h.ListAll)
	r.Post("/certifications", h.Create)
	r.Get("/certifications/:id", h.Get)
	r.Put("/certifications/:id", h.Update)
	r.Delete("/certifications/:id", h.Delete)
}

func (h *CertificationHandler) ListPublic(c fiber.Ctx) error {
	items, err := h.uc.ListPublicCertifications(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *CertificationHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAllCertifications(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *CertificationHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	cert, err := h.uc.GetCertification(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, cert)
}

func (h *CertificationHandler) Create(c fiber.Ctx) error {
	var req certificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	cert, err := h.uc.CreateCertification(c.Context(), req.toInput())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, cert)
}

func (h *CertificationHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req certificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	cert, err := h.uc.UpdateCertification(c.Context(), id, req.toInput())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, cert)
}

func (h *CertificationHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCertification(c.Context(), id); err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
