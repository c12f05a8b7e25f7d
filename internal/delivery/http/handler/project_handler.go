package handler

import (
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProjectHandler struct {
	uc *usecase.ProjectUsecase
}

type projectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	RepoURL      string   `json:"repo_url"`
	LiveURL      string   `json:"live_url"`
	Technologies []string `json:"technologies"`
	IsActive     bool     `json:"is_active"`
	Order        int      `json:"order"`
}

func (req projectRequest) toInput() usecase.ProjectInput {
	return usecase.ProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		RepoURL:      req.RepoURL,
		LiveURL:      req.LiveURL,
		Technologies: req.Technologies,
		IsActive:     req.IsActive,
		Order:        req.Order,
	}
}

func NewProjectHandler(uc *usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/projects", h.ListPublic)
}

func (h *ProjectHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/projects", h.ListAll)
	r.Post("/projects", h.Create)
	r.Get("/projects/:id", h.Get)
	r.Put("/projects/:id", h.Update)
	r.Delete("/projects/:id", h.Delete)
}

func (h *ProjectHandler) ListPublic(c fiber.Ctx) error {
	items, err := h.uc.ListPublicProjects(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ProjectHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAllProjects(c.Context())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.GetProject(c.Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.CreateProject(c.Context(), req.toInput())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, p)
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpdateProject(c.Context(), id, req.toInput())
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProject(c.Context(), id); err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
