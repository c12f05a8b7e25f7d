package handler

import (
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/importer/github"
	"portfolio-api/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// ImportHandler triggers a synchronous GitHub profile import. The scrape
// runs within the request; dashboards get progress over the websocket.
type ImportHandler struct {
	importer *github.Importer
}

type importRequest struct {
	Login   string `json:"login"`
	Pages   int    `json:"pages"`
	Workers int    `json:"workers"`
}

func NewImportHandler(importer *github.Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

func (h *ImportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/import/github", h.ImportGitHub)
}

func (h *ImportHandler) ImportGitHub(c fiber.Ctx) error {
	var req importRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Login == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing login", nil, nil)
	}

	report, err := h.importer.ImportProfile(c.Context(), req.Login, req.Pages, req.Workers)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}
