package handler

import (
	"errors"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/skillgraph"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

// mapDomainError translates usecase and skill-graph failures into HTTP
// errors. A blocked mutation answers 400 and names the blocking
// references so the client can render them.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	if conflict, ok := skillgraph.IsConflict(err); ok {
		return middleware.NewAppError(fiber.StatusBadRequest, conflict.Message,
			map[string]any{"references": conflict.References}, err)
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, skillgraph.ErrSkillNotFound),
		errors.Is(err, skillgraph.ErrEntityNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, skillgraph.ErrInvalidSourceType):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
