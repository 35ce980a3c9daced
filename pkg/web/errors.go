package web

import (
	"errors"

	"github.com/dukex/projecthub/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func problem(c fiber.Ctx, status int, problemType, detail string) error {
	p := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(problemType).
		WithDetail(detail)

	return c.Status(status).JSON(p)
}

func badRequest(c fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusBadRequest, "validation_error", detail)
}

func unauthorized(c fiber.Ctx) error {
	return problem(c, fiber.StatusUnauthorized, "unauthenticated", services.Message(services.ErrUnauthenticated))
}

func internalError(c fiber.Ctx, err error) error {
	p := problems.NewStatusProblem(fiber.StatusInternalServerError).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(p)
}

// handleServiceError maps service errors onto RFC 7807 problems.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return problem(c, fiber.StatusBadRequest, errorCode(err, "validation_error"), services.Message(err))

	case errors.Is(err, services.ErrUnauthenticated):
		return unauthorized(c)

	case errors.Is(err, services.ErrNoReport):
		return problem(c, fiber.StatusNotFound, "no_report", err.Error())

	case errors.Is(err, services.ErrUnknownTab):
		return problem(c, fiber.StatusNotFound, "unknown_tab", err.Error())

	case errors.Is(err, services.ErrUnknownKind):
		return problem(c, fiber.StatusNotFound, "unknown_kind", err.Error())

	case errors.Is(err, services.ErrNotImplementedInDemo):
		return problem(c, fiber.StatusNotImplemented, "not_implemented_in_demo", services.Message(err))

	default:
		return internalError(c, err)
	}
}

// statusOf is the HTTP status the HTML pages answer with for err.
func statusOf(err error) int {
	switch {
	case services.IsValidationError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case services.IsNotFoundError(err):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotImplementedInDemo):
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

func errorCode(err error, fallback string) string {
	var serviceErr *services.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Code != "" {
		return serviceErr.Code
	}

	return fallback
}
