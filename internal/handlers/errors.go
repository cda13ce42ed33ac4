package handlers

import (
	"errors"
	"log"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/common"
	"pharmatrack/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// respondError maps domain errors onto HTTP responses. Anything unrecognized
// is logged and reported as a server error without leaking internals.
func respondError(c echo.Context, err error, resource string) error {
	var validationErr *alerting.ValidationError
	if errors.As(err, &validationErr) {
		return common.SendValidationError(c, validationErr.Fields)
	}

	var entityErr *alerting.InvalidEntityError
	if errors.As(err, &entityErr) {
		return common.SendClientError(c, entityErr.Error())
	}

	var transitionErr *alerting.InvalidStateTransitionError
	if errors.As(err, &transitionErr) {
		return common.SendConflictError(c, transitionErr.Error())
	}

	if errors.Is(err, repositories.ErrInsufficientStock) {
		return common.SendClientError(c, "insufficient stock for requested deduction")
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return common.SendNotFoundError(c, resource)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
	return common.SendServerError(c, "operation could not be completed")
}
