package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelterops/adoption-api/internal/animals/application"
	"github.com/shelterops/adoption-api/internal/animals/domain"
	"github.com/shelterops/adoption-api/internal/animals/ports"
	apierrors "github.com/shelterops/adoption-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

func respondBadRequest(c *gin.Context, detail string) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(detail))
}

// respondMalformedBody hides decoder diagnostics behind a generic message so
// parser internals never reach clients.
func respondMalformedBody(c *gin.Context) {
	respondBadRequest(c, "request body could not be read; check the JSON syntax and field types")
}

func respondUnknownStatus(c *gin.Context) {
	respondBadRequest(c, fmt.Sprintf("status must be one of: %s", statusTokens()))
}

func respondValidationFailed(c *gin.Context, fields map[string]string) {
	respondProblem(c, apierrors.NewValidationProblem(fields))
}

// respondServiceError translates application and port errors to the error
// taxonomy: not-found, validation, conflict, and a sanitized fallback.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var validationErr *application.ValidationError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound)
	case errors.As(err, &validationErr):
		respondValidationFailed(c, validationErr.Fields)
	case errors.Is(err, ports.ErrIdempotencyConflict):
		respondProblem(c, apierrors.ErrConflict.WithDetail("Idempotency-Key was already used with a different payload"))
	case errors.Is(err, domain.ErrUnknownStatus):
		respondUnknownStatus(c)
	case errors.Is(err, application.ErrInvalidInput):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("request could not be processed"))
	default:
		_ = c.Error(err)
		respondProblem(c, apierrors.ErrInternal.WithDetail("an unexpected error occurred"))
	}
}

func statusTokens() string {
	statuses := domain.Statuses()
	tokens := make([]string, 0, len(statuses))
	for _, status := range statuses {
		tokens = append(tokens, string(status))
	}
	return strings.Join(tokens, ", ")
}
