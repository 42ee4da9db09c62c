package http

import (
	"errors"
	"net/http"

	domainDoc "loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/errs"
	contractUC "loanflow-backend/internal/usecase/contract"

	"github.com/labstack/echo/v4"
)

// writeDomainErr maps the orchestrator's error taxonomy to response codes.
// Conflict is retryable after a re-read; the 422s need caller-side
// correction first.
func writeDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict, re-read current state and retry"})
	case errors.Is(err, errs.ErrDuplicateContract):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrGateNotSatisfied):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrInvalidLoanTerms),
		errors.Is(err, domainDoc.ErrNoteRequired):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, contractUC.ErrDeclineNotAllowed):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
