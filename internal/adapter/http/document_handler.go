package http

import (
	"net/http"

	domainDoc "loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/usecase/document"

	"github.com/labstack/echo/v4"
)

type DocumentHandler struct{ uc *document.Usecase }

func NewDocumentHandler(uc *document.Usecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

type uploadDocumentReq struct {
	UserID string `json:"user_id" validate:"required,hex32"`
	Type   string `json:"type"    validate:"required,doctype"`
	Notes  string `json:"notes"   validate:"max=1000"`
}

func (h *DocumentHandler) Upload(c echo.Context) error {
	var req uploadDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Upload(c.Request().Context(), document.UploadInput{
		UserID: req.UserID,
		Type:   domainDoc.Type(req.Type),
		Notes:  req.Notes,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type verifyDocumentReq struct {
	Outcome string `json:"outcome"  validate:"required,oneof=verified rejected"`
	ActorID string `json:"actor_id" validate:"required,hex32"`
	Note    string `json:"note"     validate:"max=1000"`
}

func (h *DocumentHandler) Verify(c echo.Context) error {
	var req verifyDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Verify(c.Request().Context(), document.VerifyInput{
		DocumentID: c.Param("document_id"),
		Outcome:    domainDoc.VerificationStatus(req.Outcome),
		ActorID:    req.ActorID,
		Note:       req.Note,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DocumentHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("document_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DocumentHandler) ListByUser(c echo.Context) error {
	dtos, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

// Gate reports whether the user's required document set is satisfied.
func (h *DocumentHandler) Gate(c echo.Context) error {
	satisfied, missing, err := h.uc.IsSatisfied(c.Request().Context(), c.Param("user_id"), domainDoc.RequiredTypes())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"satisfied": satisfied,
		"missing":   missing,
	})
}
