package http

import (
	"net/http"

	domainApp "loanflow-backend/internal/domain/application"
	"loanflow-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	UserID       string  `json:"user_id"        validate:"required,hex32"`
	Amount       float64 `json:"amount"         validate:"required,gt=0,dec2"`
	InterestRate float64 `json:"interest_rate"  validate:"gte=0,lte=100"`
	TermMonths   int     `json:"term_months"    validate:"required,gte=1,lte=360"`
	Purpose      string  `json:"purpose"        validate:"max=255"`
	Note         string  `json:"note"           validate:"max=1000"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), application.SubmitInput{
		UserID:       req.UserID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		Purpose:      req.Purpose,
		Note:         req.Note,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type advanceReq struct {
	ActorID string `json:"actor_id" validate:"required,hex32"`
	Note    string `json:"note"     validate:"max=1000"`
	From    string `json:"from"` // optional observed status for the stale-state check
}

func (h *ApplicationHandler) Advance(c echo.Context) error {
	var req advanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Advance(c.Request().Context(), application.AdvanceInput{
		ApplicationID: c.Param("application_id"),
		ActorID:       req.ActorID,
		Note:          req.Note,
		From:          domainApp.Status(req.From),
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type decideReq struct {
	Outcome string `json:"outcome"  validate:"required,oneof=approved rejected"`
	ActorID string `json:"actor_id" validate:"required,hex32"`
	Note    string `json:"note"     validate:"max=1000"`
}

func (h *ApplicationHandler) Decide(c echo.Context) error {
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Decide(c.Request().Context(), application.DecideInput{
		ApplicationID: c.Param("application_id"),
		Outcome:       domainApp.Status(req.Outcome),
		ActorID:       req.ActorID,
		Note:          req.Note,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type requireActionReq struct {
	Description string `json:"description" validate:"required,max=1000"`
}

func (h *ApplicationHandler) RequireAction(c echo.Context) error {
	var req requireActionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RequireAction(c.Request().Context(), c.Param("application_id"), req.Description)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type addNoteReq struct {
	ActorID string `json:"actor_id" validate:"required,hex32"`
	Text    string `json:"text"     validate:"required,max=1000"`
}

func (h *ApplicationHandler) AddNote(c echo.Context) error {
	var req addNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.AddNote(c.Request().Context(), c.Param("application_id"), req.ActorID, req.Text); err != nil {
		return writeDomainErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
