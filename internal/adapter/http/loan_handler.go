package http

import (
	"net/http"

	"loanflow-backend/internal/usecase/loan"
	"loanflow-backend/pkg/amortization"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type recordPaymentReq struct {
	Amount  float64 `json:"amount"   validate:"required,gt=0,dec2"`
	Months  int     `json:"months"   validate:"gte=0,lte=360"`
	ActorID string  `json:"actor_id" validate:"required,hex32"`
}

func (h *LoanHandler) RecordPayment(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RecordPayment(c.Request().Context(), loan.RecordPaymentInput{
		LoanID:  c.Param("loan_id"),
		Amount:  req.Amount,
		Months:  req.Months,
		ActorID: req.ActorID,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectLoanReq struct {
	ActorID string `json:"actor_id" validate:"required,hex32"`
	Note    string `json:"note"     validate:"max=1000"`
}

func (h *LoanHandler) Reject(c echo.Context) error {
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Reject(c.Request().Context(), loan.RejectInput{
		LoanID:  c.Param("loan_id"),
		ActorID: req.ActorID,
		Note:    req.Note,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type scheduleReq struct {
	Principal         float64 `query:"principal"           validate:"required,gt=0"`
	AnnualRatePercent float64 `query:"annual_rate_percent" validate:"gte=0,lte=100"`
	TermMonths        int     `query:"term_months"         validate:"required,gte=1,lte=360"`
}

// Schedule exposes the amortization calculator directly, for quoting.
func (h *LoanHandler) Schedule(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	plan, err := amortization.Schedule(req.Principal, req.AnnualRatePercent, req.TermMonths)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, plan)
}
