package http

import (
	"net/http"
	"time"

	"loanflow-backend/internal/usecase/contract"

	"github.com/labstack/echo/v4"
)

type ContractHandler struct{ uc *contract.Usecase }

func NewContractHandler(uc *contract.Usecase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

type generateContractReq struct {
	ActorID string `json:"actor_id" validate:"required,hex32"`
}

func (h *ContractHandler) Generate(c echo.Context) error {
	var req generateContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Generate(c.Request().Context(), c.Param("loan_id"), req.ActorID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContractHandler) Send(c echo.Context) error {
	dto, err := h.uc.Send(c.Request().Context(), c.Param("contract_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) View(c echo.Context) error {
	dto, err := h.uc.View(c.Request().Context(), c.Param("contract_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type signContractReq struct {
	ActorID string `json:"actor_id" validate:"required,hex32"`
}

func (h *ContractHandler) Sign(c echo.Context) error {
	var req signContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Sign(c.Request().Context(), c.Param("contract_id"), req.ActorID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Cancel(c echo.Context) error {
	dto, err := h.uc.Cancel(c.Request().Context(), c.Param("contract_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Resend(c echo.Context) error {
	dto, err := h.uc.Resend(c.Request().Context(), c.Param("contract_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type declineContractReq struct {
	// role authority is configuration, validated in the usecase
	ActorRole string `json:"actor_role" validate:"required,max=32"`
}

func (h *ContractHandler) Decline(c echo.Context) error {
	var req declineContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Decline(c.Request().Context(), c.Param("contract_id"), req.ActorRole)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Expire(c echo.Context) error {
	dto, err := h.uc.Expire(c.Request().Context(), c.Param("contract_id"), time.Now().UTC())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("contract_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
