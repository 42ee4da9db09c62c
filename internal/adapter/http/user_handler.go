package http

import (
	"net/http"

	"loanflow-backend/internal/usecase/profile"
	"loanflow-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc     *user.Usecase
	scorer *profile.Usecase
}

func NewUserHandler(uc *user.Usecase, scorer *profile.Usecase) *UserHandler {
	return &UserHandler{uc: uc, scorer: scorer}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req user.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *UserHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) Update(c echo.Context) error {
	var req user.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("user_id"), req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) Deactivate(c echo.Context) error {
	dto, err := h.uc.Deactivate(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Score returns the profile completion score and missing items.
func (h *UserHandler) Score(c echo.Context) error {
	res, err := h.scorer.Score(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
