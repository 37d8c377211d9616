package customer

import (
	"log/slog"
	"net/http"

	"vidly/model"
	customersvc "vidly/service/customer"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc customersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) List(c echo.Context) error {
	customers, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("customer list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": customers})
}

func (h *Controller) Create(c echo.Context) error {
	var req model.CustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	cust, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		h.Log.Error("customer create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, cust)
}
