package genre

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"vidly/model"
	genresvc "vidly/service/genre"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc genresvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) List(c echo.Context) error {
	genres, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("genre list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": genres})
}

func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	g, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, genresvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "genre not found"})
		}
		h.Log.Error("genre detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, g)
}

func (h *Controller) Create(c echo.Context) error {
	var req model.GenreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	g, err := h.Svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		h.Log.Error("genre create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, g)
}

func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req model.GenreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	g, err := h.Svc.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, genresvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "genre not found"})
		}
		h.Log.Error("genre update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, g)
}

func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, genresvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "genre not found"})
		}
		h.Log.Error("genre delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}
