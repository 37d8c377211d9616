package movie

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"vidly/model"
	moviesvc "vidly/service/movie"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc moviesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) List(c echo.Context) error {
	movies, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("movie list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": movies})
}

func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	m, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, moviesvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "movie not found"})
		}
		h.Log.Error("movie detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Controller) Create(c echo.Context) error {
	var req model.MovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	m, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, moviesvc.ErrGenreNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "genre not found"})
		}
		h.Log.Error("movie create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, m)
}
