package rental

import (
	"log/slog"
	"net/http"

	"vidly/model"
	rs "vidly/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Checkout rents a movie to a customer
// @Summary      Check out a movie
// @Description  Creates an open rental for the (customer, movie) pair and takes one copy off the shelf
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RentalReq  true  "Checkout payload"
// @Success      200  {object}  model.Rental
// @Failure      400  {object}  map[string]any "bad ids or out of stock"
// @Failure      404  {object}  map[string]any "customer or movie not found"
// @Failure      409  {object}  map[string]any "open rental already exists"
// @Security     BearerAuth
// @Router       /api/rentals [post]
func (h *Controller) Checkout(c echo.Context) error {
	var req model.RentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	rt, err := h.Svc.Checkout(c.Request().Context(), req.CustomerID, req.MovieID)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrInvalidInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid customer or movie id"})
		case rs.ErrCustomerNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "customer not found"})
		case rs.ErrMovieNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "movie not found"})
		case rs.ErrOutOfStock:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "movie out of stock"})
		case rs.ErrOpenExists:
			return c.JSON(http.StatusConflict, echo.Map{"message": "customer already has this movie out"})
		default:
			h.Log.Error("rental checkout", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, rt)
}

// Return closes an open rental
// @Summary      Return a movie
// @Description  Closes the open rental for the (customer, movie) pair, computes the fee and restocks the movie
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RentalReq  true  "Return payload"
// @Success      200  {object}  model.Rental
// @Failure      400  {object}  map[string]any "bad ids or return already processed"
// @Failure      404  {object}  map[string]any "no rental for the pair"
// @Security     BearerAuth
// @Router       /api/returns [post]
func (h *Controller) Return(c echo.Context) error {
	var req model.RentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	rt, err := h.Svc.Return(c.Request().Context(), req.CustomerID, req.MovieID)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrInvalidInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid customer or movie id"})
		case rs.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "return already processed"})
		default:
			// DATA_INTEGRITY lands here on purpose: nothing the caller
			// can do about it.
			h.Log.Error("rental return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, rt)
}

// GET /api/rentals
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
