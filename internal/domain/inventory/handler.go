package inventory

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/inventory/low-stock", h.LowStock)
	api.GET("/inventory/expiring", h.Expiring)
	api.GET("/inventory/expired", h.Expired)
}

func (h *Handler) LowStock(c echo.Context) error {
	meds, err := h.svc.LowStock(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, meds)
}

// Expiring honors ?days=N; anything non-positive or absent uses the
// configured horizon.
func (h *Handler) Expiring(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	meds, err := h.svc.ExpiringWithin(c.Request().Context(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, meds)
}

func (h *Handler) Expired(c echo.Context) error {
	meds, err := h.svc.Expired(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, meds)
}
