package administration

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehome/emar/pkg/caldate"
	"github.com/carehome/emar/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/administrations", h.List)
}

// List returns the ledger, optionally restricted to ?date=YYYY-MM-DD.
func (h *Handler) List(c echo.Context) error {
	if date := c.QueryParam("date"); date != "" {
		d, err := caldate.Parse(date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		records, err := h.svc.ListForDate(c.Request().Context(), d)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, records)
	}

	p := pagination.FromContext(c)
	records, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, p.Limit, p.Offset))
}
