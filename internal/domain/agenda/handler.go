package agenda

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carehome/emar/internal/domain/administration"
	"github.com/carehome/emar/pkg/caldate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/agenda", h.ForDate)
	api.GET("/agenda/stats", h.StatsForDate)
	api.POST("/agenda/administer", h.Administer)
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today.
func dateParam(c echo.Context) (caldate.Date, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return caldate.Today(), nil
	}
	return caldate.Parse(raw)
}

func (h *Handler) ForDate(c echo.Context) error {
	d, err := dateParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	items, err := h.svc.ForDate(c.Request().Context(), d)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) StatsForDate(c echo.Context) error {
	d, err := dateParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	stats, err := h.svc.StatsForDate(c.Request().Context(), d)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

type administerRequest struct {
	ScheduleID uuid.UUID    `json:"schedule_id"`
	Timing     string       `json:"timing"`
	Date       caldate.Date `json:"date"`
	Actor      string       `json:"actor"`
	Note       *string      `json:"note,omitempty"`
}

func (h *Handler) Administer(c echo.Context) error {
	var req administerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Date.IsZero() {
		req.Date = caldate.Today()
	}

	rec, err := h.svc.Administer(c.Request().Context(), req.ScheduleID, req.Timing, req.Date, req.Actor, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, administration.ErrUnknownSchedule):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, administration.ErrInvalidTiming),
			errors.Is(err, administration.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, administration.ErrDuplicateAdministration):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, rec)
}
