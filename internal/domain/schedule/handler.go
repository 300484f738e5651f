package schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
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
	api.GET("/schedules", h.List)
	api.GET("/schedules/:id", h.Get)
	api.GET("/schedules/:id/resolved", h.GetResolved)
	api.POST("/schedules", h.Create)
	api.PUT("/schedules/:id", h.Update)
	api.DELETE("/schedules/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var s Schedule
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &s); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var s Schedule
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.ID = id
	if err := h.svc.Update(c.Request().Context(), &s); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) GetResolved(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetResolved(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// List returns all schedules, or only those active on ?active_on=YYYY-MM-DD.
func (h *Handler) List(c echo.Context) error {
	if activeOn := c.QueryParam("active_on"); activeOn != "" {
		d, err := caldate.Parse(activeOn)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "active_on must be YYYY-MM-DD")
		}
		schedules, err := h.svc.ListActiveOn(c.Request().Context(), d)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, schedules)
	}

	p := pagination.FromContext(c)
	schedules, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(schedules, total, p.Limit, p.Offset))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "schedule not found")
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrUnknownResident),
		errors.Is(err, ErrUnknownMedication):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrVersionConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
