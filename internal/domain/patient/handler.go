package patient

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sonia-health/sonia/internal/platform/auth"
	"github.com/sonia-health/sonia/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.List)
	api.POST("/patients", h.Create, auth.RequirePermission(auth.PermCreatePatients))
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update, auth.RequirePermission(auth.PermEditPatients))
	api.DELETE("/patients/:id", h.Delete, auth.RequirePermission(auth.PermDeletePatients))

	api.GET("/patients/:id/collaborators", h.Collaborators)
	api.POST("/patients/:id/collaborators", h.AddCollaborator, auth.RequirePermission(auth.PermAssignTeam))
	api.DELETE("/patients/:id/collaborators/:userId", h.RemoveCollaborator, auth.RequirePermission(auth.PermAssignTeam))
}

func caller(c echo.Context) (string, string) {
	ctx := c.Request().Context()
	return auth.UserIDFromContext(ctx), auth.RoleFromContext(ctx)
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID, _ := caller(c)
	if err := h.svc.Create(c.Request().Context(), &p, callerID); err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID, role := caller(c)
	p, err := h.svc.Get(c.Request().Context(), id, callerID, role)
	if err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	page := pagination.FromContext(c)
	callerID, _ := caller(c)
	items, total, err := h.svc.List(c.Request().Context(), callerID, c.QueryParam("search"), page.Limit, page.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Patient{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, page.Limit, page.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	callerID, role := caller(c)
	if err := h.svc.Update(c.Request().Context(), &p, callerID, role); err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID, role := caller(c)
	if err := h.svc.Delete(c.Request().Context(), id, callerID, role); err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Collaborators(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID, role := caller(c)
	ids, err := h.svc.Collaborators(c.Request().Context(), id, callerID, role)
	if err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"colaboradores": ids})
}

func (h *Handler) AddCollaborator(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		UserID string `json:"userId"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID, role := caller(c)
	if err := h.svc.AddCollaborator(c.Request().Context(), id, callerID, role, body.UserID); err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RemoveCollaborator(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID, role := caller(c)
	if err := h.svc.RemoveCollaborator(c.Request().Context(), id, callerID, role, c.Param("userId")); err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
