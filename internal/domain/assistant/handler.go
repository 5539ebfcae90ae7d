package assistant

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sonia-health/sonia/internal/llm"
	"github.com/sonia-health/sonia/internal/platform/auth"
)

type Handler struct {
	svc *Service
	// exposeDetail includes the raw provider error in failure responses.
	// Only ever true outside production.
	exposeDetail bool
}

func NewHandler(svc *Service, exposeDetail bool) *Handler {
	return &Handler{svc: svc, exposeDetail: exposeDetail}
}

// RegisterRoutes mounts the chat endpoint on both of its historical paths.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/chat", h.Chat)
	api.POST("/ai/chat", h.Chat)
}

func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()
	callerID := auth.UserIDFromContext(ctx)
	if callerID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No autorizado"})
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Mensaje requerido"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Mensaje requerido"})
	}

	resp, err := h.svc.Chat(ctx, req, callerID, auth.RoleFromContext(ctx))
	if err != nil {
		return h.failure(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// failure maps a provider error to a sanitized Spanish message and status.
// The raw error never reaches production callers.
func (h *Handler) failure(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "Error al procesar la solicitud"

	var pErr *ProviderError
	if errors.As(err, &pErr) {
		switch pErr.Kind {
		case llm.ErrAuth:
			msg = "Error de configuración del servicio de IA"
		case llm.ErrRateLimit:
			status = http.StatusTooManyRequests
			msg = "El servicio está temporalmente sobrecargado, intenta de nuevo en unos momentos"
		case llm.ErrTimeout:
			status = http.StatusGatewayTimeout
			msg = "El servicio de IA tardó demasiado en responder"
		case llm.ErrConnection:
			msg = "Error de conexión con el servicio de IA"
		}
	}

	body := map[string]string{"error": msg}
	if h.exposeDetail {
		body["detalle"] = err.Error()
	}
	return c.JSON(status, body)
}
