package settings

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the settings routes. Access control is enforced by
// the global session gate, which redirects unauthenticated requests to
// /signin before these handlers run.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/setting", h.Form)
	e.POST("/setting", h.Update)
}
