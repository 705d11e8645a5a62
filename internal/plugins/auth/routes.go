package auth

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hywep/alerts/internal/middleware"
)

// RegisterRoutes sets up all auth-related routes on the given Echo
// instance. The session gate is installed globally in internal/app, so
// these registrations carry no per-route auth middleware.
//
// POST endpoints are rate-limited to slow brute-force and credential
// stuffing: 10 attempts per IP per minute for sign-in, 5 for register.
func RegisterRoutes(e *echo.Echo, h *Handler, rdb *redis.Client) {
	e.GET("/signin", h.SigninForm)
	e.POST("/signin", h.Signin, middleware.RateLimit(rdb, 10, time.Minute))
	e.GET("/register", h.RegisterForm)
	e.POST("/register", h.Register, middleware.RateLimit(rdb, 5, time.Minute))

	e.GET("/completion", h.Completion)

	// The logout path keeps its /api prefix for compatibility with the
	// previous client; it returns JSON, not a page.
	e.POST("/api/logout", h.Logout)
}
