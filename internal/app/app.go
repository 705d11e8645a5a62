// Package app wires configuration, stores, middleware, and plugin routes
// into a runnable Echo server. All dependency construction happens here so
// main stays thin and tests can assemble the same graph with fakes.
package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hywep/alerts/internal/apperror"
	"github.com/hywep/alerts/internal/config"
	"github.com/hywep/alerts/internal/middleware"
	"github.com/hywep/alerts/internal/plugins/auth"
	"github.com/hywep/alerts/internal/templates"
	"github.com/hywep/alerts/internal/users"
)

// App holds the assembled application: configuration, shared dependencies,
// and the Echo instance with all middleware installed.
type App struct {
	Config *config.Config
	Store  users.Store
	Redis  *redis.Client
	Echo   *echo.Echo

	issuer *auth.TokenIssuer
}

// New assembles the application. Routes are registered separately via
// RegisterRoutes so tests can install the middleware stack without the
// full handler graph.
func New(cfg *config.Config, store users.Store, rdb *redis.Client) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	middleware.TrustedProxies(e, []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e.Use(middleware.Recovery())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.CSRF())
	e.Use(auth.SessionGate(issuer))

	return &App{
		Config: cfg,
		Store:  store,
		Redis:  rdb,
		Echo:   e,
		issuer: issuer,
	}
}

// errorHandler is the global Echo error handler. It is the fallback for
// errors handlers return instead of rendering themselves: handlers deal
// with expected validation and business failures inline, so anything
// arriving here is rendered as a plain error page (or JSON for API paths).
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "요청 처리 중 오류가 발생했습니다. 다시 시도해주세요."

	var appErr *apperror.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = apperror.SafeCode(err)
		message = apperror.SafeMessage(err)
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		}
	}

	path := c.Request().URL.Path

	// Unauthorized on a page route means the session is gone: bounce to
	// sign-in rather than showing an error page.
	if code == http.StatusUnauthorized && !isAPIPath(path) {
		_ = c.Redirect(http.StatusSeeOther, "/signin")
		return
	}

	if isAPIPath(path) {
		_ = c.JSON(code, map[string]string{"error": message})
		return
	}

	_ = middleware.Render(c, code, "error.page.html", &templates.Data{
		Title:   "오류",
		Code:    code,
		Message: message,
	})
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/") || path == "/healthz"
}
