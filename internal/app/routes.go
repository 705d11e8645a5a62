package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hywep/alerts/internal/middleware"
	"github.com/hywep/alerts/internal/notify"
	"github.com/hywep/alerts/internal/plugins/auth"
	"github.com/hywep/alerts/internal/plugins/settings"
	"github.com/hywep/alerts/internal/templates"
)

// RegisterRoutes builds the service and handler graph and registers every
// route. The Slack sink only fires in prod with a configured webhook;
// everywhere else registrations notify a discard sink.
func (a *App) RegisterRoutes() {
	var notifier notify.Notifier = notify.Discard{}
	if a.Config.Production() && a.Config.SlackWebhookURL != "" {
		notifier = notify.NewSlackWebhook(a.Config.SlackWebhookURL)
	}

	authService := auth.NewAuthService(a.Store, a.issuer, notifier, a.Config.Stage)
	authHandler := auth.NewHandler(authService, a.Config)
	auth.RegisterRoutes(a.Echo, authHandler, a.Redis)

	settingsService := settings.NewSettingsService(a.Store)
	settingsHandler := settings.NewHandler(settingsService)
	settings.RegisterRoutes(a.Echo, settingsHandler)

	a.Echo.GET("/", a.landing)
	a.Echo.GET("/healthz", a.healthz)
}

// landing renders the public landing page. Signed-in visitors see their
// name in the nav; everyone gets links to register or sign in.
func (a *App) landing(c echo.Context) error {
	data := &templates.Data{Title: "hywep 알림"}
	if claims := auth.GetClaims(c); claims != nil {
		data.UserName = claims.Name
	}
	return middleware.Render(c, http.StatusOK, "landing.page.html", data)
}

// healthz reports process liveness. It deliberately skips dependency
// checks so a Redis or DynamoDB blip doesn't take the instance out of
// rotation.
func (a *App) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
