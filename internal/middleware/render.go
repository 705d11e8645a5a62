package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/hywep/alerts/internal/templates"
)

// Render writes an HTML page to the response with the given status code.
// The CSRF token from the request context is copied into the view data so
// every form carries it without handlers having to remember to.
func Render(c echo.Context, statusCode int, page string, data *templates.Data) error {
	if data == nil {
		data = &templates.Data{}
	}
	data.CSRFToken = GetCSRFToken(c)

	c.Response().Header().Set(echo.HeaderContentType, "text/html; charset=utf-8")
	c.Response().WriteHeader(statusCode)
	return templates.Execute(c.Response().Writer, page, data)
}
