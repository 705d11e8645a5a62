package settings

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hywep/alerts/internal/apperror"
	"github.com/hywep/alerts/internal/middleware"
	"github.com/hywep/alerts/internal/plugins/auth"
	"github.com/hywep/alerts/internal/templates"
	"github.com/hywep/alerts/internal/users"
)

const msgUpdateSuccess = "사용자 정보가 성공적으로 업데이트되었습니다."

// Handler handles HTTP requests for the settings page.
type Handler struct {
	service SettingsService
}

// NewHandler creates a new settings handler.
func NewHandler(service SettingsService) *Handler {
	return &Handler{service: service}
}

// Form renders the settings page prefilled with the subscriber's stored
// profile (GET /setting). The session gate guarantees claims are present;
// the nil check guards against misconfigured routing.
func (h *Handler) Form(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return c.Redirect(http.StatusSeeOther, "/signin")
	}

	user, err := h.service.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, "setting.page.html", &templates.Data{
		Title:    "설정",
		UserName: user.Name,
		Form:     profileFormValues(user),
		IsActive: user.IsActive,
	})
}

// Update processes the settings form (POST /setting).
func (h *Handler) Update(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return c.Redirect(http.StatusSeeOther, "/signin")
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	input, fieldErrs := ValidateUpdate(&req)
	if fieldErrs != nil {
		return middleware.Render(c, http.StatusOK, "setting.page.html", &templates.Data{
			Title:    "설정",
			UserName: claims.Name,
			Form:     submittedFormValues(&req),
			IsActive: req.IsActive != "",
			Errors:   fieldErrs,
		})
	}

	if err := h.service.Update(c.Request().Context(), claims.UserID, *input); err != nil {
		return middleware.Render(c, http.StatusOK, "setting.page.html", &templates.Data{
			Title:    "설정",
			UserName: claims.Name,
			Form:     submittedFormValues(&req),
			IsActive: input.IsActive,
			Message:  apperror.SafeMessage(err),
		})
	}

	// Re-render from the store so the page reflects exactly what was saved.
	user, err := h.service.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, "setting.page.html", &templates.Data{
		Title:    "설정",
		UserName: user.Name,
		Form:     profileFormValues(user),
		IsActive: user.IsActive,
		Message:  msgUpdateSuccess,
		Success:  true,
	})
}

// profileFormValues maps a stored profile onto form fields. The password
// fields are always rendered empty.
func profileFormValues(user *users.User) map[string]string {
	return map[string]string{
		"name":   user.Name,
		"email":  user.Email,
		"majors": strings.Join(user.Majors, ", "),
		"grade":  strconv.Itoa(user.Grade),
		"tags":   strings.Join(user.Tags, ", "),
	}
}

// submittedFormValues echoes the raw submission back after a rejected
// update. Passwords are never echoed.
func submittedFormValues(req *UpdateRequest) map[string]string {
	return map[string]string{
		"name":   req.Name,
		"email":  req.Email,
		"majors": req.Majors,
		"grade":  req.Grade,
		"tags":   req.Tags,
	}
}
