package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hywep/alerts/internal/apperror"
	"github.com/hywep/alerts/internal/config"
	"github.com/hywep/alerts/internal/middleware"
	"github.com/hywep/alerts/internal/templates"
)

// sessionCookieName is the HTTP cookie carrying the session token. The
// name predates this codebase; existing sessions depend on it.
const sessionCookieName = "jwt"

// Handler handles HTTP requests for registration, sign-in, and logout.
// Handlers are thin: they bind the request, run the validation layer, call
// the service, and render the response. No business logic lives here.
type Handler struct {
	service AuthService
	cfg     *config.Config
}

// NewHandler creates a new auth handler.
func NewHandler(service AuthService, cfg *config.Config) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// RegisterForm renders the registration page (GET /register). The session
// gate has already bounced authenticated users to /setting.
func (h *Handler) RegisterForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, "register.page.html", &templates.Data{
		Title: "알림 등록",
		Form:  map[string]string{},
	})
}

// Register processes the registration form (POST /register).
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	input, fieldErrs := ValidateRegister(&req)
	if fieldErrs != nil {
		return middleware.Render(c, http.StatusOK, "register.page.html", &templates.Data{
			Title:  "알림 등록",
			Form:   registerFormValues(&req),
			Errors: fieldErrs,
		})
	}

	token, err := h.service.Register(c.Request().Context(), *input)
	if err != nil {
		// Business rejections (duplicate email) and dependency failures
		// both re-render the form; only the safe message is shown.
		return middleware.Render(c, http.StatusOK, "register.page.html", &templates.Data{
			Title:   "알림 등록",
			Form:    registerFormValues(&req),
			Message: apperror.SafeMessage(err),
		})
	}

	h.setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/completion")
}

// SigninForm renders the sign-in page (GET /signin).
func (h *Handler) SigninForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, "signin.page.html", &templates.Data{
		Title: "로그인",
		Form:  map[string]string{},
	})
}

// Signin processes the sign-in form (POST /signin).
func (h *Handler) Signin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	input, fieldErrs := ValidateLogin(&req)
	if fieldErrs != nil {
		return middleware.Render(c, http.StatusOK, "signin.page.html", &templates.Data{
			Title:  "로그인",
			Form:   map[string]string{"email": req.Email},
			Errors: fieldErrs,
		})
	}

	token, err := h.service.Login(c.Request().Context(), *input)
	if err != nil {
		data := &templates.Data{
			Title: "로그인",
			Form:  map[string]string{"email": req.Email},
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized {
			// Credential failures surface on the email field regardless of
			// which credential was wrong.
			data.Errors = apperror.FieldErrors{"email": {appErr.Message}}
		} else {
			data.Message = apperror.SafeMessage(err)
		}

		return middleware.Render(c, http.StatusOK, "signin.page.html", data)
	}

	h.setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/setting")
}

// Completion renders the post-registration confirmation page (GET /completion).
func (h *Handler) Completion(c echo.Context) error {
	data := &templates.Data{Title: "등록 완료"}
	if claims := GetClaims(c); claims != nil {
		data.UserName = claims.Name
	}
	return middleware.Render(c, http.StatusOK, "completion.page.html", data)
}

// Logout clears the session cookie (POST /api/logout). Purely a
// client-observable change: the token itself stays valid until expiry.
func (h *Handler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// --- Cookie helpers ---

// setSessionCookie sets the session cookie. The cookie outlives the token
// on purpose: an expired token inside a live cookie is treated as signed
// out. Prod runs cross-site behind TLS, hence Secure + SameSite=None there.
func (h *Handler) setSessionCookie(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(h.cfg.Auth.CookieMaxAge.Seconds()),
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	}
	if h.cfg.Production() {
		cookie.SameSite = http.SameSiteNoneMode
	}
	c.SetCookie(cookie)
}

// clearSessionCookie overwrites the cookie with an immediately-expired
// empty value using the same path and security attributes as issuance.
func (h *Handler) clearSessionCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	}
	if h.cfg.Production() {
		cookie.SameSite = http.SameSiteNoneMode
	}
	c.SetCookie(cookie)
}

// registerFormValues echoes submitted registration fields back into the
// form. Passwords are never echoed.
func registerFormValues(req *RegisterRequest) map[string]string {
	return map[string]string{
		"name":   req.Name,
		"email":  req.Email,
		"majors": req.Majors,
		"grade":  req.Grade,
	}
}
