package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// contextKeyClaims is the Echo context key holding the verified session
// claims. Other plugins read it via GetClaims.
const contextKeyClaims = "auth_claims"

// Route prefixes the gate cares about. /setting requires a session;
// /signin and /register require the absence of one.
const (
	protectedPrefix = "/setting"
	signinPath      = "/signin"
	registerPath    = "/register"
)

// SessionGate returns middleware that runs on every request. It decodes
// the session cookie, stashes the claims for downstream handlers, and
// enforces the routing policy:
//
//   - unauthenticated + protected path  -> 303 to /signin
//   - authenticated + auth-only path    -> 303 to /setting
//   - everything else passes through
//
// A cookie that fails verification (expired, tampered, wrong key) is
// treated exactly like an absent cookie: fail-closed, no error surfaced.
func SessionGate(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := decodeSession(c, issuer)
			if claims != nil {
				c.Set(contextKeyClaims, claims)
			}

			path := c.Request().URL.Path
			switch {
			case claims == nil && strings.HasPrefix(path, protectedPrefix):
				return c.Redirect(http.StatusSeeOther, signinPath)
			case claims != nil && (strings.HasPrefix(path, signinPath) || strings.HasPrefix(path, registerPath)):
				return c.Redirect(http.StatusSeeOther, protectedPrefix)
			}

			return next(c)
		}
	}
}

// decodeSession reads and verifies the session cookie. Any failure
// returns nil.
func decodeSession(c echo.Context, issuer *TokenIssuer) *Claims {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := issuer.Verify(cookie.Value)
	if err != nil {
		return nil
	}

	return claims
}

// GetClaims retrieves the verified session claims from the Echo context.
// Returns nil when the request carries no valid session.
func GetClaims(c echo.Context) *Claims {
	claims, ok := c.Get(contextKeyClaims).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
