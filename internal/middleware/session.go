package middleware

// session.go attaches a guest session to every request. The session id
// keys the shopper's cart and favorites slots in Redis; no login is
// involved. A missing or invalid cookie silently gets a fresh session,
// which from the shopper's side is simply an empty cart.

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopwave/vip-store/internal/utils"
)

// sessionCookie is the cookie carrying the signed session token.
const sessionCookie = "shopwave_session"

// sessionIDKey is the echo context key under which the session id is stored.
const sessionIDKey = "session_id"

// GuestSession returns middleware that resolves the request's session
// id, minting and setting a new signed cookie when the request carries
// none (or an invalid one). Handlers read the id via SessionID.
func GuestSession(secret string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
				if sid, err := utils.ParseSessionID(secret, cookie.Value); err == nil {
					c.Set(sessionIDKey, sid)
					return next(c)
				}
			}
			tok, err := utils.NewSessionToken(secret, ttl)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
			}
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    tok.Token,
				Path:     "/",
				Expires:  tok.Exp,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(sessionIDKey, tok.SessionID)
			return next(c)
		}
	}
}

// SessionID extracts the session id placed in the context by
// GuestSession. It returns an empty string when the middleware did not
// run, which handlers treat as an internal error.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(sessionIDKey).(string); ok {
		return v
	}
	return ""
}
