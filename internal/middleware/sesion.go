package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SesionKey    = "session_token"
	sesionHeader = "X-Session-Token"
	sesionCookie = "session_token"
	// Cookie lifetime; the cart itself expires much earlier via its
	// freshness window, this only bounds token reuse.
	sesionMaxAge = 7 * 24 * 3600
)

// Sesion resolves the anonymous storefront session token: header first,
// cookie second, otherwise a fresh uuid is minted and set on the response.
// Carts and pending checkouts are keyed by this token.
func Sesion() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(sesionHeader)
		if token == "" {
			if cookie, err := c.Cookie(sesionCookie); err == nil {
				token = cookie
			}
		}
		if _, err := uuid.Parse(token); err != nil {
			token = uuid.NewString()
			c.SetCookie(sesionCookie, token, sesionMaxAge, "/", "", false, true)
		}
		c.Set(SesionKey, token)
		c.Header(sesionHeader, token)
		c.Next()
	}
}

// GetSesion returns the session token resolved by Sesion.
func GetSesion(c *gin.Context) string {
	return c.GetString(SesionKey)
}
