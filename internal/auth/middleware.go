package auth

import (
	"fmt"
	"strings"

	"quickbite/internal/apperr"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

// Middleware requires a valid "Authorization: Bearer <token>" header and
// stores the claims on the request context. WebSocket clients, which cannot
// set headers from a browser, may pass the token as ?access_token= instead.
func Middleware(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := c.Query("access_token")
		switch {
		case header != "":
			var ok bool
			token, ok = strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				abort(c, fmt.Errorf("%w: authorization header must be a bearer token", apperr.ErrUnauthorized))
				return
			}
		case token == "":
			abort(c, fmt.Errorf("%w: authorization header required", apperr.ErrUnauthorized))
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin lets only administrators through. It must run after
// Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abort(c, fmt.Errorf("%w: login required", apperr.ErrUnauthorized))
			return
		}
		if !claims.Admin {
			abort(c, fmt.Errorf("%w: access denied", apperr.ErrForbidden))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims Middleware stored on the request.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"kind":  apperr.Kind(err),
	})
}
