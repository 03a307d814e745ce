package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/profescore/web/internal/apperrors"
)

const (
	// AdminCookie holds the bearer token issued by the API's admin login.
	AdminCookie   = "admin_token"
	adminTokenKey = "admin_token"
)

// AdminToken reads the admin token from the Authorization header or the
// admin cookie.
func AdminToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if v, err := c.Cookie(AdminCookie); err == nil {
		return v
	}
	return ""
}

// TokenExpiry returns the exp claim of an API token. The signature is the
// API's business; only the expiry is read here.
func TokenExpiry(token string) (time.Time, bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false, err
	}
	return exp.Time, true, nil
}

// AuthMiddleware guards the admin routes. Missing, malformed or expired
// tokens are rejected before any call to the API.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AdminToken(c)
		if token == "" {
			apperrors.Respond(c, apperrors.ErrUnauthorized)
			return
		}

		exp, ok, err := TokenExpiry(token)
		if err != nil || (ok && time.Now().After(exp)) {
			ClearAdminCookie(c)
			apperrors.Respond(c, apperrors.ErrUnauthorized.WithError(err))
			return
		}

		c.Set(adminTokenKey, token)
		c.Next()
	}
}

// AdminTokenFrom returns the token set by AuthMiddleware.
func AdminTokenFrom(c *gin.Context) string {
	return c.GetString(adminTokenKey)
}

// SetAdminCookie stores token until its exp claim, or for the browser
// session when it has none.
func SetAdminCookie(c *gin.Context, token string, secure bool) {
	maxAge := 0
	if exp, ok, err := TokenExpiry(token); err == nil && ok {
		maxAge = int(time.Until(exp) / time.Second)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AdminCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func ClearAdminCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AdminCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
