package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/apperrors"
	"github.com/profescore/web/internal/middleware"
	"github.com/profescore/web/internal/models"
)

var errMissingToken = errors.New("admin login response without token")

// AuthHandler handles the admin session. The API issues the token; it is
// kept in an HttpOnly cookie until its expiry.
type AuthHandler struct {
	api    API
	log    *zap.Logger
	secure bool
}

func NewAuthHandler(api API, log *zap.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{api: api, log: log, secure: secureCookies}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input models.AdminLoginRequest
	if !bind(c, &input) {
		return
	}

	resp, err := h.api.AdminLogin(c.Request.Context(), input)
	if err != nil {
		fail(c, h.log, "Admin login failed", err)
		return
	}
	if resp.Token == "" {
		h.log.Error("Admin login returned no token")
		apperrors.Respond(c, apperrors.ErrNetwork.WithError(errMissingToken))
		return
	}

	middleware.SetAdminCookie(c, resp.Token, h.secure)
	h.log.Info("Admin logged in", zap.String("email", input.Email))

	c.JSON(http.StatusOK, gin.H{"message": "Inicio de sesión exitoso"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAdminCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// GetSession reports whether the admin cookie still holds a usable token.
// It runs behind the auth middleware, so reaching it means yes.
func (h *AuthHandler) GetSession(c *gin.Context) {
	resp := gin.H{"authenticated": true}
	if exp, ok, err := middleware.TokenExpiry(middleware.AdminTokenFrom(c)); err == nil && ok {
		resp["expiresAt"] = exp
	}
	c.JSON(http.StatusOK, resp)
}
