package handler

import (
	"errors"
	"net/http"

	"cloverpass/internal/auth"
	"cloverpass/internal/config"
	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler owns login/logout, the session cookie, and post-login
// routing.
type SessionHandler struct {
	sessions *service.SessionService
	profiles *service.ProfileService
	cfg      config.SessionConfig
}

func NewSessionHandler(sessions *service.SessionService, profiles *service.ProfileService, cfg config.SessionConfig) *SessionHandler {
	return &SessionHandler{sessions: sessions, profiles: profiles, cfg: cfg}
}

// setSessionCookie mirrors the current token into the cookie server routes
// read. Attributes are fixed: path=/, Secure, SameSite=Strict.
func (h *SessionHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	maxAge := int(h.sessions.TokenTTL().Seconds())
	c.SetCookie(h.cfg.CookieName, token, maxAge, "/", "", h.cfg.CookieSecure, true)
}

// clearSessionCookie removes the cookie; absence of a cookie must always
// reflect absence of an identity.
func (h *SessionHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
}

// Login authenticates and sets the session cookie.
// @Router /api/session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid email or password", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Login failed", err.Error()))
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, model.NewSuccessResponse("Logged in", result))
}

// Logout clears the session cookie. Always succeeds; an expired token is not
// a reason to keep the cookie around.
// @Router /api/session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, model.NewSuccessResponse("Logged out", nil))
}

// Refresh re-issues a token for a valid session and rotates the cookie.
// @Router /api/session/refresh [post]
func (h *SessionHandler) Refresh(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}
	result, err := h.sessions.Refresh(c.Request.Context(), claims)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			h.clearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid token", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Refresh failed", err.Error()))
		return
	}
	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, model.NewSuccessResponse("Session refreshed", result))
}

// Route resolves the caller's landing panel. Both the identity check
// (middleware) and the profile read have settled by the time a decision is
// returned, so a stale partial read can never redirect anyone.
// @Router /api/session/route [get]
func (h *SessionHandler) Route(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	profile, _ := h.profiles.Resolve(c.Request.Context(), claims.Subject)
	resolution := service.ResolveRoute(profile)
	if resolution.Logout {
		h.clearSessionCookie(c)
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", resolution))
}

// Me returns the caller's profile.
// @Router /api/session/me [get]
func (h *SessionHandler) Me(c *gin.Context) {
	profile, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// TouchLastLogin stamps the caller's profile with the current time.
// @Router /api/session/last-login [post]
func (h *SessionHandler) TouchLastLogin(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}
	if err := h.sessions.TouchLastLogin(c.Request.Context(), claims.Subject); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Last login updated", nil))
}
