package middleware

import (
	"errors"
	"net/http"
	"strings"

	"cloverpass/internal/auth"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth chain.
const (
	ctxClaimsKey  = "sessionClaims"
	ctxProfileKey = "callerProfile"
)

const bearerPrefix = "Bearer "

// extractToken pulls the bearer token from the session cookie (same-origin
// flows) or the Authorization header (cross-context calls), in that order.
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	}
	return ""
}

// Authenticate rejects requests without a valid, unexpired token. Expired
// tokens produce a distinct "session expired" message so clients prompt a
// re-login instead of showing a generic failure.
func Authenticate(tokens *auth.TokenService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c, cookieName)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrSessionExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Session expired, please re-authenticate", ""))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid token", ""))
			return
		}
		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// RequireProfile resolves the caller's profile and rejects unprovisioned
// identities. The rejection does not reveal whether the identity exists.
func RequireProfile(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
			return
		}
		profile, err := profiles.ResolveStrict(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, service.ErrProfileNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Caller profile not found", ""))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, model.NewErrorResponse("Authentication error", err.Error()))
			return
		}
		c.Set(ctxProfileKey, profile)
		c.Next()
	}
}

// RequireAnyRole rejects callers whose profile holds none of the given roles.
// Must run after RequireProfile.
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := ProfileFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
			return
		}
		if !profile.Roles.HasAny(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Insufficient role", ""))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified session claims set by Authenticate.
func ClaimsFrom(c *gin.Context) (auth.Claims, bool) {
	v, exists := c.Get(ctxClaimsKey)
	if !exists {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}

// ProfileFrom returns the caller profile set by RequireProfile.
func ProfileFrom(c *gin.Context) (*model.Profile, bool) {
	v, exists := c.Get(ctxProfileKey)
	if !exists {
		return nil, false
	}
	profile, ok := v.(*model.Profile)
	return profile, ok && profile != nil
}
