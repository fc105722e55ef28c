package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"gallery-store/internal/apperr"
	"gallery-store/internal/auth"
	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
)

// Authentication validates the Bearer token and stores its claims in the
// request context under auth.ClaimsKey.
func (m *Mid) Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := ctxmanage.GetTraceIdOfRequest(c)

		authHeader := c.Request.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			slog.Error("expected authorization header format: Bearer <token>", slog.String(logkey.TraceID, traceId))
			abortUnauthorized(c, "expected authorization header format: Bearer <token>")
			return
		}

		claims, err := m.k.ValidateToken(parts[1])
		if err != nil {
			slog.Error("invalid token", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		ctx := context.WithValue(c.Request.Context(), auth.ClaimsKey, claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize wraps handler so that it only runs when the caller's claims carry
// at least one of roles. With no roles any authenticated caller passes.
func (m *Mid) Authorize(handler gin.HandlerFunc, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := ctxmanage.GetTraceIdOfRequest(c)

		claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
		if !ok {
			slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
			abortUnauthorized(c, "Unauthorized")
			return
		}

		if len(roles) > 0 && !hasAnyRole(claims, roles) {
			slog.Error("role not allowed", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.UserID, claims.Subject), slog.Any("Roles", claims.Roles))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient privileges", "kind": "FORBIDDEN"})
			return
		}

		handler(c)
	}
}

func hasAnyRole(claims auth.Claims, roles []string) bool {
	for _, r := range roles {
		if claims.HasRole(r) {
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "kind": apperr.KindUnauthorized.String()})
}
