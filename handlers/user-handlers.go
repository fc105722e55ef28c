package handlers

import (
	"log/slog"
	"net/http"

	"gallery-store/internal/apperr"
	"gallery-store/internal/auth"
	"gallery-store/internal/users"
	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var newUser users.NewUser
	if !h.bindJSON(c, &newUser) {
		return
	}

	user, err := h.u.Register(c.Request.Context(), newUser)
	if err != nil {
		abortWithError(c, "error registering user", err)
		return
	}

	slog.Info("user registered", slog.String(logkey.TraceID, traceId), slog.Int(logkey.UserID, user.ID))
	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var request loginRequest
	if !h.bindJSON(c, &request) {
		return
	}

	user, err := h.u.Login(c.Request.Context(), request.Username, request.Password)
	if err != nil {
		abortWithError(c, "login failed", err)
		return
	}

	slog.Info("user logged in", slog.String(logkey.TraceID, traceId), slog.Int(logkey.UserID, user.ID))
	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	h.u.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session reports the process-wide session.
func (h *Handler) Session(c *gin.Context) {
	user, ok := h.u.CurrentUser()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"logged_in": false, "is_admin": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": true, "is_admin": user.IsAdmin(), "user": user})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		abortWithError(c, "claims not found", apperr.NewUnauthorized("Unauthorized"))
		return
	}
	userId, err := claims.UserID()
	if err != nil {
		abortWithError(c, "invalid token subject", apperr.NewUnauthorized("Unauthorized"))
		return
	}

	var request changePasswordRequest
	if !h.bindJSON(c, &request) {
		return
	}

	err = h.u.ChangePassword(c.Request.Context(), userId, request.NewPassword, request.ConfirmPassword)
	if err != nil {
		abortWithError(c, "error changing password", err)
		return
	}

	slog.Info("password changed", slog.String(logkey.TraceID, traceId), slog.Int(logkey.UserID, userId))
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user users.User) {
	roles := []string{auth.RoleUser}
	if user.IsAdmin() {
		roles = append(roles, auth.RoleAdmin)
	}
	token, err := h.k.GenerateToken(user.ID, roles, h.tokenTTL)
	if err != nil {
		abortWithError(c, "error generating token", err)
		return
	}
	c.JSON(status, gin.H{"token": token, "user": user})
}
