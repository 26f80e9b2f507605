package handlers

import (
	"net/http"

	"viacampo/database"
	"viacampo/middleware"
	"viacampo/models"
	"viacampo/services/access"
	"viacampo/services/directory"
	"viacampo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exchanges Firebase ID tokens for application session tokens.
type AuthHandler struct {
	Dir directory.DirectoryService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(dir directory.DirectoryService) *AuthHandler {
	return &AuthHandler{Dir: dir}
}

type loginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginHandler verifies a Firebase ID token, ensures the caller has a
// directory row, and issues a session token. Inactive users are refused.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	decoded, err := database.AuthClient.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid Firebase ID token", err.Error())
		return
	}

	email, _ := decoded.Claims["email"].(string)
	actor := models.Actor{UID: decoded.UID, Email: email}

	user, err := h.Dir.EnsureUser(c.Request.Context(), actor)
	if err != nil {
		zap.L().Error("Failed to ensure directory row", zap.String("uid", decoded.UID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register user", err.Error())
		return
	}
	if !user.Active {
		utils.JSONError(c, http.StatusForbidden, "Usuário inativo. Procure um administrador.", "")
		return
	}

	token, err := utils.GenerateToken(user.UID, user.Email, utils.SessionTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to issue session token", err.Error())
		return
	}
	if err := utils.SaveSessionToken(c.Request.Context(), utils.GetAuthCacheClient(), user.UID, token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store session", err.Error())
		return
	}

	profile := access.ToProfile(user.Permissions)
	if err := access.CacheProfile(c.Request.Context(), utils.GetAuthCacheClient(), user.UID, profile); err != nil {
		zap.L().Warn("Failed to cache access profile", zap.String("uid", user.UID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"profile": profile,
		"user":    user,
	})
}

// LogoutHandler revokes the caller's session.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if err := utils.RevokeSession(c.Request.Context(), utils.GetAuthCacheClient(), actor.UID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to revoke session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}
