package handlers

import (
	"errors"
	"io"
	"net/http"

	"viacampo/middleware"
	"viacampo/models"
	"viacampo/services/access"
	"viacampo/services/directory"
	"viacampo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates the user directory operations reserved for
// administrators.
type AdminHandler struct {
	Dir directory.DirectoryService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(dir directory.DirectoryService) *AdminHandler {
	return &AdminHandler{Dir: dir}
}

// ListUsersHandler returns the full roster, ordered by email.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Dir.List(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to fetch app users", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Falha ao carregar usuários", err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

// StreamUsersHandler pushes the full roster as a server-sent event on every
// underlying change.
func (h *AdminHandler) StreamUsersHandler(c *gin.Context) {
	ctx := c.Request.Context()

	snapshots := make(chan []models.AppUser, 1)
	errs := make(chan error, 1)

	unsubscribe, err := h.Dir.Subscribe(ctx,
		func(users []models.AppUser) {
			select {
			case <-snapshots:
			default:
			}
			snapshots <- users
		},
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Falha ao abrir o feed de usuários", err.Error())
		return
	}
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case users := <-snapshots:
			c.SSEvent("users", users)
			return true
		case err := <-errs:
			c.SSEvent("error", gin.H{"message": err.Error()})
			return false
		case <-ctx.Done():
			return false
		}
	})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActiveHandler toggles a user's active gate. Admins cannot toggle
// themselves.
func (h *AdminHandler) SetActiveHandler(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}

	uid := c.Param("uid")
	err := h.Dir.SetActive(c.Request.Context(), middleware.ActorFrom(c), uid, *req.Active)
	if err != nil {
		if errors.Is(err, directory.ErrSelfEdit) {
			utils.JSONError(c, http.StatusForbidden, "Não é permitido alterar o próprio acesso", "")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Falha ao atualizar usuário", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type setProfileRequest struct {
	Profile access.Profile `json:"profile" binding:"required"`
}

// SetProfileHandler replaces a user's permission set through the profile
// selector. Admins cannot edit themselves.
func (h *AdminHandler) SetProfileHandler(c *gin.Context) {
	var req setProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}

	uid := c.Param("uid")
	err := h.Dir.SetProfile(c.Request.Context(), middleware.ActorFrom(c), uid, req.Profile)
	if err != nil {
		if errors.Is(err, directory.ErrSelfEdit) {
			utils.JSONError(c, http.StatusForbidden, "Não é permitido alterar o próprio acesso", "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Falha ao atualizar perfil do usuário", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
