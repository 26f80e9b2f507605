package handlers

import (
	"errors"
	"io"
	"net/http"

	trayRepo "viacampo/database/repository/tray"
	"viacampo/models"
	"viacampo/services/tray"
	"viacampo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// trayUpdatableFields whitelists the fields a client may patch on a tray
// item. Linkage fields only move through the trip endpoints.
var trayUpdatableFields = map[string]bool{
	"region":      true,
	"city":        true,
	"date":        true,
	"clientName":  true,
	"status":      true,
	"equipment":   true,
	"observation": true,
	"attendant":   true,
	"trayOrder":   true,
}

// TrayHandler exposes the shared tray queue.
type TrayHandler struct {
	Svc tray.TrayService
}

// NewTrayHandler creates a new TrayHandler.
func NewTrayHandler(svc tray.TrayService) *TrayHandler {
	return &TrayHandler{Svc: svc}
}

// ListHandler returns the current tray contents, ordered by trayOrder.
func (h *TrayHandler) ListHandler(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to list tray", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Falha ao carregar a bandeja", err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}

// StreamHandler pushes the full tray as a server-sent event on every
// underlying change.
func (h *TrayHandler) StreamHandler(c *gin.Context) {
	ctx := c.Request.Context()

	snapshots := make(chan []models.TrayItem, 1)
	errs := make(chan error, 1)

	unsubscribe, err := h.Svc.Subscribe(ctx,
		func(items []models.TrayItem) {
			// Keep only the latest snapshot; intermediates carry no
			// extra information.
			select {
			case <-snapshots:
			default:
			}
			snapshots <- items
		},
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Falha ao abrir o feed da bandeja", err.Error())
		return
	}
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case items := <-snapshots:
			c.SSEvent("tray", items)
			return true
		case err := <-errs:
			c.SSEvent("error", gin.H{"message": err.Error()})
			return false
		case <-ctx.Done():
			return false
		}
	})
}

// AddHandler creates a new tray item.
func (h *TrayHandler) AddHandler(c *gin.Context) {
	var item models.TrayItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid tray item payload", err.Error())
		return
	}

	id, err := h.Svc.Add(c.Request.Context(), item)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Falha ao adicionar item na bandeja", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateHandler merges whitelisted fields into an existing item.
func (h *TrayHandler) UpdateHandler(c *gin.Context) {
	id := c.Param("id")

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid update payload", err.Error())
		return
	}

	fields := make(map[string]interface{}, len(body))
	for key, value := range body {
		if !trayUpdatableFields[key] {
			continue
		}
		if key == "trayOrder" {
			// JSON numbers arrive as float64.
			if f, ok := value.(float64); ok {
				value = int64(f)
			}
		}
		fields[key] = value
	}
	if len(fields) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No updatable fields in payload", "")
		return
	}

	if err := h.Svc.Update(c.Request.Context(), id, fields); err != nil {
		if errors.Is(err, trayRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Item não encontrado na bandeja", id)
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Falha ao atualizar item da bandeja", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// RemoveHandler deletes a tray item. Removing an id that no longer exists is
// not an error; removing an item linked to a trip is refused.
func (h *TrayHandler) RemoveHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, tray.ErrItemLinked) {
			utils.JSONError(c, http.StatusConflict, "Item vinculado a uma viagem. Encerre a viagem para liberá-lo.", id)
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Falha ao remover item da bandeja", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

type updateOrderRequest struct {
	Items []trayRepo.OrderUpdate `json:"items" binding:"required"`
}

// UpdateOrderHandler applies a manual reordering as one atomic batch.
func (h *TrayHandler) UpdateOrderHandler(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reorder payload", err.Error())
		return
	}

	if err := h.Svc.UpdateOrder(c.Request.Context(), req.Items); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Falha ao reordenar a bandeja", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reordered", "count": len(req.Items)})
}
