package handlers

import (
	"errors"
	"net/http"
	"strconv"

	trayRepo "viacampo/database/repository/tray"
	tripRepo "viacampo/database/repository/trip"
	"viacampo/middleware"
	"viacampo/models"
	"viacampo/services/trip"
	"viacampo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TripHandler exposes the trip lifecycle endpoints.
type TripHandler struct {
	Svc trip.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(svc trip.TripService) *TripHandler {
	return &TripHandler{Svc: svc}
}

// CreateHandler persists a new trip plan stamped with the caller identity.
func (h *TripHandler) CreateHandler(c *gin.Context) {
	var plan models.Trip
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid trip payload", err.Error())
		return
	}

	id, err := h.Svc.CreateTrip(c.Request.Context(), middleware.ActorFrom(c), plan)
	if err != nil {
		if errors.Is(err, trip.ErrUnauthenticated) {
			utils.JSONError(c, http.StatusUnauthorized, "Sessão expirada. Entre novamente.", "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Falha ao criar a viagem", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetHandler returns one trip by id.
func (h *TripHandler) GetHandler(c *gin.Context) {
	t, err := h.Svc.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, tripRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Viagem não encontrada", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Falha ao carregar a viagem", err.Error())
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListHandler returns the trip history, most recent first.
func (h *TripHandler) ListHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", raw)
			return
		}
		limit = parsed
	}

	trips, err := h.Svc.ListTrips(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Falha ao carregar o histórico", err.Error())
		return
	}
	c.JSON(http.StatusOK, trips)
}

type assignRequest struct {
	ItemIDs []string `json:"itemIds" binding:"required"`
}

// AssignHandler links tray items to a trip.
func (h *TripHandler) AssignHandler(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid assign payload", err.Error())
		return
	}

	tripID := c.Param("id")
	if err := h.Svc.AssignToTrip(c.Request.Context(), tripID, req.ItemIDs); err != nil {
		if errors.Is(err, tripRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Viagem não encontrada", tripID)
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Falha ao vincular itens à viagem", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "assigned", "count": len(req.ItemIDs)})
}

type closeRequest struct {
	ArrivalTime string                   `json:"arrivalTime"`
	Feedback    []models.ClosureFeedback `json:"feedback"`
}

// CloseHandler finalizes a trip and returns the closure report. A failed
// tray release never suppresses the report: the response carries the report,
// the count actually released and a distinct releaseError message.
func (h *TripHandler) CloseHandler(c *gin.Context) {
	var req closeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid close payload", err.Error())
		return
	}

	tripID := c.Param("id")
	result, err := h.Svc.CloseTrip(c.Request.Context(), middleware.ActorFrom(c), tripID, req.ArrivalTime, req.Feedback)
	if err != nil {
		var partial *trayRepo.PartialReleaseError
		switch {
		case errors.As(err, &partial):
			zap.L().Error("Trip closed with partial tray release",
				zap.String("tripId", tripID),
				zap.Int("released", partial.Released),
				zap.Error(err))
			c.JSON(http.StatusOK, gin.H{
				"report":       result.Report,
				"released":     result.Released,
				"releaseError": "Liberação parcial da bandeja. Tente encerrar novamente para liberar o restante.",
			})
		case errors.Is(err, trip.ErrUnauthenticated):
			utils.JSONError(c, http.StatusUnauthorized, "Sessão expirada. Entre novamente.", "")
		case errors.Is(err, tripRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Viagem não encontrada", tripID)
		default:
			utils.JSONError(c, http.StatusBadGateway, "Falha ao encerrar a viagem", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
