package handlers

import (
	"net/http"
	"strconv"

	reportRepo "viacampo/database/repository/reports"
	"viacampo/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the closure report archive.
type ReportHandler struct {
	Repo reportRepo.ClosureReportRepository
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(repo reportRepo.ClosureReportRepository) *ReportHandler {
	return &ReportHandler{Repo: repo}
}

// ListHandler returns archived reports, most recent first.
func (h *ReportHandler) ListHandler(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", raw)
			return
		}
		limit = parsed
	}

	reports, err := h.Repo.List(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Falha ao carregar relatórios", err.Error())
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ByIDHandler returns one archived report by its id.
func (h *ReportHandler) ByIDHandler(c *gin.Context) {
	id := c.Param("id")
	report, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Falha ao carregar relatório", err.Error())
		return
	}
	if report == nil {
		utils.JSONError(c, http.StatusNotFound, "Relatório não encontrado", id)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ByTripHandler returns the archived reports of one trip.
func (h *ReportHandler) ByTripHandler(c *gin.Context) {
	reports, err := h.Repo.GetByTripID(c.Request.Context(), c.Param("tripId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Falha ao carregar relatórios da viagem", err.Error())
		return
	}
	c.JSON(http.StatusOK, reports)
}
