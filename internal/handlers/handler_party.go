package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mandibooks/billing_backend/internal/apperrors"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/mandibooks/billing_backend/internal/middleware"
	"github.com/mandibooks/billing_backend/internal/utils"
)

// partyHandler handles HTTP requests related to parties.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

// registerPartyRoutes registers routes related to parties.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := &partyHandler{partyService: partyService}

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:id", h.getParty)
		parties.PUT("/:id", h.updateParty)
		parties.DELETE("/:id", h.deleteParty)
	}
}

func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateParty", slog.String("error", err.Error()))
		if fields := utils.ProcessValidationErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	party, err := h.partyService.CreateParty(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create party")
		return
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID))
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	party, err := h.partyService.GetPartyByID(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
			return
		}
		logger.Error("Failed to get party", slog.String("party_id", partyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve party"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

func (h *partyHandler) listParties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	parties, err := h.partyService.ListParties(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list parties", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list parties"})
		return
	}

	resp := dto.ListPartiesResponse{Parties: make([]dto.PartyResponse, 0, len(parties))}
	for i := range parties {
		resp.Parties = append(resp.Parties, dto.ToPartyResponse(&parties[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *partyHandler) updateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	party, err := h.partyService.UpdateParty(c.Request.Context(), partyID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update party")
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

func (h *partyHandler) deleteParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	if err := h.partyService.DeleteParty(c.Request.Context(), partyID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete party")
		return
	}

	c.Status(http.StatusNoContent)
}
