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

// itemHandler handles HTTP requests related to items.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

// registerItemRoutes registers routes related to items.
func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade) {
	h := &itemHandler{itemService: itemService}

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/low-stock", h.listLowStockItems)
		items.GET("/:id", h.getItem)
		items.PUT("/:id", h.updateItem)
	}
}

func (h *itemHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		if fields := utils.ProcessValidationErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	item, err := h.itemService.CreateItem(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create item")
		return
	}

	logger.Info("Item created", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

func (h *itemHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	item, err := h.itemService.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		logger.Error("Failed to get item", slog.String("item_id", itemID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

func (h *itemHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	items, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	resp := dto.ListItemsResponse{Items: make([]dto.ItemResponse, 0, len(items))}
	for i := range items {
		resp.Items = append(resp.Items, dto.ToItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *itemHandler) listLowStockItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.itemService.ListLowStockItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list low stock items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list low stock items"})
		return
	}

	resp := dto.ListItemsResponse{Items: make([]dto.ItemResponse, 0, len(items))}
	for i := range items {
		resp.Items = append(resp.Items, dto.ToItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *itemHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	item, err := h.itemService.UpdateItem(c.Request.Context(), itemID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}
