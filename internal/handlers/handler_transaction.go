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

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
		transactions.PATCH("/:id/status", h.updateTransactionStatus)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		if fields := utils.ProcessValidationErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	result, err := h.transactionService.CreateTransaction(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", result.Transaction.TransactionID),
		slog.String("number", result.Transaction.Number))
	c.JSON(http.StatusCreated, result)
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	resp := dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, 0, len(txns))}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&txns[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	result, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *transactionHandler) updateTransactionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransactionStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.transactionService.UpdateTransactionStatus(c.Request.Context(), transactionID, req.Status, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update transaction status")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	warnings, err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete transaction")
		return
	}

	if len(warnings) > 0 {
		c.JSON(http.StatusOK, gin.H{"inventoryWarnings": warnings})
		return
	}
	c.Status(http.StatusNoContent)
}
