package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/middleware"
)

// maxDocumentSize caps uploaded documents at 10 MiB.
const maxDocumentSize = 10 << 20

// documentHandler handles transaction document uploads.
type documentHandler struct {
	documents portssvc.DocumentStore
}

// registerDocumentRoutes registers the document upload route. Skipped when
// no document store is configured.
func registerDocumentRoutes(rg *gin.RouterGroup, documents portssvc.DocumentStore) {
	if documents == nil {
		return
	}
	h := &documentHandler{documents: documents}
	rg.POST("/documents", h.uploadDocument)
}

func (h *documentHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'file' form field is required"})
		return
	}
	if fileHeader.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	objectName := fmt.Sprintf("documents/%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	url, err := h.documents.UploadPDF(c.Request.Context(), objectName, data)
	if err != nil {
		logger.Error("Failed to upload document", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Document uploaded", slog.String("object", objectName))
	c.JSON(http.StatusCreated, gin.H{"documentURL": url})
}
