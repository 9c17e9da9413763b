package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	v1 := r.Group("/api/v1")

	registerPartyRoutes(v1, services.Party)
	registerItemRoutes(v1, services.Item)
	registerTransactionRoutes(v1, services.Transaction)
	registerDocumentRoutes(v1, services.Documents)
}
