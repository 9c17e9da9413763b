package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Billing Backend API v1"})
}
