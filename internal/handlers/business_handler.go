package handlers

import (
	"net/http"

	"fuel-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: Business profile ---
func (h *Handler) GetBusinessInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.BusinessInfo())
}

// --- PUT: Replace the business profile ---
func (h *Handler) UpdateBusinessInfo(c *gin.Context) {
	var info models.BusinessInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if err := h.Store.UpdateBusinessInfo(info); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
