package handlers

import (
	"net/http"

	"fuel-pos-agent/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus feeds the startup screen: whether first-run setup has
// happened, plus the device id the owner can text to support.
func (h *Handler) GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"setupComplete": h.Store.SetupComplete(),
		"businessName":  h.Store.BusinessInfo().Name,
		"device_id":     utils.GetDeviceID(),
	})
}
