package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAllData returns the whole document in one shot, the way the
// desktop frontend hydrates its state on launch. The admin password
// never leaves the server.
func (h *Handler) GetAllData(c *gin.Context) {
	doc := h.Store.Document()

	var admin gin.H
	if doc.Admin != nil {
		admin = gin.H{"username": doc.Admin.Username}
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": doc.Transactions,
		"customers":    doc.Customers,
		"prices":       doc.Prices,
		"businessInfo": doc.BusinessInfo,
		"admin":        admin,
	})
}
