package handlers

import (
	"net/http"

	"fuel-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: List all customers ---
func (h *Handler) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Customers())
}

// --- POST: Register a new customer ---
func (h *Handler) AddCustomer(c *gin.Context) {
	var cust models.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	created, err := h.Store.AddCustomer(cust)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "customer": created})
}

// --- DELETE: Remove a customer and ALL their transactions ---
// The cascade is one atomic document write: either the customer and
// every one of their transactions go together, or nothing changes.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.Store.DeleteCustomer(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
