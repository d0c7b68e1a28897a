package handlers

import (
	"errors"
	"net/http"
	"time"

	"fuel-pos-agent/internal/catalog"
	"fuel-pos-agent/internal/credentials"
	"fuel-pos-agent/internal/ledger"
	"fuel-pos-agent/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler carries the store handle into every route. The store is built
// once in main and passed here - no package-level globals.
type Handler struct {
	Store *store.Store
}

func New(s *store.Store) *Handler {
	return &Handler{Store: s}
}

// respondError maps domain errors onto HTTP responses. The error
// strings for the three lookups match what the frontend string-matches
// on, so don't reword them.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
	case errors.Is(err, store.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Customer not found"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Price entry not found"})
	case errors.Is(err, credentials.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Wrong password"})
	case errors.Is(err, catalog.ErrDuplicateEntry),
		errors.Is(err, store.ErrDuplicateName),
		errors.Is(err, ledger.ErrDuplicateID),
		errors.Is(err, store.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidPrice),
		errors.Is(err, ledger.ErrZeroPaymentForPartial),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, store.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save changes"})
	}
}

// parseRangeFilter reads the optional customer/date query params the
// sidebar filter sends (from/to as yyyy-mm-dd).
func parseRangeFilter(c *gin.Context) ledger.Filter {
	f := ledger.Filter{
		CustomerID: c.Query("customerId"),
		Customer:   c.Query("customer"),
	}
	if from := c.Query("from"); from != "" {
		if d, err := time.ParseInLocation("2006-01-02", from, time.Local); err == nil {
			f.From = &d
		}
	}
	if to := c.Query("to"); to != "" {
		if d, err := time.ParseInLocation("2006-01-02", to, time.Local); err == nil {
			f.To = &d
		}
	}
	return f
}
