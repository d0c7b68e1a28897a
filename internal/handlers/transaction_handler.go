package handlers

import (
	"net/http"

	"fuel-pos-agent/internal/ledger"
	"fuel-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: List transactions, optionally filtered ---
// ?status=loans|paid  ?customerId=...  ?from=yyyy-mm-dd  ?to=yyyy-mm-dd
func (h *Handler) ListTransactions(c *gin.Context) {
	f := parseRangeFilter(c)
	f.Status = c.Query("status")

	txs := h.Store.Transactions(f)
	if txs == nil {
		txs = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txs)
}

// --- POST: Store a fully-shaped transaction ---
// The payload is the document shape the frontend already builds; status
// is recomputed server-side before anything is stored.
func (h *Handler) AddTransaction(c *gin.Context) {
	var t models.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	stored, err := h.Store.AddTransaction(t)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "transaction": stored})
}

// SaleRequest is the raw sale-entry form: the server resolves the
// customer, autofills the unit price from the catalog and computes the
// totals itself.
type SaleRequest struct {
	CustomerID string  `json:"customerId" binding:"required"`
	Fuel       string  `json:"fuel" binding:"required"`
	Brand      string  `json:"brand" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
	Qty        float64 `json:"qty"`
	UnitPrice  float64 `json:"price"`
	Mode       string  `json:"mode"`
	PaidAmount int     `json:"paidAmount"`
	Note       string  `json:"note"`
}

// --- POST: Record a sale from form input ---
func (h *Handler) CreateSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	t, err := h.Store.CreateSale(ledger.SaleInput{
		CustomerID:    req.CustomerID,
		Fuel:          req.Fuel,
		Brand:         req.Brand,
		Unit:          req.Unit,
		Qty:           req.Qty,
		UnitPrice:     req.UnitPrice,
		Mode:          ledger.ParseMode(req.Mode),
		RequestedPaid: req.PaidAmount,
		Note:          req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "transaction": t})
}

// --- PUT: Full replace of one transaction ---
func (h *Handler) UpdateTransaction(c *gin.Context) {
	var t models.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}
	t.ID = c.Param("id")

	updated, err := h.Store.UpdateTransaction(t)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transaction": updated})
}

type PaymentRequest struct {
	Amount int  `json:"amount"`
	Settle bool `json:"settle"` // "mark as fully paid" button
}

// --- POST: Apply a payment against an open loan ---
func (h *Handler) ApplyPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	t, clamped, err := h.Store.ApplyPayment(c.Param("id"), req.Amount, req.Settle)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"success": true, "transaction": t}
	if clamped {
		// overpay is clamped, not rejected - the operator just gets told
		resp["warning"] = "payment exceeded remaining debt and was clamped"
	}
	c.JSON(http.StatusOK, resp)
}
