package handlers

import (
	"net/http"
	"time"

	"fuel-pos-agent/internal/ledger"
	"fuel-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/reports/daily?date=dd/mm/yyyy ---
// Defaults to today. Returns the dashboard numbers for one calendar
// day: sales, money in, debt, and fuel volume per product.
func (h *Handler) GetDailyReport(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := ledger.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date, want dd/mm/yyyy"})
			return
		}
		day = parsed
	}

	totals := h.Store.DailyTotals(day)
	c.JSON(http.StatusOK, gin.H{
		"date":       day.Format(ledger.DateLayout),
		"totalSales": totals.TotalSales,
		"totalPaid":  totals.TotalPaid,
		"totalDebt":  totals.TotalDebt,
		"perProduct": totals.PerProduct,
		"count":      totals.Count,
	})
}

// --- GET: /api/reports/loans ---
// Every transaction still carrying debt, with the headline numbers the
// loans screen shows. Accepts the same customer/date filters as the
// transaction list.
func (h *Handler) GetLoansReport(c *gin.Context) {
	f := parseRangeFilter(c)
	loans, totalDebt, debtors := h.Store.LoansSummary(f)
	if loans == nil {
		loans = []models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"loans":         loans,
		"totalDebt":     totalDebt,
		"loanCount":     len(loans),
		"uniqueDebtors": debtors,
	})
}
