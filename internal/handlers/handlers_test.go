package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fuel-pos-agent/internal/credentials"
	"fuel-pos-agent/internal/models"
	"fuel-pos-agent/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.Open(store.NewMemory(), credentials.NewBcrypt())
	require.NoError(t, err)
	h := New(s)

	r := gin.New()
	r.POST("/login", h.Login)
	r.GET("/api/system/status", h.GetSystemStatus)
	r.POST("/api/system/register", h.Register)
	r.GET("/api/data", h.GetAllData)
	r.GET("/api/transactions", h.ListTransactions)
	r.POST("/api/transactions", h.AddTransaction)
	r.PUT("/api/transactions/:id", h.UpdateTransaction)
	r.POST("/api/transactions/:id/payments", h.ApplyPayment)
	r.POST("/api/sales", h.CreateSale)
	r.GET("/api/customers", h.ListCustomers)
	r.POST("/api/customers", h.AddCustomer)
	r.DELETE("/api/customers/:id", h.DeleteCustomer)
	r.GET("/api/reports/daily", h.GetDailyReport)
	r.GET("/api/reports/loans", h.GetLoansReport)
	return r, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterThenLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/system/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["setupComplete"])

	w = doJSON(t, r, http.MethodPost, "/api/system/register", gin.H{
		"username": "admin", "password": "secret123", "businessName": "Kawa Fuel Station",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// second registration is permanently refused
	w = doJSON(t, r, http.MethodPost, "/api/system/register", gin.H{
		"username": "admin2", "password": "x2345678",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"username": "admin", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Wrong password", decode(t, w)["error"])
}

func TestSaleFlowOverHTTP(t *testing.T) {
	r, s := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/customers", gin.H{"name": "Ali Hassan", "phone": "0750"})
	require.Equal(t, http.StatusCreated, w.Code)
	custID := decode(t, w)["customer"].(map[string]any)["id"].(string)

	require.NoError(t, s.AddPrice(models.PriceEntry{
		Product: "Diesel", Brand: "Shell", Unit: "لیتر", UnitPrice: 1000,
	}))

	w = doJSON(t, r, http.MethodPost, "/api/sales", gin.H{
		"customerId": custID,
		"fuel":       "Diesel",
		"brand":      "Shell",
		"unit":       "liter",
		"qty":        10,
		"mode":       "partial",
		"paidAmount": 4000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tx := decode(t, w)["transaction"].(map[string]any)
	assert.Equal(t, "Ali Hassan", tx["customer"])
	assert.Equal(t, float64(10000), tx["total"])
	assert.Equal(t, float64(6000), tx["remain"])
	assert.Equal(t, "Partial", tx["status"])
	txID := tx["id"].(string)

	// pay down the remaining debt with an overpay; it is clamped
	w = doJSON(t, r, http.MethodPost, "/api/transactions/"+txID+"/payments", gin.H{"amount": 99999})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Paid", body["transaction"].(map[string]any)["status"])
	assert.NotEmpty(t, body["warning"])

	// unknown customer on a sale
	w = doJSON(t, r, http.MethodPost, "/api/sales", gin.H{
		"customerId": "missing", "fuel": "Diesel", "brand": "Shell", "unit": "liter", "qty": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found", decode(t, w)["error"])
}

func TestPaymentOnMissingTransaction(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/transactions/nope/payments", gin.H{"amount": 100})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decode(t, w)["error"])
}

func TestCascadeDeleteOverHTTP(t *testing.T) {
	r, s := newTestRouter(t)

	cust, err := s.AddCustomer(models.Customer{Name: "Ali"})
	require.NoError(t, err)
	_, err = s.AddTransaction(models.Transaction{ID: "t1", CustomerID: cust.ID, Total: 10000})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, "/api/customers/"+cust.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/api/customers/"+cust.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsFilters(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.AddTransaction(models.Transaction{ID: "t1", CustomerID: "c1", Total: 10000, Paid: 10000, Date: "01/07/2024"})
	require.NoError(t, err)
	_, err = s.AddTransaction(models.Transaction{ID: "t2", CustomerID: "c1", Total: 5000, Paid: 0, Date: "05/07/2024"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/transactions?status=loans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txs []models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "t2", txs[0].ID)

	w = doJSON(t, r, http.MethodGet, "/api/transactions?from=2024-07-02&to=2024-07-31", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "t2", txs[0].ID)
}

func TestDailyReport(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.AddTransaction(models.Transaction{ID: "t1", Fuel: "Diesel", Unit: "لیتر", Qty: 10, Total: 10000, Paid: 4000, Date: "01/07/2024"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/reports/daily?date=01/07/2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(10000), body["totalSales"])
	assert.Equal(t, float64(4000), body["totalPaid"])
	assert.Equal(t, float64(6000), body["totalDebt"])
	assert.Equal(t, float64(1), body["count"])

	w = doJSON(t, r, http.MethodGet, "/api/reports/daily?date=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoansReport(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.AddTransaction(models.Transaction{ID: "t1", CustomerID: "c1", Total: 10000, Paid: 4000})
	require.NoError(t, err)
	_, err = s.AddTransaction(models.Transaction{ID: "t2", CustomerID: "c1", Total: 5000})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/reports/loans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(11000), body["totalDebt"])
	assert.Equal(t, float64(2), body["loanCount"])
	assert.Equal(t, float64(1), body["uniqueDebtors"])
}

func TestGetAllDataRedactsPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/system/register", gin.H{
		"username": "admin", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	admin := decode(t, w)["admin"].(map[string]any)
	assert.Equal(t, "admin", admin["username"])
	_, leaked := admin["password"]
	assert.False(t, leaked)
}
