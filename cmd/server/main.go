package main

import (
	"log"
	"os"
	"time"

	"fuel-pos-agent/internal/credentials"
	"fuel-pos-agent/internal/database"
	"fuel-pos-agent/internal/handlers"
	"fuel-pos-agent/internal/middleware"
	"fuel-pos-agent/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// openPersister picks the durable backend. The default is the flat JSON
// document file next to the binary; STORE_DRIVER=sqlite switches to an
// embedded SQLite file with the same whole-document contract.
func openPersister() store.Persister {
	switch os.Getenv("STORE_DRIVER") {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "pos.db"
		}
		db, err := database.Connect(path)
		if err != nil {
			log.Fatal("❌ Failed to open database:", err)
		}
		return database.NewDocumentDB(db)
	default:
		path := os.Getenv("POS_DB_FILE")
		if path == "" {
			path = "db.json"
		}
		return store.NewJSONFile(path)
	}
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	s, err := store.Open(openPersister(), credentials.NewBcrypt())
	if err != nil {
		log.Fatal("❌ Failed to load data:", err)
	}
	h := handlers.New(s)

	r := gin.Default()

	// --- CORS (The Bridge Configuration for the desktop frontend) ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // Allow React
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// ----------------------------------------------------------------

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)

	// 🚨 UNLOCKED ROUTES: first-run setup must work before any admin exists.
	r.GET("/api/system/status", h.GetSystemStatus)
	r.POST("/api/system/register", h.Register)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/data", h.GetAllData)

		api.GET("/transactions", h.ListTransactions)
		api.POST("/transactions", h.AddTransaction)
		api.PUT("/transactions/:id", h.UpdateTransaction)
		api.POST("/transactions/:id/payments", h.ApplyPayment)
		api.POST("/sales", h.CreateSale)

		api.GET("/customers", h.ListCustomers)
		api.POST("/customers", h.AddCustomer)
		api.DELETE("/customers/:id", h.DeleteCustomer)

		api.GET("/prices", h.GetPrices)
		api.PUT("/prices", h.UpdatePrices)
		api.POST("/prices", h.AddPrice)
		api.PUT("/prices/entry", h.UpdatePrice)
		api.DELETE("/prices/entry", h.DeletePrice)
		api.GET("/prices/products", h.GetProducts)
		api.GET("/prices/brands", h.GetBrands)
		api.GET("/prices/units", h.GetUnits)

		api.GET("/business", h.GetBusinessInfo)
		api.PUT("/business", h.UpdateBusinessInfo)

		api.GET("/reports/daily", h.GetDailyReport)
		api.GET("/reports/loans", h.GetLoansReport)

		// AI is restricted to the logged-in admin
		api.POST("/ask", h.AskAI)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	log.Println("🚀 Server starting on " + baseURL)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
