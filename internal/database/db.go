package database

import (
	"log"
	"time"

	"fuel-pos-agent/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens (or creates) the embedded SQLite database file and
// syncs the schema. The desktop app runs next to its data, so a single
// file is the whole database.
func Connect(path string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	// Wait for the file/lock to be ready (another instance may still be
	// shutting down)
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to open database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, err
	}

	log.Println("✅ Successfully opened SQLite database:", path)

	err = db.AutoMigrate(
		&models.Transaction{},
		&models.Customer{},
		&models.PriceEntry{},
		&models.BusinessInfo{},
		&models.AdminCredential{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("✅ Database Schema Synced!")
	return db, nil
}
