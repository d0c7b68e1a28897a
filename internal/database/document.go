package database

import (
	"errors"

	"fuel-pos-agent/internal/models"

	"gorm.io/gorm"
)

// DocumentDB persists the whole document in SQLite while keeping the
// flat-file contract: Load reassembles the complete document, Save
// replaces every table inside one transaction. Each logical operation
// still behaves as an atomic whole-document write, the representation
// is just indexed instead of a JSON blob.
type DocumentDB struct {
	db *gorm.DB
}

func NewDocumentDB(db *gorm.DB) *DocumentDB {
	return &DocumentDB{db: db}
}

func (d *DocumentDB) Load() (models.Document, error) {
	doc := models.DefaultDocument()

	if err := d.db.Find(&doc.Transactions).Error; err != nil {
		return models.Document{}, err
	}
	if err := d.db.Find(&doc.Customers).Error; err != nil {
		return models.Document{}, err
	}
	if err := d.db.Find(&doc.Prices).Error; err != nil {
		return models.Document{}, err
	}

	var info models.BusinessInfo
	err := d.db.First(&info).Error
	if err == nil {
		doc.BusinessInfo = info
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Document{}, err
	}

	var admin models.AdminCredential
	err = d.db.First(&admin).Error
	if err == nil {
		doc.Admin = &admin
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Document{}, err
	}

	doc.Normalize()
	return doc, nil
}

func (d *DocumentDB) Save(doc models.Document) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		tables := []any{
			&models.Transaction{},
			&models.Customer{},
			&models.PriceEntry{},
			&models.BusinessInfo{},
			&models.AdminCredential{},
		}
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return err
			}
		}

		if len(doc.Transactions) > 0 {
			if err := tx.Create(&doc.Transactions).Error; err != nil {
				return err
			}
		}
		if len(doc.Customers) > 0 {
			if err := tx.Create(&doc.Customers).Error; err != nil {
				return err
			}
		}
		if len(doc.Prices) > 0 {
			if err := tx.Create(&doc.Prices).Error; err != nil {
				return err
			}
		}

		info := doc.BusinessInfo
		info.ID = 1
		if err := tx.Create(&info).Error; err != nil {
			return err
		}
		if doc.Admin != nil {
			admin := *doc.Admin
			admin.ID = 1
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
