package models

import "strings"

// Status - The payment state of a transaction.
// Internally this is a closed enum. Old documents contain free-text
// statuses ("paid", "Credit", "not paid", ""), so everything coming
// from storage must go through ParseStatus first.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPartial Status = "Partial"
	StatusNotPaid Status = "Not Paid"
)

// ParseStatus converts a raw stored status string into the enum.
// Anything unrecognized counts as Not Paid.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid":
		return StatusPaid
	case "partial":
		return StatusPartial
	default:
		// "not paid", "credit", "" and typos all mean debt
		return StatusNotPaid
	}
}

// IsLoan reports whether the status still carries customer debt.
func (s Status) IsLoan() bool {
	return s == StatusPartial || s == StatusNotPaid
}

// Transaction - One fuel sale. Field names in JSON match the documents
// already on disk (qty/price/remain), so old files load unchanged.
type Transaction struct {
	ID         string  `gorm:"primaryKey;size:64" json:"id"`
	CustomerID string  `gorm:"index;size:64" json:"customerId"`
	Customer   string  `json:"customer"` // display-name snapshot at sale time
	Fuel       string  `json:"fuel"`
	Brand      string  `json:"brand"`
	Unit       string  `json:"unit"`
	Qty        float64 `json:"qty"`
	UnitPrice  float64 `json:"price"`
	Total      int     `json:"total"`
	Paid       int     `json:"paid"`
	Remain     int     `json:"remain"`
	Status     Status  `gorm:"size:20" json:"status"`
	Date       string  `json:"date"` // dd/mm/yyyy
	Time       string  `json:"time,omitempty"`
	Note       string  `json:"note,omitempty"`
	UnitCost   float64 `json:"unitCost,omitempty"`
	Profit     float64 `json:"profit,omitempty"`
}

// Customer - Someone we sell to (and who may owe us money)
type Customer struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Name  string `gorm:"size:120" json:"name"`
	Phone string `json:"phone,omitempty"`
}

// PriceEntry - One row of the price list. The composite key
// (product|brand|unit, normalized) is unique across the catalog.
type PriceEntry struct {
	Key         string  `gorm:"primaryKey;size:255" json:"-"`
	Product     string  `json:"product"`
	Brand       string  `json:"brand"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPriceIQD"`
	UnitCostIQD float64 `json:"unitCostIQD,omitempty"` // buy price, for profit estimates
}

// BusinessInfo - Singleton profile shown on receipts and the sidebar
type BusinessInfo struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// AdminCredential - The single admin login pair. New registrations store
// a bcrypt hash in Password; documents from old installs still hold the
// plain text, which the credentials package accepts for compatibility.
type AdminCredential struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Username string `gorm:"size:64" json:"username"`
	Password string `json:"password"`
}

// DefaultBusinessName matches the seed value of a fresh document.
const DefaultBusinessName = "My Business"

// Document - The whole database. Persistence always reads and writes
// this as one unit.
type Document struct {
	Transactions []Transaction    `json:"transactions"`
	Customers    []Customer       `json:"customers"`
	Prices       []PriceEntry     `json:"prices"`
	BusinessInfo BusinessInfo     `json:"businessInfo"`
	Admin        *AdminCredential `json:"admin"`
}

// DefaultDocument is what a first run starts from.
func DefaultDocument() Document {
	return Document{
		Transactions: []Transaction{},
		Customers:    []Customer{},
		Prices:       []PriceEntry{},
		BusinessInfo: BusinessInfo{Name: DefaultBusinessName},
		Admin:        nil,
	}
}

// Normalize applies the load-boundary rules: missing collections become
// empty, legacy status strings collapse into the enum, and remain is
// recomputed so paid + remain == total holds even for hand-edited files.
func (d *Document) Normalize() {
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.Customers == nil {
		d.Customers = []Customer{}
	}
	if d.Prices == nil {
		d.Prices = []PriceEntry{}
	}
	if d.BusinessInfo.Name == "" {
		d.BusinessInfo.Name = DefaultBusinessName
	}
	for i := range d.Transactions {
		t := &d.Transactions[i]
		t.Status = ParseStatus(string(t.Status))
		if t.Paid > t.Total {
			t.Paid = t.Total
		}
		t.Remain = t.Total - t.Paid
	}
}
