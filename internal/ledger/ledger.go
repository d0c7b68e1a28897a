package ledger

import (
	"errors"
	"time"

	"fuel-pos-agent/internal/models"
	"fuel-pos-agent/internal/textutil"
)

var (
	ErrNotFound    = errors.New("transaction not found")
	ErrDuplicateID = errors.New("transaction id already exists")
)

// Ledger is the ordered collection of all sale transactions,
// most-recent-first. It stores and indexes; all business rules (status,
// totals) are computed by the engine before anything gets in here.
type Ledger struct {
	txs []models.Transaction
}

// New builds a ledger over an existing slice, keeping its order.
func New(txs []models.Transaction) *Ledger {
	l := &Ledger{txs: make([]models.Transaction, len(txs))}
	copy(l.txs, txs)
	return l
}

// All returns a copy of the collection in storage order.
func (l *Ledger) All() []models.Transaction {
	out := make([]models.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Len reports how many transactions are stored.
func (l *Ledger) Len() int { return len(l.txs) }

// Get finds a transaction by id.
func (l *Ledger) Get(id string) (models.Transaction, error) {
	for _, t := range l.txs {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

// Append inserts a new transaction at the head of the collection.
func (l *Ledger) Append(t models.Transaction) error {
	for _, existing := range l.txs {
		if existing.ID == t.ID {
			return ErrDuplicateID
		}
	}
	l.txs = append([]models.Transaction{t}, l.txs...)
	return nil
}

// Replace swaps the stored transaction with the given id for the new
// value. Calling it twice with the same value is a no-op the second
// time.
func (l *Ledger) Replace(id string, t models.Transaction) error {
	for i := range l.txs {
		if l.txs[i].ID == id {
			t.ID = id // ids are immutable
			l.txs[i] = t
			return nil
		}
	}
	return ErrNotFound
}

// RemoveByCustomerID drops every transaction owned by the customer and
// returns how many went. This is the transaction half of the customer
// cascade delete; matching is by stable id, never display name.
func (l *Ledger) RemoveByCustomerID(customerID string) int {
	kept := l.txs[:0]
	removed := 0
	for _, t := range l.txs {
		if t.CustomerID == customerID {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	l.txs = kept
	return removed
}

// ByDay returns the transactions recorded on the given calendar day.
func (l *Ledger) ByDay(day time.Time) []models.Transaction {
	var out []models.Transaction
	for _, t := range l.txs {
		d, err := ParseDay(t.Date)
		if err != nil {
			continue
		}
		if SameDay(d, day) {
			out = append(out, t)
		}
	}
	return out
}

// ByCustomerID returns the transactions owned by a customer id.
func (l *Ledger) ByCustomerID(customerID string) []models.Transaction {
	var out []models.Transaction
	for _, t := range l.txs {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out
}

// ByCustomerName filters by the denormalized display-name snapshot.
//
// Deprecated: names collide and get renamed; this only exists so old
// screens that filter by name keep working. Use ByCustomerID.
func (l *Ledger) ByCustomerName(name string) []models.Transaction {
	key := textutil.FoldKey(name)
	var out []models.Transaction
	for _, t := range l.txs {
		if textutil.FoldKey(t.Customer) == key {
			out = append(out, t)
		}
	}
	return out
}

// Filter is the loan/sales list filter from the sidebar: optional
// status bucket, customer, and inclusive date range.
type Filter struct {
	Status     string // "", "loans" or "paid"
	CustomerID string
	Customer   string // deprecated name-based path, kept for old screens
	From       *time.Time
	To         *time.Time
}

func (f Filter) matches(t models.Transaction) bool {
	switch f.Status {
	case "loans":
		// recompute through the normalizer: historical records carry
		// free-text statuses like "Credit" or "not paid"
		if !models.ParseStatus(string(t.Status)).IsLoan() {
			return false
		}
	case "paid":
		if models.ParseStatus(string(t.Status)) != models.StatusPaid {
			return false
		}
	}
	if f.CustomerID != "" && t.CustomerID != f.CustomerID {
		return false
	}
	if f.Customer != "" && textutil.FoldKey(t.Customer) != textutil.FoldKey(f.Customer) {
		return false
	}
	if f.From != nil || f.To != nil {
		d, err := ParseDay(t.Date)
		if err != nil {
			return false
		}
		if f.From != nil && d.Before(*f.From) {
			return false
		}
		if f.To != nil && d.After(*f.To) {
			return false
		}
	}
	return true
}

// Select returns the transactions matching the filter, in storage order.
func (l *Ledger) Select(f Filter) []models.Transaction {
	var out []models.Transaction
	for _, t := range l.txs {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Loans returns every transaction that still carries debt, optionally
// narrowed by the filter's customer/date fields.
func (l *Ledger) Loans(f Filter) []models.Transaction {
	f.Status = "loans"
	return l.Select(f)
}

// ProductQuantity is the per-fuel volume sold on a day.
type ProductQuantity struct {
	Fuel string  `json:"fuel"`
	Unit string  `json:"unit"`
	Qty  float64 `json:"qty"`
}

// DailyTotals is the dashboard summary for one calendar day.
type DailyTotals struct {
	TotalSales int                        `json:"totalSales"`
	TotalPaid  int                        `json:"totalPaid"`
	TotalDebt  int                        `json:"totalDebt"`
	PerProduct map[string]ProductQuantity `json:"perProduct"`
	Count      int                        `json:"count"`
}

// DailyTotalsFor aggregates one day of trading. An empty day yields
// zeros and an empty product map.
func (l *Ledger) DailyTotalsFor(day time.Time) DailyTotals {
	totals := DailyTotals{PerProduct: map[string]ProductQuantity{}}
	for _, t := range l.ByDay(day) {
		totals.Count++
		totals.TotalSales += t.Total
		totals.TotalPaid += t.Paid

		key := t.Fuel + "_" + t.Unit
		pq := totals.PerProduct[key]
		pq.Fuel = t.Fuel
		pq.Unit = t.Unit
		pq.Qty += t.Qty
		totals.PerProduct[key] = pq
	}
	totals.TotalDebt = totals.TotalSales - totals.TotalPaid
	return totals
}

// DebtTotal sums the remaining debt across the matching loans.
func (l *Ledger) DebtTotal(f Filter) int {
	debt := 0
	for _, t := range l.Loans(f) {
		debt += t.Total - t.Paid
	}
	return debt
}

// UniqueDebtorCount counts distinct customers among the matching loans.
// Identity is the customer id when present; records predating ids fall
// back to the normalized display name.
func (l *Ledger) UniqueDebtorCount(f Filter) int {
	seen := map[string]struct{}{}
	for _, t := range l.Loans(f) {
		key := t.CustomerID
		if key == "" {
			key = "name:" + textutil.FoldKey(t.Customer)
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}
