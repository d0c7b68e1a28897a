package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fuel-pos-agent/internal/catalog"
	"fuel-pos-agent/internal/credentials"
	"fuel-pos-agent/internal/ledger"
	"fuel-pos-agent/internal/models"
	"fuel-pos-agent/internal/textutil"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName     = errors.New("customer name already registered")
	ErrEmptyName         = errors.New("name is required")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrPersistence       = errors.New("durable write failed")
	ErrAlreadyRegistered = errors.New("admin is already registered")
)

// Store owns the authoritative working copy of the document for the
// whole process. It is constructed once at startup, handed to every
// handler, and is the only writer back to the persister.
//
// One mutex guards every operation: each user action runs to completion,
// durable write included, before the next one touches the document.
type Store struct {
	mu        sync.Mutex
	persist   Persister
	creds     credentials.Store
	ledger    *ledger.Ledger
	catalog   *catalog.Catalog
	customers []models.Customer
	business  models.BusinessInfo
	admin     *models.AdminCredential
}

// Open loads the document from the persister and builds the working
// copy.
func Open(p Persister, creds credentials.Store) (*Store, error) {
	doc, err := p.Load()
	if err != nil {
		return nil, err
	}
	doc.Normalize()
	return &Store{
		persist:   p,
		creds:     creds,
		ledger:    ledger.New(doc.Transactions),
		catalog:   catalog.New(doc.Prices),
		customers: doc.Customers,
		business:  doc.BusinessInfo,
		admin:     doc.Admin,
	}, nil
}

func (s *Store) documentLocked() models.Document {
	doc := models.Document{
		Transactions: s.ledger.All(),
		Customers:    make([]models.Customer, len(s.customers)),
		Prices:       s.catalog.Entries(),
		BusinessInfo: s.business,
	}
	copy(doc.Customers, s.customers)
	if s.admin != nil {
		a := *s.admin
		doc.Admin = &a
	}
	return doc
}

func (s *Store) restoreLocked(doc models.Document) {
	s.ledger = ledger.New(doc.Transactions)
	s.catalog = catalog.New(doc.Prices)
	s.customers = doc.Customers
	s.business = doc.BusinessInfo
	s.admin = doc.Admin
}

// mutate runs fn against the working copy and persists the result. If
// the durable write fails, the working copy is rolled back to its
// pre-mutation snapshot, so memory and disk never diverge.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.documentLocked()
	if err := fn(); err != nil {
		s.restoreLocked(snapshot)
		return err
	}
	if err := s.persist.Save(s.documentLocked()); err != nil {
		s.restoreLocked(snapshot)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Document returns a snapshot of the full in-memory document.
func (s *Store) Document() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentLocked()
}

// ---- Transactions ----

// AddTransaction stores an already-shaped transaction. The status is
// always recomputed here: the frontend's opinion of paid/partial is
// never trusted over the engine.
func (s *Store) AddTransaction(t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date == "" {
		t.Date = time.Now().Format(ledger.DateLayout)
	}
	t = ledger.Recompute(t)
	err := s.mutate(func() error {
		return s.ledger.Append(t)
	})
	return t, err
}

// CreateSale runs a sale entry through the full pipeline: resolve the
// customer by id, autofill price and cost from the catalog, build the
// transaction, append it.
func (s *Store) CreateSale(in ledger.SaleInput) (models.Transaction, error) {
	var built models.Transaction
	err := s.mutate(func() error {
		cust, ok := s.findCustomerLocked(in.CustomerID)
		if !ok {
			return ErrCustomerNotFound
		}
		in.Customer = cust.Name
		in.Unit = textutil.NormalizeUnit(in.Unit)

		if entry, ok := s.catalog.Lookup(in.Fuel, in.Brand, in.Unit); ok {
			if in.UnitPrice == 0 {
				in.UnitPrice = entry.UnitPrice
			}
			if in.UnitCost == 0 {
				in.UnitCost = entry.UnitCostIQD
			}
		}

		t, err := ledger.BuildTransaction(in)
		if err != nil {
			return err
		}
		built = t
		return s.ledger.Append(t)
	})
	return built, err
}

// UpdateTransaction replaces a transaction wholesale. Id and creation
// date survive the replace; status is recomputed from the new amounts.
func (s *Store) UpdateTransaction(t models.Transaction) (models.Transaction, error) {
	err := s.mutate(func() error {
		existing, err := s.ledger.Get(t.ID)
		if err != nil {
			return err
		}
		if t.Date == "" {
			t.Date = existing.Date
		}
		t = ledger.Recompute(t)
		return s.ledger.Replace(t.ID, t)
	})
	return t, err
}

// ApplyPayment credits a payment to an open transaction. With settle
// set, the operator chose "mark as fully paid" and the amount is
// ignored. The returned bool says the amount was clamped down to the
// remaining debt.
func (s *Store) ApplyPayment(id string, amount int, settle bool) (models.Transaction, bool, error) {
	var updated models.Transaction
	var clamped bool
	err := s.mutate(func() error {
		t, err := s.ledger.Get(id)
		if err != nil {
			return err
		}
		if settle {
			updated = ledger.MarkSettled(t)
		} else {
			updated, clamped, err = ledger.ApplyPayment(t, amount)
			if err != nil {
				return err
			}
		}
		return s.ledger.Replace(id, updated)
	})
	return updated, clamped, err
}

// Transactions returns the matching transactions, newest first.
func (s *Store) Transactions(f ledger.Filter) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Select(f)
}

// DailyTotals aggregates one calendar day for the dashboard.
func (s *Store) DailyTotals(day time.Time) ledger.DailyTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.DailyTotalsFor(day)
}

// LoansSummary returns the open loans plus their headline numbers.
func (s *Store) LoansSummary(f ledger.Filter) ([]models.Transaction, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loans := s.ledger.Loans(f)
	return loans, s.ledger.DebtTotal(f), s.ledger.UniqueDebtorCount(f)
}

// ---- Customers ----

func (s *Store) findCustomerLocked(id string) (models.Customer, bool) {
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// Customers returns the registry, newest first.
func (s *Store) Customers() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// AddCustomer registers a customer. Names are unique ignoring case and
// surrounding whitespace.
func (s *Store) AddCustomer(c models.Customer) (models.Customer, error) {
	c.Name = textutil.NormalizeText(c.Name)
	c.Phone = textutil.NormalizeText(c.Phone)
	if c.Name == "" {
		return c, ErrEmptyName
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := s.mutate(func() error {
		key := textutil.FoldKey(c.Name)
		for _, existing := range s.customers {
			if textutil.FoldKey(existing.Name) == key {
				return ErrDuplicateName
			}
		}
		s.customers = append([]models.Customer{c}, s.customers...)
		return nil
	})
	return c, err
}

// DeleteCustomer removes the customer and every transaction they own,
// as one document mutation. Either both halves land on disk or the
// in-memory state stays exactly as it was - no orphaned records.
func (s *Store) DeleteCustomer(id string) error {
	return s.mutate(func() error {
		found := false
		kept := s.customers[:0]
		for _, c := range s.customers {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			return ErrCustomerNotFound
		}
		s.customers = kept
		s.ledger.RemoveByCustomerID(id)
		return nil
	})
}

// ---- Prices ----

func (s *Store) Prices() []models.PriceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Entries()
}

func (s *Store) AddPrice(e models.PriceEntry) error {
	return s.mutate(func() error { return s.catalog.Add(e) })
}

func (s *Store) UpdatePrice(e models.PriceEntry) error {
	return s.mutate(func() error { return s.catalog.Update(e) })
}

func (s *Store) DeletePrice(product, brand, unit string) error {
	return s.mutate(func() error { return s.catalog.Delete(product, brand, unit) })
}

// ReplacePrices swaps the whole price list, the way the prices screen
// saves it.
func (s *Store) ReplacePrices(entries []models.PriceEntry) error {
	return s.mutate(func() error { return s.catalog.ReplaceAll(entries) })
}

func (s *Store) Products() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Products()
}

func (s *Store) BrandsForProduct(product string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.BrandsForProduct(product)
}

func (s *Store) UnitsForProductBrand(product, brand string) []models.PriceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.UnitsForProductBrand(product, brand)
}

// ---- Business profile ----

func (s *Store) BusinessInfo() models.BusinessInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.business
}

// UpdateBusinessInfo replaces the profile wholesale.
func (s *Store) UpdateBusinessInfo(info models.BusinessInfo) error {
	if textutil.NormalizeText(info.Name) == "" {
		return ErrEmptyName
	}
	return s.mutate(func() error {
		s.business = info
		return nil
	})
}

// ---- Admin ----

// SetupComplete reports whether an admin credential exists yet.
func (s *Store) SetupComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin != nil
}

// RegisterAdmin runs the first-run setup: stores the admin credential
// and names the business. Refused once an admin exists.
func (s *Store) RegisterAdmin(username, password, businessName string) error {
	return s.mutate(func() error {
		if s.admin != nil {
			return ErrAlreadyRegistered
		}
		cred, err := s.creds.Seal(username, password)
		if err != nil {
			return err
		}
		s.admin = &cred
		s.business.Name = textutil.NormalizeText(businessName)
		if s.business.Name == "" {
			s.business.Name = models.DefaultBusinessName
		}
		return nil
	})
}

// Login checks the admin credential pair.
func (s *Store) Login(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Verify(s.admin, username, password)
}
