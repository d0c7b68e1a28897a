package catalog

import (
	"errors"

	"fuel-pos-agent/internal/models"
	"fuel-pos-agent/internal/textutil"
)

var (
	ErrInvalidPrice   = errors.New("price cannot be negative")
	ErrDuplicateEntry = errors.New("price entry already exists for this product/brand/unit")
	ErrNotFound       = errors.New("price entry not found")
)

// Catalog is the price list, keyed by the normalized
// (product, brand, unit) triple. Insertion order is preserved so the
// dropdowns render the same way every time.
type Catalog struct {
	entries []models.PriceEntry
}

// New builds a catalog from stored entries, normalizing each one.
// Later duplicates of the same composite key are dropped - old files
// written before the uniqueness check could contain them.
func New(entries []models.PriceEntry) *Catalog {
	c := &Catalog{}
	for _, e := range entries {
		if err := c.Add(e); err != nil {
			continue
		}
	}
	return c
}

func normalize(e models.PriceEntry) models.PriceEntry {
	e.Product = textutil.NormalizeText(e.Product)
	e.Brand = textutil.NormalizeText(e.Brand)
	e.Unit = textutil.NormalizeUnit(e.Unit)
	e.Key = textutil.CompositeKey(e.Product, e.Brand, e.Unit)
	return e
}

// Entries returns a copy of the price list in insertion order.
func (c *Catalog) Entries() []models.PriceEntry {
	out := make([]models.PriceEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Add inserts a new entry. The composite key must be free: adding
// " diesel " where "Diesel" exists fails, casing and spacing do not
// make a new product.
func (c *Catalog) Add(e models.PriceEntry) error {
	if e.UnitPrice < 0 || e.UnitCostIQD < 0 {
		return ErrInvalidPrice
	}
	e = normalize(e)
	for _, existing := range c.entries {
		if existing.Key == e.Key {
			return ErrDuplicateEntry
		}
	}
	c.entries = append(c.entries, e)
	return nil
}

// Update replaces the entry with the same composite key in place.
func (c *Catalog) Update(e models.PriceEntry) error {
	if e.UnitPrice < 0 || e.UnitCostIQD < 0 {
		return ErrInvalidPrice
	}
	e = normalize(e)
	for i := range c.entries {
		if c.entries[i].Key == e.Key {
			c.entries[i] = e
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the entry for the given triple.
func (c *Catalog) Delete(product, brand, unit string) error {
	key := textutil.CompositeKey(product, brand, unit)
	for i := range c.entries {
		if c.entries[i].Key == key {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ReplaceAll swaps the whole price list, the way the prices screen
// saves it. Every entry is validated; a bad one rejects the batch.
func (c *Catalog) ReplaceAll(entries []models.PriceEntry) error {
	next := &Catalog{}
	for _, e := range entries {
		if e.UnitPrice < 0 || e.UnitCostIQD < 0 {
			return ErrInvalidPrice
		}
		e = normalize(e)
		for _, existing := range next.entries {
			if existing.Key == e.Key {
				return ErrDuplicateEntry
			}
		}
		next.entries = append(next.entries, e)
	}
	c.entries = next.entries
	return nil
}

// Products lists the distinct product names, first-seen order.
func (c *Catalog) Products() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, e := range c.entries {
		k := textutil.FoldKey(e.Product)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e.Product)
	}
	return out
}

// FindByProduct returns every entry for one product.
func (c *Catalog) FindByProduct(product string) []models.PriceEntry {
	k := textutil.FoldKey(product)
	var out []models.PriceEntry
	for _, e := range c.entries {
		if textutil.FoldKey(e.Product) == k {
			out = append(out, e)
		}
	}
	return out
}

// BrandsForProduct lists the distinct brands sold under a product.
// Drives the second dropdown of the sale form.
func (c *Catalog) BrandsForProduct(product string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, e := range c.FindByProduct(product) {
		k := textutil.FoldKey(e.Brand)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e.Brand)
	}
	return out
}

// UnitsForProductBrand returns the entries for one product+brand, one
// per unit. The sale form uses these for the unit dropdown and the
// unit-price autofill.
func (c *Catalog) UnitsForProductBrand(product, brand string) []models.PriceEntry {
	pk, bk := textutil.FoldKey(product), textutil.FoldKey(brand)
	var out []models.PriceEntry
	for _, e := range c.entries {
		if textutil.FoldKey(e.Product) == pk && textutil.FoldKey(e.Brand) == bk {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds the exact entry for a triple.
func (c *Catalog) Lookup(product, brand, unit string) (models.PriceEntry, bool) {
	key := textutil.CompositeKey(product, brand, unit)
	for _, e := range c.entries {
		if e.Key == key {
			return e, true
		}
	}
	return models.PriceEntry{}, false
}
