package catalog

import (
	"testing"

	"fuel-pos-agent/internal/models"
	"fuel-pos-agent/internal/textutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(product, brand, unit string, price float64) models.PriceEntry {
	return models.PriceEntry{Product: product, Brand: brand, Unit: unit, UnitPrice: price}
}

func TestAddNormalizesAndDeduplicates(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Add(entry("Diesel", "Shell", "Liter", 1200)))

	// casing, spacing and unit script do not make a new product
	err := c.Add(entry(" diesel ", "SHELL", "لیتر", 1300))
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	// a different unit is a separate entry
	require.NoError(t, c.Add(entry("Diesel", "Shell", "barrel", 220000)))

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, textutil.UnitLiter, entries[0].Unit)
	assert.Equal(t, textutil.UnitBarrel, entries[1].Unit)
}

func TestAddRejectsNegativePrices(t *testing.T) {
	c := New(nil)
	assert.ErrorIs(t, c.Add(entry("Diesel", "Shell", "Liter", -1)), ErrInvalidPrice)
	assert.ErrorIs(t, c.Add(models.PriceEntry{Product: "Diesel", Brand: "Shell", Unit: "Liter", UnitPrice: 1000, UnitCostIQD: -5}), ErrInvalidPrice)
}

func TestNewDropsLaterDuplicates(t *testing.T) {
	c := New([]models.PriceEntry{
		entry("Diesel", "Shell", "Liter", 1200),
		entry("diesel", "shell", "لیتر", 9999), // stale duplicate from an old file
		entry("Petrol", "Total", "Liter", 1500),
	})
	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 1200.0, entries[0].UnitPrice)
}

func TestUpdate(t *testing.T) {
	c := New([]models.PriceEntry{entry("Diesel", "Shell", "Liter", 1200)})

	require.NoError(t, c.Update(entry(" DIESEL ", "shell", "لیتر", 1350)))
	got, ok := c.Lookup("Diesel", "Shell", "Liter")
	require.True(t, ok)
	assert.Equal(t, 1350.0, got.UnitPrice)

	assert.ErrorIs(t, c.Update(entry("Kerosene", "Shell", "Liter", 900)), ErrNotFound)
	assert.ErrorIs(t, c.Update(entry("Diesel", "Shell", "Liter", -10)), ErrInvalidPrice)
}

func TestDelete(t *testing.T) {
	c := New([]models.PriceEntry{
		entry("Diesel", "Shell", "Liter", 1200),
		entry("Diesel", "Shell", "barrel", 220000),
	})

	require.NoError(t, c.Delete("diesel", "SHELL", "بەرمیل"))
	assert.Len(t, c.Entries(), 1)
	assert.ErrorIs(t, c.Delete("diesel", "SHELL", "بەرمیل"), ErrNotFound)
}

func TestReplaceAll(t *testing.T) {
	c := New([]models.PriceEntry{entry("Diesel", "Shell", "Liter", 1200)})

	t.Run("swaps the whole list", func(t *testing.T) {
		require.NoError(t, c.ReplaceAll([]models.PriceEntry{
			entry("Petrol", "Total", "Liter", 1500),
			entry("Kerosene", "Local", "Liter", 900),
		}))
		assert.Len(t, c.Entries(), 2)
		_, ok := c.Lookup("Diesel", "Shell", "Liter")
		assert.False(t, ok)
	})

	t.Run("a bad entry rejects the batch", func(t *testing.T) {
		before := c.Entries()
		err := c.ReplaceAll([]models.PriceEntry{
			entry("Diesel", "Shell", "Liter", 1200),
			entry(" diesel", "shell ", "لیتر", 1300),
		})
		assert.ErrorIs(t, err, ErrDuplicateEntry)
		assert.Equal(t, before, c.Entries())

		err = c.ReplaceAll([]models.PriceEntry{entry("Diesel", "Shell", "Liter", -1)})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Equal(t, before, c.Entries())
	})
}

func TestProjections(t *testing.T) {
	c := New([]models.PriceEntry{
		entry("Diesel", "Shell", "Liter", 1200),
		entry("Diesel", "Shell", "barrel", 220000),
		entry("Diesel", "Total", "Liter", 1250),
		entry("Petrol", "Shell", "Liter", 1500),
	})

	assert.Equal(t, []string{"Diesel", "Petrol"}, c.Products())
	assert.Equal(t, []string{"Shell", "Total"}, c.BrandsForProduct(" DIESEL "))

	units := c.UnitsForProductBrand("diesel", "shell")
	require.Len(t, units, 2)
	assert.Equal(t, textutil.UnitLiter, units[0].Unit)
	assert.Equal(t, textutil.UnitBarrel, units[1].Unit)

	got, ok := c.Lookup("diesel", "total", "liter")
	require.True(t, ok)
	assert.Equal(t, 1250.0, got.UnitPrice)

	_, ok = c.Lookup("diesel", "bp", "liter")
	assert.False(t, ok)
}
