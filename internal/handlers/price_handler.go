package handlers

import (
	"net/http"

	"fuel-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: The whole price list ---
func (h *Handler) GetPrices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Prices())
}

// --- PUT: Whole-array replace ---
// The prices screen saves the entire list, not a diff.
func (h *Handler) UpdatePrices(c *gin.Context) {
	var entries []models.PriceEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if err := h.Store.ReplacePrices(entries); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- POST: Add one price entry ---
func (h *Handler) AddPrice(c *gin.Context) {
	var e models.PriceEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if err := h.Store.AddPrice(e); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// --- PUT: Update one entry, located by its (product, brand, unit) ---
func (h *Handler) UpdatePrice(c *gin.Context) {
	var e models.PriceEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if err := h.Store.UpdatePrice(e); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- DELETE: Remove one entry by its triple ---
func (h *Handler) DeletePrice(c *gin.Context) {
	var e models.PriceEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if err := h.Store.DeletePrice(e.Product, e.Brand, e.Unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Cascading dropdown projections (product → brand → unit) ---

func (h *Handler) GetProducts(c *gin.Context) {
	products := h.Store.Products()
	if products == nil {
		products = []string{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetBrands(c *gin.Context) {
	brands := h.Store.BrandsForProduct(c.Query("product"))
	if brands == nil {
		brands = []string{}
	}
	c.JSON(http.StatusOK, brands)
}

func (h *Handler) GetUnits(c *gin.Context) {
	units := h.Store.UnitsForProductBrand(c.Query("product"), c.Query("brand"))
	if units == nil {
		units = []models.PriceEntry{}
	}
	c.JSON(http.StatusOK, units)
}
