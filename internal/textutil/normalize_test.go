package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Ali Hassan", NormalizeText("  Ali   Hassan "))
	assert.Equal(t, "", NormalizeText("   "))
	assert.Equal(t, "Diesel", NormalizeText("Diesel"))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("DIESEL"), FoldKey(" diesel "))
	assert.NotEqual(t, FoldKey("diesel"), FoldKey("petrol"))
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"بەرمیل", UnitBarrel},
		{" barrel ", UnitBarrel},
		{"Barrel (200L)", UnitBarrel},
		{"لیتر", UnitLiter},
		{"liter", UnitLiter},
		{"", UnitLiter},
		{"gallon", UnitLiter},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeUnit(tc.in), "input %q", tc.in)
	}
}

func TestDigitsToLatin(t *testing.T) {
	assert.Equal(t, "1500", DigitsToLatin("١٥٠٠"))
	assert.Equal(t, "1500", DigitsToLatin("۱۵۰۰"))
	assert.Equal(t, "12.5", DigitsToLatin("١٢.٥"))
	assert.Equal(t, "1500", DigitsToLatin("1,500 IQD"))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1500.0, ParseNumber("١٥٠٠"))
	assert.Equal(t, 12.5, ParseNumber("12.5"))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("abc"))
}

func TestCompositeKey(t *testing.T) {
	// same triple in different casing, spacing and unit script
	a := CompositeKey("Diesel", "Shell", "barrel")
	b := CompositeKey(" diesel ", "SHELL", "بەرمیل")
	assert.Equal(t, a, b)

	assert.NotEqual(t,
		CompositeKey("Diesel", "Shell", "liter"),
		CompositeKey("Diesel", "Shell", "barrel"))
	assert.NotEqual(t,
		CompositeKey("Diesel", "Shell", "liter"),
		CompositeKey("Diesel", "Total", "liter"))
}
