package textutil

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// The two recognized units. Anything that mentions a barrel (in either
// script the staff types in) is a barrel; everything else sells by the
// liter. This is a closed classifier, not open text.
const (
	UnitBarrel = "بەرمیل"
	UnitLiter  = "لیتر"
)

var fold = cases.Fold()

// NormalizeText trims the string and collapses internal whitespace runs
// to a single space. Display values keep their casing; use FoldKey when
// comparing.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldKey produces the case-insensitive comparison form of a string.
func FoldKey(s string) string {
	return fold.String(NormalizeText(s))
}

// NormalizeUnit maps any input containing a barrel token to the
// canonical barrel unit; everything else is a liter.
func NormalizeUnit(s string) string {
	k := FoldKey(s)
	if strings.Contains(k, UnitBarrel) || strings.Contains(k, "barrel") {
		return UnitBarrel
	}
	return UnitLiter
}

// DigitsToLatin rewrites Arabic-Indic and Eastern Arabic-Indic digit
// glyphs to Latin digits and strips everything that is not a digit or a
// decimal point. Used to parse numbers typed with a Kurdish/Arabic
// keyboard layout.
func DigitsToLatin(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩': // U+0660..U+0669
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹': // U+06F0..U+06F9
			b.WriteRune('0' + (r - '۰'))
		case (r >= '0' && r <= '9') || r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseNumber parses a user-typed amount that may use alternate digit
// scripts. Empty or unparsable input is 0, matching how the forms
// treat blank fields.
func ParseNumber(s string) float64 {
	n, err := strconv.ParseFloat(DigitsToLatin(s), 64)
	if err != nil {
		return 0
	}
	return n
}

// CompositeKey builds the unique price-list key from a (product, brand,
// unit) triple. Order matters: product, then brand, then unit.
func CompositeKey(product, brand, unit string) string {
	return FoldKey(product) + "|" + FoldKey(brand) + "|" + NormalizeUnit(unit)
}
