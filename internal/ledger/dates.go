package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual day format stored on transactions
// (day first, en-GB order).
const DateLayout = "02/01/2006"

// ParseDay parses a stored transaction date. Old records are sloppy
// about zero padding ("3/7/2024"), so each part is parsed numerically
// instead of through a strict layout.
func ParseDay(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("bad date %q: want dd/mm/yyyy", s)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("bad date %q: want dd/mm/yyyy", s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("bad date %q: out of range", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// SameDay compares two dates by calendar identity, not string equality,
// so "03/07/2024" and "3/7/2024" match.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
