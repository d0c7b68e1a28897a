package ledger

import (
	"errors"
	"math"
	"strings"
	"time"

	"fuel-pos-agent/internal/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount         = errors.New("payment amount must be greater than zero")
	ErrInvalidQuantity       = errors.New("quantity must be greater than zero")
	ErrInvalidPrice          = errors.New("unit price cannot be negative")
	ErrZeroPaymentForPartial = errors.New("partial mode requires a positive payment")
)

// ComputeStatus is the single source of truth for a transaction's
// status. Nobody sets status by hand except MarkSettled, which is an
// operator decision, not a derived fact.
func ComputeStatus(total, paid int) models.Status {
	if paid >= total {
		return models.StatusPaid
	}
	if paid > 0 {
		return models.StatusPartial
	}
	return models.StatusNotPaid
}

// Recompute re-derives status and remain from total/paid. Called on
// every create and edit so a stored transaction can never drift from
// the status rule.
func Recompute(t models.Transaction) models.Transaction {
	if t.Paid < 0 {
		t.Paid = 0
	}
	if t.Paid > t.Total {
		t.Paid = t.Total
	}
	t.Remain = t.Total - t.Paid
	t.Status = ComputeStatus(t.Total, t.Paid)
	return t
}

// ApplyPayment credits a payment against an open transaction. Paying
// more than what is owed is not an error: the amount is clamped to the
// remaining debt and clamped=true is returned so the caller can warn
// the operator.
func ApplyPayment(t models.Transaction, amount int) (models.Transaction, bool, error) {
	if amount <= 0 {
		return t, false, ErrInvalidAmount
	}
	remaining := t.Total - t.Paid
	clamped := false
	if amount > remaining {
		amount = remaining
		clamped = true
	}
	t.Paid += amount
	return Recompute(t), clamped, nil
}

// MarkSettled force-closes a transaction: paid becomes exactly total.
// This is the one intentional status override in the system.
func MarkSettled(t models.Transaction) models.Transaction {
	t.Paid = t.Total
	return Recompute(t)
}

// PaymentMode is how the operator chose to pay at sale time.
type PaymentMode string

const (
	ModePaid    PaymentMode = "paid"
	ModePartial PaymentMode = "partial"
	ModeNotPaid PaymentMode = "notpaid"
)

// ParseMode accepts the strings the sale form sends ("paid", "partial",
// "Not Paid", "credit"). Unknown input means credit, same as the form's
// fallback branch.
func ParseMode(raw string) PaymentMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid":
		return ModePaid
	case "partial":
		return ModePartial
	default:
		return ModeNotPaid
	}
}

// SaleInput is the raw sale entry collected by the frontend.
type SaleInput struct {
	CustomerID    string
	Customer      string
	Fuel          string
	Brand         string
	Unit          string
	Qty           float64
	UnitPrice     float64
	Mode          PaymentMode
	RequestedPaid int
	Date          string
	Time          string
	Note          string
	UnitCost      float64
}

// BuildTransaction turns a sale entry into a complete transaction.
// Total is round(qty * unitPrice), half away from zero. The id and date
// are assigned here once and never regenerated on update.
func BuildTransaction(in SaleInput) (models.Transaction, error) {
	if in.Qty <= 0 {
		return models.Transaction{}, ErrInvalidQuantity
	}
	if in.UnitPrice < 0 {
		return models.Transaction{}, ErrInvalidPrice
	}

	total := int(math.Round(in.Qty * in.UnitPrice))

	var paid int
	switch in.Mode {
	case ModePaid:
		paid = total
	case ModePartial:
		if in.RequestedPaid <= 0 {
			// zero down payment means the caller wanted NotPaid
			return models.Transaction{}, ErrZeroPaymentForPartial
		}
		paid = in.RequestedPaid
		if paid > total {
			paid = total
		}
	default:
		paid = 0
	}

	now := time.Now()
	t := models.Transaction{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Customer:   in.Customer,
		Fuel:       in.Fuel,
		Brand:      in.Brand,
		Unit:       in.Unit,
		Qty:        in.Qty,
		UnitPrice:  in.UnitPrice,
		Total:      total,
		Paid:       paid,
		Date:       in.Date,
		Time:       in.Time,
		Note:       in.Note,
		UnitCost:   in.UnitCost,
	}
	if t.Date == "" {
		t.Date = now.Format(DateLayout)
	}
	if t.Time == "" {
		t.Time = now.Format("15:04:05")
	}
	if in.UnitCost > 0 {
		t.Profit = float64(total) - in.UnitCost*in.Qty
	}
	return Recompute(t), nil
}
