package billing

import "math"

const (
	StatusPending       = "Pending"
	StatusPartiallyPaid = "Partially Paid"
	StatusFullyPaid     = "Fully Paid"
)

// Derived holds the fields computed from a payment's amounts.
type Derived struct {
	Balance float64 `json:"balance"`
	Status  string  `json:"status"`
}

// Derive computes balance and status from sanitized, non-negative amounts.
// The branches are evaluated in order, so 0/0 is Pending and so is any
// positive payment against a zero total.
func Derive(total, paid float64) Derived {
	balance := math.Max(total-paid, 0)

	var status string
	switch {
	case paid <= 0:
		status = StatusPending
	case paid < total:
		status = StatusPartiallyPaid
	case paid >= total && total > 0:
		status = StatusFullyPaid
	default:
		status = StatusPending
	}

	return Derived{Balance: round2(balance), Status: status}
}

// MaxAmount is the largest value a decimal(12,2) column holds.
const MaxAmount = 9999999999.99

// Sanitize coerces negative and non-finite amounts to zero and caps the
// rest at MaxAmount.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, MaxAmount)
}

// Normalize sanitizes an amount and rounds it to cents.
func Normalize(v float64) float64 {
	return round2(Sanitize(v))
}

// DeriveRaw normalizes both amounts and derives from them.
func DeriveRaw(total, paid float64) (float64, float64, Derived) {
	total, paid = Normalize(total), Normalize(paid)
	return total, paid, Derive(total, paid)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
