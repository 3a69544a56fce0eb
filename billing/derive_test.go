package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFixedCases(t *testing.T) {
	tests := []struct {
		name        string
		total, paid float64
		want        Derived
	}{
		{"zero zero", 0, 0, Derived{Balance: 0, Status: StatusPending}},
		{"exact payoff", 1000, 1000, Derived{Balance: 0, Status: StatusFullyPaid}},
		{"overpayment clamps balance", 1000, 1500, Derived{Balance: 0, Status: StatusFullyPaid}},
		{"nothing paid", 1000, 0, Derived{Balance: 1000, Status: StatusPending}},
		{"partial", 1000, 250, Derived{Balance: 750, Status: StatusPartiallyPaid}},
		{"paid against zero total", 0, 50, Derived{Balance: 0, Status: StatusPending}},
		{"cents", 100.10, 0.05, Derived{Balance: 100.05, Status: StatusPartiallyPaid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.total, tt.paid))
		})
	}
}

func TestDerivePartitionIsTotal(t *testing.T) {
	values := []float64{0, 0.01, 1, 99.99, 100, 100.01, 1000, 1e9}
	valid := map[string]bool{StatusPending: true, StatusPartiallyPaid: true, StatusFullyPaid: true}

	for _, total := range values {
		for _, paid := range values {
			d := Derive(total, paid)
			assert.True(t, valid[d.Status], "total=%v paid=%v status=%q", total, paid, d.Status)
			assert.InDelta(t, math.Max(total-paid, 0), d.Balance, 0.005)
			assert.GreaterOrEqual(t, d.Balance, 0.0)

			switch {
			case paid <= 0:
				assert.Equal(t, StatusPending, d.Status)
			case paid < total:
				assert.Equal(t, StatusPartiallyPaid, d.Status)
			case total > 0:
				assert.Equal(t, StatusFullyPaid, d.Status)
			default:
				assert.Equal(t, StatusPending, d.Status)
			}
		}
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, 0.0, Sanitize(-5))
	assert.Equal(t, 0.0, Sanitize(math.NaN()))
	assert.Equal(t, 0.0, Sanitize(math.Inf(1)))
	assert.Equal(t, 0.0, Sanitize(math.Inf(-1)))
	assert.Equal(t, 12.5, Sanitize(12.5))
}

func TestNormalizeCapsHugeAmounts(t *testing.T) {
	assert.Equal(t, MaxAmount, Sanitize(1e300))
	assert.Equal(t, MaxAmount, Normalize(math.MaxFloat64))

	total, paid, d := DeriveRaw(math.MaxFloat64, math.MaxFloat64/2)
	assert.Equal(t, MaxAmount, total)
	assert.Equal(t, MaxAmount, paid)
	assert.False(t, math.IsInf(d.Balance, 0))
	assert.Equal(t, Derived{Balance: 0, Status: StatusFullyPaid}, d)
}

func TestDeriveRawSanitizesFirst(t *testing.T) {
	total, paid, d := DeriveRaw(-100, 40)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 40.0, paid)
	assert.Equal(t, Derived{Balance: 0, Status: StatusPending}, d)
}

func TestNormalizeRoundsToCents(t *testing.T) {
	assert.Equal(t, 0.3, Normalize(0.1+0.2))
	assert.Equal(t, 1234.57, Normalize(1234.5678))
	assert.Equal(t, 0.0, Normalize(-1))
}
