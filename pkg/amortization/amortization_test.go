package amortization

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSchedule_ZeroRate(t *testing.T) {
	plan, err := Schedule(12000, 0, 12)
	if err != nil {
		t.Fatalf("Schedule err: %v", err)
	}
	if want := decimal.NewFromInt(1000); !plan.MonthlyPayment.Equal(want) {
		t.Fatalf("monthly = %s, want %s", plan.MonthlyPayment, want)
	}
	if !plan.TotalRepayment.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("total = %s, want 12000", plan.TotalRepayment)
	}
	for _, p := range plan.Periods {
		if !p.Interest.IsZero() {
			t.Fatalf("period %d interest = %s, want 0", p.Number, p.Interest)
		}
	}
}

func TestSchedule_PrincipalSumsAndBalanceCloses(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
	}{
		{"typical", 50000, 12.5, 24},
		{"short term", 10000, 8, 6},
		{"long term", 250000, 10.75, 60},
		{"awkward cents", 9999.99, 17.25, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Schedule(tt.principal, tt.rate, tt.term)
			if err != nil {
				t.Fatalf("Schedule err: %v", err)
			}
			if len(plan.Periods) != tt.term {
				t.Fatalf("periods = %d, want %d", len(plan.Periods), tt.term)
			}

			sum := decimal.Zero
			prev := decimal.NewFromFloat(tt.principal).Round(2)
			for _, p := range plan.Periods {
				sum = sum.Add(p.Principal)
				if p.Balance.GreaterThan(prev) {
					t.Fatalf("period %d balance %s not decreasing from %s", p.Number, p.Balance, prev)
				}
				prev = p.Balance
			}

			principal := decimal.NewFromFloat(tt.principal).Round(2)
			if diff := sum.Sub(principal).Abs(); diff.GreaterThan(decimal.NewFromFloat(0.01)) {
				t.Fatalf("principal components sum %s, want %s (±0.01)", sum, principal)
			}
			last := plan.Periods[len(plan.Periods)-1]
			if !last.Balance.IsZero() {
				t.Fatalf("final balance = %s, want 0", last.Balance)
			}
		})
	}
}

func TestSchedule_InvalidInputs(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
	}{
		{"zero principal", 0, 10, 12},
		{"negative principal", -5, 10, 12},
		{"zero term", 1000, 10, 0},
		{"negative term", 1000, 10, -3},
		{"negative rate", 1000, -1, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Schedule(tt.principal, tt.rate, tt.term); !errors.Is(err, ErrInvalidLoanTerms) {
				t.Fatalf("want ErrInvalidLoanTerms, got %v", err)
			}
		})
	}
}
