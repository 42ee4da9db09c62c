// Package amortization computes reducing-balance repayment schedules.
package amortization

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInvalidLoanTerms = errors.New("invalid loan terms")

// Period is one month's split of the fixed installment.
type Period struct {
	Number    int             `json:"number"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

type Plan struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	Periods        []Period        `json:"periods,omitempty"`
}

// Schedule computes the fixed monthly payment for an amortizing loan and the
// full per-period breakdown. Amounts are rounded to cents per period and the
// final period absorbs the rounding remainder, so the closing balance is
// exactly zero and the principal components sum to the original principal.
//
// M = P*r*(1+r)^n / ((1+r)^n - 1), r = annualRatePercent/100/12.
// For r == 0 the installment degenerates to P/n.
func Schedule(principal, annualRatePercent float64, termMonths int) (*Plan, error) {
	if principal <= 0 || termMonths <= 0 || annualRatePercent < 0 {
		return nil, ErrInvalidLoanTerms
	}

	r := annualRatePercent / 100 / 12
	p := decimal.NewFromFloat(principal).Round(2)

	var monthly decimal.Decimal
	if r == 0 {
		monthly = p.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	} else {
		pow := math.Pow(1+r, float64(termMonths))
		monthly = decimal.NewFromFloat(principal * r * pow / (pow - 1)).Round(2)
	}

	rate := decimal.NewFromFloat(r)
	balance := p
	total := decimal.Zero
	periods := make([]Period, 0, termMonths)

	for i := 1; i <= termMonths; i++ {
		interest := balance.Mul(rate).Round(2)
		var pay, princ decimal.Decimal
		if i == termMonths {
			// close out: the remainder goes into the last installment
			princ = balance
			pay = princ.Add(interest)
		} else {
			pay = monthly
			princ = pay.Sub(interest)
		}
		balance = balance.Sub(princ)
		total = total.Add(pay)
		periods = append(periods, Period{
			Number:    i,
			Payment:   pay,
			Principal: princ,
			Interest:  interest,
			Balance:   balance,
		})
	}

	return &Plan{
		MonthlyPayment: monthly,
		TotalRepayment: total,
		Periods:        periods,
	}, nil
}
