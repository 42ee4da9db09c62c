package loan

import (
	"time"

	domainLoan "loanflow-backend/internal/domain/loan"
)

type RecordPaymentInput struct {
	LoanID  string  `json:"loan_id"`
	Amount  float64 `json:"amount"`
	Months  int     `json:"months"`
	ActorID string  `json:"actor_id"`
}

type RejectInput struct {
	LoanID  string `json:"loan_id"`
	ActorID string `json:"actor_id"`
	Note    string `json:"note"`
}

type LoanDTO struct {
	LoanID         string             `json:"loan_id"`
	UserID         string             `json:"user_id"`
	ApplicationID  string             `json:"application_id"`
	Amount         float64            `json:"amount"`
	InterestRate   float64            `json:"interest_rate"`
	TermMonths     int                `json:"term_months"`
	MonthlyPayment float64            `json:"monthly_payment"`
	TotalRepayment float64            `json:"total_repayment"`
	Status         string             `json:"status"`
	PaidAmount     float64            `json:"paid_amount"`
	PaidMonths     int                `json:"paid_months"`
	CreatedAt      time.Time          `json:"created_at"`
	History        []domainLoan.Event `json:"processing_history,omitempty"`
}

func toDTO(l *domainLoan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:         l.LoanID,
		UserID:         l.UserID,
		ApplicationID:  l.ApplicationID,
		Amount:         l.Amount,
		InterestRate:   l.InterestRate,
		TermMonths:     l.TermMonths,
		MonthlyPayment: l.MonthlyPayment,
		TotalRepayment: l.TotalRepayment,
		Status:         string(l.Status),
		PaidAmount:     l.PaidAmount,
		PaidMonths:     l.PaidMonths,
		CreatedAt:      l.CreatedAt,
	}
}
