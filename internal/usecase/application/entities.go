package application

import (
	"time"

	domainApp "loanflow-backend/internal/domain/application"
	domainUser "loanflow-backend/internal/domain/user"
)

type SubmitInput struct {
	UserID       string  `json:"user_id"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
	Purpose      string  `json:"purpose"`
	Note         string  `json:"note"`
}

type AdvanceInput struct {
	ApplicationID string
	ActorID       string
	Note          string
	// From is the status the caller observed; when set, a mismatch inside
	// the transaction is reported as Conflict.
	From domainApp.Status
}

type DecideInput struct {
	ApplicationID string
	Outcome       domainApp.Status // approved or rejected
	ActorID       string
	Note          string
}

type ApplicationDTO struct {
	ApplicationID  string                    `json:"application_id"`
	UserID         string                    `json:"user_id"`
	Amount         float64                   `json:"amount"`
	InterestRate   float64                   `json:"interest_rate"`
	TermMonths     int                       `json:"term_months"`
	Purpose        string                    `json:"purpose,omitempty"`
	Personal       domainUser.PersonalInfo   `json:"personal"`
	Employment     domainUser.EmploymentInfo `json:"employment"`
	Financial      domainUser.FinancialInfo  `json:"financial"`
	Status         string                    `json:"status"`
	Completion     int                       `json:"completion"`
	RequiredAction string                    `json:"required_action,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	History        []domainApp.Event         `json:"status_history,omitempty"`
}

type DecisionDTO struct {
	Application ApplicationDTO `json:"application"`
	LoanID      string         `json:"loan_id,omitempty"`
}

func toDTO(a *domainApp.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:  a.ApplicationID,
		UserID:         a.UserID,
		Amount:         a.LoanDetails.Amount,
		InterestRate:   a.LoanDetails.InterestRate,
		TermMonths:     a.LoanDetails.TermMonths,
		Purpose:        a.LoanDetails.Purpose,
		Personal:       a.Personal,
		Employment:     a.Employment,
		Financial:      a.Financial,
		Status:         string(a.Status),
		Completion:     a.Completion,
		RequiredAction: a.RequiredAction,
		CreatedAt:      a.CreatedAt,
	}
}
