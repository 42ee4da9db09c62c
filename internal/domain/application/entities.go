package application

import (
	"math"
	"time"

	"loanflow-backend/internal/domain/user"

	"gorm.io/gorm"
)

type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusInitialScreening   Status = "initial_screening"
	StatusDocumentReview     Status = "document_review"
	StatusCreditAssessment   Status = "credit_assessment"
	StatusIncomeVerification Status = "income_verification"
	StatusFinalDecision      Status = "final_decision"
	StatusApproved           Status = "approved"
	StatusRejected           Status = "rejected"
)

// steps is the fixed forward workflow; approved/rejected branch off
// final_decision via Decide, never via Advance.
var steps = []Status{
	StatusSubmitted,
	StatusInitialScreening,
	StatusDocumentReview,
	StatusCreditAssessment,
	StatusIncomeVerification,
	StatusFinalDecision,
}

func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// Next returns the successor step. ok is false for final_decision (use
// Decide), terminal states, and unknown statuses.
func (s Status) Next() (Status, bool) {
	for i, st := range steps {
		if st == s {
			if i+1 < len(steps) {
				return steps[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// Completion maps a status to its 0-100 progress value. Mid-workflow values
// come from round(100*idx/total), so final_decision sits at 83 and only a
// decision, approve or reject, lands the application on 100.
func (s Status) Completion() int {
	if s.Terminal() {
		return 100
	}
	for i, st := range steps {
		if st == s {
			return int(math.Round(100 * float64(i) / float64(len(steps))))
		}
	}
	return 0
}

// Requested loan terms captured at submission.
type LoanDetails struct {
	Amount       float64 `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
	Purpose      string  `gorm:"size:255" json:"purpose"`
}

// Application carries point-in-time copies of the applicant's profile
// sections. The decision trail must reflect what was applied with, so later
// profile edits never reach back into an existing application.
type Application struct {
	ID              uint64              `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string              `gorm:"size:32;uniqueIndex:ux_applications_application_id_active" json:"application_id"`
	UserID          string              `gorm:"size:32;index:idx_applications_user" json:"user_id"`
	LoanDetails     LoanDetails         `gorm:"embedded;embeddedPrefix:loan_" json:"loan_details"`
	Personal        user.PersonalInfo   `gorm:"embedded;embeddedPrefix:pers_" json:"personal"`
	Employment      user.EmploymentInfo `gorm:"embedded;embeddedPrefix:emp_" json:"employment"`
	Financial       user.FinancialInfo  `gorm:"embedded;embeddedPrefix:fin_" json:"financial"`
	Status          Status              `gorm:"size:32;default:'submitted'" json:"status"`
	Completion      int                 `json:"completion"`
	RequiredAction  string              `gorm:"type:text" json:"required_action,omitempty"`
	StatusUpdatedAt time.Time           `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "applications" }

// Event is one append-only statusHistory row.
type Event struct {
	ID            uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	ApplicationID uint64    `gorm:"column:application_id;not null;index" json:"-"`
	Status        Status    `gorm:"size:32" json:"status"`
	Actor         string    `gorm:"size:32" json:"actor"`
	Note          string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "application_events" }
