package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusRejected }

type Loan struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	UserID         string         `gorm:"size:32;index:idx_loans_user_active" json:"user_id"`
	ApplicationID  string         `gorm:"size:32;uniqueIndex:ux_loans_application" json:"application_id"`
	Amount         float64        `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate   float64        `gorm:"type:decimal(6,4)" json:"interest_rate"`
	TermMonths     int            `json:"term_months"`
	MonthlyPayment float64        `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	TotalRepayment float64        `gorm:"type:decimal(18,2)" json:"total_repayment"`
	Status         Status         `gorm:"size:16;default:'pending'" json:"status"`
	PaidAmount     float64        `gorm:"type:decimal(18,2)" json:"paid_amount"`
	PaidMonths     int            `json:"paid_months"`
	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Event is one processingHistory row.
type Event struct {
	ID          uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	LoanID      uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	Status      Status    `gorm:"size:16" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	ProcessedBy string    `gorm:"size:32" json:"processed_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"date"`
}

func (Event) TableName() string { return "loan_events" }
