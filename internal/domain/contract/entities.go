package contract

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusViewed    Status = "viewed"
	StatusSigned    Status = "signed"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusDeclined  Status = "declined"
)

// Terminal statuses accept no further transition; a declined contract is
// the one exception — Send may re-issue it per the signature workflow.
func (s Status) Terminal() bool {
	switch s {
	case StatusSigned, StatusCompleted, StatusExpired, StatusDeclined:
		return true
	}
	return false
}

type Contract struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	ContractID         string         `gorm:"size:32;uniqueIndex:ux_contracts_contract_id_active" json:"contract_id"`
	LoanID             string         `gorm:"size:32;index:idx_contracts_loan" json:"loan_id"`
	UserID             string         `gorm:"size:32;index:idx_contracts_user" json:"user_id"`
	Status             Status         `gorm:"size:16;default:'draft'" json:"status"`
	DateCreated        time.Time      `gorm:"autoCreateTime" json:"date_created"`
	DateSent           *time.Time     `json:"date_sent,omitempty"`
	DateViewed         *time.Time     `json:"date_viewed,omitempty"`
	DateSigned         *time.Time     `json:"date_signed,omitempty"`
	DateExpires        *time.Time     `json:"date_expires,omitempty"`
	SignatureRequestID string         `gorm:"size:64" json:"signature_request_id,omitempty"`
	SignatureURL       string         `gorm:"type:text" json:"signature_url,omitempty"`
	DownloadURL        string         `gorm:"type:text" json:"download_url,omitempty"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contract) TableName() string { return "contracts" }
