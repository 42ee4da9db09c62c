package document

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// A rejection must carry a reviewer note explaining why.
	ErrNoteRequired = errors.New("rejection requires a note")
)

type Type string

const (
	TypeIdentification   Type = "identification"
	TypeProofOfResidence Type = "proof_of_residence"
	TypeBankStatement    Type = "bank_statement"
	TypePayslip          Type = "payslip"
	TypeOther            Type = "other"
)

// RequiredTypes is the document set gating application progress and loan
// eligibility. Order matters only for user-facing missing-item lists.
func RequiredTypes() []Type {
	return []Type{TypeIdentification, TypeProofOfResidence, TypeBankStatement, TypePayslip}
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Document's Type and UserID are immutable after creation; verification is
// the only admin-mutable part.
type Document struct {
	ID           uint64             `gorm:"primaryKey;column:id" json:"-"`
	DocumentID   string             `gorm:"size:32;uniqueIndex:ux_documents_document_id_active" json:"document_id"`
	UserID       string             `gorm:"size:32;index:idx_documents_user" json:"user_id"`
	Type         Type               `gorm:"size:32" json:"type"`
	Verification VerificationStatus `gorm:"size:16;default:'pending'" json:"verification_status"`
	Notes        string             `gorm:"type:text" json:"notes,omitempty"`
	DateUploaded time.Time          `gorm:"autoCreateTime" json:"date_uploaded"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (Document) TableName() string { return "documents" }
