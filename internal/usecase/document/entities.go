package document

import (
	"time"

	domainDoc "loanflow-backend/internal/domain/document"
)

type UploadInput struct {
	UserID string         `json:"user_id"`
	Type   domainDoc.Type `json:"type"`
	Notes  string         `json:"notes"`
}

type VerifyInput struct {
	DocumentID string
	Outcome    domainDoc.VerificationStatus
	ActorID    string
	Note       string
}

type DocumentDTO struct {
	DocumentID   string                       `json:"document_id"`
	UserID       string                       `json:"user_id"`
	Type         domainDoc.Type               `json:"type"`
	Verification domainDoc.VerificationStatus `json:"verification_status"`
	Notes        string                       `json:"notes,omitempty"`
	DateUploaded time.Time                    `json:"date_uploaded"`
}

func toDTO(d *domainDoc.Document) *DocumentDTO {
	return &DocumentDTO{
		DocumentID:   d.DocumentID,
		UserID:       d.UserID,
		Type:         d.Type,
		Verification: d.Verification,
		Notes:        d.Notes,
		DateUploaded: d.DateUploaded,
	}
}
