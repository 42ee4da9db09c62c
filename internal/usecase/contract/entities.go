package contract

import (
	"time"

	domainContract "loanflow-backend/internal/domain/contract"
)

type ContractDTO struct {
	ContractID         string     `json:"contract_id"`
	LoanID             string     `json:"loan_id"`
	UserID             string     `json:"user_id"`
	Status             string     `json:"status"`
	DateCreated        time.Time  `json:"date_created"`
	DateSent           *time.Time `json:"date_sent,omitempty"`
	DateViewed         *time.Time `json:"date_viewed,omitempty"`
	DateSigned         *time.Time `json:"date_signed,omitempty"`
	DateExpires        *time.Time `json:"date_expires,omitempty"`
	SignatureRequestID string     `json:"signature_request_id,omitempty"`
	SignatureURL       string     `json:"signature_url,omitempty"`
	DownloadURL        string     `json:"download_url,omitempty"`
}

func toDTO(c *domainContract.Contract) *ContractDTO {
	return &ContractDTO{
		ContractID:         c.ContractID,
		LoanID:             c.LoanID,
		UserID:             c.UserID,
		Status:             string(c.Status),
		DateCreated:        c.DateCreated,
		DateSent:           c.DateSent,
		DateViewed:         c.DateViewed,
		DateSigned:         c.DateSigned,
		DateExpires:        c.DateExpires,
		SignatureRequestID: c.SignatureRequestID,
		SignatureURL:       c.SignatureURL,
		DownloadURL:        c.DownloadURL,
	}
}
