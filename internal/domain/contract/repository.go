package contract

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	GetByContractID(ctx context.Context, contractID string) (*Contract, error)
	GetByContractIDForUpdate(ctx context.Context, contractID string) (*Contract, error)
	// GetOpenByLoanID returns the single non-terminal contract for a loan, if any.
	GetOpenByLoanID(ctx context.Context, loanID string) (*Contract, error)
	// ListExpirable returns sent/viewed contracts whose expiry has passed.
	ListExpirable(ctx context.Context, now time.Time) ([]Contract, error)
	Save(ctx context.Context, c *Contract) error
}
