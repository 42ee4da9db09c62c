package contractmock

import (
	"context"
	"time"

	domain "loanflow-backend/internal/domain/contract"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, c *domain.Contract) error
	GetByContractIDFn          func(ctx context.Context, contractID string) (*domain.Contract, error)
	GetByContractIDForUpdateFn func(ctx context.Context, contractID string) (*domain.Contract, error)
	GetOpenByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Contract, error)
	ListExpirableFn            func(ctx context.Context, now time.Time) ([]domain.Contract, error)
	SaveFn                     func(ctx context.Context, c *domain.Contract) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByContractID(ctx context.Context, contractID string) (*domain.Contract, error) {
	if m.GetByContractIDFn != nil {
		return m.GetByContractIDFn(ctx, contractID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByContractIDForUpdate(ctx context.Context, contractID string) (*domain.Contract, error) {
	if m.GetByContractIDForUpdateFn != nil {
		return m.GetByContractIDForUpdateFn(ctx, contractID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetOpenByLoanID(ctx context.Context, loanID string) (*domain.Contract, error) {
	if m.GetOpenByLoanIDFn != nil {
		return m.GetOpenByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListExpirable(ctx context.Context, now time.Time) ([]domain.Contract, error) {
	if m.ListExpirableFn != nil {
		return m.ListExpirableFn(ctx, now)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
