package documentmock

import (
	"context"

	domain "loanflow-backend/internal/domain/document"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, d *domain.Document) error
	GetByDocumentIDFn          func(ctx context.Context, documentID string) (*domain.Document, error)
	GetByDocumentIDForUpdateFn func(ctx context.Context, documentID string) (*domain.Document, error)
	ListByUserIDFn             func(ctx context.Context, userID string) ([]domain.Document, error)
	VerifiedTypesByUserIDFn    func(ctx context.Context, userID string) ([]domain.Type, error)
	SaveFn                     func(ctx context.Context, d *domain.Document) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDocumentID(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDFn != nil {
		return m.GetByDocumentIDFn(ctx, documentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDForUpdateFn != nil {
		return m.GetByDocumentIDForUpdateFn(ctx, documentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByUserID(ctx context.Context, userID string) ([]domain.Document, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) VerifiedTypesByUserID(ctx context.Context, userID string) ([]domain.Type, error) {
	if m.VerifiedTypesByUserIDFn != nil {
		return m.VerifiedTypesByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}
