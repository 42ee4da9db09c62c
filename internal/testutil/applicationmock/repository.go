package applicationmock

import (
	"context"

	domain "loanflow-backend/internal/domain/application"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListOpenByUserIDFn            func(ctx context.Context, userID string) ([]domain.Application, error)
	SaveFn                        func(ctx context.Context, a *domain.Application) error
	AppendEventFn                 func(ctx context.Context, e *domain.Event) error
	ListEventsFn                  func(ctx context.Context, applicationID uint64) ([]domain.Event, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListOpenByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	if m.ListOpenByUserIDFn != nil {
		return m.ListOpenByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) AppendEvent(ctx context.Context, e *domain.Event) error {
	if m.AppendEventFn != nil {
		return m.AppendEventFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListEvents(ctx context.Context, applicationID uint64) ([]domain.Event, error) {
	if m.ListEventsFn != nil {
		return m.ListEventsFn(ctx, applicationID)
	}
	return nil, nil
}
