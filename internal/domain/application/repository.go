package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	ListOpenByUserID(ctx context.Context, userID string) ([]Application, error)
	Save(ctx context.Context, a *Application) error
	AppendEvent(ctx context.Context, e *Event) error
	ListEvents(ctx context.Context, applicationID uint64) ([]Event, error)
}
