package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Loan, error)
	ListByUserID(ctx context.Context, userID string) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	AppendEvent(ctx context.Context, e *Event) error
	ListEvents(ctx context.Context, loanID uint64) ([]Event, error)
}
