package uow

import (
	"context"

	"loanflow-backend/internal/domain/application"
	"loanflow-backend/internal/domain/contract"
	"loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/loan"
	"loanflow-backend/internal/domain/user"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Users        user.Repository
	Documents    document.Repository
	Applications application.Repository
	Loans        loan.Repository
	Contracts    contract.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside a single durable transaction; cross-entity
	// transitions (decide→issue loan, sign→activate loan) commit or roll
	// back as one.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
