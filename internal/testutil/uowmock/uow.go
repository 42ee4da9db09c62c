package uowmock

import (
	"context"

	"loanflow-backend/internal/domain/uow"
)

// UoW is a function-backed mock that satisfies uow.UnitOfWork. The default
// runs fn directly against the Repos field, which is what most usecase
// tests want: same repos, no transaction.
type UoW struct {
	Repos      uow.Repos
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}
