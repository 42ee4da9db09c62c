package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainApp "loanflow-backend/internal/domain/application"
	"loanflow-backend/internal/domain/errs"
	domainLoan "loanflow-backend/internal/domain/loan"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/pkg/keylock"
	"loanflow-backend/pkg/amortization"
	"loanflow-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans domainLoan.Repository
	uow   uow.UnitOfWork
	locks *keylock.KeyLock
}

func NewUsecase(loans domainLoan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, uow: tx, locks: keylock.New()}
}

// IssueFromApplication converts an approved application into a loan inside
// the caller's transaction, so approval and issuance commit or roll back as
// one. At most one loan ever exists per application.
func IssueFromApplication(ctx context.Context, r uow.Repos, a *domainApp.Application, actorID string) (*domainLoan.Loan, error) {
	if _, err := r.Loans.GetByApplicationID(ctx, a.ApplicationID); err == nil {
		return nil, errs.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plan, err := amortization.Schedule(a.LoanDetails.Amount, a.LoanDetails.InterestRate, a.LoanDetails.TermMonths)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidLoanTerms, err)
	}

	now := time.Now().UTC()
	l := &domainLoan.Loan{
		LoanID:         id.NewID32(),
		UserID:         a.UserID,
		ApplicationID:  a.ApplicationID,
		Amount:         a.LoanDetails.Amount,
		InterestRate:   a.LoanDetails.InterestRate,
		TermMonths:     a.LoanDetails.TermMonths,
		MonthlyPayment: plan.MonthlyPayment.InexactFloat64(),
		TotalRepayment: plan.TotalRepayment.InexactFloat64(),
		Status:         domainLoan.StatusPending,
		StateUpdatedAt: now,
	}
	if err := r.Loans.Create(ctx, l); err != nil {
		return nil, err
	}
	if err := r.Loans.AppendEvent(ctx, &domainLoan.Event{
		LoanID: l.ID, Status: domainLoan.StatusPending,
		Notes: "issued from application " + a.ApplicationID, ProcessedBy: actorID,
	}); err != nil {
		return nil, err
	}

	l.Status = domainLoan.StatusApproved
	l.StateUpdatedAt = now
	if err := r.Loans.Save(ctx, l); err != nil {
		return nil, err
	}
	if err := r.Loans.AppendEvent(ctx, &domainLoan.Event{
		LoanID: l.ID, Status: domainLoan.StatusApproved, ProcessedBy: actorID,
	}); err != nil {
		return nil, err
	}
	return l, nil
}

// ActivateForContract flips approved → active inside the signing
// transaction. Contract signature is the only trigger that activates a loan.
func ActivateForContract(ctx context.Context, r uow.Repos, loanID, actorID string) (*domainLoan.Loan, error) {
	l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	if l.Status != domainLoan.StatusApproved {
		return nil, errs.ErrInvalidTransition
	}
	l.Status = domainLoan.StatusActive
	l.StateUpdatedAt = time.Now().UTC()
	if err := r.Loans.Save(ctx, l); err != nil {
		return nil, err
	}
	if err := r.Loans.AppendEvent(ctx, &domainLoan.Event{
		LoanID: l.ID, Status: domainLoan.StatusActive,
		Notes: "contract signed", ProcessedBy: actorID,
	}); err != nil {
		return nil, err
	}
	return l, nil
}

// RecordPayment increases paid amount and paid months monotonically and
// completes the loan when the schedule is covered.
func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*LoanDTO, error) {
	if in.Amount <= 0 || in.Months < 0 {
		return nil, errs.ErrInvalidLoanTerms
	}

	release := u.locks.Acquire(in.LoanID)
	defer release()

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			return errs.ErrNotFound
		}
		if l.Status != domainLoan.StatusActive {
			return errs.ErrInvalidTransition
		}

		l.PaidAmount += in.Amount
		l.PaidMonths += in.Months
		if l.PaidMonths > l.TermMonths {
			l.PaidMonths = l.TermMonths
		}

		status := domainLoan.StatusActive
		if l.PaidMonths >= l.TermMonths || l.PaidAmount >= l.TotalRepayment {
			status = domainLoan.StatusCompleted
			l.Status = status
			l.StateUpdatedAt = time.Now().UTC()
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Loans.AppendEvent(ctx, &domainLoan.Event{
			LoanID: l.ID, Status: status,
			Notes: fmt.Sprintf("payment %.2f (%d month(s))", in.Amount, in.Months), ProcessedBy: in.ActorID,
		}); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject closes a loan that never activated (pending or approved).
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*LoanDTO, error) {
	release := u.locks.Acquire(in.LoanID)
	defer release()

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			return errs.ErrNotFound
		}
		if l.Status != domainLoan.StatusPending && l.Status != domainLoan.StatusApproved {
			return errs.ErrInvalidTransition
		}
		l.Status = domainLoan.StatusRejected
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Loans.AppendEvent(ctx, &domainLoan.Event{
			LoanID: l.ID, Status: domainLoan.StatusRejected,
			Notes: in.Note, ProcessedBy: in.ActorID,
		}); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	dto := toDTO(l)
	events, err := u.loans.ListEvents(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	dto.History = events
	return dto, nil
}
