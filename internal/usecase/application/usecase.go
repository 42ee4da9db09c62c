package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainApp "loanflow-backend/internal/domain/application"
	domainDoc "loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/errs"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/pkg/keylock"
	docUC "loanflow-backend/internal/usecase/document"
	loanUC "loanflow-backend/internal/usecase/loan"
	"loanflow-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	apps  domainApp.Repository
	uow   uow.UnitOfWork
	locks *keylock.KeyLock
}

func NewUsecase(apps domainApp.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{apps: apps, uow: tx, locks: keylock.New()}
}

// Submit opens a new application in the first workflow step. The applicant's
// profile sections are copied onto the application row, so the record keeps
// what was applied with even after later profile edits.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if in.Amount <= 0 || in.TermMonths <= 0 || in.InterestRate < 0 {
		return nil, errs.ErrInvalidLoanTerms
	}

	var dto *ApplicationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByUserID(ctx, in.UserID)
		if err != nil {
			return errs.ErrNotFound
		}
		a := &domainApp.Application{
			ApplicationID: id.NewID32(),
			UserID:        in.UserID,
			LoanDetails: domainApp.LoanDetails{
				Amount:       in.Amount,
				InterestRate: in.InterestRate,
				TermMonths:   in.TermMonths,
				Purpose:      in.Purpose,
			},
			Personal:        usr.Personal,
			Employment:      usr.Employment,
			Financial:       usr.Financial,
			Status:          domainApp.StatusSubmitted,
			Completion:      domainApp.StatusSubmitted.Completion(),
			StatusUpdatedAt: time.Now().UTC(),
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		if err := r.Applications.AppendEvent(ctx, &domainApp.Event{
			ApplicationID: a.ID, Status: domainApp.StatusSubmitted, Actor: in.UserID, Note: in.Note,
		}); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Advance moves the application to the next step in the fixed sequence.
// The document gate holds the document_review → credit_assessment edge.
//
// Concurrent calls on one application id are serialized by the key lock;
// when From is set, a transition that no longer matches it fails with
// Conflict so the caller re-reads instead of double-stepping.
func (u *Usecase) Advance(ctx context.Context, in AdvanceInput) (*ApplicationDTO, error) {
	release := u.locks.Acquire(in.ApplicationID)
	defer release()

	var dto *ApplicationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, in.ApplicationID)
		if err != nil {
			return errs.ErrNotFound
		}
		if in.From != "" && a.Status != in.From {
			return errs.ErrConflict
		}
		if a.Status.Terminal() {
			return errs.ErrInvalidTransition
		}
		next, ok := a.Status.Next()
		if !ok {
			// final_decision has no successor; it takes Decide
			return errs.ErrInvalidTransition
		}

		if a.Status == domainApp.StatusDocumentReview {
			satisfied, missing, gerr := docUC.GateSatisfied(ctx, r.Documents, a.UserID, domainDoc.RequiredTypes())
			if gerr != nil {
				return gerr
			}
			if !satisfied {
				return fmt.Errorf("%w: %v", errs.ErrGateNotSatisfied, missing)
			}
		}

		a.Status = next
		a.Completion = next.Completion()
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		if err := r.Applications.AppendEvent(ctx, &domainApp.Event{
			ApplicationID: a.ID, Status: next, Actor: in.ActorID, Note: in.Note,
		}); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Decide settles an application sitting in final_decision. Approval issues
// the loan within the same transaction: an approved application without a
// loan can never be persisted.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*DecisionDTO, error) {
	if in.Outcome != domainApp.StatusApproved && in.Outcome != domainApp.StatusRejected {
		return nil, errs.ErrInvalidTransition
	}

	release := u.locks.Acquire(in.ApplicationID)
	defer release()

	var dto *DecisionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, in.ApplicationID)
		if err != nil {
			return errs.ErrNotFound
		}
		if a.Status != domainApp.StatusFinalDecision {
			return errs.ErrInvalidTransition
		}

		a.Status = in.Outcome
		a.Completion = 100
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		if err := r.Applications.AppendEvent(ctx, &domainApp.Event{
			ApplicationID: a.ID, Status: in.Outcome, Actor: in.ActorID, Note: in.Note,
		}); err != nil {
			return err
		}

		dto = &DecisionDTO{Application: *toDTO(a)}
		if in.Outcome == domainApp.StatusApproved {
			l, err := loanUC.IssueFromApplication(ctx, r, a, in.ActorID)
			if err != nil {
				return err
			}
			dto.LoanID = l.LoanID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// RequireAction attaches (or overwrites) the applicant-facing hint without
// touching status or history.
func (u *Usecase) RequireAction(ctx context.Context, applicationID, description string) (*ApplicationDTO, error) {
	var dto *ApplicationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return errs.ErrNotFound
		}
		a.RequiredAction = description
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// AddNote appends to the history without a status change; legal on terminal
// applications too.
func (u *Usecase) AddNote(ctx context.Context, applicationID, actorID, text string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationID(ctx, applicationID)
		if err != nil {
			return errs.ErrNotFound
		}
		return r.Applications.AppendEvent(ctx, &domainApp.Event{
			ApplicationID: a.ID, Status: a.Status, Actor: actorID, Note: text,
		})
	})
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	dto := toDTO(a)
	events, err := u.apps.ListEvents(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	dto.History = events
	return dto, nil
}
