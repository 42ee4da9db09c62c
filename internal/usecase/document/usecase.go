package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainDoc "loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/errs"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/pkg/keylock"
	"loanflow-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	docs  domainDoc.Repository
	uow   uow.UnitOfWork
	locks *keylock.KeyLock
}

func NewUsecase(docs domainDoc.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{docs: docs, uow: tx, locks: keylock.New()}
}

// Upload registers a freshly uploaded document as pending verification.
// Type and owner are immutable from here on.
func (u *Usecase) Upload(ctx context.Context, in UploadInput) (*DocumentDTO, error) {
	if !validType(in.Type) {
		return nil, fmt.Errorf("%w: unknown document type %q", errs.ErrInvalidLoanTerms, in.Type)
	}

	var dto *DocumentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByUserID(ctx, in.UserID); err != nil {
			return errs.ErrNotFound
		}
		d := &domainDoc.Document{
			DocumentID:   id.NewID32(),
			UserID:       in.UserID,
			Type:         in.Type,
			Verification: domainDoc.VerificationPending,
			Notes:        in.Notes,
			DateUploaded: time.Now().UTC(),
		}
		if err := r.Documents.Create(ctx, d); err != nil {
			return err
		}
		dto = toDTO(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Verify records an admin verification outcome. Re-verifying a terminal
// document overwrites its status; when the outcome satisfies the gate, any
// open application's requiredAction hint is cleared.
func (u *Usecase) Verify(ctx context.Context, in VerifyInput) (*DocumentDTO, error) {
	if in.Outcome != domainDoc.VerificationVerified && in.Outcome != domainDoc.VerificationRejected {
		return nil, errs.ErrInvalidTransition
	}
	if in.Outcome == domainDoc.VerificationRejected && in.Note == "" {
		return nil, domainDoc.ErrNoteRequired
	}

	release := u.locks.Acquire(in.DocumentID)
	defer release()

	var dto *DocumentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Documents.GetByDocumentIDForUpdate(ctx, in.DocumentID)
		if err != nil {
			return errs.ErrNotFound
		}
		d.Verification = in.Outcome
		d.Notes = in.Note
		if err := r.Documents.Save(ctx, d); err != nil {
			return err
		}

		if in.Outcome == domainDoc.VerificationVerified {
			if err := clearSatisfiedActions(ctx, r, d.UserID); err != nil {
				return err
			}
		}
		dto = toDTO(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// IsSatisfied reports whether every required type has at least one verified
// document for the user, and which types still miss one.
func (u *Usecase) IsSatisfied(ctx context.Context, userID string, required []domainDoc.Type) (bool, []domainDoc.Type, error) {
	return GateSatisfied(ctx, u.docs, userID, required)
}

func (u *Usecase) Get(ctx context.Context, documentID string) (*DocumentDTO, error) {
	d, err := u.docs.GetByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return toDTO(d), nil
}

func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]DocumentDTO, error) {
	docs, err := u.docs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		out = append(out, *toDTO(&docs[i]))
	}
	return out, nil
}

// GateSatisfied is the gate predicate over an arbitrary (possibly
// tx-bound) document repository, so transition guards can run it inside
// their own transaction.
func GateSatisfied(ctx context.Context, docs domainDoc.Repository, userID string, required []domainDoc.Type) (bool, []domainDoc.Type, error) {
	verified, err := docs.VerifiedTypesByUserID(ctx, userID)
	if err != nil {
		return false, nil, err
	}
	have := make(map[domainDoc.Type]bool, len(verified))
	for _, t := range verified {
		have[t] = true
	}
	var missing []domainDoc.Type
	for _, t := range required {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	return len(missing) == 0, missing, nil
}

// clearSatisfiedActions drops the requiredAction hint on the user's open
// applications once the gate holds.
func clearSatisfiedActions(ctx context.Context, r uow.Repos, userID string) error {
	ok, _, err := GateSatisfied(ctx, r.Documents, userID, domainDoc.RequiredTypes())
	if err != nil || !ok {
		return err
	}
	apps, err := r.Applications.ListOpenByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for i := range apps {
		if apps[i].RequiredAction == "" {
			continue
		}
		apps[i].RequiredAction = ""
		if err := r.Applications.Save(ctx, &apps[i]); err != nil {
			return err
		}
	}
	return nil
}

func validType(t domainDoc.Type) bool {
	switch t {
	case domainDoc.TypeIdentification, domainDoc.TypeProofOfResidence,
		domainDoc.TypeBankStatement, domainDoc.TypePayslip, domainDoc.TypeOther:
		return true
	}
	return false
}
