package contract

import (
	"context"
	"errors"
	"log"
	"time"

	domainContract "loanflow-backend/internal/domain/contract"
	"loanflow-backend/internal/domain/errs"
	domainLoan "loanflow-backend/internal/domain/loan"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/pkg/keylock"
	loanUC "loanflow-backend/internal/usecase/loan"
	"loanflow-backend/pkg/id"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDeclineNotAllowed means the caller's role is not in the configured
// decline authority set.
var ErrDeclineNotAllowed = errors.New("role may not decline contracts")

// Notifier is the best-effort notification boundary; implementations log
// failures internally and never surface them here.
type Notifier interface {
	Dispatch(ctx context.Context, userID, event string, params map[string]string)
}

// Config carries the workflow knobs the routes leave open: how long a sent
// contract stays signable and who may decline one.
type Config struct {
	ExpiryWindow   time.Duration
	DeclineRoles   []string
	SigningBaseURL string
}

type Usecase struct {
	contracts domainContract.Repository
	uow       uow.UnitOfWork
	notifier  Notifier
	locks     *keylock.KeyLock
	cfg       Config
}

func NewUsecase(contracts domainContract.Repository, tx uow.UnitOfWork, n Notifier, cfg Config) *Usecase {
	if cfg.ExpiryWindow <= 0 {
		cfg.ExpiryWindow = 14 * 24 * time.Hour
	}
	if len(cfg.DeclineRoles) == 0 {
		cfg.DeclineRoles = []string{"user", "admin"}
	}
	return &Usecase{contracts: contracts, uow: tx, notifier: n, locks: keylock.New(), cfg: cfg}
}

// Generate drafts a contract for an approved loan. Only one non-terminal
// contract may exist per loan; a declined or expired one may be replaced.
func (u *Usecase) Generate(ctx context.Context, loanID, actorID string) (*ContractDTO, error) {
	release := u.locks.Acquire(loanID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return errs.ErrNotFound
		}
		if l.Status != domainLoan.StatusApproved {
			return errs.ErrInvalidTransition
		}
		if _, err := r.Contracts.GetOpenByLoanID(ctx, loanID); err == nil {
			return errs.ErrDuplicateContract
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		c := &domainContract.Contract{
			ContractID:  id.NewID32(),
			LoanID:      loanID,
			UserID:      l.UserID,
			Status:      domainContract.StatusDraft,
			DateCreated: time.Now().UTC(),
		}
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Send issues the signature request and SMSes the borrower. The SMS is
// dispatched on its own goroutine after the transition commits; Send never
// waits on the gateway and a dispatch failure never fails the transition.
func (u *Usecase) Send(ctx context.Context, contractID string) (*ContractDTO, error) {
	release := u.locks.Acquire(contractID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return errs.ErrNotFound
		}
		// declined is the one terminal state Send may leave, re-issuing
		// the same contract to a borrower who changed their mind
		if c.Status != domainContract.StatusDraft && c.Status != domainContract.StatusDeclined {
			return errs.ErrInvalidTransition
		}

		now := time.Now().UTC()
		expires := now.Add(u.cfg.ExpiryWindow)
		c.Status = domainContract.StatusSent
		c.DateSent = &now
		c.DateExpires = &expires
		c.SignatureRequestID = uuid.NewString()
		c.SignatureURL = u.signingURL(c.SignatureRequestID)
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	go u.notifier.Dispatch(ctx, dto.UserID, "contract_sent", map[string]string{
		"contract_id":   dto.ContractID,
		"signature_url": dto.SignatureURL,
	})
	return dto, nil
}

// View marks the first open of a sent contract. Already viewed or signed is
// a no-op so link re-opens stay harmless.
func (u *Usecase) View(ctx context.Context, contractID string) (*ContractDTO, error) {
	release := u.locks.Acquire(contractID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return errs.ErrNotFound
		}
		switch c.Status {
		case domainContract.StatusSent:
			now := time.Now().UTC()
			c.Status = domainContract.StatusViewed
			c.DateViewed = &now
			if err := r.Contracts.Save(ctx, c); err != nil {
				return err
			}
		case domainContract.StatusViewed, domainContract.StatusSigned, domainContract.StatusCompleted:
			// idempotent no-op
		default:
			return errs.ErrInvalidTransition
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Sign finalizes the signature and activates the loan in the same
// transaction.
func (u *Usecase) Sign(ctx context.Context, contractID, actorID string) (*ContractDTO, error) {
	release := u.locks.Acquire(contractID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return errs.ErrNotFound
		}
		if c.Status != domainContract.StatusSent && c.Status != domainContract.StatusViewed {
			return errs.ErrInvalidTransition
		}

		now := time.Now().UTC()
		c.Status = domainContract.StatusSigned
		c.DateSigned = &now
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		if _, err := loanUC.ActivateForContract(ctx, r, c.LoanID, actorID); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Cancel pulls a sent or viewed contract back to draft and clears its
// signature artifacts.
func (u *Usecase) Cancel(ctx context.Context, contractID string) (*ContractDTO, error) {
	release := u.locks.Acquire(contractID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return errs.ErrNotFound
		}
		if c.Status != domainContract.StatusSent && c.Status != domainContract.StatusViewed {
			return errs.ErrInvalidTransition
		}
		c.Status = domainContract.StatusDraft
		c.DateSent = nil
		c.DateViewed = nil
		c.DateExpires = nil
		c.SignatureRequestID = ""
		c.SignatureURL = ""
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Resend regenerates the signature link and re-SMSes without changing
// status; legal from any non-terminal state.
func (u *Usecase) Resend(ctx context.Context, contractID string) (*ContractDTO, error) {
	release := u.locks.Acquire(contractID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return errs.ErrNotFound
		}
		if c.Status.Terminal() {
			return errs.ErrInvalidTransition
		}
		c.SignatureRequestID = uuid.NewString()
		c.SignatureURL = u.signingURL(c.SignatureRequestID)
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	go u.notifier.Dispatch(ctx, dto.UserID, "contract_resent", map[string]string{
		"contract_id":   dto.ContractID,
		"signature_url": dto.SignatureURL,
	})
	return dto, nil
}

// Decline records an explicit refusal from sent or viewed; authority comes
// from configuration, not code.
func (u *Usecase) Decline(ctx context.Context, contractID, actorRole string) (*ContractDTO, error) {
	if !u.mayDecline(actorRole) {
		return nil, ErrDeclineNotAllowed
	}

	release := u.locks.Acquire(contractID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return errs.ErrNotFound
		}
		if c.Status != domainContract.StatusSent && c.Status != domainContract.StatusViewed {
			return errs.ErrInvalidTransition
		}
		c.Status = domainContract.StatusDeclined
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Expire moves a sent or viewed contract past its window to expired.
func (u *Usecase) Expire(ctx context.Context, contractID string, now time.Time) (*ContractDTO, error) {
	release := u.locks.Acquire(contractID)
	defer release()

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return errs.ErrNotFound
		}
		if c.Status != domainContract.StatusSent && c.Status != domainContract.StatusViewed {
			return errs.ErrInvalidTransition
		}
		if c.DateExpires == nil || now.Before(*c.DateExpires) {
			return errs.ErrInvalidTransition
		}
		c.Status = domainContract.StatusExpired
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ExpireDue sweeps all overdue contracts; meant for a ticker.
func (u *Usecase) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	due, err := u.contracts.ListExpirable(ctx, now)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range due {
		if _, err := u.Expire(ctx, due[i].ContractID, now); err != nil {
			// another writer may have raced the sweep; skip and continue
			log.Printf("contract sweep: expire %s: %v", due[i].ContractID, err)
			continue
		}
		expired++
	}
	return expired, nil
}

func (u *Usecase) Get(ctx context.Context, contractID string) (*ContractDTO, error) {
	c, err := u.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) mayDecline(role string) bool {
	for _, r := range u.cfg.DeclineRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *Usecase) signingURL(requestID string) string {
	base := u.cfg.SigningBaseURL
	if base == "" {
		base = "https://sign.loanflow.local/r"
	}
	return base + "/" + requestID
}
