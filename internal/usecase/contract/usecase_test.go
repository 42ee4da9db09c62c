package contract

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	domainContract "loanflow-backend/internal/domain/contract"
	"loanflow-backend/internal/domain/errs"
	domainLoan "loanflow-backend/internal/domain/loan"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/testutil/contractmock"
	"loanflow-backend/internal/testutil/loanmock"
	"loanflow-backend/internal/testutil/uowmock"
)

type dispatchCall struct {
	userID string
	event  string
	params map[string]string
}

type notifierStub struct {
	mu    sync.Mutex
	calls []dispatchCall
	ch    chan dispatchCall
}

func newNotifierStub() *notifierStub {
	return &notifierStub{ch: make(chan dispatchCall, 4)}
}

func (n *notifierStub) Dispatch(_ context.Context, userID, event string, params map[string]string) {
	call := dispatchCall{userID: userID, event: event, params: params}
	n.mu.Lock()
	n.calls = append(n.calls, call)
	n.mu.Unlock()
	if n.ch != nil {
		n.ch <- call
	}
}

// await blocks until the next dispatch lands; dispatch runs on its own
// goroutine, so tests must not inspect calls directly after a transition.
func (n *notifierStub) await(t *testing.T) dispatchCall {
	t.Helper()
	select {
	case c := <-n.ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no dispatch arrived")
		return dispatchCall{}
	}
}

func contractFixture(status domainContract.Status) *domainContract.Contract {
	c := &domainContract.Contract{
		ID:          11,
		ContractID:  "c1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		LoanID:      "l1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		UserID:      "u1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		Status:      status,
		DateCreated: time.Now().UTC().Add(-time.Hour),
	}
	if status != domainContract.StatusDraft {
		sent := time.Now().UTC().Add(-30 * time.Minute)
		expires := sent.Add(14 * 24 * time.Hour)
		c.DateSent = &sent
		c.DateExpires = &expires
		c.SignatureRequestID = "req-1"
		c.SignatureURL = "https://sign.test/r/req-1"
	}
	return c
}

func newTestUsecase(contracts *contractmock.Repo, repos uow.Repos, n Notifier) *Usecase {
	if n == nil {
		n = &notifierStub{}
	}
	return NewUsecase(contracts, &uowmock.UoW{Repos: repos}, n, Config{
		ExpiryWindow:   14 * 24 * time.Hour,
		SigningBaseURL: "https://sign.test/r",
	})
}

func TestGenerate(t *testing.T) {
	l := &domainLoan.Loan{
		LoanID: "l1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		UserID: "u1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		Status: domainLoan.StatusApproved,
	}
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, _ string) (*domainLoan.Loan, error) {
			return l, nil
		},
	}
	var created *domainContract.Contract
	contracts := &contractmock.Repo{
		CreateFn: func(_ context.Context, c *domainContract.Contract) error {
			created = c
			return nil
		},
	}
	uc := newTestUsecase(contracts, uow.Repos{Loans: loans, Contracts: contracts}, nil)

	dto, err := uc.Generate(context.Background(), l.LoanID, "admin1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if dto.Status != string(domainContract.StatusDraft) {
		t.Fatalf("status = %s, want draft", dto.Status)
	}
	if created == nil || len(created.ContractID) != 32 || created.UserID != l.UserID {
		t.Fatalf("created = %+v", created)
	}
}

func TestGenerate_LoanNotApproved(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, _ string) (*domainLoan.Loan, error) {
			return &domainLoan.Loan{Status: domainLoan.StatusActive}, nil
		},
	}
	contracts := &contractmock.Repo{}
	uc := newTestUsecase(contracts, uow.Repos{Loans: loans, Contracts: contracts}, nil)

	if _, err := uc.Generate(context.Background(), "l1", "admin1"); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestGenerate_OpenContractIsDuplicate(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, _ string) (*domainLoan.Loan, error) {
			return &domainLoan.Loan{Status: domainLoan.StatusApproved}, nil
		},
	}
	contracts := &contractmock.Repo{
		GetOpenByLoanIDFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
			return contractFixture(domainContract.StatusSent), nil
		},
	}
	uc := newTestUsecase(contracts, uow.Repos{Loans: loans, Contracts: contracts}, nil)

	if _, err := uc.Generate(context.Background(), "l1", "admin1"); !errors.Is(err, errs.ErrDuplicateContract) {
		t.Fatalf("err = %v, want ErrDuplicateContract", err)
	}
}

func TestSend(t *testing.T) {
	for _, from := range []domainContract.Status{domainContract.StatusDraft, domainContract.StatusDeclined} {
		t.Run(string(from), func(t *testing.T) {
			c := contractFixture(from)
			contracts := &contractmock.Repo{
				GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
					return c, nil
				},
			}
			n := newNotifierStub()
			uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, n)

			dto, err := uc.Send(context.Background(), c.ContractID)
			if err != nil {
				t.Fatalf("Send error: %v", err)
			}
			if dto.Status != string(domainContract.StatusSent) {
				t.Fatalf("status = %s, want sent", dto.Status)
			}
			if dto.DateSent == nil || dto.DateExpires == nil {
				t.Fatalf("sent/expiry timestamps missing: %+v", dto)
			}
			if got := dto.DateExpires.Sub(*dto.DateSent); got != 14*24*time.Hour {
				t.Fatalf("expiry window = %v, want 14d", got)
			}
			if dto.SignatureRequestID == "" || !strings.HasPrefix(dto.SignatureURL, "https://sign.test/r/") {
				t.Fatalf("signature artifacts = %q %q", dto.SignatureRequestID, dto.SignatureURL)
			}
			got := n.await(t)
			if got.event != "contract_sent" {
				t.Fatalf("dispatched event = %s, want contract_sent", got.event)
			}
			if got.params["signature_url"] != dto.SignatureURL {
				t.Fatalf("notified url = %q, want %q", got.params["signature_url"], dto.SignatureURL)
			}
		})
	}
}

func TestSend_InvalidStates(t *testing.T) {
	for _, from := range []domainContract.Status{
		domainContract.StatusSent, domainContract.StatusViewed,
		domainContract.StatusSigned, domainContract.StatusExpired,
	} {
		c := contractFixture(from)
		contracts := &contractmock.Repo{
			GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
				return c, nil
			},
		}
		n := &notifierStub{}
		uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, n)

		if _, err := uc.Send(context.Background(), c.ContractID); !errors.Is(err, errs.ErrInvalidTransition) {
			t.Fatalf("Send from %s err = %v, want ErrInvalidTransition", from, err)
		}
		if len(n.calls) != 0 {
			t.Fatalf("no SMS may go out on a failed send, got %+v", n.calls)
		}
	}
}

type slowNotifier struct {
	delay time.Duration
	done  chan dispatchCall
}

func (n *slowNotifier) Dispatch(_ context.Context, userID, event string, params map[string]string) {
	time.Sleep(n.delay)
	n.done <- dispatchCall{userID: userID, event: event, params: params}
}

// A slow SMS gateway must not delay the transition caller; dispatch is
// best-effort and runs off the Send path.
func TestSend_DoesNotWaitForDispatch(t *testing.T) {
	c := contractFixture(domainContract.StatusDraft)
	contracts := &contractmock.Repo{
		GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
			return c, nil
		},
	}
	n := &slowNotifier{delay: 500 * time.Millisecond, done: make(chan dispatchCall, 1)}
	uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, n)

	start := time.Now()
	dto, err := uc.Send(context.Background(), c.ContractID)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if elapsed >= n.delay {
		t.Fatalf("Send blocked for %v waiting on the notifier", elapsed)
	}
	select {
	case got := <-n.done:
		if got.event != "contract_sent" || got.userID != dto.UserID {
			t.Fatalf("dispatch = %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch never completed")
	}
}

func TestView(t *testing.T) {
	t.Run("first open marks viewed", func(t *testing.T) {
		c := contractFixture(domainContract.StatusSent)
		contracts := &contractmock.Repo{
			GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
				return c, nil
			},
		}
		uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

		dto, err := uc.View(context.Background(), c.ContractID)
		if err != nil {
			t.Fatalf("View error: %v", err)
		}
		if dto.Status != string(domainContract.StatusViewed) || dto.DateViewed == nil {
			t.Fatalf("dto = %+v, want viewed with timestamp", dto)
		}
	})

	t.Run("re-open is a no-op", func(t *testing.T) {
		c := contractFixture(domainContract.StatusViewed)
		viewed := time.Now().UTC().Add(-10 * time.Minute)
		c.DateViewed = &viewed
		contracts := &contractmock.Repo{
			GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
				return c, nil
			},
			SaveFn: func(_ context.Context, _ *domainContract.Contract) error {
				t.Fatal("re-view must not write")
				return nil
			},
		}
		uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

		dto, err := uc.View(context.Background(), c.ContractID)
		if err != nil {
			t.Fatalf("View error: %v", err)
		}
		if !dto.DateViewed.Equal(viewed) {
			t.Fatalf("dateViewed changed: %v != %v", dto.DateViewed, viewed)
		}
	})

	t.Run("draft cannot be viewed", func(t *testing.T) {
		c := contractFixture(domainContract.StatusDraft)
		contracts := &contractmock.Repo{
			GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
				return c, nil
			},
		}
		uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

		if _, err := uc.View(context.Background(), c.ContractID); !errors.Is(err, errs.ErrInvalidTransition) {
			t.Fatalf("err = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestSign_ActivatesLoan(t *testing.T) {
	c := contractFixture(domainContract.StatusViewed)
	l := &domainLoan.Loan{ID: 3, LoanID: c.LoanID, Status: domainLoan.StatusApproved}
	var savedLoan *domainLoan.Loan
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, _ string) (*domainLoan.Loan, error) {
			return l, nil
		},
		SaveFn: func(_ context.Context, got *domainLoan.Loan) error {
			savedLoan = got
			return nil
		},
	}
	contracts := &contractmock.Repo{
		GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
			return c, nil
		},
	}
	uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts, Loans: loans}, nil)

	dto, err := uc.Sign(context.Background(), c.ContractID, "u1")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if dto.Status != string(domainContract.StatusSigned) || dto.DateSigned == nil {
		t.Fatalf("dto = %+v, want signed with timestamp", dto)
	}
	if savedLoan == nil || savedLoan.Status != domainLoan.StatusActive {
		t.Fatalf("loan = %+v, want active", savedLoan)
	}
}

func TestSign_InvalidStates(t *testing.T) {
	for _, from := range []domainContract.Status{
		domainContract.StatusDraft, domainContract.StatusSigned,
		domainContract.StatusExpired, domainContract.StatusDeclined,
	} {
		c := contractFixture(from)
		contracts := &contractmock.Repo{
			GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
				return c, nil
			},
		}
		uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)
		if _, err := uc.Sign(context.Background(), c.ContractID, "u1"); !errors.Is(err, errs.ErrInvalidTransition) {
			t.Fatalf("Sign from %s err = %v, want ErrInvalidTransition", from, err)
		}
	}
}

func TestCancel_ClearsArtifacts(t *testing.T) {
	c := contractFixture(domainContract.StatusSent)
	contracts := &contractmock.Repo{
		GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
			return c, nil
		},
	}
	uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

	dto, err := uc.Cancel(context.Background(), c.ContractID)
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if dto.Status != string(domainContract.StatusDraft) {
		t.Fatalf("status = %s, want draft", dto.Status)
	}
	if dto.DateSent != nil || dto.DateExpires != nil || dto.SignatureRequestID != "" || dto.SignatureURL != "" {
		t.Fatalf("artifacts not cleared: %+v", dto)
	}
}

func TestResend_RotatesSignatureRequest(t *testing.T) {
	c := contractFixture(domainContract.StatusViewed)
	oldReq := c.SignatureRequestID
	contracts := &contractmock.Repo{
		GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
			return c, nil
		},
	}
	n := newNotifierStub()
	uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, n)

	dto, err := uc.Resend(context.Background(), c.ContractID)
	if err != nil {
		t.Fatalf("Resend error: %v", err)
	}
	if dto.Status != string(domainContract.StatusViewed) {
		t.Fatalf("status changed on resend: %s", dto.Status)
	}
	if dto.SignatureRequestID == oldReq || dto.SignatureRequestID == "" {
		t.Fatalf("signature request not rotated: %q", dto.SignatureRequestID)
	}
	if got := n.await(t); got.event != "contract_resent" {
		t.Fatalf("dispatched event = %s, want contract_resent", got.event)
	}
}

func TestResend_TerminalRefused(t *testing.T) {
	c := contractFixture(domainContract.StatusSigned)
	contracts := &contractmock.Repo{
		GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
			return c, nil
		},
	}
	uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)
	if _, err := uc.Resend(context.Background(), c.ContractID); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestDecline(t *testing.T) {
	c := contractFixture(domainContract.StatusSent)
	contracts := &contractmock.Repo{
		GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
			return c, nil
		},
	}
	uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

	if _, err := uc.Decline(context.Background(), c.ContractID, "auditor"); !errors.Is(err, ErrDeclineNotAllowed) {
		t.Fatalf("unauthorized role err = %v, want ErrDeclineNotAllowed", err)
	}

	dto, err := uc.Decline(context.Background(), c.ContractID, "user")
	if err != nil {
		t.Fatalf("Decline error: %v", err)
	}
	if dto.Status != string(domainContract.StatusDeclined) {
		t.Fatalf("status = %s, want declined", dto.Status)
	}
}

func TestExpire(t *testing.T) {
	t.Run("past window expires", func(t *testing.T) {
		c := contractFixture(domainContract.StatusSent)
		past := time.Now().UTC().Add(-time.Hour)
		c.DateExpires = &past
		contracts := &contractmock.Repo{
			GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
				return c, nil
			},
		}
		uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

		dto, err := uc.Expire(context.Background(), c.ContractID, time.Now().UTC())
		if err != nil {
			t.Fatalf("Expire error: %v", err)
		}
		if dto.Status != string(domainContract.StatusExpired) {
			t.Fatalf("status = %s, want expired", dto.Status)
		}
	})

	t.Run("not yet due", func(t *testing.T) {
		c := contractFixture(domainContract.StatusSent)
		contracts := &contractmock.Repo{
			GetByContractIDForUpdateFn: func(_ context.Context, _ string) (*domainContract.Contract, error) {
				return c, nil
			},
		}
		uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

		if _, err := uc.Expire(context.Background(), c.ContractID, time.Now().UTC()); !errors.Is(err, errs.ErrInvalidTransition) {
			t.Fatalf("err = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestExpireDue_SkipsRacedContracts(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	a := contractFixture(domainContract.StatusSent)
	a.ContractID = "aaaa1111aaaa1111aaaa1111aaaa1111"
	a.DateExpires = &past
	b := contractFixture(domainContract.StatusViewed)
	b.ContractID = "bbbb2222bbbb2222bbbb2222bbbb2222"
	b.DateExpires = &past

	contracts := &contractmock.Repo{
		ListExpirableFn: func(_ context.Context, _ time.Time) ([]domainContract.Contract, error) {
			return []domainContract.Contract{*a, *b}, nil
		},
		GetByContractIDForUpdateFn: func(_ context.Context, contractID string) (*domainContract.Contract, error) {
			if contractID == a.ContractID {
				return a, nil
			}
			// b was signed between the sweep's list and its lock
			raced := *b
			raced.Status = domainContract.StatusSigned
			return &raced, nil
		},
	}
	uc := newTestUsecase(contracts, uow.Repos{Contracts: contracts}, nil)

	n, err := uc.ExpireDue(context.Background(), now)
	if err != nil {
		t.Fatalf("ExpireDue error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expired = %d, want 1", n)
	}
	if a.Status != domainContract.StatusExpired {
		t.Fatalf("contract a status = %s, want expired", a.Status)
	}
}
