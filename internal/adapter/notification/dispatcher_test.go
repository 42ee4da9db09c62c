package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainUser "loanflow-backend/internal/domain/user"
	"loanflow-backend/internal/testutil/sendermock"
	"loanflow-backend/internal/testutil/usermock"
)

func borrower() *usermock.Repo {
	return &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, userID string) (*domainUser.User, error) {
			return &domainUser.User{
				UserID:   userID,
				Personal: domainUser.PersonalInfo{Phone: "0821234567"},
			}, nil
		},
	}
}

func TestDispatch_NormalizesPhoneAndRenders(t *testing.T) {
	s := &sendermock.Sender{}
	d := NewDispatcher(borrower(), s, time.Second)

	d.Dispatch(context.Background(), "u1", "contract_sent", map[string]string{
		"signature_url": "https://sign.test/r/abc",
	})

	last, ok := s.Last()
	if !ok {
		t.Fatal("expected one send")
	}
	if last.To != "+27821234567" {
		t.Fatalf("to = %s, want +27821234567", last.To)
	}
	if !strings.Contains(last.Body, "https://sign.test/r/abc") {
		t.Fatalf("body = %q, want rendered signature url", last.Body)
	}
	if strings.Contains(last.Body, "{signature_url}") {
		t.Fatalf("placeholder left unrendered: %q", last.Body)
	}
}

func TestDispatch_SenderFailureIsSwallowed(t *testing.T) {
	s := &sendermock.Sender{Err: errors.New("gateway down")}
	d := NewDispatcher(borrower(), s, time.Second)

	// must not panic or propagate
	d.Dispatch(context.Background(), "u1", "contract_sent", nil)

	if s.Count() != 1 {
		t.Fatalf("sends = %d, want 1", s.Count())
	}
}

func TestDispatch_UnknownUserSendsNothing(t *testing.T) {
	s := &sendermock.Sender{}
	d := NewDispatcher(&usermock.Repo{}, s, time.Second)

	d.Dispatch(context.Background(), "nobody", "contract_sent", nil)

	if s.Count() != 0 {
		t.Fatalf("sends = %d, want 0", s.Count())
	}
}

func TestDispatch_UnknownEventFallsBackToName(t *testing.T) {
	s := &sendermock.Sender{}
	d := NewDispatcher(borrower(), s, time.Second)

	d.Dispatch(context.Background(), "u1", "loan_activated", nil)

	last, ok := s.Last()
	if !ok || last.Body != "loan_activated" {
		t.Fatalf("body = %+v, want event name fallback", last)
	}
}

func TestDispatch_IgnoresCallerCancellation(t *testing.T) {
	s := &sendermock.Sender{}
	d := NewDispatcher(borrower(), s, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, "u1", "contract_sent", nil)

	if s.Count() != 1 {
		t.Fatalf("sends = %d, want 1 despite cancelled caller context", s.Count())
	}
}
