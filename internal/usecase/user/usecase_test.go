package user

import (
	"context"
	"errors"
	"testing"

	"loanflow-backend/internal/domain/errs"
	domainUser "loanflow-backend/internal/domain/user"
	"loanflow-backend/internal/testutil/usermock"
)

func TestRegister(t *testing.T) {
	var created *domainUser.User
	users := &usermock.Repo{
		CreateFn: func(_ context.Context, u *domainUser.User) error {
			created = u
			return nil
		},
	}
	uc := NewUsecase(users)

	dto, err := uc.Register(context.Background(), RegisterInput{
		Personal: domainUser.PersonalInfo{FirstName: "Thandi", LastName: "Nkosi", Phone: "0821234567"},
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if len(dto.UserID) != 32 {
		t.Fatalf("user id = %q, want 32-char id", dto.UserID)
	}
	if dto.Status != string(domainUser.StatusActive) {
		t.Fatalf("status = %s, want active", dto.Status)
	}
	if created == nil || created.Personal.FirstName != "Thandi" {
		t.Fatalf("created = %+v", created)
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := NewUsecase(&usermock.Repo{})
	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_ReplacesSections(t *testing.T) {
	existing := &domainUser.User{
		UserID:   "u1",
		Personal: domainUser.PersonalInfo{FirstName: "Thandi"},
		Status:   domainUser.StatusActive,
	}
	var saved *domainUser.User
	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, _ string) (*domainUser.User, error) {
			return existing, nil
		},
		SaveFn: func(_ context.Context, u *domainUser.User) error {
			saved = u
			return nil
		},
	}
	uc := NewUsecase(users)

	dto, err := uc.Update(context.Background(), "u1", RegisterInput{
		Personal: domainUser.PersonalInfo{FirstName: "Thandi", LastName: "Dlamini"},
		Address:  domainUser.AddressInfo{City: "Durban"},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if dto.Personal.LastName != "Dlamini" || dto.Address.City != "Durban" {
		t.Fatalf("dto = %+v", dto)
	}
	if saved == nil || saved.Employment.Employer != "" {
		t.Fatalf("saved = %+v, want employment replaced with empty input", saved)
	}
}

func TestDeactivate(t *testing.T) {
	existing := &domainUser.User{UserID: "u1", Status: domainUser.StatusActive}
	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, _ string) (*domainUser.User, error) {
			return existing, nil
		},
	}
	uc := NewUsecase(users)

	dto, err := uc.Deactivate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if dto.Status != string(domainUser.StatusDeactivated) {
		t.Fatalf("status = %s, want deactivated", dto.Status)
	}
}
