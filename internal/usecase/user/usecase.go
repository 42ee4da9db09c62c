package user

import (
	"context"
	"errors"

	"loanflow-backend/internal/domain/errs"
	domainUser "loanflow-backend/internal/domain/user"
	"loanflow-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	users domainUser.Repository
}

func NewUsecase(users domainUser.Repository) *Usecase {
	return &Usecase{users: users}
}

type RegisterInput struct {
	Personal   domainUser.PersonalInfo   `json:"personal"`
	Address    domainUser.AddressInfo    `json:"address"`
	Employment domainUser.EmploymentInfo `json:"employment"`
	Financial  domainUser.FinancialInfo  `json:"financial"`
}

type UserDTO struct {
	UserID     string                    `json:"user_id"`
	Personal   domainUser.PersonalInfo   `json:"personal"`
	Address    domainUser.AddressInfo    `json:"address"`
	Employment domainUser.EmploymentInfo `json:"employment"`
	Financial  domainUser.FinancialInfo  `json:"financial"`
	Status     string                    `json:"status"`
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	usr := &domainUser.User{
		UserID:     id.NewID32(),
		Personal:   in.Personal,
		Address:    in.Address,
		Employment: in.Employment,
		Financial:  in.Financial,
		Status:     domainUser.StatusActive,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) Update(ctx context.Context, userID string, in RegisterInput) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	usr.Personal = in.Personal
	usr.Address = in.Address
	usr.Employment = in.Employment
	usr.Financial = in.Financial
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

// Deactivate soft-disables the user; documents, loans, and applications stay
// addressable — cascade is an explicit orchestration step, never implicit.
func (u *Usecase) Deactivate(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	usr.Status = domainUser.StatusDeactivated
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

func toDTO(usr *domainUser.User) *UserDTO {
	return &UserDTO{
		UserID:     usr.UserID,
		Personal:   usr.Personal,
		Address:    usr.Address,
		Employment: usr.Employment,
		Financial:  usr.Financial,
		Status:     string(usr.Status),
	}
}
