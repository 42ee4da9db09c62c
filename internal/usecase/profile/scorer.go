// Package profile computes the 0-100 profile completion score used to steer
// applicants toward a fundable profile.
package profile

import (
	"context"
	"errors"
	"math"

	domainDoc "loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/errs"
	domainUser "loanflow-backend/internal/domain/user"

	"gorm.io/gorm"
)

type Result struct {
	Score        int      `json:"score"`
	MissingItems []string `json:"missing_items,omitempty"`
}

type Usecase struct {
	users domainUser.Repository
	docs  domainDoc.Repository
}

func NewUsecase(users domainUser.Repository, docs domainDoc.Repository) *Usecase {
	return &Usecase{users: users, docs: docs}
}

func (u *Usecase) Score(ctx context.Context, userID string) (*Result, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	docs, err := u.docs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	r := ScoreProfile(usr, docs)
	return &r, nil
}

type field struct {
	label   string
	present bool
}

// ScoreProfile is the pure scoring function: one point per present field,
// with verified documents worth a full point and pending ones half.
func ScoreProfile(u *domainUser.User, docs []domainDoc.Document) Result {
	categories := []struct {
		name   string
		fields []field
	}{
		{"personal", []field{
			{"first name", u.Personal.FirstName != ""},
			{"last name", u.Personal.LastName != ""},
			{"email", u.Personal.Email != ""},
			{"phone number", u.Personal.Phone != ""},
			{"date of birth", u.Personal.DateOfBirth != ""},
		}},
		{"address", []field{
			{"street", u.Address.Street != ""},
			{"city", u.Address.City != ""},
			{"province", u.Address.Province != ""},
			{"postal code", u.Address.PostalCode != ""},
		}},
		{"employment", []field{
			{"employer", u.Employment.Employer != ""},
			{"job title", u.Employment.JobTitle != ""},
			{"employment start date", u.Employment.EmployedSince != ""},
		}},
		{"financial", []field{
			{"monthly income", u.Financial.MonthlyIncome > 0},
			{"monthly expenses", u.Financial.MonthlyExpenses > 0},
			{"bank name", u.Financial.BankName != ""},
			{"account number", u.Financial.AccountNumber != ""},
		}},
	}

	var earned, total float64
	var missing []string

	for _, cat := range categories {
		reported := false
		for _, f := range cat.fields {
			total++
			if f.present {
				earned++
			} else if !reported {
				// only the first unmet requirement per category
				missing = append(missing, cat.name+": "+f.label+" is required")
				reported = true
			}
		}
	}

	// best verification status per required type wins
	best := map[domainDoc.Type]domainDoc.VerificationStatus{}
	for _, d := range docs {
		cur, ok := best[d.Type]
		if !ok || rank(d.Verification) > rank(cur) {
			best[d.Type] = d.Verification
		}
	}
	for _, t := range domainDoc.RequiredTypes() {
		total++
		switch best[t] {
		case domainDoc.VerificationVerified:
			earned++
		case domainDoc.VerificationPending:
			earned += 0.5
		default:
			missing = append(missing, "document: "+string(t)+" not uploaded or rejected")
		}
	}

	score := int(math.Round(100 * earned / total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Result{Score: score, MissingItems: missing}
}

func rank(s domainDoc.VerificationStatus) int {
	switch s {
	case domainDoc.VerificationVerified:
		return 2
	case domainDoc.VerificationPending:
		return 1
	}
	return 0
}
