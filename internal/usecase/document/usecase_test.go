package document

import (
	"context"
	"errors"
	"testing"

	domainApp "loanflow-backend/internal/domain/application"
	domainDoc "loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/errs"
	"loanflow-backend/internal/domain/uow"
	domainUser "loanflow-backend/internal/domain/user"
	"loanflow-backend/internal/testutil/applicationmock"
	"loanflow-backend/internal/testutil/documentmock"
	"loanflow-backend/internal/testutil/uowmock"
	"loanflow-backend/internal/testutil/usermock"
)

func knownUser() *usermock.Repo {
	return &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, userID string) (*domainUser.User, error) {
			return &domainUser.User{UserID: userID}, nil
		},
	}
}

func TestUpload(t *testing.T) {
	var created *domainDoc.Document
	docs := &documentmock.Repo{
		CreateFn: func(_ context.Context, d *domainDoc.Document) error {
			created = d
			return nil
		},
	}
	uc := NewUsecase(docs, &uowmock.UoW{Repos: uow.Repos{Users: knownUser(), Documents: docs}})

	dto, err := uc.Upload(context.Background(), UploadInput{
		UserID: "u1", Type: domainDoc.TypePayslip, Notes: "july payslip",
	})
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if dto.Verification != domainDoc.VerificationPending {
		t.Fatalf("verification = %s, want pending", dto.Verification)
	}
	if created == nil || len(created.DocumentID) != 32 || created.Type != domainDoc.TypePayslip {
		t.Fatalf("created = %+v", created)
	}
}

func TestUpload_UnknownType(t *testing.T) {
	uc := NewUsecase(&documentmock.Repo{}, &uowmock.UoW{})
	if _, err := uc.Upload(context.Background(), UploadInput{UserID: "u1", Type: "tax_return"}); err == nil {
		t.Fatal("expected error for unknown document type")
	}
}

func TestUpload_UnknownUser(t *testing.T) {
	docs := &documentmock.Repo{}
	uc := NewUsecase(docs, &uowmock.UoW{Repos: uow.Repos{Users: &usermock.Repo{}, Documents: docs}})
	if _, err := uc.Upload(context.Background(), UploadInput{
		UserID: "nobody", Type: domainDoc.TypeIdentification,
	}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestVerify(t *testing.T) {
	cases := []struct {
		name    string
		in      VerifyInput
		wantErr error
	}{
		{"verify ok", VerifyInput{DocumentID: "d1", Outcome: domainDoc.VerificationVerified}, nil},
		{"reject with note ok", VerifyInput{DocumentID: "d1", Outcome: domainDoc.VerificationRejected, Note: "blurry scan"}, nil},
		{"reject without note", VerifyInput{DocumentID: "d1", Outcome: domainDoc.VerificationRejected}, domainDoc.ErrNoteRequired},
		{"pending is not an outcome", VerifyInput{DocumentID: "d1", Outcome: domainDoc.VerificationPending}, errs.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &domainDoc.Document{DocumentID: "d1", UserID: "u1", Type: domainDoc.TypePayslip, Verification: domainDoc.VerificationPending}
			docs := &documentmock.Repo{
				GetByDocumentIDForUpdateFn: func(_ context.Context, _ string) (*domainDoc.Document, error) {
					return d, nil
				},
			}
			apps := &applicationmock.Repo{}
			uc := NewUsecase(docs, &uowmock.UoW{Repos: uow.Repos{Documents: docs, Applications: apps}})

			dto, err := uc.Verify(context.Background(), tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify error: %v", err)
			}
			if dto.Verification != tc.in.Outcome {
				t.Fatalf("verification = %s, want %s", dto.Verification, tc.in.Outcome)
			}
		})
	}
}

func TestVerify_OverwritesTerminalStatus(t *testing.T) {
	d := &domainDoc.Document{DocumentID: "d1", UserID: "u1", Type: domainDoc.TypePayslip, Verification: domainDoc.VerificationRejected}
	docs := &documentmock.Repo{
		GetByDocumentIDForUpdateFn: func(_ context.Context, _ string) (*domainDoc.Document, error) {
			return d, nil
		},
	}
	uc := NewUsecase(docs, &uowmock.UoW{Repos: uow.Repos{Documents: docs, Applications: &applicationmock.Repo{}}})

	dto, err := uc.Verify(context.Background(), VerifyInput{DocumentID: "d1", Outcome: domainDoc.VerificationVerified})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if dto.Verification != domainDoc.VerificationVerified {
		t.Fatalf("verification = %s, want verified", dto.Verification)
	}
}

func TestVerify_ClearsRequiredActionWhenGateHolds(t *testing.T) {
	d := &domainDoc.Document{DocumentID: "d1", UserID: "u1", Type: domainDoc.TypePayslip}
	open := domainApp.Application{
		ApplicationID:  "a1",
		UserID:         "u1",
		Status:         domainApp.StatusDocumentReview,
		RequiredAction: "upload payslip",
	}
	var savedApps []domainApp.Application
	docs := &documentmock.Repo{
		GetByDocumentIDForUpdateFn: func(_ context.Context, _ string) (*domainDoc.Document, error) {
			return d, nil
		},
		VerifiedTypesByUserIDFn: func(_ context.Context, _ string) ([]domainDoc.Type, error) {
			return domainDoc.RequiredTypes(), nil
		},
	}
	apps := &applicationmock.Repo{
		ListOpenByUserIDFn: func(_ context.Context, _ string) ([]domainApp.Application, error) {
			return []domainApp.Application{open}, nil
		},
		SaveFn: func(_ context.Context, a *domainApp.Application) error {
			savedApps = append(savedApps, *a)
			return nil
		},
	}
	uc := NewUsecase(docs, &uowmock.UoW{Repos: uow.Repos{Documents: docs, Applications: apps}})

	if _, err := uc.Verify(context.Background(), VerifyInput{DocumentID: "d1", Outcome: domainDoc.VerificationVerified}); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if len(savedApps) != 1 || savedApps[0].RequiredAction != "" {
		t.Fatalf("saved apps = %+v, want one with cleared requiredAction", savedApps)
	}
}

func TestVerify_GateStillOpenLeavesApplicationsAlone(t *testing.T) {
	d := &domainDoc.Document{DocumentID: "d1", UserID: "u1", Type: domainDoc.TypePayslip}
	docs := &documentmock.Repo{
		GetByDocumentIDForUpdateFn: func(_ context.Context, _ string) (*domainDoc.Document, error) {
			return d, nil
		},
		VerifiedTypesByUserIDFn: func(_ context.Context, _ string) ([]domainDoc.Type, error) {
			return []domainDoc.Type{domainDoc.TypePayslip}, nil
		},
	}
	apps := &applicationmock.Repo{
		ListOpenByUserIDFn: func(_ context.Context, _ string) ([]domainApp.Application, error) {
			t.Fatal("must not list applications while the gate is open")
			return nil, nil
		},
	}
	uc := NewUsecase(docs, &uowmock.UoW{Repos: uow.Repos{Documents: docs, Applications: apps}})

	if _, err := uc.Verify(context.Background(), VerifyInput{DocumentID: "d1", Outcome: domainDoc.VerificationVerified}); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
}

func TestIsSatisfied(t *testing.T) {
	cases := []struct {
		name        string
		verified    []domainDoc.Type
		want        bool
		wantMissing int
	}{
		{"all four verified", domainDoc.RequiredTypes(), true, 0},
		{"none verified", nil, false, 4},
		{"two verified", []domainDoc.Type{domainDoc.TypeIdentification, domainDoc.TypeBankStatement}, false, 2},
		{"extra type does not substitute", []domainDoc.Type{
			domainDoc.TypeIdentification, domainDoc.TypeProofOfResidence,
			domainDoc.TypeBankStatement, domainDoc.TypeOther,
		}, false, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			docs := &documentmock.Repo{
				VerifiedTypesByUserIDFn: func(_ context.Context, _ string) ([]domainDoc.Type, error) {
					return tc.verified, nil
				},
			}
			uc := NewUsecase(docs, &uowmock.UoW{})

			ok, missing, err := uc.IsSatisfied(context.Background(), "u1", domainDoc.RequiredTypes())
			if err != nil {
				t.Fatalf("IsSatisfied error: %v", err)
			}
			if ok != tc.want || len(missing) != tc.wantMissing {
				t.Fatalf("ok=%v missing=%v, want ok=%v len=%d", ok, missing, tc.want, tc.wantMissing)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := NewUsecase(&documentmock.Repo{}, &uowmock.UoW{})
	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
