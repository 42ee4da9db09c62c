package mysql

import (
	"context"
	"time"

	contractDomain "loanflow-backend/internal/domain/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Save(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) GetByContractID(ctx context.Context, contractID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).Where("contract_id = ?", contractID).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByContractIDForUpdate(ctx context.Context, contractID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contract_id = ?", contractID).
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetOpenByLoanID(ctx context.Context, loanID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND status IN ?", loanID, []contractDomain.Status{
			contractDomain.StatusDraft, contractDomain.StatusSent, contractDomain.StatusViewed,
		}).
		Order("date_created DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) ListExpirable(ctx context.Context, now time.Time) ([]contractDomain.Contract, error) {
	var out []contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("status IN ? AND date_expires IS NOT NULL AND date_expires <= ?",
			[]contractDomain.Status{contractDomain.StatusSent, contractDomain.StatusViewed}, now).
		Find(&out)
	return out, res.Error
}
