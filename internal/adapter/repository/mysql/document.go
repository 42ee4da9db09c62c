package mysql

import (
	"context"

	docDomain "loanflow-backend/internal/domain/document"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) Save(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DocumentRepository) GetByDocumentID(ctx context.Context, documentID string) (*docDomain.Document, error) {
	var out docDomain.Document
	res := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*docDomain.Document, error) {
	var out docDomain.Document
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("document_id = ?", documentID).
		First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) ListByUserID(ctx context.Context, userID string) ([]docDomain.Document, error) {
	var out []docDomain.Document
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_uploaded ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) VerifiedTypesByUserID(ctx context.Context, userID string) ([]docDomain.Type, error) {
	var out []docDomain.Type
	res := r.db.WithContext(ctx).
		Model(&docDomain.Document{}).
		Distinct("type").
		Where("user_id = ? AND verification = ?", userID, docDomain.VerificationVerified).
		Pluck("type", &out)
	return out, res.Error
}
