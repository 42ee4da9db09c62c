package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByDocumentID(ctx context.Context, documentID string) (*Document, error)
	GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*Document, error)
	ListByUserID(ctx context.Context, userID string) ([]Document, error)
	// VerifiedTypesByUserID returns the distinct document types the user has
	// at least one verified document for.
	VerifiedTypesByUserID(ctx context.Context, userID string) ([]Type, error)
	Save(ctx context.Context, d *Document) error
}
