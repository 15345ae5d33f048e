package contract

import (
	"context"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	// Upsert inserts or updates keyed on (repository_id, document_path)
	// and writes the row's id back into the entity.
	Upsert(ctx context.Context, doc *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	// FindRecent returns up to limit documents for the repository ordered
	// by most recent update first.
	FindRecent(ctx context.Context, repositoryId uuid.UUID, limit int) ([]*entity.Document, error)
	DeleteByIds(ctx context.Context, ids []uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type DocumentLinkRepository interface {
	CreateAll(ctx context.Context, links []*entity.DocumentLink) error
	DeleteBySourceDocumentId(ctx context.Context, sourceDocumentId uuid.UUID) error
	DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentLink, error)
}
