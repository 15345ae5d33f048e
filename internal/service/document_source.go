package service

import (
	ctxPkg "context"

	"ai-docgen-be/internal/repository/unitofwork"
	docContext "ai-docgen-be/pkg/docgen/context"

	"github.com/google/uuid"
)

// documentSource bridges the persisted document store into the context
// loader without exposing the repository layer to pkg code.
type documentSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentSource(uowFactory unitofwork.RepositoryFactory) docContext.DocumentSource {
	return &documentSource{uowFactory: uowFactory}
}

func (ds *documentSource) RecentDocuments(ctx ctxPkg.Context, repositoryID uuid.UUID, limit int) ([]*docContext.SourceDocument, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindRecent(ctx, repositoryID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]*docContext.SourceDocument, 0, len(docs))
	for _, doc := range docs {
		updatedAt := doc.CreatedAt
		if doc.UpdatedAt != nil {
			updatedAt = *doc.UpdatedAt
		}
		out = append(out, &docContext.SourceDocument{
			ID:           doc.Id,
			Title:        doc.Title,
			DocumentPath: doc.DocumentPath,
			Summary:      doc.Summary,
			DocumentType: doc.DocumentType,
			UpdatedAt:    updatedAt,
		})
	}
	return out, nil
}
