package service

import (
	"context"

	"github.com/google/uuid"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/repository/specification"
	"ai-docgen-be/internal/repository/unitofwork"
)

type IDocumentService interface {
	List(ctx context.Context, repositoryId uuid.UUID) ([]*dto.DocumentListItem, error)
	ShowByPath(ctx context.Context, repositoryId uuid.UUID, documentPath string) (*dto.ShowDocumentResponse, error)
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
	}
}

func (s *documentService) List(ctx context.Context, repositoryId uuid.UUID) ([]*dto.DocumentListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByRepositoryID{RepositoryID: repositoryId},
		specification.OrderBy{Field: "document_path"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DocumentListItem, len(docs))
	for i, doc := range docs {
		updatedAt := doc.CreatedAt
		if doc.UpdatedAt != nil {
			updatedAt = *doc.UpdatedAt
		}
		items[i] = &dto.DocumentListItem{
			Id:           doc.Id,
			DocumentPath: doc.DocumentPath,
			Title:        doc.Title,
			DocumentType: doc.DocumentType,
			Summary:      doc.Summary,
			UpdatedAt:    updatedAt,
		}
	}
	return items, nil
}

func (s *documentService) ShowByPath(ctx context.Context, repositoryId uuid.UUID, documentPath string) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByRepositoryID{RepositoryID: repositoryId},
		specification.ByDocumentPath{DocumentPath: documentPath},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	links, err := uow.DocumentLinkRepository().FindAll(ctx,
		specification.BySourceDocumentID{SourceDocumentID: doc.Id},
	)
	if err != nil {
		return nil, err
	}

	linkItems := make([]dto.DocumentLinkItem, 0, len(links))
	for _, link := range links {
		target, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: link.TargetDocumentId})
		if err != nil || target == nil {
			continue
		}
		linkItems = append(linkItems, dto.DocumentLinkItem{
			TargetDocumentId: link.TargetDocumentId,
			TargetPath:       target.DocumentPath,
			LinkType:         link.LinkType,
		})
	}

	return &dto.ShowDocumentResponse{
		Id:           doc.Id,
		RepositoryId: doc.RepositoryId,
		DocumentPath: doc.DocumentPath,
		Title:        doc.Title,
		Content:      doc.Content,
		Summary:      doc.Summary,
		DocumentType: doc.DocumentType,
		ComponentIds: doc.ComponentIds,
		Links:        linkItems,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
