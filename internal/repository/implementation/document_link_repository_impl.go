package implementation

import (
	"context"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/mapper"
	"ai-docgen-be/internal/model"
	"ai-docgen-be/internal/repository/contract"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentLinkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentLinkRepository(db *gorm.DB) contract.DocumentLinkRepository {
	return &DocumentLinkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentLinkRepositoryImpl) CreateAll(ctx context.Context, links []*entity.DocumentLink) error {
	if len(links) == 0 {
		return nil
	}
	models := make([]*model.DocumentLink, len(links))
	for i, l := range links {
		m := r.mapper.LinkToModel(l)
		if m.Id == uuid.Nil {
			m.Id = uuid.New()
		}
		models[i] = m
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *DocumentLinkRepositoryImpl) DeleteBySourceDocumentId(ctx context.Context, sourceDocumentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("source_document_id = ?", sourceDocumentId).
		Delete(&model.DocumentLink{}).Error
}

func (r *DocumentLinkRepositoryImpl) DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error {
	if len(documentIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("source_document_id IN ? OR target_document_id IN ?", documentIds, documentIds).
		Delete(&model.DocumentLink{}).Error
}

func (r *DocumentLinkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentLink, error) {
	var models []*model.DocumentLink
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.LinksToEntities(models), nil
}
