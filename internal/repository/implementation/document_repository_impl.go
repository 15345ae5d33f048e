package implementation

import (
	"context"
	"errors"
	"time"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/mapper"
	"ai-docgen-be/internal/model"
	"ai-docgen-be/internal/repository/contract"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRepositoryImpl) Upsert(ctx context.Context, doc *entity.Document) error {
	var existing model.Document
	err := r.db.WithContext(ctx).
		Where("repository_id = ? AND document_path = ?", doc.RepositoryId, doc.DocumentPath).
		First(&existing).Error

	m := r.mapper.ToModel(doc)
	switch {
	case err == nil:
		// Keep the stored id and creation time, replace the rest.
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = time.Now()
		if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if m.Id == uuid.Nil {
			m.Id = uuid.New()
		}
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
	default:
		return err
	}

	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	var m model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var models []*model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) FindRecent(ctx context.Context, repositoryId uuid.UUID, limit int) ([]*entity.Document, error) {
	var models []*model.Document
	err := r.db.WithContext(ctx).
		Where("repository_id = ?", repositoryId).
		Order("updated_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) DeleteByIds(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Document{}).Error
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Document{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
