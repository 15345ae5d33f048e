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

type GenerationMetricRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationMapper
}

func NewGenerationMetricRepository(db *gorm.DB) contract.GenerationMetricRepository {
	return &GenerationMetricRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationMapper(),
	}
}

func (r *GenerationMetricRepositoryImpl) Create(ctx context.Context, metric *entity.GenerationMetric) error {
	m := r.mapper.MetricToModel(metric)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*metric = *r.mapper.MetricToEntity(m)
	return nil
}

func (r *GenerationMetricRepositoryImpl) DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error {
	if len(documentIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("document_id IN ?", documentIds).
		Delete(&model.GenerationMetric{}).Error
}

func (r *GenerationMetricRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationMetric, error) {
	var models []*model.GenerationMetric
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MetricsToEntities(models), nil
}
