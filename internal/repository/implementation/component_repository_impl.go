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

type ComponentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ComponentMapper
}

func NewComponentRepository(db *gorm.DB) contract.ComponentRepository {
	return &ComponentRepositoryImpl{
		db:     db,
		mapper: mapper.NewComponentMapper(),
	}
}

func (r *ComponentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ComponentRepositoryImpl) ReplaceAll(ctx context.Context, repositoryId uuid.UUID, components []*entity.Component) error {
	if err := r.db.WithContext(ctx).Where("repository_id = ?", repositoryId).Delete(&model.Component{}).Error; err != nil {
		return err
	}
	if len(components) == 0 {
		return nil
	}

	// Extractors can emit the same id twice within one pass (overloads,
	// decorator sharing a name with its target). First occurrence wins.
	seen := make(map[string]bool, len(components))
	models := make([]*model.Component, 0, len(components))
	for _, c := range components {
		if seen[c.Id] {
			continue
		}
		seen[c.Id] = true
		m := r.mapper.ToModel(c)
		m.RepositoryId = repositoryId
		models = append(models, m)
	}

	return r.db.WithContext(ctx).CreateInBatches(models, 200).Error
}

func (r *ComponentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Component, error) {
	var models []*model.Component
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ComponentRepositoryImpl) FindByIds(ctx context.Context, repositoryId uuid.UUID, ids []string) ([]*entity.Component, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []*model.Component
	err := r.db.WithContext(ctx).
		Where("repository_id = ? AND id IN ?", repositoryId, ids).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ComponentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Component{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
