package implementation

import (
	"context"
	"errors"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/mapper"
	"ai-docgen-be/internal/model"
	"ai-docgen-be/internal/repository/contract"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepositoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RepositoryMapper
}

func NewRepositoryRepository(db *gorm.DB) contract.RepositoryRepository {
	return &RepositoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewRepositoryMapper(),
	}
}

func (r *RepositoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RepositoryRepositoryImpl) Create(ctx context.Context, repo *entity.Repository) error {
	m := r.mapper.ToModel(repo)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*repo = *r.mapper.ToEntity(m)
	return nil
}

func (r *RepositoryRepositoryImpl) Update(ctx context.Context, repo *entity.Repository) error {
	m := r.mapper.ToModel(repo)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*repo = *r.mapper.ToEntity(m)
	return nil
}

func (r *RepositoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Repository{}, id).Error
}

func (r *RepositoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Repository, error) {
	var m model.Repository
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RepositoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Repository, error) {
	var models []*model.Repository
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RepositoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Repository{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
