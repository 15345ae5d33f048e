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

type GenerationSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationMapper
}

func NewGenerationSessionRepository(db *gorm.DB) contract.GenerationSessionRepository {
	return &GenerationSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationMapper(),
	}
}

func (r *GenerationSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationSessionRepositoryImpl) Create(ctx context.Context, session *entity.GenerationSession) error {
	m := r.mapper.SessionToModel(session)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *GenerationSessionRepositoryImpl) Update(ctx context.Context, session *entity.GenerationSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *GenerationSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error) {
	var m model.GenerationSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *GenerationSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationSession, error) {
	var models []*model.GenerationSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SessionsToEntities(models), nil
}
