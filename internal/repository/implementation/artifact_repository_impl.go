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
	"gorm.io/gorm/clause"
)

type ArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArtifactMapper
}

func NewArtifactRepository(db *gorm.DB) contract.ArtifactRepository {
	return &ArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewArtifactMapper(),
	}
}

func (r *ArtifactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

var artifactConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "repository_id"}, {Name: "path"}},
	DoUpdates: clause.AssignmentColumns([]string{"language", "artifact_type", "size", "content_hash", "updated_at"}),
}

func (r *ArtifactRepositoryImpl) Upsert(ctx context.Context, artifact *entity.Artifact) error {
	m := r.mapper.ToModel(artifact)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Clauses(artifactConflict).Create(m).Error; err != nil {
		return err
	}
	*artifact = *r.mapper.ToEntity(m)
	return nil
}

func (r *ArtifactRepositoryImpl) UpsertAll(ctx context.Context, artifacts []*entity.Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	models := r.mapper.ToModels(artifacts)
	for _, m := range models {
		if m.Id == uuid.Nil {
			m.Id = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Clauses(artifactConflict).CreateInBatches(models, 200).Error
}

func (r *ArtifactRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Artifact, error) {
	var m model.Artifact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ArtifactRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Artifact, error) {
	var models []*model.Artifact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ArtifactRepositoryImpl) DeleteAllByRepositoryId(ctx context.Context, repositoryId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("repository_id = ?", repositoryId).Delete(&model.Artifact{}).Error
}

func (r *ArtifactRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Artifact{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
