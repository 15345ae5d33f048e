package mapper

import (
	"time"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/model"
)

type ArtifactMapper struct{}

func NewArtifactMapper() *ArtifactMapper {
	return &ArtifactMapper{}
}

func (m *ArtifactMapper) ToEntity(a *model.Artifact) *entity.Artifact {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Artifact{
		Id:           a.Id,
		RepositoryId: a.RepositoryId,
		Path:         a.Path,
		Language:     a.Language,
		ArtifactType: a.ArtifactType,
		Size:         a.Size,
		ContentHash:  a.ContentHash,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ArtifactMapper) ToModel(a *entity.Artifact) *model.Artifact {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Artifact{
		Id:           a.Id,
		RepositoryId: a.RepositoryId,
		Path:         a.Path,
		Language:     a.Language,
		ArtifactType: a.ArtifactType,
		Size:         a.Size,
		ContentHash:  a.ContentHash,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ArtifactMapper) ToEntities(artifacts []*model.Artifact) []*entity.Artifact {
	entities := make([]*entity.Artifact, len(artifacts))
	for i, a := range artifacts {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func (m *ArtifactMapper) ToModels(artifacts []*entity.Artifact) []*model.Artifact {
	models := make([]*model.Artifact, len(artifacts))
	for i, a := range artifacts {
		models[i] = m.ToModel(a)
	}
	return models
}
