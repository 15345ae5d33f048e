package mapper

import (
	"time"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/model"
)

type RepositoryMapper struct{}

func NewRepositoryMapper() *RepositoryMapper {
	return &RepositoryMapper{}
}

func (m *RepositoryMapper) ToEntity(r *model.Repository) *entity.Repository {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Repository{
		Id:            r.Id,
		Name:          r.Name,
		Provider:      entity.RepositoryProvider(r.Provider),
		Ref:           r.Ref,
		DefaultBranch: r.DefaultBranch,
		Status:        entity.RepositoryStatus(r.Status),
		LastSessionId: r.LastSessionId,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *RepositoryMapper) ToModel(r *entity.Repository) *model.Repository {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Repository{
		Id:            r.Id,
		Name:          r.Name,
		Provider:      string(r.Provider),
		Ref:           r.Ref,
		DefaultBranch: r.DefaultBranch,
		Status:        string(r.Status),
		LastSessionId: r.LastSessionId,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *RepositoryMapper) ToEntities(repos []*model.Repository) []*entity.Repository {
	entities := make([]*entity.Repository, len(repos))
	for i, r := range repos {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
