package contract

import (
	"context"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RepositoryRepository interface {
	Create(ctx context.Context, repo *entity.Repository) error
	Update(ctx context.Context, repo *entity.Repository) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Repository, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Repository, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
