package contract

import (
	"context"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ComponentRepository interface {
	// ReplaceAll deletes every stored component for the repository and
	// inserts the given set. Duplicate ids within the set: first wins.
	ReplaceAll(ctx context.Context, repositoryId uuid.UUID, components []*entity.Component) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Component, error)
	FindByIds(ctx context.Context, repositoryId uuid.UUID, ids []string) ([]*entity.Component, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
