package contract

import (
	"context"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ArtifactRepository interface {
	// Upsert inserts or updates keyed on (repository_id, path).
	Upsert(ctx context.Context, artifact *entity.Artifact) error
	UpsertAll(ctx context.Context, artifacts []*entity.Artifact) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Artifact, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Artifact, error)
	DeleteAllByRepositoryId(ctx context.Context, repositoryId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
