package contract

import (
	"context"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GenerationSessionRepository interface {
	Create(ctx context.Context, session *entity.GenerationSession) error
	Update(ctx context.Context, session *entity.GenerationSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationSession, error)
}

type GenerationMetricRepository interface {
	Create(ctx context.Context, metric *entity.GenerationMetric) error
	DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationMetric, error)
}
