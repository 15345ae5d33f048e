package unitofwork

import (
	"context"

	"ai-docgen-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RepositoryRepository() contract.RepositoryRepository
	ArtifactRepository() contract.ArtifactRepository
	ComponentRepository() contract.ComponentRepository
	DocumentRepository() contract.DocumentRepository
	DocumentLinkRepository() contract.DocumentLinkRepository
	GenerationSessionRepository() contract.GenerationSessionRepository
	GenerationMetricRepository() contract.GenerationMetricRepository
}
