package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/repository/specification"
	"ai-docgen-be/internal/repository/unitofwork"
)

type IRepositoryService interface {
	Register(ctx context.Context, req *dto.RegisterRepositoryRequest) (*dto.RegisterRepositoryResponse, error)
	List(ctx context.Context) ([]*dto.RepositoryResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.RepositoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repositoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRepositoryService(uowFactory unitofwork.RepositoryFactory) IRepositoryService {
	return &repositoryService{
		uowFactory: uowFactory,
	}
}

func (s *repositoryService) Register(ctx context.Context, req *dto.RegisterRepositoryRequest) (*dto.RegisterRepositoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo := entity.Repository{
		Id:            uuid.New(),
		Name:          req.Name,
		Provider:      entity.RepositoryProvider(req.Provider),
		Ref:           req.Ref,
		DefaultBranch: req.DefaultBranch,
		Status:        entity.RepositoryStatusIdle,
		CreatedAt:     time.Now(),
	}

	if err := uow.RepositoryRepository().Create(ctx, &repo); err != nil {
		return nil, err
	}

	return &dto.RegisterRepositoryResponse{Id: repo.Id}, nil
}

func (s *repositoryService) List(ctx context.Context) ([]*dto.RepositoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repos, err := uow.RepositoryRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.RepositoryResponse, len(repos))
	for i, repo := range repos {
		responses[i] = toRepositoryResponse(repo)
	}
	return responses, nil
}

func (s *repositoryService) Show(ctx context.Context, id uuid.UUID) (*dto.RepositoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo, err := uow.RepositoryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, nil
	}
	return toRepositoryResponse(repo), nil
}

func (s *repositoryService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo, err := uow.RepositoryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if repo == nil {
		return nil
	}
	if repo.Status == entity.RepositoryStatusGenerating {
		return fmt.Errorf("repository %s has a run in progress", id)
	}

	// Generated data goes with the repository.
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByRepositoryID{RepositoryID: id})
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	docIds := make([]uuid.UUID, len(docs))
	for i, d := range docs {
		docIds[i] = d.Id
	}

	if err := uow.DocumentLinkRepository().DeleteByDocumentIds(ctx, docIds); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.GenerationMetricRepository().DeleteByDocumentIds(ctx, docIds); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.DocumentRepository().DeleteByIds(ctx, docIds); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.ComponentRepository().ReplaceAll(ctx, id, nil); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.ArtifactRepository().DeleteAllByRepositoryId(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.RepositoryRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}

	return uow.Commit()
}

func toRepositoryResponse(repo *entity.Repository) *dto.RepositoryResponse {
	return &dto.RepositoryResponse{
		Id:            repo.Id,
		Name:          repo.Name,
		Provider:      string(repo.Provider),
		Ref:           repo.Ref,
		DefaultBranch: repo.DefaultBranch,
		Status:        string(repo.Status),
		LastSessionId: repo.LastSessionId,
		CreatedAt:     repo.CreatedAt,
		UpdatedAt:     repo.UpdatedAt,
	}
}
