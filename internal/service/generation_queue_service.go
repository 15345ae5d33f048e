package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/repository/specification"
	"ai-docgen-be/internal/repository/unitofwork"
	"ai-docgen-be/pkg/store"
)

type IGenerationQueueService interface {
	// Trigger enqueues a pipeline run. A repository already in
	// generating status refuses a second enqueue: one concurrent run
	// per repository.
	Trigger(ctx context.Context, req *dto.TriggerGenerationRequest) (*dto.TriggerGenerationResponse, error)
	ShowSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, repositoryId uuid.UUID) ([]*dto.SessionResponse, error)
}

type generationQueueService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewGenerationQueueService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IGenerationQueueService {
	return &generationQueueService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *generationQueueService) Trigger(ctx context.Context, req *dto.TriggerGenerationRequest) (*dto.TriggerGenerationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo, err := uow.RepositoryRepository().FindOne(ctx, specification.ByID{ID: req.RepositoryId})
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, fmt.Errorf("repository %s not found", req.RepositoryId)
	}
	if repo.Status == entity.RepositoryStatusGenerating {
		return nil, fmt.Errorf("repository %s already has a run in progress", req.RepositoryId)
	}

	repo.Status = entity.RepositoryStatusGenerating
	now := time.Now()
	repo.UpdatedAt = &now
	if err := uow.RepositoryRepository().Update(ctx, repo); err != nil {
		return nil, err
	}

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = store.SessionTypeFull
	}

	msg := dto.GenerationJobMessage{
		RepositoryId: req.RepositoryId,
		SessionType:  sessionType,
		SkipPruning:  req.SkipPruning,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		// Roll the status back so a failed enqueue does not wedge the
		// repository in generating.
		repo.Status = entity.RepositoryStatusIdle
		_ = uow.RepositoryRepository().Update(ctx, repo)
		return nil, err
	}

	return &dto.TriggerGenerationResponse{
		RepositoryId: req.RepositoryId,
		Queued:       true,
	}, nil
}

func (s *generationQueueService) ShowSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.GenerationSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return toSessionResponse(session), nil
}

func (s *generationQueueService) ListSessions(ctx context.Context, repositoryId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.GenerationSessionRepository().FindAll(ctx,
		specification.ByRepositoryID{RepositoryID: repositoryId},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = toSessionResponse(session)
	}
	return responses, nil
}

func toSessionResponse(session *entity.GenerationSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:           session.Id,
		RepositoryId: session.RepositoryId,
		SessionType:  session.SessionType,
		Status:       string(session.Status),
		Progress: dto.SessionProgress{
			Completed:   session.Completed,
			Total:       session.Total,
			CurrentItem: session.CurrentItem,
		},
		Error:       session.Error,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
	}
}
