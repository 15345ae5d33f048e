// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-docgen-be/internal/constant"
	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/pkg/mailer"
	"ai-docgen-be/internal/repository/specification"
	"ai-docgen-be/internal/repository/unitofwork"
	"ai-docgen-be/pkg/events"
	pktNats "ai-docgen-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	generationService IGenerationService
	eventPublisher    *pktNats.Publisher
	emailService      mailer.IEmailService
	notifyEmail       string
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	generationService IGenerationService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	notifyEmail string,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		generationService: generationService,
		eventPublisher:    eventPublisher,
		emailService:      emailService,
		notifyEmail:       notifyEmail,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerationJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal generation job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Starting generation run for repository %s", payload.RepositoryId)

	result := cs.generationService.Run(ctx, payload.RepositoryId, RunOptions{
		SessionType: payload.SessionType,
		SkipPruning: payload.SkipPruning,
	})

	log.Printf("[INFO] Run %s finished: success=%t, %d/%d documents",
		result.SessionID, result.Success, result.DocumentsGenerated, result.DocumentsPlanned)

	// Downstream notifications are auxiliary: their failure never fails
	// the job.
	if cs.eventPublisher != nil {
		eventType := constant.EventDocsGenerated
		if !result.Success {
			eventType = constant.EventGenerationFailed
		}
		evt := events.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"repository_id":       payload.RepositoryId,
				"session_id":          result.SessionID,
				"documents_generated": result.DocumentsGenerated,
				"documents_planned":   result.DocumentsPlanned,
				"links_created":       result.LinksCreated,
				"estimated_cost":      result.EstimatedCost,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
		}
	}

	if cs.emailService != nil && cs.notifyEmail != "" {
		repoName := payload.RepositoryId.String()
		uow := cs.uowFactory.NewUnitOfWork(ctx)
		if repo, err := uow.RepositoryRepository().FindOne(ctx, specification.ByID{ID: payload.RepositoryId}); err == nil && repo != nil {
			repoName = repo.Name
		}
		if err := cs.emailService.SendRunReport(cs.notifyEmail, repoName, result); err != nil {
			fmt.Printf("[WARN] Failed to send run report: %v\n", err)
		}
	}

	msg.Ack()
}
