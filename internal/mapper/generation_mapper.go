package mapper

import (
	"encoding/json"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/model"
	"ai-docgen-be/pkg/store"
)

type GenerationMapper struct{}

func NewGenerationMapper() *GenerationMapper {
	return &GenerationMapper{}
}

func (m *GenerationMapper) SessionToEntity(s *model.GenerationSession) *entity.GenerationSession {
	if s == nil {
		return nil
	}

	var plan *store.WorkPlan
	if len(s.WorkPlan) > 0 {
		plan = &store.WorkPlan{}
		if err := json.Unmarshal(s.WorkPlan, plan); err != nil {
			plan = nil
		}
	}

	return &entity.GenerationSession{
		Id:           s.Id,
		RepositoryId: s.RepositoryId,
		SessionType:  s.SessionType,
		Status:       entity.SessionStatus(s.Status),
		WorkPlan:     plan,
		Completed:    s.Completed,
		Total:        s.Total,
		CurrentItem:  s.CurrentItem,
		Error:        s.Error,
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
	}
}

func (m *GenerationMapper) SessionToModel(s *entity.GenerationSession) *model.GenerationSession {
	if s == nil {
		return nil
	}

	return &model.GenerationSession{
		Id:           s.Id,
		RepositoryId: s.RepositoryId,
		SessionType:  s.SessionType,
		Status:       string(s.Status),
		WorkPlan:     toJSON(s.WorkPlan),
		Completed:    s.Completed,
		Total:        s.Total,
		CurrentItem:  s.CurrentItem,
		Error:        s.Error,
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
	}
}

func (m *GenerationMapper) SessionsToEntities(sessions []*model.GenerationSession) []*entity.GenerationSession {
	entities := make([]*entity.GenerationSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *GenerationMapper) MetricToEntity(g *model.GenerationMetric) *entity.GenerationMetric {
	if g == nil {
		return nil
	}
	return &entity.GenerationMetric{
		Id:           g.Id,
		RepositoryId: g.RepositoryId,
		DocumentId:   g.DocumentId,
		SessionId:    g.SessionId,
		Model:        g.Model,
		TokensIn:     g.TokensIn,
		TokensOut:    g.TokensOut,
		CostEstimate: g.CostEstimate,
		DurationMs:   g.DurationMs,
		CreatedAt:    g.CreatedAt,
	}
}

func (m *GenerationMapper) MetricToModel(g *entity.GenerationMetric) *model.GenerationMetric {
	if g == nil {
		return nil
	}
	return &model.GenerationMetric{
		Id:           g.Id,
		RepositoryId: g.RepositoryId,
		DocumentId:   g.DocumentId,
		SessionId:    g.SessionId,
		Model:        g.Model,
		TokensIn:     g.TokensIn,
		TokensOut:    g.TokensOut,
		CostEstimate: g.CostEstimate,
		DurationMs:   g.DurationMs,
		CreatedAt:    g.CreatedAt,
	}
}

func (m *GenerationMapper) MetricsToEntities(metrics []*model.GenerationMetric) []*entity.GenerationMetric {
	entities := make([]*entity.GenerationMetric, len(metrics))
	for i, g := range metrics {
		entities[i] = m.MetricToEntity(g)
	}
	return entities
}
