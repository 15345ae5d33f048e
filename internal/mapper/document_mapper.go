package mapper

import (
	"encoding/json"
	"time"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var componentIds []string
	if len(d.ComponentIds) > 0 {
		_ = json.Unmarshal(d.ComponentIds, &componentIds)
	}

	var metadata map[string]interface{}
	if len(d.Metadata) > 0 {
		_ = json.Unmarshal(d.Metadata, &metadata)
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:           d.Id,
		RepositoryId: d.RepositoryId,
		DocumentPath: d.DocumentPath,
		Title:        d.Title,
		Content:      d.Content,
		Summary:      d.Summary,
		DocumentType: d.DocumentType,
		ComponentIds: componentIds,
		Metadata:     metadata,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:           d.Id,
		RepositoryId: d.RepositoryId,
		DocumentPath: d.DocumentPath,
		Title:        d.Title,
		Content:      d.Content,
		Summary:      d.Summary,
		DocumentType: d.DocumentType,
		ComponentIds: toJSON(d.ComponentIds),
		Metadata:     toJSON(d.Metadata),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DocumentMapper) LinkToEntity(l *model.DocumentLink) *entity.DocumentLink {
	if l == nil {
		return nil
	}
	return &entity.DocumentLink{
		Id:               l.Id,
		RepositoryId:     l.RepositoryId,
		SourceDocumentId: l.SourceDocumentId,
		TargetDocumentId: l.TargetDocumentId,
		LinkType:         l.LinkType,
		CreatedAt:        l.CreatedAt,
	}
}

func (m *DocumentMapper) LinkToModel(l *entity.DocumentLink) *model.DocumentLink {
	if l == nil {
		return nil
	}
	return &model.DocumentLink{
		Id:               l.Id,
		RepositoryId:     l.RepositoryId,
		SourceDocumentId: l.SourceDocumentId,
		TargetDocumentId: l.TargetDocumentId,
		LinkType:         l.LinkType,
		CreatedAt:        l.CreatedAt,
	}
}

func (m *DocumentMapper) LinksToEntities(links []*model.DocumentLink) []*entity.DocumentLink {
	entities := make([]*entity.DocumentLink, len(links))
	for i, l := range links {
		entities[i] = m.LinkToEntity(l)
	}
	return entities
}
