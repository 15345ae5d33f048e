package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/model"
	"ai-docgen-be/pkg/store"
)

type ComponentMapper struct{}

func NewComponentMapper() *ComponentMapper {
	return &ComponentMapper{}
}

func (m *ComponentMapper) ToEntity(c *model.Component) *entity.Component {
	if c == nil {
		return nil
	}

	var relations []store.Relation
	if len(c.Relations) > 0 {
		// Malformed rows degrade to no relations rather than an error.
		_ = json.Unmarshal(c.Relations, &relations)
	}

	var metadata map[string]interface{}
	if len(c.Metadata) > 0 {
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &entity.Component{
		Id:            c.Id,
		RepositoryId:  c.RepositoryId,
		Name:          c.Name,
		ComponentType: c.ComponentType,
		ParentPath:    c.ParentPath,
		StartLine:     c.StartLine,
		EndLine:       c.EndLine,
		Relations:     relations,
		Metadata:      metadata,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ComponentMapper) ToModel(c *entity.Component) *model.Component {
	if c == nil {
		return nil
	}

	return &model.Component{
		Id:            c.Id,
		RepositoryId:  c.RepositoryId,
		Name:          c.Name,
		ComponentType: c.ComponentType,
		ParentPath:    c.ParentPath,
		StartLine:     c.StartLine,
		EndLine:       c.EndLine,
		Relations:     toJSON(c.Relations),
		Metadata:      toJSON(c.Metadata),
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ComponentMapper) ToEntities(components []*model.Component) []*entity.Component {
	entities := make([]*entity.Component, len(components))
	for i, c := range components {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ComponentMapper) ToModels(components []*entity.Component) []*model.Component {
	models := make([]*model.Component, len(components))
	for i, c := range components {
		models[i] = m.ToModel(c)
	}
	return models
}

// toJSON marshals a value into a jsonb column, returning nil for empty
// input so the column stays NULL.
func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if string(raw) == "null" {
		return nil
	}
	return raw
}
