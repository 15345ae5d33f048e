package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRepositoryRequest struct {
	Name          string `json:"name" validate:"required"`
	Provider      string `json:"provider" validate:"required,oneof=local github"`
	Ref           string `json:"ref" validate:"required"`
	DefaultBranch string `json:"default_branch"`
}

type RegisterRepositoryResponse struct {
	Id uuid.UUID `json:"id"`
}

type RepositoryResponse struct {
	Id            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Provider      string     `json:"provider"`
	Ref           string     `json:"ref"`
	DefaultBranch string     `json:"default_branch"`
	Status        string     `json:"status"`
	LastSessionId *uuid.UUID `json:"last_session_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
