package entity

import (
	"time"

	"github.com/google/uuid"
)

type RepositoryProvider string
type RepositoryStatus string

const (
	RepositoryProviderLocal  RepositoryProvider = "local"
	RepositoryProviderGithub RepositoryProvider = "github"

	RepositoryStatusIdle       RepositoryStatus = "idle"
	RepositoryStatusGenerating RepositoryStatus = "generating"
	RepositoryStatusCompleted  RepositoryStatus = "completed"
	RepositoryStatusFailed     RepositoryStatus = "failed"
)

type Repository struct {
	Id            uuid.UUID
	Name          string
	Provider      RepositoryProvider
	Ref           string // filesystem path for local, owner/repo for github
	DefaultBranch string
	Status        RepositoryStatus
	LastSessionId *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
