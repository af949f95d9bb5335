package repository

import (
	"context"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project, position int) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Count(ctx context.Context) (int, error)
}

// FlagRepo persists flags per project. List order is the stored position.
type FlagRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Flag, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Flag, error)
	ListAll(ctx context.Context) (map[string][]domain.Flag, error)
	ReplaceAll(ctx context.Context, flagsByProject map[string][]domain.Flag) error
}

// EnumTypeRepo persists the enum type registry together with each type's
// ordered values.
type EnumTypeRepo interface {
	List(ctx context.Context) ([]domain.EnumType, error)
	ReplaceAll(ctx context.Context, types []domain.EnumType) error
}

// ViewStateRepo stores UI state: key/value settings and the collapsed set.
type ViewStateRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	ListCollapsed(ctx context.Context) ([]string, error)
	ReplaceCollapsed(ctx context.Context, flagIDs []string) error
}

type AuthSessionRepo interface {
	Create(ctx context.Context, s *domain.AuthSession) error
	GetLatest(ctx context.Context) (*domain.AuthSession, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
