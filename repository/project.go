package repository

import (
	"context"

	"github.com/rbsgo/taskhub/domain"
)

type ProjectRepository interface {
	ListNames(ctx context.Context) ([]string, error)
	// Upsert inserts or overwrites the project row keyed by name.
	// A second call with the same name wins.
	Upsert(ctx context.Context, project *domain.Project) error
}
