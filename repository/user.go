package repository

import (
	"context"

	"github.com/rbsgo/taskhub/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, email string, active bool) error
	SetRole(ctx context.Context, email string, role domain.Role) error
}
