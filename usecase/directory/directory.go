package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

// UseCase is the source of truth for user identity, role and active
// status. Users are toggled inactive rather than deleted.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) ListActive(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.ListActive(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeRead, "listing active users failed", err)
	}
	return users, nil
}

// GetActive fetches a user by email and rejects inactive entries.
func (uc *UseCase) GetActive(ctx context.Context, email string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrCodeRead, "fetching user failed", err)
	}
	if !user.IsActive() {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Roster returns the ordered short-name tokens of all active users.
// Entries without a short name fall back to the local part of the email.
func (uc *UseCase) Roster(ctx context.Context) ([]domain.RosterEntry, error) {
	users, err := uc.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RosterEntry, 0, len(users))
	for _, user := range users {
		name := user.ShortName
		if name == "" {
			name, _, _ = strings.Cut(user.Email, "@")
		}
		if name == "" {
			continue
		}
		entries = append(entries, domain.RosterEntry{ShortName: name, Email: user.Email})
	}
	return entries, nil
}

// Add registers a new user. Only managers create users.
func (uc *UseCase) Add(ctx context.Context, user *domain.User, actingRole domain.Role) error {
	if actingRole != domain.RoleManager {
		return domain.ErrForbidden
	}
	if user == nil || user.Email == "" {
		return domain.ErrInvalidPayload
	}
	if user.Role == "" {
		user.Role = domain.RoleMember
	}
	if user.Status == "" {
		user.Status = domain.UserActive
	}
	if err := uc.users.Upsert(ctx, user); err != nil {
		return domain.WrapError(domain.ErrCodeWrite, "saving user failed", err)
	}
	uc.logger.Info("user registered", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return nil
}

func (uc *UseCase) SetActive(ctx context.Context, email string, active bool, actingRole domain.Role) error {
	if actingRole != domain.RoleManager {
		return domain.ErrForbidden
	}
	if err := uc.users.SetActive(ctx, email, active); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeWrite, "toggling user failed", err)
	}
	return nil
}

func (uc *UseCase) SetRole(ctx context.Context, email string, role domain.Role, actingRole domain.Role) error {
	if actingRole != domain.RoleManager {
		return domain.ErrForbidden
	}
	if role != domain.RoleMember && role != domain.RoleManager {
		return domain.ErrInvalidPayload
	}
	if err := uc.users.SetRole(ctx, email, role); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeWrite, "changing role failed", err)
	}
	return nil
}
