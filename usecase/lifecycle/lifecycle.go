package lifecycle

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

// Invalidator drops cached picklists after a task introduces a new
// free-text project or coordinator value.
type Invalidator interface {
	Invalidate(ctx context.Context, kinds ...string) error
}

// Directory validates that an assignee names an active user.
type Directory interface {
	GetActive(ctx context.Context, email string) (*domain.User, error)
}

// UseCase owns every task mutation: creation, status transitions,
// partial edits and reinstatement. Concurrent writers to the same task
// resolve last-write-wins; there is no version token.
type UseCase struct {
	tasks     repository.TaskRepository
	directory Directory
	picklists Invalidator
	logger    *zap.Logger
	now       func() time.Time
}

func New(tasks repository.TaskRepository, directory Directory, picklists Invalidator, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:     tasks,
		directory: directory,
		picklists: picklists,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates and stores a new task. Missing fields default:
// due date to the creation date, project and coordinator to "General",
// priority to Medium, status to Open. Members may only create tasks
// for themselves; managers may target any active user.
func (uc *UseCase) Create(ctx context.Context, task *domain.Task, actingUser *domain.User) (string, error) {
	if task == nil || actingUser == nil {
		return "", domain.ErrInvalidPayload
	}
	task.Description = strings.TrimSpace(task.Description)
	if task.Description == "" {
		return "", domain.ErrEmptyDescription
	}

	task.CreatedBy = actingUser.Email
	if task.AssignedTo != "" {
		if !actingUser.IsManager() && task.AssignedTo != actingUser.Email {
			return "", domain.ErrForbidden
		}
		if _, err := uc.directory.GetActive(ctx, task.AssignedTo); err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				return "", domain.ErrInactiveAssignee
			}
			return "", err
		}
	}

	task.Status = domain.StatusOpen
	if task.Priority == 0 {
		task.Priority = domain.PriorityMedium
	}
	if task.DueDate.IsZero() {
		task.DueDate = domain.Midnight(uc.now())
	} else {
		task.DueDate = domain.Midnight(task.DueDate)
	}
	task.ProjectRef = defaultBlank(task.ProjectRef)
	task.Coordinator = defaultBlank(task.Coordinator)

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeWrite, "creating task failed", err)
	}

	uc.invalidatePicklists(ctx)
	uc.logger.Info("task created",
		zap.String("id", created.ID),
		zap.String("assigned_to", created.AssignedTo),
		zap.String("project", created.ProjectRef))
	return created.ID, nil
}

// SetStatus overwrites status and, when provided, the staff remark as
// one write. Out-of-enum values are rejected before any write reaches
// the store, and closing a task always requires a non-empty remark.
func (uc *UseCase) SetStatus(ctx context.Context, id string, status domain.Status, remarks *string) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	if status == domain.StatusCompleted {
		if remarks == nil || strings.TrimSpace(*remarks) == "" {
			return domain.ErrRemarkRequired
		}
	}
	if err := uc.tasks.UpdateStatus(ctx, id, status, remarks); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeWrite, "updating task status failed", err)
	}
	return nil
}

// Edit applies a partial update. Reassignment and manager remarks are
// only honored for managers; for members those fields are dropped
// silently rather than rejected.
func (uc *UseCase) Edit(ctx context.Context, id string, update repository.TaskUpdate, actingRole domain.Role) error {
	if actingRole != domain.RoleManager {
		update.AssignedTo = nil
		update.ManagerRemarks = nil
	}
	if update.Description != nil {
		trimmed := strings.TrimSpace(*update.Description)
		if trimmed == "" {
			return domain.ErrEmptyDescription
		}
		update.Description = &trimmed
	}
	if update.AssignedTo != nil && *update.AssignedTo != "" {
		if _, err := uc.directory.GetActive(ctx, *update.AssignedTo); err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				return domain.ErrInactiveAssignee
			}
			return err
		}
	}
	if update.DueDate != nil {
		normalized := domain.Midnight(*update.DueDate)
		update.DueDate = &normalized
	}
	if update.ProjectRef != nil {
		v := defaultBlank(*update.ProjectRef)
		update.ProjectRef = &v
	}
	if update.Coordinator != nil {
		v := defaultBlank(*update.Coordinator)
		update.Coordinator = &v
	}

	if err := uc.tasks.UpdateFields(ctx, id, update); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeWrite, "editing task failed", err)
	}

	if update.ProjectRef != nil || update.Coordinator != nil {
		uc.invalidatePicklists(ctx)
	}
	return nil
}

// Reinstate reopens a completed task. Staff and manager remarks are
// left exactly as they were.
func (uc *UseCase) Reinstate(ctx context.Context, id string) error {
	task, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if !task.IsCompleted() {
		return domain.NewError(domain.ErrCodeValidation, "only completed tasks can be reinstated")
	}
	if err := uc.tasks.UpdateStatus(ctx, id, domain.StatusOpen, nil); err != nil {
		return domain.WrapError(domain.ErrCodeWrite, "reinstating task failed", err)
	}
	uc.logger.Info("task reinstated", zap.String("id", id))
	return nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrCodeRead, "fetching task failed", err)
	}
	return task, nil
}

func (uc *UseCase) invalidatePicklists(ctx context.Context) {
	if uc.picklists == nil {
		return
	}
	if err := uc.picklists.Invalidate(ctx, "project", "coordinator"); err != nil {
		uc.logger.Warn("picklist invalidation failed", zap.Error(err))
	}
}

func defaultBlank(value string) string {
	if strings.TrimSpace(value) == "" {
		return domain.DefaultList
	}
	return value
}
