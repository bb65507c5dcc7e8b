package repository

import (
	"context"
	"time"

	"github.com/rbsgo/taskhub/domain"
)

// TaskFilter narrows a task listing. An empty Assignee means no
// assignee restriction (manager overview).
type TaskFilter struct {
	Assignee string
	Limit    int
	Offset   int
}

// TaskUpdate carries a partial edit. Nil fields are left untouched.
type TaskUpdate struct {
	Description    *string
	AssignedTo     *string
	Priority       *domain.Priority
	DueDate        *time.Time
	ProjectRef     *string
	Coordinator    *string
	StaffRemarks   *string
	ManagerRemarks *string
	EmailSubject   *string
	Points         *string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// UpdateStatus overwrites status and, when staffRemarks is non-nil,
	// staff_remarks in a single statement. No other fields are touched.
	UpdateStatus(ctx context.Context, id string, status domain.Status, staffRemarks *string) error
	UpdateFields(ctx context.Context, id string, update TaskUpdate) error
	// DistinctValues returns the distinct non-empty values of a free-text
	// column ("project_ref" or "coordinator") across all tasks.
	DistinctValues(ctx context.Context, column string) ([]string, error)
}
