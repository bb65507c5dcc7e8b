package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, created_by, assigned_to, description, status, priority, due_date,
	project_ref, coordinator, staff_remarks, manager_remarks, email_subject, points, created_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := fmt.Sprintf(`
	SELECT %s
	FROM tasks
	WHERE ($1 = '' OR assigned_to = $1)
	ORDER BY due_date ASC, priority ASC, created_at ASC
	LIMIT $2 OFFSET $3
	`, taskColumns)
	rows, err := r.pool.Query(ctx, query, filter.Assignee, limitArg(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, created_by, assigned_to, description, status, priority, due_date,
		project_ref, coordinator, staff_remarks, manager_remarks, email_subject, points)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.CreatedBy,
		task.AssignedTo,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.ProjectRef,
		task.Coordinator,
		task.StaffRemarks,
		task.ManagerRemarks,
		task.EmailSubject,
		task.Points,
	).Scan(&task.CreatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, staffRemarks *string) error {
	// Status and remark land in one statement so the row is never
	// observed with a new status and an old remark.
	const query = `
	UPDATE tasks
	SET status = $2,
		staff_remarks = COALESCE($3, staff_remarks)
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, status, staffRemarks)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) UpdateFields(ctx context.Context, id string, update repository.TaskUpdate) error {
	sets := make([]string, 0, 10)
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.AssignedTo != nil {
		add("assigned_to", *update.AssignedTo)
	}
	if update.Priority != nil {
		add("priority", *update.Priority)
	}
	if update.DueDate != nil {
		add("due_date", *update.DueDate)
	}
	if update.ProjectRef != nil {
		add("project_ref", *update.ProjectRef)
	}
	if update.Coordinator != nil {
		add("coordinator", *update.Coordinator)
	}
	if update.StaffRemarks != nil {
		add("staff_remarks", *update.StaffRemarks)
	}
	if update.ManagerRemarks != nil {
		add("manager_remarks", *update.ManagerRemarks)
	}
	if update.EmailSubject != nil {
		add("email_subject", *update.EmailSubject)
	}
	if update.Points != nil {
		add("points", *update.Points)
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $1`, strings.Join(sets, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	switch column {
	case "project_ref", "coordinator":
	default:
		return nil, domain.ErrInvalidPayload
	}

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM tasks WHERE %s <> ''`, column, column)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.CreatedBy,
		&task.AssignedTo,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.ProjectRef,
		&task.Coordinator,
		&task.StaffRemarks,
		&task.ManagerRemarks,
		&task.EmailSubject,
		&task.Points,
		&task.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

const maxListLimit = 500

// limitArg maps an unset limit to LIMIT NULL, a full read. The view
// layer depends on full reads so bucket counts stay accurate; only
// caller-supplied limits are capped.
func limitArg(limit int) interface{} {
	switch {
	case limit <= 0:
		return nil
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}
