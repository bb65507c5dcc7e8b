package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates a Postgres-backed project repository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) ListNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM projects ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *projectRepository) Upsert(ctx context.Context, project *domain.Project) error {
	if project == nil || project.Name == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO projects (name, status, description, vendor, synced_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (name) DO UPDATE
	SET status = EXCLUDED.status,
		description = EXCLUDED.description,
		vendor = EXCLUDED.vendor,
		synced_at = NOW()
	RETURNING synced_at;
	`

	return r.pool.QueryRow(ctx, query,
		project.Name,
		project.Status,
		project.Description,
		project.Vendor,
	).Scan(&project.SyncedAt)
}
