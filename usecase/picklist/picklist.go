package picklist

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

// Picklist kinds.
const (
	KindProject     = "project"
	KindCoordinator = "coordinator"
)

// coordinatorBaseline seeds the coordinator picklist with generic
// organizational roles so the field is usable before any task exists.
var coordinatorBaseline = []string{"Admin", "Operations", "Support"}

// UseCase reconciles the candidate lists for the free-text project and
// coordinator fields: the externally synced project list, values
// already typed into existing tasks, and a fixed baseline.
type UseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	cache    repository.PicklistCache
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, projects repository.ProjectRepository, cache repository.PicklistCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		projects: projects,
		cache:    cache,
		logger:   logger,
	}
}

// Reconcile returns the deduplicated, lexicographically sorted
// candidate list for kind. Results are served from a short-lived cache
// that is invalidated after a sheet sync and after task edits that
// introduce new values; between invalidations a bounded staleness is
// accepted. Cache failures degrade to a recompute.
func (uc *UseCase) Reconcile(ctx context.Context, kind string) ([]string, error) {
	if kind != KindProject && kind != KindCoordinator {
		return nil, domain.NewError(domain.ErrCodeValidation, "unknown picklist kind")
	}

	if uc.cache != nil {
		if values, ok, err := uc.cache.Get(ctx, kind); err != nil {
			uc.logger.Warn("picklist cache read failed", zap.String("kind", kind), zap.Error(err))
		} else if ok {
			return values, nil
		}
	}

	values, err := uc.compute(ctx, kind)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, kind, values); err != nil {
			uc.logger.Warn("picklist cache write failed", zap.String("kind", kind), zap.Error(err))
		}
	}
	return values, nil
}

// Invalidate drops the cached lists, forcing the next Reconcile to
// recompute. Called after a project sync and after task mutations.
func (uc *UseCase) Invalidate(ctx context.Context, kinds ...string) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Invalidate(ctx, kinds...)
}

func (uc *UseCase) compute(ctx context.Context, kind string) ([]string, error) {
	seen := map[string]struct{}{domain.DefaultList: {}}

	add := func(values []string) {
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				v = domain.DefaultList
			}
			seen[v] = struct{}{}
		}
	}

	switch kind {
	case KindProject:
		names, err := uc.projects.ListNames(ctx)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeRead, "listing synced projects failed", err)
		}
		add(names)

		inUse, err := uc.tasks.DistinctValues(ctx, "project_ref")
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeRead, "listing in-use projects failed", err)
		}
		add(inUse)

	case KindCoordinator:
		add(coordinatorBaseline)

		inUse, err := uc.tasks.DistinctValues(ctx, "coordinator")
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeRead, "listing in-use coordinators failed", err)
		}
		add(inUse)
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}
