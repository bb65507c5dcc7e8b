package picklist

import (
	"context"
	"reflect"
	"sort"
	"testing"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

type stubTaskRepo struct {
	projectValues     []string
	coordinatorValues []string
	distinctCalls     int
}

func (s *stubTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (s *stubTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

func (s *stubTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (s *stubTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.Status, staffRemarks *string) error {
	return nil
}

func (s *stubTaskRepo) UpdateFields(ctx context.Context, id string, update repository.TaskUpdate) error {
	return nil
}

func (s *stubTaskRepo) DistinctValues(ctx context.Context, column string) ([]string, error) {
	s.distinctCalls++
	if column == "project_ref" {
		return s.projectValues, nil
	}
	return s.coordinatorValues, nil
}

type stubProjectRepo struct {
	names []string
}

func (s *stubProjectRepo) ListNames(ctx context.Context) ([]string, error) {
	return s.names, nil
}

func (s *stubProjectRepo) Upsert(ctx context.Context, project *domain.Project) error {
	return nil
}

type memoryCache struct {
	data map[string][]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]string{}}
}

func (c *memoryCache) Get(ctx context.Context, kind string) ([]string, bool, error) {
	values, ok := c.data[kind]
	return values, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, kind string, values []string) error {
	c.data[kind] = values
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, kinds ...string) error {
	for _, kind := range kinds {
		delete(c.data, kind)
	}
	return nil
}

func TestReconcileProjectUnionsSyncedAndInUseValues(t *testing.T) {
	uc := New(
		&stubTaskRepo{projectValues: []string{"Billing Revamp", "  ", "Gateway"}},
		&stubProjectRepo{names: []string{"Gateway", "Payments API"}},
		nil, nil,
	)

	values, err := uc.Reconcile(context.Background(), KindProject)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	want := []string{"Billing Revamp", "Gateway", domain.DefaultList, "Payments API"}
	sort.Strings(want)
	if !reflect.DeepEqual(values, want) {
		t.Fatalf("expected %v, got %v", want, values)
	}
}

func TestReconcileCoordinatorIncludesBaseline(t *testing.T) {
	uc := New(&stubTaskRepo{coordinatorValues: []string{"Ravi"}}, &stubProjectRepo{}, nil, nil)

	values, err := uc.Reconcile(context.Background(), KindCoordinator)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	want := append([]string{domain.DefaultList, "Ravi"}, coordinatorBaseline...)
	sort.Strings(want)
	if !reflect.DeepEqual(values, want) {
		t.Fatalf("expected %v, got %v", want, values)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	uc := New(
		&stubTaskRepo{projectValues: []string{"Gateway", "Billing"}},
		&stubProjectRepo{names: []string{"Gateway"}},
		nil, nil,
	)

	first, err := uc.Reconcile(context.Background(), KindProject)
	if err != nil {
		t.Fatalf("first reconcile failed: %v", err)
	}
	second, err := uc.Reconcile(context.Background(), KindProject)
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconcile not idempotent: %v vs %v", first, second)
	}
	if !sort.StringsAreSorted(first) {
		t.Fatalf("expected sorted output, got %v", first)
	}
}

func TestReconcileServesFromCacheUntilInvalidated(t *testing.T) {
	tasks := &stubTaskRepo{projectValues: []string{"Gateway"}}
	cache := newMemoryCache()
	uc := New(tasks, &stubProjectRepo{}, cache, nil)

	if _, err := uc.Reconcile(context.Background(), KindProject); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if _, err := uc.Reconcile(context.Background(), KindProject); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if tasks.distinctCalls != 1 {
		t.Fatalf("second call should hit the cache, store queried %d times", tasks.distinctCalls)
	}

	// A new free-text value only becomes visible after invalidation.
	tasks.projectValues = []string{"Gateway", "New Initiative"}
	if err := uc.Invalidate(context.Background(), KindProject); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	values, err := uc.Reconcile(context.Background(), KindProject)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	found := false
	for _, v := range values {
		if v == "New Initiative" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected new value after invalidation, got %v", values)
	}
}

func TestReconcileRejectsUnknownKind(t *testing.T) {
	uc := New(&stubTaskRepo{}, &stubProjectRepo{}, nil, nil)
	if _, err := uc.Reconcile(context.Background(), "vendor"); !domain.IsDomainError(err, domain.ErrCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
