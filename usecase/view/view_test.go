package view

import (
	"context"
	"testing"
	"time"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

type stubTaskRepo struct {
	tasks      []domain.Task
	lastFilter repository.TaskFilter
}

func (s *stubTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (s *stubTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	s.lastFilter = filter
	if filter.Assignee == "" {
		return s.tasks, nil
	}
	var visible []domain.Task
	for _, t := range s.tasks {
		if t.AssignedTo == filter.Assignee {
			visible = append(visible, t)
		}
	}
	return visible, nil
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
	return nil, nil
}

type stubDirectory struct {
	active map[string]bool
}

func (s *stubDirectory) GetActive(ctx context.Context, email string) (*domain.User, error) {
	if !s.active[email] {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{Email: email, Status: domain.UserActive}, nil
}

func fixedClock(uc *UseCase) *UseCase {
	uc.now = func() time.Time { return today }
	return uc
}

func assigned(id, email string, due time.Time) domain.Task {
	return domain.Task{ID: id, AssignedTo: email, Description: id, Status: domain.StatusOpen, Priority: domain.PriorityMedium, DueDate: due}
}

func TestRenderMemberSeesOnlyOwnTasks(t *testing.T) {
	repo := &stubTaskRepo{tasks: []domain.Task{
		assigned("mine", "msk@example.com", today),
		assigned("theirs", "praveen@example.com", today),
	}}
	uc := fixedClock(New(repo, &stubDirectory{}, nil))

	viewer := &domain.User{Email: "msk@example.com", Role: domain.RoleMember, Status: domain.UserActive}
	result, err := uc.Render(context.Background(), viewer, "praveen@example.com", BucketToday)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if repo.lastFilter.Assignee != "msk@example.com" {
		t.Fatalf("member scope must be own email, got %q", repo.lastFilter.Assignee)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].ID != "mine" {
		t.Fatalf("expected only own task, got %+v", result.Tasks)
	}
}

func TestRenderManagerUnscopedSeesEveryone(t *testing.T) {
	repo := &stubTaskRepo{tasks: []domain.Task{
		assigned("a", "msk@example.com", today),
		assigned("b", "praveen@example.com", today),
	}}
	uc := fixedClock(New(repo, &stubDirectory{}, nil))

	viewer := &domain.User{Email: "msk@example.com", Role: domain.RoleManager, Status: domain.UserActive}
	result, err := uc.Render(context.Background(), viewer, "", BucketToday)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if repo.lastFilter.Assignee != "" {
		t.Fatalf("manager unscoped view must not restrict assignee, got %q", repo.lastFilter.Assignee)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("expected union of all tasks, got %d", len(result.Tasks))
	}
}

func TestRenderManagerScopedToOneActiveUser(t *testing.T) {
	repo := &stubTaskRepo{tasks: []domain.Task{
		assigned("a", "msk@example.com", today),
		assigned("b", "praveen@example.com", today),
	}}
	dir := &stubDirectory{active: map[string]bool{"praveen@example.com": true}}
	uc := fixedClock(New(repo, dir, nil))

	viewer := &domain.User{Email: "msk@example.com", Role: domain.RoleManager, Status: domain.UserActive}
	result, err := uc.Render(context.Background(), viewer, "praveen@example.com", BucketToday)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].ID != "b" {
		t.Fatalf("expected exactly the scoped user's tasks, got %+v", result.Tasks)
	}
}

func TestRenderManagerScopeToUnknownUserFails(t *testing.T) {
	uc := fixedClock(New(&stubTaskRepo{}, &stubDirectory{}, nil))

	viewer := &domain.User{Email: "msk@example.com", Role: domain.RoleManager, Status: domain.UserActive}
	if _, err := uc.Render(context.Background(), viewer, "ghost@example.com", BucketToday); err == nil {
		t.Fatal("expected error for unknown scope target")
	}
}

func TestRenderTabsCarryCountsForEveryBucket(t *testing.T) {
	repo := &stubTaskRepo{tasks: []domain.Task{
		assigned("late", "msk@example.com", today.AddDate(0, 0, -1)),
		assigned("now", "msk@example.com", today),
	}}
	uc := fixedClock(New(repo, &stubDirectory{}, nil))

	viewer := &domain.User{Email: "msk@example.com", Role: domain.RoleMember, Status: domain.UserActive}
	result, err := uc.Render(context.Background(), viewer, "", BucketOverdue)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(result.Tabs) != len(Buckets) {
		t.Fatalf("expected %d tabs, got %d", len(Buckets), len(result.Tabs))
	}
	for _, tab := range result.Tabs {
		if tab.Label != tab.Bucket.Label(tab.Count) {
			t.Fatalf("tab label out of sync: %+v", tab)
		}
	}
	if result.Active != BucketOverdue {
		t.Fatalf("expected active bucket preserved, got %v", result.Active)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].ID != "late" {
		t.Fatalf("expected overdue task, got %+v", result.Tasks)
	}
}
