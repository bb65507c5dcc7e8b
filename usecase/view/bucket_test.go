package view

import (
	"testing"
	"time"

	"github.com/rbsgo/taskhub/domain"
)

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func pending(id string, due time.Time, priority domain.Priority) domain.Task {
	return domain.Task{ID: id, Description: id, Status: domain.StatusOpen, Priority: priority, DueDate: due}
}

func completed(id string, due time.Time) domain.Task {
	return domain.Task{ID: id, Description: id, Status: domain.StatusCompleted, Priority: domain.PriorityMedium, DueDate: due}
}

func contains(tasks []domain.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func TestPartitionConsistencyForTaskDueToday(t *testing.T) {
	tasks := []domain.Task{pending("due-today", day(0), domain.PriorityMedium)}
	p := NewPartition(tasks, today)

	if !contains(p.Tasks(BucketToday), "due-today") {
		t.Fatal("task due today must appear in Today")
	}
	if !contains(p.Tasks(BucketAllPending), "due-today") {
		t.Fatal("task due today must appear in All Pending")
	}
	if contains(p.Tasks(BucketOverdue), "due-today") || contains(p.Tasks(BucketTomorrow), "due-today") {
		t.Fatal("task due today must not appear in Overdue or Tomorrow")
	}
}

func TestPartitionBucketPredicates(t *testing.T) {
	tasks := []domain.Task{
		pending("late", day(-3), domain.PriorityHigh),
		pending("now", day(0), domain.PriorityMedium),
		pending("next", day(1), domain.PriorityLow),
		pending("later", day(7), domain.PriorityHigh),
		completed("done-late", day(-3)),
	}
	p := NewPartition(tasks, today)

	if got := p.Count(BucketOverdue); got != 1 {
		t.Fatalf("expected 1 overdue, got %d", got)
	}
	if got := p.Count(BucketToday); got != 1 {
		t.Fatalf("expected 1 today, got %d", got)
	}
	if got := p.Count(BucketTomorrow); got != 1 {
		t.Fatalf("expected 1 tomorrow, got %d", got)
	}
	if got := p.Count(BucketAllPending); got != 4 {
		t.Fatalf("expected 4 pending, got %d", got)
	}
	if got := p.Count(BucketCompleted); got != 1 {
		t.Fatalf("expected 1 completed, got %d", got)
	}
	if contains(p.Tasks(BucketOverdue), "done-late") {
		t.Fatal("completed tasks never count as overdue")
	}
}

func TestPartitionNormalizesTodayToMidnight(t *testing.T) {
	afternoon := time.Date(2025, 3, 10, 16, 45, 12, 0, time.UTC)
	tasks := []domain.Task{pending("now", day(0), domain.PriorityMedium)}
	p := NewPartition(tasks, afternoon)

	if !contains(p.Tasks(BucketToday), "now") {
		t.Fatal("bucketing must be date-granular, not time-of-day")
	}
}

func TestPartitionSortsByDueDateThenPriorityRank(t *testing.T) {
	tasks := []domain.Task{
		pending("b-low", day(-1), domain.PriorityLow),
		pending("c-high-later", day(2), domain.PriorityHigh),
		pending("a-high", day(-1), domain.PriorityHigh),
		pending("b-med", day(-1), domain.PriorityMedium),
	}
	p := NewPartition(tasks, today)

	got := p.Tasks(BucketAllPending)
	want := []string{"a-high", "b-med", "b-low", "c-high-later"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestBucketLabelsCarryLiveCounts(t *testing.T) {
	if got := BucketToday.Label(3); got != "Today (3)" {
		t.Fatalf("expected %q, got %q", "Today (3)", got)
	}
	if got := BucketAllPending.Label(0); got != "All Pending (0)" {
		t.Fatalf("expected %q, got %q", "All Pending (0)", got)
	}
}

func TestParseBucketFallsBackToDefault(t *testing.T) {
	if got := ParseBucket(""); got != DefaultBucket {
		t.Fatalf("expected default bucket, got %v", got)
	}
	if got := ParseBucket("Today (3)"); got != DefaultBucket {
		t.Fatal("formatted labels are not bucket identities")
	}
	if got := ParseBucket("overdue"); got != BucketOverdue {
		t.Fatalf("expected overdue, got %v", got)
	}
}
