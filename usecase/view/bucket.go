package view

import (
	"fmt"
	"sort"
	"time"

	"github.com/rbsgo/taskhub/domain"
)

// Bucket identifies a time-relative or status-relative partition of
// the task collection. Identity is this tagged value; the rendered
// label (which carries a live count) is derived, never branched on.
type Bucket string

const (
	BucketOverdue    Bucket = "overdue"
	BucketToday      Bucket = "today"
	BucketTomorrow   Bucket = "tomorrow"
	BucketAllPending Bucket = "pending"
	BucketCompleted  Bucket = "completed"
)

// DefaultBucket is the selection shown on first view.
const DefaultBucket = BucketToday

// Buckets lists every bucket in display order.
var Buckets = []Bucket{BucketOverdue, BucketToday, BucketTomorrow, BucketAllPending, BucketCompleted}

// ParseBucket resolves a query parameter to a bucket, falling back to
// the default selection for unknown or empty input.
func ParseBucket(s string) Bucket {
	switch Bucket(s) {
	case BucketOverdue, BucketToday, BucketTomorrow, BucketAllPending, BucketCompleted:
		return Bucket(s)
	}
	return DefaultBucket
}

func (b Bucket) Title() string {
	switch b {
	case BucketOverdue:
		return "Overdue"
	case BucketToday:
		return "Today"
	case BucketTomorrow:
		return "Tomorrow"
	case BucketAllPending:
		return "All Pending"
	case BucketCompleted:
		return "Completed"
	}
	return string(b)
}

// Label renders the display text with its live count, e.g. "Today (3)".
func (b Bucket) Label(count int) string {
	return fmt.Sprintf("%s (%d)", b.Title(), count)
}

// Partition holds the bucketed task collection for one render. A task
// can belong to several buckets (a task due today is also pending);
// only the display selection is exclusive.
type Partition struct {
	today   time.Time
	buckets map[Bucket][]domain.Task
}

// NewPartition buckets tasks relative to today (midnight-normalized).
// Within each bucket tasks are ordered by due date ascending, then by
// semantic priority rank.
func NewPartition(tasks []domain.Task, today time.Time) *Partition {
	today = domain.Midnight(today)
	tomorrow := today.AddDate(0, 0, 1)

	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].DueDate.Equal(sorted[j].DueDate) {
			return sorted[i].DueDate.Before(sorted[j].DueDate)
		}
		return sorted[i].Priority.Less(sorted[j].Priority)
	})

	p := &Partition{
		today:   today,
		buckets: make(map[Bucket][]domain.Task, len(Buckets)),
	}
	for _, task := range sorted {
		due := domain.Midnight(task.DueDate)
		if task.IsCompleted() {
			p.buckets[BucketCompleted] = append(p.buckets[BucketCompleted], task)
			continue
		}
		p.buckets[BucketAllPending] = append(p.buckets[BucketAllPending], task)
		switch {
		case due.Before(today):
			p.buckets[BucketOverdue] = append(p.buckets[BucketOverdue], task)
		case due.Equal(today):
			p.buckets[BucketToday] = append(p.buckets[BucketToday], task)
		case due.Equal(tomorrow):
			p.buckets[BucketTomorrow] = append(p.buckets[BucketTomorrow], task)
		}
	}
	return p
}

// Tasks returns the sorted members of one bucket.
func (p *Partition) Tasks(b Bucket) []domain.Task {
	return p.buckets[b]
}

func (p *Partition) Count(b Bucket) int {
	return len(p.buckets[b])
}
