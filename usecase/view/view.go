package view

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/repository"
)

// Directory validates a manager's scope target.
type Directory interface {
	GetActive(ctx context.Context, email string) (*domain.User, error)
}

// TabInfo describes one selectable bucket with its rendered label.
type TabInfo struct {
	Bucket Bucket `json:"bucket"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Result is one rendered view: every tab with live counts plus the
// active bucket's sorted tasks.
type Result struct {
	Active Bucket        `json:"active"`
	Tabs   []TabInfo     `json:"tabs"`
	Tasks  []domain.Task `json:"tasks"`
}

// UseCase builds role-scoped, bucketed task views. Every render reads
// the visible set fresh from the store so counts stay accurate.
type UseCase struct {
	tasks     repository.TaskRepository
	directory Directory
	logger    *zap.Logger
	now       func() time.Time
}

func New(tasks repository.TaskRepository, directory Directory, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:     tasks,
		directory: directory,
		logger:    logger,
		now:       time.Now,
	}
}

// Render produces the view for one viewer. Members always see their
// own tasks; managers see everyone's, or exactly one active user's
// when scopeTarget is set.
func (uc *UseCase) Render(ctx context.Context, viewer *domain.User, scopeTarget string, active Bucket) (*Result, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}

	filter := repository.TaskFilter{Assignee: viewer.Email}
	if viewer.IsManager() {
		filter.Assignee = ""
		if scopeTarget != "" {
			if _, err := uc.directory.GetActive(ctx, scopeTarget); err != nil {
				return nil, err
			}
			filter.Assignee = scopeTarget
		}
	}

	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeRead, "loading tasks failed", err)
	}

	partition := NewPartition(tasks, uc.now())

	tabs := make([]TabInfo, 0, len(Buckets))
	for _, b := range Buckets {
		count := partition.Count(b)
		tabs = append(tabs, TabInfo{Bucket: b, Label: b.Label(count), Count: count})
	}

	return &Result{
		Active: active,
		Tabs:   tabs,
		Tasks:  partition.Tasks(active),
	}, nil
}
