package sheetsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/internal/infrastructure/audit"
	"github.com/rbsgo/taskhub/repository"
)

// Column headers expected in the interface sheet.
const (
	headerName        = "Interface Name"
	headerStatus      = "Status"
	headerParticulars = "Particulars"
	headerVendor      = "Vendor"
)

// Source abstracts the spreadsheet transport: a grid of cells with the
// header row first.
type Source interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// Invalidator drops the cached project picklist after a sync.
type Invalidator interface {
	Invalidate(ctx context.Context, kinds ...string) error
}

// Config controls the periodic sync schedule.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Syncer upserts the external interface sheet into the project table.
// Rows are independent: one bad row is recorded and skipped, the rest
// of the batch still lands.
type Syncer struct {
	source    Source
	projects  repository.ProjectRepository
	reports   *audit.Store
	picklists Invalidator
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       Config
}

func New(source Source, projects repository.ProjectRepository, reports *audit.Store, picklists Invalidator, logger *zap.Logger, cfg Config) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Syncer{
		source:    source,
		projects:  projects,
		reports:   reports,
		picklists: picklists,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			s.logger.Error("scheduled project sync failed", zap.Error(err))
		}
	}); err != nil {
		s.logger.Error("registering sync schedule failed, periodic sync disabled",
			zap.String("schedule", schedule),
			zap.Error(err))
	}

	return s
}

// Start launches the cron scheduler.
func (s *Syncer) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("project sync scheduler started", zap.Duration("interval", s.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (s *Syncer) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("project sync scheduler stopped")
}

// Run executes one sync pass and returns its audit report. The report
// is persisted and the project picklist cache invalidated regardless
// of partial failures; only a failure to read the sheet itself aborts
// the run.
func (s *Syncer) Run(ctx context.Context) (*audit.Report, error) {
	started := time.Now()

	grid, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeRead, "fetching interface sheet failed", err)
	}
	if len(grid) == 0 {
		return nil, domain.NewError(domain.ErrCodeRead, "interface sheet is empty")
	}

	columns := mapHeader(grid[0])
	report := audit.Report{StartedAt: started}
	attempted := 0

	for i, row := range grid[1:] {
		project := rowProject(row, columns)
		if project.Name == "" {
			report.Skipped++
			continue
		}
		attempted++
		if err := s.projects.Upsert(ctx, &project); err != nil {
			report.Failures = append(report.Failures, audit.RowFailure{
				RowKey: project.Name,
				Reason: err.Error(),
			})
			s.logger.Warn("project row upsert failed",
				zap.Int("row", i+2),
				zap.String("name", project.Name),
				zap.Error(err))
			continue
		}
		report.Succeeded++
	}

	report.Outcome, report.Message = summarize(attempted, report.Succeeded)

	if s.reports != nil {
		if err := s.reports.Save(report); err != nil {
			s.logger.Warn("saving sync report failed", zap.Error(err))
		}
	}
	if s.picklists != nil {
		if err := s.picklists.Invalidate(ctx, "project"); err != nil {
			s.logger.Warn("project picklist invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("project sync finished",
		zap.String("outcome", string(report.Outcome)),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", len(report.Failures)),
		zap.Int("skipped", report.Skipped))
	return &report, nil
}

// mapHeader resolves the column index of each expected header.
func mapHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	return columns
}

// rowProject maps one sheet row to a project, normalizing blank and
// NaN cells to empty strings.
func rowProject(row []string, columns map[string]int) domain.Project {
	return domain.Project{
		Name:        cell(row, columns, headerName),
		Status:      cell(row, columns, headerStatus),
		Description: cell(row, columns, headerParticulars),
		Vendor:      cell(row, columns, headerVendor),
	}
}

func cell(row []string, columns map[string]int, header string) string {
	idx, ok := columns[header]
	if !ok || idx >= len(row) {
		return ""
	}
	value := strings.TrimSpace(row[idx])
	if value == "NaN" || value == "nan" {
		return ""
	}
	return value
}

func summarize(attempted, succeeded int) (audit.Outcome, string) {
	switch {
	case attempted == 0:
		return audit.OutcomeAll, "no rows to sync"
	case succeeded == attempted:
		return audit.OutcomeAll, fmt.Sprintf("all %d rows synced", succeeded)
	case succeeded == 0:
		return audit.OutcomeNone, fmt.Sprintf("all %d rows failed", attempted)
	default:
		return audit.OutcomePartial, fmt.Sprintf("%d of %d rows synced", succeeded, attempted)
	}
}
