// Package batch audits a list of pages sequentially, one fresh session per
// page, with a cooldown between pages to respect the target's rate limits.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/audit"
)

// Recorder stores batch runs and their per-page results.
type Recorder interface {
	CreateBatchRun(ctx context.Context, urlCount int) (int64, error)
	InsertBatchResult(ctx context.Context, batchID int64, position int, summary models.BatchSummary) error
	UpdateBatchRunStats(ctx context.Context, batchID int64, successCount, failedCount int) error
}

// Report is the outcome of one Run.
type Report struct {
	BatchID   int64 // 0 when no recorder is configured
	Summaries []models.BatchSummary
	Succeeded int
	Failed    int
}

// Driver runs batch audits.
type Driver struct {
	newSession func() *audit.Session
	cooldown   time.Duration
	save       bool
	recorder   Recorder
	logger     *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithCooldown sets the pause between two pages.
func WithCooldown(d time.Duration) Option {
	return func(dr *Driver) { dr.cooldown = d }
}

// WithSnapshots saves a snapshot of every successfully audited page.
func WithSnapshots(save bool) Option {
	return func(dr *Driver) { dr.save = save }
}

// WithRecorder records the run and its results.
func WithRecorder(r Recorder) Option {
	return func(dr *Driver) { dr.recorder = r }
}

// WithLogger sets the driver logger.
func WithLogger(logger *slog.Logger) Option {
	return func(dr *Driver) {
		if logger != nil {
			dr.logger = logger
		}
	}
}

// NewDriver creates a driver. newSession must return a new, independent
// session on every call.
func NewDriver(newSession func() *audit.Session, opts ...Option) *Driver {
	d := &Driver{newSession: newSession, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "batch")
	return d
}

// Run audits urls in order. Per-page failures are reported in the summaries;
// the returned error is non-nil only when ctx ends the run early or the
// recorder cannot create the run. The partial report is returned either way.
func (d *Driver) Run(ctx context.Context, urls []string) (*Report, error) {
	report := &Report{Summaries: make([]models.BatchSummary, 0, len(urls))}

	if d.recorder != nil {
		id, err := d.recorder.CreateBatchRun(ctx, len(urls))
		if err != nil {
			return report, err
		}
		report.BatchID = id
	}

	d.logger.Info("batch started", "url_count", len(urls), "cooldown", d.cooldown, "batch_id", report.BatchID)
	var runErr error
	for i, rawURL := range urls {
		if i > 0 {
			if err := d.wait(ctx); err != nil {
				runErr = err
				break
			}
		}

		summary := d.auditOne(ctx, rawURL)
		report.Summaries = append(report.Summaries, summary)
		if summary.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}

		if d.recorder != nil {
			if err := d.recorder.InsertBatchResult(context.WithoutCancel(ctx), report.BatchID, i, summary); err != nil {
				d.logger.Warn("failed to record batch result", "url", rawURL, "error", err)
			}
		}
	}

	if d.recorder != nil {
		if err := d.recorder.UpdateBatchRunStats(context.WithoutCancel(ctx), report.BatchID, report.Succeeded, report.Failed); err != nil {
			d.logger.Warn("failed to update batch stats", "batch_id", report.BatchID, "error", err)
		}
	}

	d.logger.Info("batch finished",
		"batch_id", report.BatchID,
		"audited", len(report.Summaries),
		"succeeded", report.Succeeded,
		"failed", report.Failed)
	return report, runErr
}

func (d *Driver) auditOne(ctx context.Context, rawURL string) models.BatchSummary {
	session := d.newSession()
	summary := models.BatchSummary{URL: rawURL}

	if err := session.RunAudit(ctx, rawURL); err != nil {
		summary.Error = errorMessage(err)
		d.logger.Warn("page audit failed", "url", rawURL, "error", err)
		return summary
	}

	view := session.View()
	summary.Success = true
	summary.OverallScore = view.GlobalScore

	if d.save {
		id, err := session.Save(ctx)
		if err != nil {
			summary.Error = err.Error()
			d.logger.Warn("snapshot not saved", "url", rawURL, "error", err)
		} else {
			summary.SnapshotID = id
		}
	}
	return summary
}

func (d *Driver) wait(ctx context.Context) error {
	if d.cooldown <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.cooldown)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func errorMessage(err error) string {
	var transportErr *audit.TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Message()
	}
	return err.Error()
}
