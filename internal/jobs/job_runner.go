package jobs

import (
	"log/slog"
	"time"

	"utility-bill-splitter/internal/config"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/metrics"
	"utility-bill-splitter/internal/repository"
	"utility-bill-splitter/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	shares   repository.BillShareRepository
	notifier service.NotificationService
	config   *config.Config
	now      func() time.Time
	log      *slog.Logger
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(shares repository.BillShareRepository, notifier service.NotificationService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		shares:   shares,
		notifier: notifier,
		config:   cfg,
		now:      time.Now,
		log:      logger.WithService("cronjob"),
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and records the
// outcome in the job metrics.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func() error) {
	result := "success"
	defer func() {
		if r := recover(); r != nil {
			result = "panic"
			jr.log.Error("Job panicked", "job", jobName, "panic", r)
		}
		metrics.JobRuns.WithLabelValues(jobName, result).Inc()
	}()

	jr.log.Info("Starting job", "job", jobName)
	start := time.Now()
	if err := jobFunc(); err != nil {
		result = "failure"
		jr.log.Error("Job failed", "job", jobName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	jr.log.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAllJobs runs every reminder job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.SendOverdueReminders()
	jr.SendDueSoonReminders()
}
