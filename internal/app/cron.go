package app

import (
	"context"
	"time"

	"github.com/moodify/core/internal/config"
	pkgcron "github.com/moodify/core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, svcs *services, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "topmoods_reconcile",
		Description: "Recompute cached top moods for recently active users",
		Interval:    cfg.Cron.ReconcileInterval,
		Timeout:     5 * time.Minute,
		Fn: func(ctx context.Context) error {
			since := time.Now().Add(-cfg.Cron.ReconcileWindow)
			n, err := svcs.mood.ReconcileTopMoods(ctx, since)
			if err != nil {
				cronLogger.Warn("reconcile top moods failed", zap.Error(err))
				return err
			}
			cronLogger.Info("reconciled top moods", zap.Int("users", n))
			return nil
		},
	})
}
