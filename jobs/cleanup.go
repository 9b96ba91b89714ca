package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	cleanupSchedule = "*/5 * * * *"
	cleanupTimeout  = time.Minute
)

// CodePurger removes password recovery codes that can no longer be used.
type CodePurger interface {
	PurgeRecoveryCodes(ctx context.Context) (int64, error)
}

// CleanupJob purges spent recovery codes every five minutes.
type CleanupJob struct {
	purger CodePurger
	log    zerolog.Logger
	cron   *cron.Cron
}

func NewCleanupJob(purger CodePurger, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{purger: purger, log: log.With().Str("job", "recovery_cleanup").Logger()}
}

func (j *CleanupJob) RunOnce(ctx context.Context) (int64, error) {
	return j.purger.PurgeRecoveryCodes(ctx)
}

func (j *CleanupJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	removed, err := j.RunOnce(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("purge recovery codes")
		return
	}
	if removed > 0 {
		j.log.Info().Int64("removed", removed).Msg("purged recovery codes")
	}
}

func (j *CleanupJob) Start() error {
	logger := j.log
	j.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(&logger)),
	))
	if _, err := j.cron.AddFunc(cleanupSchedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info().Str("schedule", cleanupSchedule).Msg("cleanup scheduler started")
	return nil
}

// Stop waits for a running purge to finish.
func (j *CleanupJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}
