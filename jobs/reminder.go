// Package jobs holds the background schedules of the service.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

const reminderTimeout = 2 * time.Minute

// Reminder notifies owners of events taking place on day.
type Reminder interface {
	RemindUpcoming(ctx context.Context, day time.Time) (int, error)
}

// ReminderJob sends upcoming-event reminders once a day.
type ReminderJob struct {
	events    Reminder
	daysAhead int
	loc       *time.Location
	log       zerolog.Logger
	now       func() time.Time
	scheduler gocron.Scheduler
}

func NewReminderJob(events Reminder, daysAhead int, loc *time.Location, log zerolog.Logger) *ReminderJob {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderJob{
		events:    events,
		daysAhead: daysAhead,
		loc:       loc,
		log:       log.With().Str("job", "event_reminder").Logger(),
		now:       time.Now,
	}
}

// TargetDay is the calendar day, in the job's zone, whose events are reminded today.
func (j *ReminderJob) TargetDay() time.Time {
	today := j.now().In(j.loc)
	return time.Date(today.Year(), today.Month(), today.Day()+j.daysAhead, 0, 0, 0, 0, j.loc)
}

func (j *ReminderJob) RunOnce(ctx context.Context) (int, error) {
	day := j.TargetDay()
	sent, err := j.events.RemindUpcoming(ctx, day)
	if err != nil {
		return sent, fmt.Errorf("remind events on %s: %w", day.Format("2006-01-02"), err)
	}
	return sent, nil
}

func (j *ReminderJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()

	sent, err := j.RunOnce(ctx)
	if err != nil {
		j.log.Error().Err(err).Int("sent", sent).Msg("reminder run failed")
		return
	}
	j.log.Info().Int("sent", sent).Msg("reminders sent")
}

// Start schedules the job daily at 08:00 in the job's zone.
func (j *ReminderJob) Start() error {
	s, err := gocron.NewScheduler(gocron.WithLocation(j.loc))
	if err != nil {
		return fmt.Errorf("create reminder scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(8, 0, 0),
			),
		),
		gocron.NewTask(j.run),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}

	j.scheduler = s
	s.Start()
	j.log.Info().Str("tz", j.loc.String()).Msg("reminder scheduler started (08:00)")
	return nil
}

func (j *ReminderJob) Stop() error {
	if j.scheduler == nil {
		return nil
	}
	return j.scheduler.Shutdown()
}
