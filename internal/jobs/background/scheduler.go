package background

import (
	"context"
	"log"
	"time"

	"storemap/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler owns the background jobs for the process lifetime.
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.CapacityAlertService
}

func NewJobScheduler(alertSvc *jobs.CapacityAlertService, alertInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
	}

	if err := js.registerJobs(alertInterval); err != nil {
		return nil, err
	}

	return js, nil
}

func (js *JobScheduler) registerJobs(alertInterval time.Duration) error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(alertInterval),
		gocron.NewTask(js.alertSvc.ScheduledCapacityCheck, context.Background()),
		gocron.WithName("location-capacity-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}
