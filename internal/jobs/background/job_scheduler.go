package background

import (
	"context"
	"log"
	"sync"
	"time"

	"pharmatrack/internal/caching"
	"pharmatrack/internal/jobs"
	"pharmatrack/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler owns the daily alert sweep and the cache upkeep jobs. The sweep
// time comes from the stored notification settings, read once at startup; a
// changed time takes effect on the next process restart.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	alertSvc    *jobs.ExpiryAlertService
	settingsSvc services.SettingsService
	stockSvc    services.StockService
	cacheSvc    caching.CacheService
	jobJobs     map[string]gocron.Job
	mu          sync.RWMutex
}

func NewJobScheduler(alertSvc *jobs.ExpiryAlertService, settingsSvc services.SettingsService,
	stockSvc services.StockService, cacheSvc caching.CacheService) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		alertSvc:    alertSvc,
		settingsSvc: settingsSvc,
		stockSvc:    stockSvc,
		cacheSvc:    cacheSvc,
		jobJobs:     make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	hour, minute := js.sweepTime()

	// Daily eligibility sweep at the configured notification time
	sweepJob, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(js.runAlertSweep),
		gocron.WithName("expiry-alert-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create alert sweep job: %v", err)
	} else {
		js.jobJobs["expiry-alert-sweep"] = sweepJob
	}

	// Stock summary refresh keeps the dashboard header warm
	summaryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.refreshStockSummary),
		gocron.WithName("stock-summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock summary job: %v", err)
	} else {
		js.jobJobs["stock-summary-refresh"] = summaryJob
	}

	log.Printf("Registered %d background jobs (sweep at %02d:%02d)", len(js.jobJobs), hour, minute)
}

// sweepTime parses the stored notification time. A missing or malformed value
// falls back to 09:00.
func (js *JobScheduler) sweepTime() (uint, uint) {
	settings, err := js.settingsSvc.Get(context.Background())
	if err != nil {
		log.Printf("Failed to load settings for sweep time, using 09:00: %v", err)
		return 9, 0
	}
	parsed, err := time.Parse("15:04", settings.NotificationTime)
	if err != nil {
		log.Printf("Malformed notification time %q, using 09:00", settings.NotificationTime)
		return 9, 0
	}
	return uint(parsed.Hour()), uint(parsed.Minute())
}

func (js *JobScheduler) runAlertSweep() {
	summary := js.alertSvc.RunAll(context.Background())
	log.Printf("Scheduled sweep done: %d sent, %d failed", summary.NotificationsSent, summary.NotificationsFailed)
}

func (js *JobScheduler) refreshStockSummary() {
	ctx := context.Background()
	if err := js.cacheSvc.DeleteStockSummary(ctx); err != nil {
		log.Printf("Failed to drop stock summary cache: %v", err)
	}
	if _, err := js.stockSvc.Summary(ctx); err != nil {
		log.Printf("Failed to refresh stock summary: %v", err)
	}
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	jobNames := make([]string, 0, len(js.jobJobs))

	for name := range js.jobJobs {
		jobNames = append(jobNames, name)
	}

	status["jobs"] = jobNames

	return status
}
