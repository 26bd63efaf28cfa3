package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"coach-library-backend/pkg/logger"
)

// Queue is a bounded worker pool for fire-and-forget jobs, primarily
// outgoing notification emails. Jobs that fail are retried with backoff
// up to their retry budget and then dropped with a log entry.

type QueueConfig struct {
	WorkerCount int
	QueueSize   int
}

type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

type Job struct {
	Name        string
	Run         func(ctx context.Context) error
	Timeout     time.Duration
	RetryPolicy RetryPolicy
}

var (
	ErrQueueNotStarted   = errors.New("queue not started")
	errQueueShuttingDown = errors.New("queue is shutting down")
)

type Queue struct {
	config QueueConfig

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool

	jobs chan queuedJob

	workerWG sync.WaitGroup
	jobWG    sync.WaitGroup
}

type queuedJob struct {
	job     Job
	attempt int
	delay   time.Duration
}

var (
	metricsOnce        sync.Once
	jobRunsTotal       *prometheus.CounterVec
	jobDurationSeconds *prometheus.HistogramVec
	queueDepth         prometheus.Gauge
)

func initMetrics() {
	metricsOnce.Do(func() {
		jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coach_library",
			Subsystem: "queue",
			Name:      "job_runs_total",
			Help:      "Total queued job executions",
		}, []string{"job", "status"})

		jobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coach_library",
			Subsystem: "queue",
			Name:      "job_duration_seconds",
			Help:      "Duration of queued job executions",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"})

		queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "coach_library",
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Number of jobs waiting in the queue",
		})
	})
}

func NewQueue(cfg QueueConfig) *Queue {
	initMetrics()

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}

	return &Queue{
		config: cfg,
		jobs:   make(chan queuedJob, cfg.QueueSize),
	}
}

func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return
	}

	q.ctx, q.cancel = context.WithCancel(ctx)
	q.started = true

	for i := 0; i < q.config.WorkerCount; i++ {
		q.workerWG.Add(1)
		go q.worker()
	}
}

func (q *Queue) worker() {
	defer q.workerWG.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			queueDepth.Dec()
			q.execute(job)
		}
	}
}

func (q *Queue) execute(job queuedJob) {
	if job.delay > 0 {
		timer := time.NewTimer(job.delay)
		select {
		case <-timer.C:
		case <-q.ctx.Done():
			timer.Stop()
			return
		}
	}

	q.jobWG.Add(1)
	defer q.jobWG.Done()

	err := q.run(job)
	if err == nil {
		return
	}

	if q.shouldRetry(job, err) {
		retry := job
		retry.attempt++
		retry.delay = job.job.RetryPolicy.Backoff
		if q.push(retry) {
			return
		}
	}

	logger.Error(err, "Queued job dropped", map[string]interface{}{
		"job":     job.job.Name,
		"attempt": job.attempt,
	})
}

func (q *Queue) run(job queuedJob) (runErr error) {
	start := time.Now()
	status := "success"

	ctx := q.ctx
	if job.job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.job.Timeout)
		defer cancel()
	}

	defer func() {
		jobDurationSeconds.WithLabelValues(job.job.Name).Observe(time.Since(start).Seconds())
		jobRunsTotal.WithLabelValues(job.job.Name, status).Inc()
	}()

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
			status = "failure"
			logger.Error(runErr, "Queued job panicked", map[string]interface{}{
				"job":     job.job.Name,
				"attempt": job.attempt,
			})
		}
	}()

	runErr = job.job.Run(ctx)
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			status = "canceled"
		} else {
			status = "failure"
		}
		logger.Error(runErr, "Queued job failed", map[string]interface{}{
			"job":     job.job.Name,
			"attempt": job.attempt,
		})
	}
	return runErr
}

func (q *Queue) shouldRetry(job queuedJob, err error) bool {
	if job.job.RetryPolicy.MaxRetries <= 0 {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return job.attempt <= job.job.RetryPolicy.MaxRetries
}

func (q *Queue) push(job queuedJob) bool {
	select {
	case <-q.ctx.Done():
		return false
	case q.jobs <- job:
		queueDepth.Inc()
		return true
	}
}

// Enqueue adds a job for execution. It never blocks the caller beyond
// channel capacity and reports whether the job was accepted.
func (q *Queue) Enqueue(job Job) error {
	if job.Name == "" {
		return errors.New("job name is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	q.mu.Lock()
	started := q.started
	q.mu.Unlock()
	if !started {
		return ErrQueueNotStarted
	}

	if !q.push(queuedJob{job: job, attempt: 1}) {
		return errQueueShuttingDown
	}
	return nil
}

func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return nil
	}
	cancel := q.cancel
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		q.workerWG.Wait()
		q.jobWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
