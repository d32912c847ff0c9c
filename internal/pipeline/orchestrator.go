package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/edigest/internal/config"
	"github.com/dgallion1/edigest/internal/interchange"
)

// Orchestrator manages the async ingestion pipeline behind the HTTP API:
// a bounded queue feeding a fixed worker pool, with job state held in a
// TTL-evicted registry.
type Orchestrator struct {
	jobs      *JobStore
	queue     chan *Job
	processor *Processor
	stats     *ProcStats
	log       *slog.Logger

	workerCount int
	wg          sync.WaitGroup
	cancel      context.CancelFunc
}

func NewOrchestrator(cfg config.Config, processor *Processor, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:        NewJobStore(cfg.JobTTL),
		queue:       make(chan *Job, cfg.MaxQueueSize),
		processor:   processor,
		stats:       NewProcStats(time.Hour),
		log:         log,
		workerCount: cfg.WorkerCount,
	}
}

// Start launches the worker pool and the job-store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, o.cancel = context.WithCancel(ctx)

	for i := 0; i < o.workerCount; i++ {
		o.wg.Add(1)
		go o.worker(ctx)
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				o.jobs.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop drains workers. Queued jobs that never ran stay in status queued.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues a job. It fails fast when the queue is full.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail(fmt.Errorf("queue full"))
		return fmt.Errorf("ingest queue full (%d pending)", cap(o.queue))
	}
}

// Job returns the job with the given ID, or nil.
func (o *Orchestrator) Job(id string) *Job {
	return o.jobs.Get(id)
}

// Stats returns the processing latency tracker.
func (o *Orchestrator) Stats() *ProcStats {
	return o.stats
}

func (o *Orchestrator) worker(ctx context.Context) {
	defer o.wg.Done()
	for {
		select {
		case job := <-o.queue:
			o.run(ctx, job)
		case <-ctx.Done():
			return
		}
	}
}

func (o *Orchestrator) run(ctx context.Context, job *Job) {
	job.SetStatus(StatusProcessing)
	start := time.Now()

	outcome, err := o.processor.Process(ctx, job.Filename, job.data, interchange.ParseFormat(job.override))
	o.stats.Record(time.Since(start).Milliseconds())

	if err != nil {
		o.log.Error("job failed", "job_id", job.ID, "file", job.Filename, "error", err)
		job.Fail(err)
		return
	}
	job.Complete(outcome)
}
