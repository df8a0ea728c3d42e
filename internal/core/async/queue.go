// Package async runs batch message analysis on a bounded worker pool so the
// HTTP surface can accept large submissions without blocking on inference.
package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core"
)

// Job is one queued message awaiting analysis.
type Job struct {
	ID   uuid.UUID
	Text string
}

// Store persists completed analyses. Satisfied by repository.AnalysisRepository.
type Store interface {
	Save(ctx context.Context, a core.Analysis) error
}

type AnalyzeQueue struct {
	proc    *core.Processor
	store   Store
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch      chan Job
	wg      sync.WaitGroup
	senders sync.WaitGroup
	once    sync.Once

	mu     sync.Mutex
	closed bool
	status map[uuid.UUID]constants.JobStatus
}

type Option func(*AnalyzeQueue)

func WithWorkers(n int) Option {
	return func(q *AnalyzeQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *AnalyzeQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithJobTimeout(d time.Duration) Option {
	return func(q *AnalyzeQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewAnalyzeQueue(proc *core.Processor, store Store, logger *slog.Logger, opts ...Option) *AnalyzeQueue {
	q := &AnalyzeQueue{
		proc:    proc,
		store:   store,
		logger:  logger,
		workers: 4,
		timeout: 30 * time.Second,
		ch:      make(chan Job, 256),
		status:  make(map[uuid.UUID]constants.JobStatus),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *AnalyzeQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("queue.worker.start", "worker_id", workerID)

				for job := range q.ch {
					q.setStatus(job.ID, constants.JobStatusRunning)
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.run(ctx, job)
					cancel()

					if err != nil {
						q.setStatus(job.ID, constants.JobStatusFailed)
						q.logger.Error("queue.job.failed", "worker_id", workerID, "job_id", job.ID, "error", err)
					} else {
						q.setStatus(job.ID, constants.JobStatusDone)
						q.logger.Info("queue.job.done", "worker_id", workerID, "job_id", job.ID)
					}
				}

				q.logger.Info("queue.worker.stop", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *AnalyzeQueue) run(ctx context.Context, job Job) error {
	analysis, err := q.proc.Analyze(ctx, job.Text)
	if err != nil {
		return err
	}
	if q.store == nil {
		return nil
	}
	return q.store.Save(ctx, analysis)
}

// Enqueue submits a job. A full channel blocks the caller rather than
// dropping work. The senders group is joined under the lock so Shutdown
// never closes the channel while a send is in flight.
func (q *AnalyzeQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Warn("queue.enqueue.rejected", "job_id", job.ID)
		return nil
	}
	q.senders.Add(1)
	q.status[job.ID] = constants.JobStatusQueued
	q.mu.Unlock()
	defer q.senders.Done()

	select {
	case q.ch <- job:
		q.logger.Info("queue.enqueue.ok", "job_id", job.ID)
	default:
		q.logger.Warn("queue.enqueue.backpressure", "job_id", job.ID)
		q.ch <- job
	}
	return nil
}

// Status reports the last observed state for a job, or false when the ID
// was never enqueued.
func (q *AnalyzeQueue) Status(id uuid.UUID) (constants.JobStatus, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	s, ok := q.status[id]
	return s, ok
}

func (q *AnalyzeQueue) setStatus(id uuid.UUID, s constants.JobStatus) {
	q.mu.Lock()
	q.status[id] = s
	q.mu.Unlock()
}

// Shutdown stops intake, drains queued jobs and waits for workers, bounded
// by ctx.
func (q *AnalyzeQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	// Blocked Enqueue sends must land before the channel closes; the workers
	// are still draining, so this wait is bounded by the job timeout.
	q.senders.Wait()
	close(q.ch)

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("queue.shutdown.interrupted")
	case <-done:
		q.logger.Info("queue.shutdown.drained")
	}
}
