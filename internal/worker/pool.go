package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/quizengine/internal/logger"
)

// ErrPoolClosed is returned by Submit once Stop has begun.
var ErrPoolClosed = errors.New("worker pool is closed")

type Job interface {
	Run(context.Context) error
	Name() string
}

type Pool struct {
	jobs    chan Job
	quit    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

func NewPool(name string, workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	log := logger.Default().WithPrefix(name)
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		quit:    make(chan struct{}),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i+1)
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	workerLog := p.log.WithField("worker_id", id)
	workerLog.Debug("worker started")

	for {
		select {
		case <-ctx.Done():
			workerLog.Debug("worker shutting down (context cancelled)")
			return
		case job, ok := <-p.jobs:
			if !ok {
				workerLog.Debug("worker shutting down (queue closed)")
				return
			}
			p.execute(logger.NewContext(ctx, workerLog.WithField("job", job.Name())), job)
		}
	}
}

func (p *Pool) execute(ctx context.Context, job Job) {
	jobLog := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			jobLog.Error("job panicked: %v", r)
		}
	}()

	jobLog.Debug("starting job")
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Info("job completed in %v", time.Since(start))
}

// Stop lets workers drain queued jobs, then waits for them to exit.
// Submit calls blocked on a full queue return ErrPoolClosed.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.quit) })

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.log.Info("stopping worker pool")
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Info("worker pool stopped")
}

// Submit queues a job, waiting for a free slot while the queue is full.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		p.log.Warn("gave up submitting job %s: %v", job.Name(), ctx.Err())
		return ctx.Err()
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
