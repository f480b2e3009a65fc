package jobs

import "context"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueQuizImport blocks while the queue is full, until ctx is done.
	EnqueueQuizImport(ctx context.Context, path string) error
}
