package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vytor/quizengine/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.QuizImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, importer worker.QuizImporter) JobQueue {
	return &WorkerQueue{importPool: importPool, importer: importer}
}

func (q *WorkerQueue) EnqueueQuizImport(ctx context.Context, path string) error {
	return q.importPool.Submit(ctx, &worker.ImportQuizJob{
		Importer: q.importer,
		Path:     path,
	})
}

// EnqueueQuizDir queues an import for every *.json file directly inside dir,
// in name order, and returns how many were queued. It waits for queue space,
// so a directory larger than the queue is imported in full.
func EnqueueQuizDir(ctx context.Context, q JobQueue, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read quiz dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	queued := 0
	for _, p := range paths {
		if err := q.EnqueueQuizImport(ctx, p); err != nil {
			return queued, fmt.Errorf("enqueue %s: %w", filepath.Base(p), err)
		}
		queued++
	}
	return queued, nil
}
