package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizengine/internal/models"
)

type countingJob struct {
	runs *atomic.Int32
	err  error
	wg   *sync.WaitGroup
}

func (j countingJob) Name() string { return "count" }

func (j countingJob) Run(context.Context) error {
	defer j.wg.Done()
	j.runs.Add(1)
	return j.err
}

type panicJob struct{ wg *sync.WaitGroup }

func (j panicJob) Name() string { return "panic" }

func (j panicJob) Run(context.Context) error {
	defer j.wg.Done()
	panic("boom")
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := NewPool("test-pool", 3, 10)
	p.Start(context.Background())

	var runs atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		var err error
		if i%2 == 0 {
			err = errors.New("failed")
		}
		require.NoError(t, p.Submit(context.Background(), countingJob{runs: &runs, err: err, wg: &wg}))
	}
	wg.Wait()
	p.Stop()

	assert.Equal(t, int32(8), runs.Load())
}

func TestPool_SurvivesPanickingJob(t *testing.T) {
	p := NewPool("test-pool", 1, 4)
	p.Start(context.Background())

	var runs atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)
	require.NoError(t, p.Submit(context.Background(), panicJob{wg: &wg}))
	require.NoError(t, p.Submit(context.Background(), countingJob{runs: &runs, wg: &wg}))
	wg.Wait()
	p.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool("test-pool", 1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	var runs atomic.Int32
	err := p.Submit(context.Background(), countingJob{runs: &runs, wg: &sync.WaitGroup{}})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_SubmitWaitsForFreeSlot(t *testing.T) {
	p := NewPool("test-pool", 1, 1)

	var runs atomic.Int32
	var wg sync.WaitGroup
	wg.Add(3)
	require.NoError(t, p.Submit(context.Background(), countingJob{runs: &runs, wg: &wg}))
	assert.Equal(t, 1, p.QueueSize())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Submit(ctx, countingJob{runs: &runs, wg: &wg}), context.DeadlineExceeded)

	p.Start(context.Background())
	require.NoError(t, p.Submit(context.Background(), countingJob{runs: &runs, wg: &wg}))
	require.NoError(t, p.Submit(context.Background(), countingJob{runs: &runs, wg: &wg}))
	wg.Wait()
	p.Stop()
	assert.Equal(t, int32(3), runs.Load())
}

func TestPool_StopReleasesBlockedSubmit(t *testing.T) {
	p := NewPool("test-pool", 1, 1)

	var runs atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, p.Submit(context.Background(), countingJob{runs: &runs, wg: &wg}))

	var late sync.WaitGroup
	late.Add(1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Submit(context.Background(), countingJob{runs: &runs, wg: &late})
	}()

	p.Start(context.Background())
	wg.Wait()
	p.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			assert.ErrorIs(t, err, ErrPoolClosed)
		}
	case <-time.After(time.Second):
		t.Fatal("Submit still blocked after Stop")
	}
}

type mockImporter struct{ mock.Mock }

func (m *mockImporter) ImportFile(ctx context.Context, path string) (*models.Quiz, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func TestImportQuizJob(t *testing.T) {
	imp := new(mockImporter)
	imp.On("ImportFile", mock.Anything, "/quizzes/logic.json").Return(&models.Quiz{ID: "logic"}, nil)
	imp.On("ImportFile", mock.Anything, "/quizzes/broken.json").Return(nil, errors.New("bad json"))

	ok := &ImportQuizJob{Importer: imp, Path: "/quizzes/logic.json"}
	assert.Equal(t, "import_quiz:logic.json", ok.Name())
	assert.NoError(t, ok.Run(context.Background()))

	broken := &ImportQuizJob{Importer: imp, Path: "/quizzes/broken.json"}
	assert.Error(t, broken.Run(context.Background()))
	imp.AssertExpectations(t)
}
