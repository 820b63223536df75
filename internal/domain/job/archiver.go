package job

import (
	"context"
	"sync"
	"time"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

const archiveQueueSize = 64

// archiver writes batches to the Archive on a single background goroutine.
// Searches only enqueue; a full queue drops the batch.
type archiver struct {
	archive Archive
	timeout time.Duration
	logger  *logging.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan []domain.Job
	done   chan struct{}
}

func newArchiver(archive Archive, timeout time.Duration, logger *logging.Logger) *archiver {
	a := &archiver{
		archive: archive,
		timeout: timeout,
		logger:  logger,
		queue:   make(chan []domain.Job, archiveQueueSize),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *archiver) run() {
	defer close(a.done)
	for batch := range a.queue {
		a.write(batch)
	}
}

func (a *archiver) write(batch []domain.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.archive.UpsertJobs(ctx, batch); err != nil {
		a.logger.Warn("failed to archive jobs", "count", len(batch), "err", err)
	}
}

// enqueue reports whether the batch was accepted
func (a *archiver) enqueue(batch []domain.Job) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return false
	}
	select {
	case a.queue <- batch:
		return true
	default:
		a.logger.Warn("archive queue full, dropping batch", "count", len(batch))
		return false
	}
}

// close stops accepting batches and waits for queued ones until ctx ends
func (a *archiver) close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
