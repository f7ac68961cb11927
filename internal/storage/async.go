package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/road-remembers/internal/road"
)

// Syncer is one persistence backend fed by AsyncSink.
type Syncer interface {
	Name() string
	Push(ctx context.Context, rec road.SyncRecord) error
}

// AsyncOptions configures an AsyncSink.
type AsyncOptions struct {
	Syncers   []Syncer
	QueueSize int           // Default 16
	Limit     rate.Limit    // Default one per second
	Burst     int           // Default 2
	Timeout   time.Duration // Per push; default 5s
	Logger    *log.Logger
}

// AsyncSink implements road.Sink without blocking the simulation.
// Snapshots are queued and pushed to every Syncer by one worker goroutine.
// When the limiter or the queue rejects a snapshot it is dropped.
// Final records bypass the limiter since they are often the only record of a short run.
type AsyncSink struct {
	syncers []Syncer
	queue   chan road.SyncRecord
	limiter *rate.Limiter
	timeout time.Duration
	logger  *log.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

var _ road.Sink = (*AsyncSink)(nil)

// NewAsyncSink starts the worker.
func NewAsyncSink(opts AsyncOptions) *AsyncSink {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}
	if opts.Limit == 0 {
		opts.Limit = rate.Every(time.Second)
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &AsyncSink{
		syncers: opts.Syncers,
		queue:   make(chan road.SyncRecord, opts.QueueSize),
		limiter: rate.NewLimiter(opts.Limit, opts.Burst),
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}

	s.wg.Add(1)
	go s.run()
	return s
}

// Sync implements road.Sink.
func (s *AsyncSink) Sync(rec road.SyncRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if !rec.Final && !s.limiter.Allow() {
		s.logger.Debug("sync dropped", "reason", "rate limited", "run", rec.RunID, "distance", rec.Memory.DistanceTraveled)
		return
	}

	select {
	case s.queue <- rec:
	default:
		if rec.Final {
			s.logger.Warn("final sync dropped", "reason", "queue full", "run", rec.RunID, "distance", rec.Memory.DistanceTraveled)
			return
		}
		s.logger.Debug("sync dropped", "reason", "queue full", "run", rec.RunID, "distance", rec.Memory.DistanceTraveled)
	}
}

// Close stops accepting snapshots and waits for queued ones to be pushed.
func (s *AsyncSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
}

// run pushes queued snapshots until the queue closes.
func (s *AsyncSink) run() {
	defer s.wg.Done()

	for rec := range s.queue {
		for _, syncer := range s.syncers {
			s.push(syncer, rec)
		}
	}
}

// push delivers one snapshot to one backend.
func (s *AsyncSink) push(syncer Syncer, rec road.SyncRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := syncer.Push(ctx, rec)
	switch {
	case err == nil:
		s.logger.Debug("synced", "sink", syncer.Name(), "run", rec.RunID, "distance", rec.Memory.DistanceTraveled)
	case errors.Is(err, ErrUnconfigured):
		s.logger.Debug("sync skipped", "sink", syncer.Name(), "reason", "unconfigured")
	default:
		s.logger.Warn("sync failed", "sink", syncer.Name(), "error", err)
	}
}
