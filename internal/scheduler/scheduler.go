// Package scheduler replays timed input events against wall-clock time.
//
// A Scheduler owns a single slot: at most one session runs at a time.
// Sessions are cancelled through a context; the wait before each event is
// interruptible, so Stop takes effect mid-wait. A delivery that is already
// in progress is never interrupted.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// DefaultStopTimeout bounds how long Stop waits for a worker to exit.
const DefaultStopTimeout = time.Second

// lastEventGap is the TimeToNext hint given to the final event.
const lastEventGap = 1.0

// Config configures a Scheduler.
type Config struct {
	Category    contracts.Category
	Sink        contracts.InputSink
	Logger      contracts.Logger
	StopTimeout time.Duration
	// OnFinish runs on the worker goroutine once a session ends, whether it
	// completed or was stopped.
	OnFinish func(contracts.Category)
}

type session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Scheduler is a single-flight playback slot.
type Scheduler struct {
	cfg Config

	mu       sync.Mutex
	active   *session
	draining int
}

// New creates an idle scheduler.
func New(cfg Config) *Scheduler {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	return &Scheduler{cfg: cfg}
}

// Start launches a worker replaying events in input order and returns
// immediately. events must already be sorted by Time. It fails with
// contracts.ErrAlreadyInProgress, changing nothing, while a session is live
// or still being stopped.
func (s *Scheduler) Start(ctx context.Context, events []contracts.TimedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil || s.draining > 0 {
		return fmt.Errorf("%w: %s", contracts.ErrAlreadyInProgress, s.cfg.Category)
	}

	ctx, cancel := context.WithCancel(ctx)
	sess := &session{cancel: cancel, done: make(chan struct{})}
	s.active = sess

	go s.run(ctx, sess, events)
	return nil
}

// Stop cancels the live session, if any, and waits for its worker to exit
// for at most the configured stop timeout. The slot stays reserved during the
// wait and is released when Stop returns, even if the worker overran the
// timeout. Stop is idempotent and always returns nil.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	sess := s.active
	if sess == nil {
		s.mu.Unlock()
		return nil
	}
	s.draining++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.active == sess {
			s.active = nil
		}
		s.draining--
		s.mu.Unlock()
	}()

	sess.cancel()

	timer := time.NewTimer(s.cfg.StopTimeout)
	defer timer.Stop()

	select {
	case <-sess.done:
	case <-timer.C:
		if l := s.cfg.Logger; l != nil {
			l.Warn("playback worker did not stop in time",
				l.Field().String("category", s.cfg.Category.String()),
				l.Field().Duration("timeout", s.cfg.StopTimeout))
		}
	}
	return nil
}

// State reports the slot's lifecycle state.
func (s *Scheduler) State() contracts.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.draining > 0:
		return contracts.Stopping
	case s.active != nil:
		return contracts.Running
	}
	return contracts.Idle
}

// Done returns a channel closed when the live session ends. With no live
// session the returned channel is already closed.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.active.done
}

func (s *Scheduler) run(ctx context.Context, sess *session, events []contracts.TimedEvent) {
	defer close(sess.done)
	defer s.finish(sess)

	logger := s.cfg.Logger
	begin := time.Now()

	for i, ev := range events {
		if ctx.Err() != nil {
			return
		}
		target := time.Duration(ev.Time * float64(time.Second))
		if wait := target - time.Since(begin); wait > 0 {
			if !sleep(ctx, wait) {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}

		hint := contracts.DeliveryHint{Index: i, TimeToNext: timeToNext(events, i), Duration: ev.Duration}
		if err := s.cfg.Sink.Deliver(ev.Payload, hint); err != nil && logger != nil {
			logger.Warn("input delivery failed",
				logger.Field().String("category", s.cfg.Category.String()),
				logger.Field().Int("index", i),
				logger.Field().String("payload", fmt.Sprint(ev.Payload)),
				logger.Field().Error("error", err))
		}
	}

	if logger != nil {
		logger.Debug("playback session completed",
			logger.Field().String("category", s.cfg.Category.String()),
			logger.Field().Int("events", len(events)),
			logger.Field().Duration("elapsed", time.Since(begin)))
	}
}

func (s *Scheduler) finish(sess *session) {
	s.mu.Lock()
	if s.active == sess {
		s.active = nil
	}
	s.mu.Unlock()

	sess.cancel()
	if s.cfg.OnFinish != nil {
		s.cfg.OnFinish(s.cfg.Category)
	}
}

// sleep waits for d or until ctx is cancelled. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func timeToNext(events []contracts.TimedEvent, i int) float64 {
	if i+1 >= len(events) {
		return lastEventGap
	}
	return max(events[i+1].Time-events[i].Time, 0)
}
