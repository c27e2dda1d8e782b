package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type delivery struct {
	payload contracts.Payload
	hint    contracts.DeliveryHint
	at      time.Duration
}

// recordingSink records every delivery and signals on delivered.
type recordingSink struct {
	mu        sync.Mutex
	start     time.Time
	got       []delivery
	delivered chan struct{}
	fail      func(i int) error
	block     chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{start: time.Now(), delivered: make(chan struct{}, 64)}
}

func (r *recordingSink) Deliver(p contracts.Payload, hint contracts.DeliveryHint) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.got = append(r.got, delivery{payload: p, hint: hint, at: time.Since(r.start)})
	r.mu.Unlock()
	r.delivered <- struct{}{}
	if r.fail != nil {
		return r.fail(hint.Index)
	}
	return nil
}

func (r *recordingSink) deliveries() []delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivery(nil), r.got...)
}

func keys(times ...float64) []contracts.TimedEvent {
	events := make([]contracts.TimedEvent, len(times))
	for i, at := range times {
		events[i] = contracts.TimedEvent{Time: at, Payload: contracts.KeyPayload{Combo: string(rune('a' + i))}}
	}
	return events
}

func waitDelivered(t *testing.T, sink *recordingSink) {
	t.Helper()
	select {
	case <-sink.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a delivery")
	}
}

func waitDone(t *testing.T, s *Scheduler) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the session to end")
	}
}

func TestStartIsSingleFlight(t *testing.T) {
	sink := newRecordingSink()
	s := New(Config{Category: contracts.Keyboard, Sink: sink, Logger: logger.NewNopLogger()})
	defer s.Stop()

	if err := s.Start(context.Background(), keys(0, 10)); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	waitDelivered(t, sink)

	err := s.Start(context.Background(), keys(0))
	if !errors.Is(err, contracts.ErrAlreadyInProgress) {
		t.Fatalf("Expected ErrAlreadyInProgress, got %v", err)
	}
	if st := s.State(); st != contracts.Running {
		t.Errorf("Expected the first session to keep running, got %s", st)
	}

	// The rejected call must not have delivered anything.
	time.Sleep(30 * time.Millisecond)
	if got := sink.deliveries(); len(got) != 1 || got[0].payload != (contracts.KeyPayload{Combo: "a"}) {
		t.Errorf("unexpected deliveries: %+v", got)
	}
}

func TestStopCancelsMidWaitAndAllowsRestart(t *testing.T) {
	sink := newRecordingSink()
	s := New(Config{Category: contracts.Keyboard, Sink: sink})

	if err := s.Start(context.Background(), keys(0, 5)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDelivered(t, sink)

	began := time.Now()
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop returned %v", err)
	}
	if took := time.Since(began); took > 500*time.Millisecond {
		t.Errorf("Stop should interrupt the 5s wait, took %v", took)
	}
	if st := s.State(); st != contracts.Idle {
		t.Errorf("Expected Idle after Stop, got %s", st)
	}
	if n := len(sink.deliveries()); n != 1 {
		t.Errorf("Expected dispatch to halt after the first event, got %d deliveries", n)
	}

	if err := s.Start(context.Background(), keys(0)); err != nil {
		t.Fatalf("restart after Stop failed: %v", err)
	}
	waitDelivered(t, sink)
	waitDone(t, s)
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	s := New(Config{Category: contracts.Mouse, Sink: newRecordingSink()})
	for range 3 {
		if err := s.Stop(); err != nil {
			t.Fatalf("Stop on idle slot returned %v", err)
		}
	}
	if st := s.State(); st != contracts.Idle {
		t.Errorf("Expected Idle, got %s", st)
	}
}

func TestEventsDeliveredInOrderAndNeverEarly(t *testing.T) {
	sink := newRecordingSink()
	s := New(Config{Category: contracts.Keyboard, Sink: sink})

	events := keys(0, 0.02, 0.02, 0.05)
	if err := s.Start(context.Background(), events); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, s)

	got := sink.deliveries()
	if len(got) != len(events) {
		t.Fatalf("Expected %d deliveries, got %d", len(events), len(got))
	}
	for i, d := range got {
		if d.payload != events[i].Payload {
			t.Errorf("delivery %d: got %v, want %v", i, d.payload, events[i].Payload)
		}
		if d.hint.Index != i {
			t.Errorf("delivery %d carries index %d", i, d.hint.Index)
		}
		if earliest := time.Duration(events[i].Time * float64(time.Second)); d.at < earliest {
			t.Errorf("delivery %d arrived early: %v < %v", i, d.at, earliest)
		}
	}

	wantGaps := []float64{0.02, 0, 0.03, 1.0}
	for i, want := range wantGaps {
		if diff := got[i].hint.TimeToNext - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("delivery %d TimeToNext = %v, want %v", i, got[i].hint.TimeToNext, want)
		}
	}
	if st := s.State(); st != contracts.Idle {
		t.Errorf("Expected Idle after completion, got %s", st)
	}
}

func TestDeliveryErrorsAreLoggedAndPlaybackContinues(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := newRecordingSink()
	sink.fail = func(i int) error {
		if i == 0 {
			return contracts.ErrUnsupportedKey
		}
		return nil
	}
	s := New(Config{Category: contracts.Keyboard, Sink: sink, Logger: logger.FromZap(zap.New(core))})

	if err := s.Start(context.Background(), keys(0, 0.01)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, s)

	if n := len(sink.deliveries()); n != 2 {
		t.Fatalf("Expected both events delivered, got %d", n)
	}
	entries := logs.FilterMessage("input delivery failed").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(entries))
	}
	if idx, ok := entries[0].ContextMap()["index"].(int64); !ok || idx != 0 {
		t.Errorf("Expected index 0 in log context, got %v", entries[0].ContextMap())
	}
}

func TestOnFinishRunsOnceForCompletionAndStop(t *testing.T) {
	var calls atomic.Int32
	var last atomic.Value
	s := New(Config{
		Category: contracts.Mouse,
		Sink:     newRecordingSink(),
		OnFinish: func(c contracts.Category) {
			calls.Add(1)
			last.Store(c)
		},
	})

	if err := s.Start(context.Background(), []contracts.TimedEvent{{Payload: contracts.MousePayload{X: 1, Y: 2}}}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, s)
	if calls.Load() != 1 || last.Load() != contracts.Mouse {
		t.Errorf("Expected one OnFinish(mouse), got %d calls, last %v", calls.Load(), last.Load())
	}

	if err := s.Start(context.Background(), keys(10)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	_ = s.Stop()
	if calls.Load() != 2 {
		t.Errorf("Expected OnFinish after Stop, got %d calls", calls.Load())
	}
}

func TestParentContextCancelsSession(t *testing.T) {
	sink := newRecordingSink()
	s := New(Config{Category: contracts.Keyboard, Sink: sink})

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx, keys(0, 5)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDelivered(t, sink)
	cancel()
	waitDone(t, s)

	if st := s.State(); st != contracts.Idle {
		t.Errorf("Expected Idle after parent cancel, got %s", st)
	}
}

func TestStopIsBoundedWhenDeliveryHangs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := newRecordingSink()
	sink.block = make(chan struct{})
	s := New(Config{
		Category:    contracts.Keyboard,
		Sink:        sink,
		Logger:      logger.FromZap(zap.New(core)),
		StopTimeout: 50 * time.Millisecond,
	})

	if err := s.Start(context.Background(), keys(0)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	began := time.Now()
	_ = s.Stop()
	if took := time.Since(began); took > time.Second {
		t.Errorf("Stop exceeded its bound: %v", took)
	}
	if logs.FilterMessage("playback worker did not stop in time").Len() != 1 {
		t.Errorf("Expected a timeout warning, got %v", logs.All())
	}
	if err := s.Start(context.Background(), nil); err != nil {
		t.Errorf("slot should be free after a timed-out Stop: %v", err)
	}

	close(sink.block)
	waitDelivered(t, sink)
}

// slowSink holds every delivery for hold and tracks how many overlap.
type slowSink struct {
	hold     time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	entered  chan struct{}
}

func (s *slowSink) Deliver(contracts.Payload, contracts.DeliveryHint) error {
	n := s.inFlight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case s.entered <- struct{}{}:
	default:
	}
	time.Sleep(s.hold)
	s.inFlight.Add(-1)
	return nil
}

func TestStartRejectedWhileStopWaitsForWorker(t *testing.T) {
	sink := &slowSink{hold: 200 * time.Millisecond, entered: make(chan struct{}, 1)}
	s := New(Config{Category: contracts.Keyboard, Sink: sink, Logger: logger.NewNopLogger()})
	defer s.Stop()

	if err := s.Start(context.Background(), keys(0, 0.01, 0.02)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	select {
	case <-sink.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first delivery")
	}

	stopped := make(chan struct{})
	go func() {
		_ = s.Stop()
		close(stopped)
	}()
	time.Sleep(10 * time.Millisecond)

	if st := s.State(); st != contracts.Stopping {
		t.Errorf("Expected Stopping while the worker finishes its delivery, got %s", st)
	}
	if err := s.Start(context.Background(), keys(0)); !errors.Is(err, contracts.ErrAlreadyInProgress) {
		t.Errorf("Expected ErrAlreadyInProgress during Stop, got %v", err)
	}

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	if st := s.State(); st != contracts.Idle {
		t.Errorf("Expected Idle after Stop, got %s", st)
	}
	if err := s.Start(context.Background(), keys(0)); err != nil {
		t.Fatalf("restart after Stop failed: %v", err)
	}
	waitDone(t, s)

	if p := sink.peak.Load(); p != 1 {
		t.Errorf("Expected at most one delivery in flight, peak was %d", p)
	}
}
