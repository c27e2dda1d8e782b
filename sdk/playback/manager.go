// Package playback replays timed keyboard and mouse events through the host
// input sink. A Manager owns one independent slot per category.
package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/midiplay/internal/scheduler"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// Manager owns the keyboard and mouse playback slots. At most one session
// runs per category; the two categories run independently.
type Manager struct {
	options contracts.PlaybackOptions
	slots   map[contracts.Category]*scheduler.Scheduler

	// startMu makes the busy check, the target focus and the slot start one
	// step, so a rejected Start never touches the target window.
	startMu sync.Mutex
}

// NewManager creates a Manager with both slots idle.
func NewManager(opts ...contracts.PlaybackOption) (*Manager, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	m := &Manager{options: options, slots: make(map[contracts.Category]*scheduler.Scheduler, 2)}
	sinks := map[contracts.Category]contracts.InputSink{
		contracts.Keyboard: options.KeyboardSink,
		contracts.Mouse:    options.MouseSink,
	}
	for category, sink := range sinks {
		m.slots[category] = scheduler.New(scheduler.Config{
			Category:    category,
			Sink:        sink,
			Logger:      options.Logger,
			StopTimeout: options.StopTimeout,
			OnFinish:    options.OnFinish,
		})
	}
	return m, nil
}

// Start begins a session in the category's slot. events are replayed in
// input order at their Time offsets. Every payload must belong to category,
// otherwise contracts.ErrCategoryMismatch is returned. A live session in the
// same slot yields contracts.ErrAlreadyInProgress.
func (m *Manager) Start(category contracts.Category, events []contracts.TimedEvent) error {
	slot, err := m.slot(category)
	if err != nil {
		return err
	}
	for i, ev := range events {
		if ev.Payload == nil || ev.Payload.Category() != category {
			return fmt.Errorf("%w: event %d is not a %s event", contracts.ErrCategoryMismatch, i, category)
		}
	}

	m.startMu.Lock()
	defer m.startMu.Unlock()

	if slot.State() != contracts.Idle {
		return fmt.Errorf("%w: %s", contracts.ErrAlreadyInProgress, category)
	}

	m.focusTarget()

	if err := slot.Start(context.Background(), events); err != nil {
		return err
	}
	log := m.options.Logger
	log.Info("playback started",
		log.Field().String("category", category.String()),
		log.Field().Int("events", len(events)))
	return nil
}

// StartKeys starts a keyboard session.
func (m *Manager) StartKeys(events []KeyEvent) error {
	return m.Start(contracts.Keyboard, KeyTimeline(events))
}

// StartMouse starts a mouse session.
func (m *Manager) StartMouse(events []MouseEvent) error {
	return m.Start(contracts.Mouse, MouseTimeline(events))
}

// Stop ends the category's session, if any. It is idempotent and always
// returns nil; the slot is free for a new session once it returns.
func (m *Manager) Stop(category contracts.Category) error {
	slot, err := m.slot(category)
	if err != nil {
		return nil
	}
	return slot.Stop()
}

// StopAll stops both slots.
func (m *Manager) StopAll() {
	for _, slot := range m.slots {
		_ = slot.Stop()
	}
}

// State reports the lifecycle state of the category's slot.
func (m *Manager) State(category contracts.Category) contracts.PlaybackState {
	slot, err := m.slot(category)
	if err != nil {
		return contracts.Idle
	}
	return slot.State()
}

// Done returns a channel closed when the category's current session ends.
func (m *Manager) Done(category contracts.Category) <-chan struct{} {
	slot, err := m.slot(category)
	if err != nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return slot.Done()
}

func (m *Manager) slot(category contracts.Category) (*scheduler.Scheduler, error) {
	slot, ok := m.slots[category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown %s", contracts.ErrCategoryMismatch, category)
	}
	return slot, nil
}

// focusTarget brings the configured window to the front. A failure is logged
// and the session starts anyway.
func (m *Manager) focusTarget() {
	target, wm := m.options.Target, m.options.Windows
	if target == nil || wm == nil {
		return
	}

	log := m.options.Logger
	if err := wm.Activate(*target); err != nil {
		log.Warn("failed to focus target window",
			log.Field().String("title", target.Title),
			log.Field().Error("error", err))
		return
	}
	time.Sleep(m.options.FocusDelay)
}
