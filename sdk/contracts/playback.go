package contracts

import "errors"

var (
	// ErrAlreadyInProgress is returned when a category slot already runs a session.
	ErrAlreadyInProgress = errors.New("playback already in progress")
	// ErrCategoryMismatch is returned when an event payload does not belong to the requested category.
	ErrCategoryMismatch = errors.New("event payload does not match playback category")
	// ErrPickTimeout is returned when no pointer click arrives within the pick window.
	ErrPickTimeout = errors.New("timed out waiting for a mouse click")
)

// TimedEvent is a payload scheduled at Time seconds after session start.
type TimedEvent struct {
	Time     float64
	Payload  Payload
	Duration float64
}

// PlaybackState is the lifecycle state of one category slot.
type PlaybackState int

const (
	Idle PlaybackState = iota
	Running
	Stopping
)

func (s PlaybackState) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	}
	return "idle"
}
