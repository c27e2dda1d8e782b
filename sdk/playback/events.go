package playback

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// ErrInvalidEvents is returned when an event file is not a JSON array of events.
var ErrInvalidEvents = errors.New("invalid event file")

// KeyEvent is a key combo pressed Time seconds after the session starts.
type KeyEvent struct {
	Time     float64 `json:"time"`
	Key      string  `json:"key"`
	Duration float64 `json:"duration"`
}

// MouseEvent is a left click at (X, Y) Time seconds after the session starts.
type MouseEvent struct {
	Time     float64 `json:"time"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Duration float64 `json:"duration"`
}

// KeyTimeline converts key events into scheduler events, keeping their order.
func KeyTimeline(events []KeyEvent) []contracts.TimedEvent {
	out := make([]contracts.TimedEvent, len(events))
	for i, ev := range events {
		out[i] = contracts.TimedEvent{Time: ev.Time, Payload: contracts.KeyPayload{Combo: ev.Key}, Duration: ev.Duration}
	}
	return out
}

// MouseTimeline converts mouse events into scheduler events, keeping their order.
func MouseTimeline(events []MouseEvent) []contracts.TimedEvent {
	out := make([]contracts.TimedEvent, len(events))
	for i, ev := range events {
		out[i] = contracts.TimedEvent{Time: ev.Time, Payload: contracts.MousePayload{X: ev.X, Y: ev.Y}, Duration: ev.Duration}
	}
	return out
}

// LoadMouseEvents decodes a JSON array of mouse events and sorts it by time.
func LoadMouseEvents(r io.Reader) ([]MouseEvent, error) {
	var events []MouseEvent
	if err := decodeEvents(r, &events); err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	return events, nil
}

// LoadKeyEvents decodes a JSON array of key events and sorts it by time.
func LoadKeyEvents(r io.Reader) ([]KeyEvent, error) {
	var events []KeyEvent
	if err := decodeEvents(r, &events); err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	return events, nil
}

// LoadMouseEventsFile reads a mouse event file from disk.
func LoadMouseEventsFile(path string) ([]MouseEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadMouseEvents(f)
}

// LoadKeyEventsFile reads a key event file from disk.
func LoadKeyEventsFile(path string) ([]KeyEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadKeyEvents(f)
}

func decodeEvents(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvents, err)
	}
	return nil
}
