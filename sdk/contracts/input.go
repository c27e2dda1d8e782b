package contracts

import (
	"errors"
	"fmt"
)

// Delivery errors. They are local to one event: the scheduler logs them and
// keeps playing.
var (
	ErrUnsupportedKey      = errors.New("unsupported key")
	ErrUnknownModifier     = errors.New("unknown modifier key")
	ErrUnsupportedPayload  = errors.New("unsupported payload for this input sink")
	ErrUnsupportedPlatform = errors.New("input injection is not available on this platform")
)

// Category identifies an independent playback slot.
type Category int

const (
	// Keyboard sessions deliver key combos.
	Keyboard Category = iota
	// Mouse sessions deliver move-and-click payloads.
	Mouse
)

func (c Category) String() string {
	switch c {
	case Keyboard:
		return "keyboard"
	case Mouse:
		return "mouse"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Payload is what an InputSink actually performs for one timed event.
type Payload interface {
	Category() Category
	String() string
}

// KeyPayload is a modifier+main-key combo such as "a", "shift+a" or "ctrl+c".
type KeyPayload struct {
	Combo string
}

func (KeyPayload) Category() Category { return Keyboard }
func (k KeyPayload) String() string   { return k.Combo }

// MousePayload moves the pointer to (X, Y) and left-clicks.
type MousePayload struct {
	X int
	Y int
}

func (MousePayload) Category() Category { return Mouse }
func (m MousePayload) String() string   { return fmt.Sprintf("(%d,%d)", m.X, m.Y) }

// DeliveryHint carries scheduling context a sink may use to shape delivery,
// e.g. how fast a mouse trajectory must complete.
type DeliveryHint struct {
	Index      int     // position of the event in its session
	TimeToNext float64 // seconds until the next event; 1.0 for the last one
	Duration   float64 // requested hold duration in seconds
}

// InputSink delivers payloads to the operating system.
type InputSink interface {
	Deliver(payload Payload, hint DeliveryHint) error
}

// InputSinkFunc adapts a function to an InputSink.
type InputSinkFunc func(payload Payload, hint DeliveryHint) error

func (f InputSinkFunc) Deliver(payload Payload, hint DeliveryHint) error {
	return f(payload, hint)
}

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointerSource reports left-button presses with their screen position.
// Listen blocks until stop is closed or the source fails, sending every
// press to clicks.
type PointerSource interface {
	Listen(clicks chan<- Point, stop <-chan struct{}) error
}

// WindowInfo describes a top-level window.
type WindowInfo struct {
	ID        uint64 `json:"id"`
	PID       uint32 `json:"pid"`
	Title     string `json:"title"`
	AppName   string `json:"appName"`
	Minimized bool   `json:"isMinimized"`
}

// WindowManager enumerates and focuses top-level windows.
type WindowManager interface {
	List() ([]WindowInfo, error)
	Activate(target WindowInfo) error
}
