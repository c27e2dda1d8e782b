package input

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midiplay/internal/input/inputdarwin"
	"github.com/leandrodaf/midiplay/internal/input/inputlinux"
	"github.com/leandrodaf/midiplay/internal/input/inputwindows"
	"github.com/leandrodaf/midiplay/internal/picker"
	"github.com/leandrodaf/midiplay/internal/window/windowdarwin"
	"github.com/leandrodaf/midiplay/internal/window/windowlinux"
	"github.com/leandrodaf/midiplay/internal/window/windowwin"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// ErrUnsupportedOS is returned when no implementation exists for the host.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// sinkInitializers maps OS names to input sink initializers.
var sinkInitializers = map[string]func(*contracts.InputOptions) (contracts.InputSink, error){
	"darwin":  inputdarwin.NewSink,  // osascript / System Events
	"windows": inputwindows.NewSink, // user32 SendInput
	"linux":   inputlinux.NewSink,   // xdotool
}

// windowInitializers maps OS names to window manager initializers.
var windowInitializers = map[string]func(*contracts.InputOptions) (contracts.WindowManager, error){
	"darwin":  windowdarwin.NewManager,
	"windows": windowwin.NewManager,
	"linux":   windowlinux.NewManager,
}

// pointerInitializers maps OS names to pointer source initializers.
var pointerInitializers = map[string]func(*contracts.InputOptions) (contracts.PointerSource, error){
	"windows": picker.NewPointerSource,
}

func initializerFor[T any](table map[string]func(*contracts.InputOptions) (T, error), goos string, opts *contracts.InputOptions) (T, error) {
	if initializer, exists := table[goos]; exists {
		return initializer(opts)
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}

// NewSinkFor builds the input sink for the given OS name.
func NewSinkFor(goos string, opts *contracts.InputOptions) (contracts.InputSink, error) {
	return initializerFor(sinkInitializers, goos, opts)
}

// NewWindowManagerFor builds the window manager for the given OS name.
func NewWindowManagerFor(goos string, opts *contracts.InputOptions) (contracts.WindowManager, error) {
	return initializerFor(windowInitializers, goos, opts)
}

// NewPointerSourceFor builds the click source for the given OS name.
func NewPointerSourceFor(goos string, opts *contracts.InputOptions) (contracts.PointerSource, error) {
	return initializerFor(pointerInitializers, goos, opts)
}

func host() string { return runtime.GOOS }
