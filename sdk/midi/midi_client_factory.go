package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midiplay/internal/midi/mididarwin"
	"github.com/leandrodaf/midiplay/internal/midi/midiwindows"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // macOS (Darwin) MIDI client initializer.
	"windows": midiwindows.NewMIDIClient, // Windows MIDI client initializer.
}

// NewClient initializes a MIDI client based on the current operating system.
// It supports macOS (Darwin) and Windows, returning ErrUnsupportedOS if the OS is unsupported.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return NewClientFor(runtime.GOOS, opts)
}

// NewClientFor initializes the MIDI client registered for goos.
func NewClientFor(goos string, opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[goos]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
