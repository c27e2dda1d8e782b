package contracts

import "errors"

// ErrMIDIUnavailable is returned by capture clients on platforms without a
// native MIDI input backend.
var ErrMIDIUnavailable = errors.New("MIDI capture is not available on this platform")

// MIDI represents a live MIDI event captured from an input device.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status nibble (e.g. Note On, Note Off).
	Channel   byte   // Channel is the zero-based MIDI channel.
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
}

// IsNoteStart reports whether the event starts a sounding note.
func (m MIDI) IsNoteStart() bool {
	return MIDICommand(m.Command) == NoteOnCommand && m.Velocity > 0
}

// ClientMIDI defines an interface for live MIDI capture.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI devices.
	SelectDevice(deviceID int) error     // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
}
