// Package smftest builds Standard MIDI File fixtures for tests.
package smftest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Ev is a delta-timed raw message.
type Ev struct {
	Delta uint32
	Msg   []byte
}

// Track is an ordered list of delta-timed messages.
type Track []Ev

// On is a NoteOn; vel 0 is written verbatim (running NoteOff).
func On(delta uint32, ch, key, vel uint8) Ev {
	if vel == 0 {
		return Ev{delta, []byte{0x90 | ch&0x0F, key & 0x7F, 0}}
	}
	return Ev{delta, midi.NoteOn(ch, key, vel)}
}

// Off is an explicit NoteOff.
func Off(delta uint32, ch, key uint8) Ev {
	return Ev{delta, midi.NoteOff(ch, key)}
}

// Tempo is a set-tempo meta event in microseconds per beat.
func Tempo(delta uint32, microsPerBeat uint32) Ev {
	return Ev{delta, []byte{0xFF, 0x51, 0x03, byte(microsPerBeat >> 16), byte(microsPerBeat >> 8), byte(microsPerBeat)}}
}

// Name is a track-name meta event. name must be shorter than 128 bytes.
func Name(delta uint32, name string) Ev {
	return Ev{delta, append([]byte{0xFF, 0x03, byte(len(name))}, name...)}
}

// Build encodes a format-1 file with metrical timing.
func Build(ticksPerBeat uint16, tracks ...Track) []byte {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)
	for _, tr := range tracks {
		var t smf.Track
		for _, e := range tr {
			t.Add(e.Delta, e.Msg)
		}
		t.Close(0)
		if err := s.Add(t); err != nil {
			panic(err)
		}
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Parse decodes bytes produced by Build.
func Parse(tb testing.TB, data []byte) *smf.SMF {
	tb.Helper()
	mid, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		tb.Fatalf("Failed to parse MIDI fixture: %v", err)
	}
	return mid
}

// WriteFile stores data under a fresh temp dir and returns the path.
func WriteFile(tb testing.TB, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "fixture.mid")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("Failed to write MIDI fixture: %v", err)
	}
	return path
}

// SMPTE returns a one-track file whose header uses timecode division
// (25 fps, 40 subframes), which the analyzer rejects.
func SMPTE() []byte {
	var buf bytes.Buffer
	buf.WriteString("MThd")
	buf.Write([]byte{0x00, 0x00, 0x00, 0x06})
	buf.Write([]byte{0x00, 0x00}) // format 0
	buf.Write([]byte{0x00, 0x01}) // one track
	buf.Write([]byte{0xE7, 0x28}) // -25 fps, 40 subframes

	track := []byte{
		0x00, 0x90, 0x3C, 0x40,
		0x10, 0x80, 0x3C, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	}
	buf.WriteString("MTrk")
	buf.Write([]byte{0x00, 0x00, 0x00, byte(len(track))})
	buf.Write(track)
	return buf.Bytes()
}
