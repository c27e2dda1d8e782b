package midievent

import (
	"testing"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

func TestDecodeSplitsChannelAndCommand(t *testing.T) {
	events := Decode([]byte{0x93, 60, 100}, 42)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	want := contracts.MIDI{Timestamp: 42, Command: 0x90, Channel: 3, Note: 60, Velocity: 100}
	if events[0] != want {
		t.Errorf("got %+v, want %+v", events[0], want)
	}
	if !events[0].IsNoteStart() {
		t.Error("Expected a note start")
	}
}

func TestDecodeRunningStatus(t *testing.T) {
	events := Decode([]byte{0x90, 60, 100, 64, 90, 60, 0}, 0)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d: %+v", len(events), events)
	}
	if events[1].Note != 64 || events[1].Velocity != 90 || events[1].Command != 0x90 {
		t.Errorf("Unexpected running-status event: %+v", events[1])
	}
	if events[2].IsNoteStart() {
		t.Error("NoteOn with velocity 0 must not start a note")
	}
}

// sysex, clock, program change, note off, song position and a truncated
// note on.
func TestDecodeSkipsSystemMessages(t *testing.T) {
	data := []byte{
		0xF0, 0x7E, 0x7F, 0x09, 0x01, 0xF7,
		0xF8,
		0xC2, 5,
		0x80, 60, 0x40,
		0xF2, 0x10, 0x20,
		0x90, 61,
	}
	events := Decode(data, 0)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Command != 0xC0 || events[0].Channel != 2 || events[0].Note != 5 {
		t.Errorf("Unexpected program change: %+v", events[0])
	}
	if events[1].Command != byte(contracts.NoteOffCommand) || events[1].Note != 60 {
		t.Errorf("Unexpected note off: %+v", events[1])
	}
}

func TestFromShortMessage(t *testing.T) {
	ev := FromShortMessage(0x00_64_3C_91, 7)
	want := contracts.MIDI{Timestamp: 7, Command: 0x90, Channel: 1, Note: 0x3C, Velocity: 0x64}
	if ev != want {
		t.Errorf("got %+v, want %+v", ev, want)
	}
}

func TestAllowed(t *testing.T) {
	filter := &contracts.MIDIEventFilter{Commands: []contracts.MIDICommand{contracts.NoteOnCommand}}
	if !Allowed(nil, 0xB0) {
		t.Error("nil filter must allow everything")
	}
	if !Allowed(filter, 0x90) || Allowed(filter, 0x80) {
		t.Error("filter did not match commands")
	}
}

func TestDeliverDropsWhenFull(t *testing.T) {
	ch := make(chan contracts.MIDI, 1)
	if !Deliver(ch, contracts.MIDI{Note: 1}) {
		t.Fatal("first delivery should fit")
	}
	if Deliver(ch, contracts.MIDI{Note: 2}) {
		t.Error("second delivery should be dropped")
	}
}
