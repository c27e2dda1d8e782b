package keymap

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

func TestTwentyOneKeyWhiteKeys(t *testing.T) {
	l := TwentyOneKey(false)

	tests := map[uint8]string{
		48: "z", 50: "x", 52: "c", 53: "v", 55: "b", 57: "n", 59: "m",
		60: "a", 62: "s", 64: "d", 65: "f", 67: "g", 69: "h", 71: "j",
		72: "q", 74: "w", 76: "e", 77: "r", 79: "t", 81: "y", 83: "u",
	}
	for note, want := range tests {
		if got, ok := l.Combo(note); !ok || got != want {
			t.Errorf("Combo(%d) = %q, %v; want %q", note, got, ok, want)
		}
	}
	if len(l.Notes()) != 21 {
		t.Errorf("Expected 21 keys, got %d", len(l.Notes()))
	}
	if _, ok := l.Combo(61); ok {
		t.Error("black keys must be unmapped without sharps")
	}
}

func TestTwentyOneKeySharps(t *testing.T) {
	l := TwentyOneKey(true)

	tests := map[uint8]string{
		49: "shift+z", 51: "shift+x", 54: "shift+v", 56: "shift+b", 58: "shift+n",
		61: "shift+a", 82: "shift+y",
	}
	for note, want := range tests {
		if got, ok := l.Combo(note); !ok || got != want {
			t.Errorf("Combo(%d) = %q, %v; want %q", note, got, ok, want)
		}
	}
	if len(l.Notes()) != 36 {
		t.Errorf("Expected 36 keys, got %d", len(l.Notes()))
	}
	lo, hi, ok := l.Limits()
	if !ok || lo != 48 || hi != 83 {
		t.Errorf("Limits() = %d, %d, %v", lo, hi, ok)
	}
}

func TestByName(t *testing.T) {
	if l, err := ByName("", false); err != nil || l.Name != TwentyOneKeyName {
		t.Errorf("default layout: %v, %v", l.Name, err)
	}
	if _, err := ByName("88-key", false); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("Expected ErrUnknownLayout, got %v", err)
	}
}

func TestCustom(t *testing.T) {
	l, err := Custom("mine", map[string]string{"60": "1", "62": "ctrl+2"})
	if err != nil {
		t.Fatalf("Custom failed: %v", err)
	}
	if c, ok := l.Combo(62); !ok || c != "ctrl+2" {
		t.Errorf("Combo(62) = %q, %v", c, ok)
	}
	if _, err := Custom("bad", map[string]string{"C4": "a"}); err == nil {
		t.Error("Expected an error for a non-numeric note")
	}
	if _, err := Custom("bad", map[string]string{"200": "a"}); err == nil {
		t.Error("Expected an error for a note above 127")
	}
}

func TestBuildKeyEvents(t *testing.T) {
	result := &contracts.AnalysisResult{Events: []contracts.NoteEvent{
		{Time: 0, Kind: contracts.NoteOn, Note: 60, Track: 0, Duration: 0.5},
		{Time: 0.25, Kind: contracts.NoteOn, Note: 90, Track: 1, Duration: 0.1},
		{Time: 0.5, Kind: contracts.NoteOff, Note: 60, Track: 0},
		{Time: 0.5, Kind: contracts.NoteOn, Note: 47, Track: 1, Duration: 0.2},
		{Time: 1, Kind: contracts.NoteOn, Note: 64, Track: 2, Duration: 1},
	}}

	events, stats := BuildKeyEvents(result, TwentyOneKey(false), BuildOptions{})
	if stats.Mapped != 2 || stats.Dropped != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %+v", events)
	}
	if events[0].Payload != (contracts.KeyPayload{Combo: "a"}) || events[0].Duration != 0.5 {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].Time != 1 || events[1].Payload != (contracts.KeyPayload{Combo: "d"}) {
		t.Errorf("unexpected second event %+v", events[1])
	}
}

func TestBuildKeyEventsShiftAndTrackFilter(t *testing.T) {
	result := &contracts.AnalysisResult{Events: []contracts.NoteEvent{
		{Time: 0, Kind: contracts.NoteOn, Note: 96, Track: 1},
		{Time: 0.1, Kind: contracts.NoteOn, Note: 50, Track: 2},
		{Time: 0.2, Kind: contracts.NoteOn, Note: 2, Track: 1},
	}}

	events, stats := BuildKeyEvents(result, TwentyOneKey(false), BuildOptions{Transpose: 0, Octave: -2, Tracks: []int{1}})
	// 96-24 = 72 -> q; 2-24 < 0 dropped; track 2 skipped entirely.
	if len(events) != 1 || events[0].Payload != (contracts.KeyPayload{Combo: "q"}) {
		t.Errorf("unexpected events %+v", events)
	}
	if stats.Mapped != 1 || stats.Dropped != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	events, _ = BuildKeyEvents(result, TwentyOneKey(true), BuildOptions{Transpose: -1, Tracks: []int{2}})
	if len(events) != 1 || events[0].Payload != (contracts.KeyPayload{Combo: "shift+z"}) {
		t.Errorf("Expected 49 -> shift+z, got %+v", events)
	}
}
