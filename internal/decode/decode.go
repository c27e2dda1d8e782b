// Package decode turns a parsed Standard MIDI File into per-track,
// absolute-tick event lists. Everything downstream works on these events and
// never touches raw smf messages.
package decode

import (
	"fmt"
	"math"

	"github.com/leandrodaf/midiplay/sdk/contracts"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Kind is the subset of MIDI events the analyzer cares about.
type Kind int

const (
	NoteStart Kind = iota // NoteOn with velocity > 0
	NoteEnd               // NoteOff, or NoteOn with velocity 0
	Tempo
	TrackName
)

// Event is one decoded track event positioned at an absolute tick.
type Event struct {
	Tick          uint32
	Kind          Kind
	Channel       uint8
	Note          uint8
	Velocity      uint8
	MicrosPerBeat uint32
	Name          string
}

// Track is the ordered event list of a single MTrk chunk.
type Track struct {
	Index  int
	Events []Event
}

// Song is a decoded file with metrical timing.
type Song struct {
	TicksPerBeat uint16
	Tracks       []Track
}

// Decode walks every track of mid, accumulating delta times. Only metrical
// (ticks-per-beat) timing is supported.
func Decode(mid *smf.SMF) (*Song, error) {
	ticks, ok := mid.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: %v", contracts.ErrUnsupportedTiming, mid.TimeFormat)
	}
	if ticks == 0 {
		return nil, fmt.Errorf("%w: zero ticks per beat", contracts.ErrInvalidMIDI)
	}

	song := &Song{TicksPerBeat: uint16(ticks), Tracks: make([]Track, 0, len(mid.Tracks))}
	for i, track := range mid.Tracks {
		decoded := Track{Index: i}
		var tick uint32
		for _, ev := range track {
			tick += ev.Delta
			if out, ok := decodeMessage(ev.Message); ok {
				out.Tick = tick
				decoded.Events = append(decoded.Events, out)
			}
		}
		song.Tracks = append(song.Tracks, decoded)
	}
	return song, nil
}

func decodeMessage(msg smf.Message) (Event, bool) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return Event{Kind: NoteStart, Channel: ch, Note: key, Velocity: vel}, true
	case msg.GetNoteEnd(&ch, &key):
		return Event{Kind: NoteEnd, Channel: ch, Note: key}, true
	case msg.Is(smf.MetaTempoMsg):
		if us, ok := microsPerBeat(msg); ok {
			return Event{Kind: Tempo, MicrosPerBeat: us}, true
		}
	default:
		var name string
		if msg.GetMetaTrackName(&name) {
			return Event{Kind: TrackName, Name: name}, true
		}
	}
	return Event{}, false
}

// microsPerBeat reads the raw 24-bit tempo (FF 51 03 tt tt tt) so no
// precision is lost through a BPM round trip. A zero tempo is not a valid
// value and is skipped.
func microsPerBeat(msg smf.Message) (uint32, bool) {
	if len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
		us := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
		return us, us > 0
	}
	var bpm float64
	if msg.GetMetaTempo(&bpm) && bpm > 0 && !math.IsInf(bpm, 1) {
		us := uint32(math.Round(60_000_000 / bpm))
		return us, us > 0
	}
	return 0, false
}

// TempoChanges collects every tempo event across all tracks in scan order
// (track by track).
func (s *Song) TempoChanges() []contracts.TempoChange {
	var out []contracts.TempoChange
	for _, tr := range s.Tracks {
		for _, ev := range tr.Events {
			if ev.Kind == Tempo {
				out = append(out, contracts.TempoChange{Tick: ev.Tick, MicrosPerBeat: ev.MicrosPerBeat})
			}
		}
	}
	return out
}

// TrackName returns the last track-name meta event of the track, or "".
func (t Track) TrackName() string {
	var name string
	for _, ev := range t.Events {
		if ev.Kind == TrackName {
			name = ev.Name
		}
	}
	return name
}
