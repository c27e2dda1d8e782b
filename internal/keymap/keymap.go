// Package keymap maps pitches to key combos for in-game instruments and
// turns an analysis into a keyboard event timeline.
package keymap

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// ErrUnknownLayout is returned by ByName for an unregistered layout.
var ErrUnknownLayout = errors.New("unknown key layout")

// Name of the built-in three-row layout.
const TwentyOneKeyName = "21-key"

// Layout assigns a key combo to each playable note.
type Layout struct {
	Name string
	keys map[uint8]string
}

var whiteOffsets = [7]uint8{0, 2, 4, 5, 7, 9, 11}

// twentyOneRows lists, lowest octave first, the keys for C D E F G A B.
var twentyOneRows = [3]string{"zxcvbnm", "asdfghj", "qwertyu"}

// TwentyOneKey is the three-octave layout starting at C3 (48). With sharps
// enabled a black key is played as shift plus the white key below it.
func TwentyOneKey(sharps bool) Layout {
	l := Layout{Name: TwentyOneKeyName, keys: make(map[uint8]string, 36)}
	for octave, row := range twentyOneRows {
		base := uint8(48 + 12*octave)
		for i, off := range whiteOffsets {
			key := string(row[i])
			l.keys[base+off] = key
			if sharps && i != 2 && i != 6 { // no black key above E or B
				l.keys[base+off+1] = "shift+" + key
			}
		}
	}
	return l
}

// Custom builds a layout from note-number strings to combos, as stored in
// configuration files.
func Custom(name string, keys map[string]string) (Layout, error) {
	l := Layout{Name: name, keys: make(map[uint8]string, len(keys))}
	for k, combo := range keys {
		n, err := strconv.ParseUint(k, 10, 8)
		if err != nil || n > 127 {
			return Layout{}, fmt.Errorf("layout %q: invalid note %q", name, k)
		}
		if combo == "" {
			return Layout{}, fmt.Errorf("layout %q: empty combo for note %s", name, k)
		}
		l.keys[uint8(n)] = combo
	}
	return l, nil
}

// ByName resolves a built-in layout.
func ByName(name string, sharps bool) (Layout, error) {
	switch name {
	case "", TwentyOneKeyName:
		return TwentyOneKey(sharps), nil
	}
	return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// Combo returns the key combo for note.
func (l Layout) Combo(note uint8) (string, bool) {
	combo, ok := l.keys[note]
	return combo, ok
}

// Notes returns the mapped notes in ascending order.
func (l Layout) Notes() []uint8 {
	notes := make([]uint8, 0, len(l.keys))
	for n := range l.keys {
		notes = append(notes, n)
	}
	slices.Sort(notes)
	return notes
}

// Limits returns the lowest and highest mapped note.
func (l Layout) Limits() (lower, upper uint8, ok bool) {
	notes := l.Notes()
	if len(notes) == 0 {
		return 0, 0, false
	}
	return notes[0], notes[len(notes)-1], true
}

// BuildOptions selects what BuildKeyEvents keeps and how it shifts pitch.
type BuildOptions struct {
	Transpose int
	Octave    int
	// Tracks restricts output to these track indices; empty keeps all.
	Tracks []int
}

// Stats reports how many notes were mapped and dropped.
type Stats struct {
	Mapped  int
	Dropped int
}

// BuildKeyEvents converts the NoteOn events of result into keyboard events,
// shifting each pitch by Transpose + 12*Octave. Notes the layout does not
// cover are dropped and counted.
func BuildKeyEvents(result *contracts.AnalysisResult, layout Layout, opts BuildOptions) ([]contracts.TimedEvent, Stats) {
	var (
		events []contracts.TimedEvent
		stats  Stats
	)
	shift := opts.Transpose + 12*opts.Octave

	for _, ev := range result.Events {
		if ev.Kind != contracts.NoteOn {
			continue
		}
		if len(opts.Tracks) > 0 && !slices.Contains(opts.Tracks, ev.Track) {
			continue
		}

		n := int(ev.Note) + shift
		if n < 0 || n > 127 {
			stats.Dropped++
			continue
		}
		combo, ok := layout.Combo(uint8(n))
		if !ok {
			stats.Dropped++
			continue
		}

		events = append(events, contracts.TimedEvent{
			Time:     ev.Time,
			Payload:  contracts.KeyPayload{Combo: combo},
			Duration: ev.Duration,
		})
		stats.Mapped++
	}
	return events, stats
}
