// Package blackkey snaps black-key pitches to a neighbouring white key for
// instruments that only expose the diatonic keys.
package blackkey

import "github.com/leandrodaf/midiplay/sdk/contracts"

var whiteClasses = [...]int{0, 2, 4, 5, 7, 9, 11}

// IsBlack reports whether note falls on C#, D#, F#, G# or A#.
func IsBlack(note uint8) bool {
	switch note % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// NearestWhite returns the white pitch class closest to pc. On a tie the
// lower class wins, so 6 (F#) maps to 5 (F).
func NearestWhite(pc int) int {
	best, bestDist := pc, 1<<30
	for _, w := range whiteClasses {
		d := w - pc
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = w, d
		}
	}
	return best
}

// Remap moves a black-key note onto its nearest white key in the same
// octave. White keys are returned unchanged.
func Remap(note uint8) uint8 {
	if !IsBlack(note) {
		return note
	}
	pc := int(note % 12)
	return uint8(int(note) - pc + NearestWhite(pc))
}

// Apply rewrites Note on every event in place according to mode. Both
// members of a pair go through the same pure mapping, so they stay in sync.
func Apply(events []contracts.NoteEvent, mode contracts.BlackKeyMode) {
	if mode != contracts.BlackKeyAutoSharp {
		return
	}
	for i := range events {
		events[i].Note = Remap(events[i].Note)
	}
}
