// Package rangecheck computes pitch-range statistics against a playable
// range and suggests transpose/octave corrections for out-of-range tracks.
package rangecheck

import (
	"fmt"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// Limits is the inclusive playable note range.
type Limits struct {
	Lower uint8
	Upper uint8
}

// DefaultLimits is the 36-key range C3..B5.
var DefaultLimits = Limits{Lower: contracts.DefaultLowerLimit, Upper: contracts.DefaultUpperLimit}

// Validate rejects inverted ranges and notes outside 0..127.
func (l Limits) Validate() error {
	if l.Lower > 127 || l.Upper > 127 {
		return fmt.Errorf("%w: %d..%d exceeds the MIDI note range", contracts.ErrInvalidLimits, l.Lower, l.Upper)
	}
	if l.Lower > l.Upper {
		return fmt.Errorf("%w: lower %d is above upper %d", contracts.ErrInvalidLimits, l.Lower, l.Upper)
	}
	return nil
}

// Contains reports whether note lies within the range.
func (l Limits) Contains(note uint8) bool {
	return note >= l.Lower && note <= l.Upper
}

// Summarize computes global statistics over every NoteOn-kind event.
func Summarize(events []contracts.NoteEvent, limits Limits) contracts.RangeSummary {
	var s contracts.RangeSummary
	for _, ev := range events {
		if ev.Kind != contracts.NoteOn {
			continue
		}
		n := ev.Note
		if s.MinNote == nil || n < *s.MinNote {
			s.MinNote = &n
		}
		if s.MaxNote == nil || n > *s.MaxNote {
			s.MaxNote = &n
		}
		if n < limits.Lower {
			s.UnderMinCount++
		}
		if n > limits.Upper {
			s.OverMaxCount++
		}
	}
	if s.MinNote != nil {
		s.MinNoteName = NoteName(*s.MinNote)
	}
	if s.MaxNote != nil {
		s.MaxNoteName = NoteName(*s.MaxNote)
	}
	s.TotalOverLimitCount = s.UnderMinCount + s.OverMaxCount
	return s
}

// AnalyzeTrack computes per-track statistics for the sounding notes of one
// track. Suggestions are only produced for a boundary whose flag is set.
func AnalyzeTrack(notes []uint8, limits Limits, current contracts.Shift, namer Namer) contracts.TrackAnalysis {
	var a contracts.TrackAnalysis
	if len(notes) == 0 {
		return a
	}

	lo, hi := notes[0], notes[0]
	for _, n := range notes {
		lo = min(lo, n)
		hi = max(hi, n)
		if n > limits.Upper {
			a.UpperOverLimit++
		}
		if n < limits.Lower {
			a.LowerOverLimit++
		}
	}
	a.MinNote, a.MaxNote = &lo, &hi
	a.MinNoteName, a.MaxNoteName = NoteName(lo), NoteName(hi)
	a.MinNoteGroup, a.MaxNoteGroup = namer.Group(lo), namer.Group(hi)
	a.IsMaxOverLimit = !limits.Contains(hi)
	a.IsMinOverLimit = !limits.Contains(lo)

	if a.IsMaxOverLimit {
		s := Suggest(int(limits.Upper)-int(hi), current)
		a.SuggestedMax = &s
	}
	if a.IsMinOverLimit {
		s := Suggest(int(limits.Lower)-int(lo), current)
		a.SuggestedMin = &s
	}
	return a
}

// Suggest picks the transpose/octave pair that moves a note by diff
// semitones with the least total adjustment. Candidates cover octave shifts
// -2..2; the first candidate with the lowest Score wins.
func Suggest(diff int, current contracts.Shift) contracts.Shift {
	var (
		best      contracts.Shift
		bestScore float64
	)
	for shift := -2; shift <= 2; shift++ {
		c := contracts.Shift{
			Transpose: current.Transpose + diff - 12*shift,
			Octave:    current.Octave + shift,
		}
		if score := Score(c); shift == -2 || score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// Score is |transpose| + |octave|, less 0.5 when |transpose| is a fourth,
// tritone or fifth (5..7 semitones).
func Score(s contracts.Shift) float64 {
	t := abs(s.Transpose)
	score := float64(t + abs(s.Octave))
	if t >= 5 && t <= 7 {
		score -= 0.5
	}
	return score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
