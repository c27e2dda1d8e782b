package tui

import (
	"strings"
	"testing"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

func TestRenderReport(t *testing.T) {
	lo, hi := uint8(40), uint8(90)
	res := &contracts.AnalysisResult{
		Events:       make([]contracts.NoteEvent, 6),
		TicksPerBeat: 480,
		TempoMap:     []contracts.TempoChange{{Tick: 0, MicrosPerBeat: 500000}},
		Dangling:     1,
		Summary: contracts.RangeSummary{
			MinNote: &lo, MaxNote: &hi,
			MinNoteName: "E2", MaxNoteName: "F#6",
			UnderMinCount: 1, OverMaxCount: 1, TotalOverLimitCount: 2,
		},
		Tracks: []contracts.TrackInfo{{
			ID: 1, Name: "Melody", NoteCount: 3,
			Analysis: contracts.TrackAnalysis{
				MaxNoteName: "F#6", IsMaxOverLimit: true,
				SuggestedMax: &contracts.Shift{Transpose: 5, Octave: -1},
			},
		}},
	}

	out := RenderReport("song.mid", res, 48, 83)
	for _, want := range []string{
		"song.mid",
		"3 notes, 1 tracks, 480 ticks/beat, 1 tempo changes",
		"1 unterminated notes dropped",
		"range E2..F#6 (playable 48..83)",
		"1 below, 1 above",
		"Melody",
		"high: transpose +5 octave -1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportAllPlayable(t *testing.T) {
	out := RenderReport("empty.mid", &contracts.AnalysisResult{}, 48, 83)
	if !strings.Contains(out, "all notes playable") || !strings.Contains(out, "range -..-") {
		t.Errorf("Unexpected report:\n%s", out)
	}
}
