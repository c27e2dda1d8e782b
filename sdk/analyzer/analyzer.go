// Package analyzer turns a Standard MIDI File into a timed note timeline with
// range diagnostics.
package analyzer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/leandrodaf/midiplay/internal/blackkey"
	"github.com/leandrodaf/midiplay/internal/decode"
	"github.com/leandrodaf/midiplay/internal/notes"
	"github.com/leandrodaf/midiplay/internal/rangecheck"
	"github.com/leandrodaf/midiplay/internal/tempo"
	"github.com/leandrodaf/midiplay/sdk/contracts"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Analyze reads the file at path and analyzes it.
//
// Errors: contracts.ErrFileNotFound when path does not exist,
// contracts.ErrInvalidMIDI when it cannot be parsed,
// contracts.ErrUnsupportedTiming for timecode (SMPTE) files and
// contracts.ErrInvalidLimits for a bad WithNoteLimits range.
func Analyze(path string, opts ...contracts.AnalyzeOption) (*contracts.AnalysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", contracts.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	return AnalyzeReader(f, opts...)
}

// AnalyzeReader parses a Standard MIDI File from r and analyzes it.
func AnalyzeReader(r io.Reader, opts ...contracts.AnalyzeOption) (*contracts.AnalysisResult, error) {
	mid, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrInvalidMIDI, err)
	}
	return AnalyzeSMF(mid, opts...)
}

// AnalyzeSMF analyzes an already parsed file.
func AnalyzeSMF(mid *smf.SMF, opts ...contracts.AnalyzeOption) (*contracts.AnalysisResult, error) {
	options, limits, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	log := options.Logger

	song, err := decode.Decode(mid)
	if err != nil {
		return nil, err
	}

	tm := tempo.Build(song.TempoChanges())
	rec := notes.Reconstruct(song, tm)
	if rec.Dangling > 0 {
		log.Debug("dropped notes still open at end of track",
			log.Field().Int("count", rec.Dangling))
	}

	blackkey.Apply(rec.Events, options.BlackKeyMode)

	result := &contracts.AnalysisResult{
		Events:       rec.Events,
		Summary:      rangecheck.Summarize(rec.Events, limits),
		Tracks:       trackInfos(song, limits, options),
		TicksPerBeat: song.TicksPerBeat,
		TempoMap:     tm,
		Dangling:     rec.Dangling,
	}
	if result.Events == nil {
		result.Events = []contracts.NoteEvent{}
	}

	log.Debug("analysis complete",
		log.Field().Int("events", len(result.Events)),
		log.Field().Int("tracks", len(result.Tracks)),
		log.Field().Int("tempoChanges", len(tm)),
		log.Field().Int("overLimit", result.Summary.TotalOverLimitCount))
	return result, nil
}

// trackInfos builds one TrackInfo per track with at least one sounding note.
// Per-track statistics use the raw pitches, before any black-key remap.
func trackInfos(song *decode.Song, limits rangecheck.Limits, options contracts.AnalyzeOptions) []contracts.TrackInfo {
	namer := rangecheck.NewNamer(options.Locale)
	infos := []contracts.TrackInfo{}

	for _, track := range song.Tracks {
		var pitches []uint8
		for _, ev := range track.Events {
			if ev.Kind == decode.NoteStart {
				pitches = append(pitches, ev.Note)
			}
		}
		if len(pitches) == 0 {
			continue
		}

		name := track.TrackName()
		if name == "" {
			name = fmt.Sprintf("Track %d", track.Index)
		}
		infos = append(infos, contracts.TrackInfo{
			ID:        track.Index,
			Name:      name,
			NoteCount: len(pitches),
			Analysis:  rangecheck.AnalyzeTrack(pitches, limits, options.CurrentShift, namer),
		})
	}
	return infos
}
