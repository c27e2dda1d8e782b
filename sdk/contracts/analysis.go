package contracts

import "errors"

// Input errors returned by the analyzer. Any of them aborts the analysis; no
// partial result is produced.
var (
	ErrFileNotFound      = errors.New("MIDI file not found")
	ErrInvalidMIDI       = errors.New("invalid MIDI file format")
	ErrUnsupportedTiming = errors.New("unsupported MIDI timing mode")
	ErrInvalidLimits     = errors.New("invalid note limits")
)

// DefaultMicrosPerBeat is the tempo assumed at tick 0 when a file carries no
// tempo meta event there (120 BPM).
const DefaultMicrosPerBeat = 500_000

// Default playable range used when the caller does not supply limits.
const (
	DefaultLowerLimit uint8 = 48
	DefaultUpperLimit uint8 = 83
)

// TempoChange is a single entry of a tempo map.
type TempoChange struct {
	Tick          uint32 `json:"tick"`
	MicrosPerBeat uint32 `json:"microsecondsPerBeat"`
}

// NoteKind distinguishes the two halves of a reconstructed note.
type NoteKind int

const (
	NoteOn NoteKind = iota
	NoteOff
)

func (k NoteKind) String() string {
	if k == NoteOff {
		return "note_off"
	}
	return "note_on"
}

// MarshalText encodes the kind as "note_on" / "note_off".
func (k NoteKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes "note_on" / "note_off".
func (k *NoteKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "note_on":
		*k = NoteOn
	case "note_off":
		*k = NoteOff
	default:
		return errors.New("unknown note kind: " + string(b))
	}
	return nil
}

// NoteEvent is one half of a note interval on the absolute timeline.
// A NoteOn/NoteOff pair shares Note, Channel, Track and End. The NoteOff half
// always has Velocity 0 and Duration 0.
type NoteEvent struct {
	Time     float64  `json:"time"`
	Kind     NoteKind `json:"type"`
	Note     uint8    `json:"note"`
	Channel  uint8    `json:"channel"`
	Track    int      `json:"track"`
	Velocity uint8    `json:"velocity"`
	Duration float64  `json:"duration"`
	End      float64  `json:"end"`
}

// Shift is a suggested transpose (semitones) and octave correction.
type Shift struct {
	Transpose int `json:"transpose"`
	Octave    int `json:"octave"`
}

// TrackAnalysis holds the per-track range diagnostics.
type TrackAnalysis struct {
	MaxNote        *uint8 `json:"maxNote,omitempty"`
	MinNote        *uint8 `json:"minNote,omitempty"`
	MaxNoteName    string `json:"maxNoteName"`
	MinNoteName    string `json:"minNoteName"`
	MaxNoteGroup   string `json:"maxNoteGroup"`
	MinNoteGroup   string `json:"minNoteGroup"`
	UpperOverLimit int    `json:"upperOverLimit"`
	LowerOverLimit int    `json:"lowerOverLimit"`
	IsMaxOverLimit bool   `json:"isMaxOverLimit"`
	IsMinOverLimit bool   `json:"isMinOverLimit"`
	SuggestedMax   *Shift `json:"suggestedMax,omitempty"`
	SuggestedMin   *Shift `json:"suggestedMin,omitempty"`
}

// TrackInfo describes a track that contains at least one sounding note.
type TrackInfo struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	NoteCount int           `json:"noteCount"`
	Analysis  TrackAnalysis `json:"analysis"`
}

// RangeSummary holds the global range statistics.
type RangeSummary struct {
	MinNote             *uint8 `json:"minNote,omitempty"`
	MaxNote             *uint8 `json:"maxNote,omitempty"`
	UnderMinCount       int    `json:"underMinCount"`
	OverMaxCount        int    `json:"overMaxCount"`
	MinNoteName         string `json:"minNoteName"`
	MaxNoteName         string `json:"maxNoteName"`
	TotalOverLimitCount int    `json:"totalOverLimitCount"`
}

// AnalysisResult is the aggregate output of an analysis run.
type AnalysisResult struct {
	Events       []NoteEvent   `json:"events"`
	Summary      RangeSummary  `json:"analysis"`
	Tracks       []TrackInfo   `json:"tracks"`
	TicksPerBeat uint16        `json:"ticksPerBeat"`
	TempoMap     []TempoChange `json:"tempoMap"`
	Dangling     int           `json:"danglingNotes"`
}

// BlackKeyMode selects the optional black-key post-process.
type BlackKeyMode string

const (
	// BlackKeyNone leaves pitches untouched.
	BlackKeyNone BlackKeyMode = "none"
	// BlackKeyAutoSharp snaps black-key pitch classes to the nearest white key.
	BlackKeyAutoSharp BlackKeyMode = "auto_sharp"
)
