package contracts

import "time"

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOnCommand is the MIDI status nibble for a Note On event (0x90).
	NoteOnCommand MIDICommand = 0x90
	// NoteOffCommand is the MIDI status nibble for a Note Off event (0x80).
	NoteOffCommand MIDICommand = 0x80
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the live MIDI capture client.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// AnalyzeOptions configures an analysis run.
type AnalyzeOptions struct {
	Logger       Logger
	LowerLimit   uint8        // lowest playable note, inclusive
	UpperLimit   uint8        // highest playable note, inclusive
	BlackKeyMode BlackKeyMode // post-process applied to every event
	CurrentShift Shift        // transpose/octave already applied by the player
	Locale       string       // language tag for note-group labels ("en", "zh")
	limitsSet    bool
}

// LimitsSet reports whether WithNoteLimits was applied.
func (o *AnalyzeOptions) LimitsSet() bool { return o.limitsSet }

// AnalyzeOption is a function that modifies AnalyzeOptions.
type AnalyzeOption func(*AnalyzeOptions)

// WithAnalyzeLogger sets the logger used during analysis.
func WithAnalyzeLogger(l Logger) AnalyzeOption {
	return func(opts *AnalyzeOptions) {
		opts.Logger = l
	}
}

// WithNoteLimits sets the playable range, both ends inclusive.
func WithNoteLimits(lower, upper uint8) AnalyzeOption {
	return func(opts *AnalyzeOptions) {
		opts.LowerLimit = lower
		opts.UpperLimit = upper
		opts.limitsSet = true
	}
}

// WithBlackKeyMode selects the black-key post-process.
func WithBlackKeyMode(mode BlackKeyMode) AnalyzeOption {
	return func(opts *AnalyzeOptions) {
		opts.BlackKeyMode = mode
	}
}

// WithCurrentShift sets the transpose and octave the suggestions build on.
func WithCurrentShift(transpose, octave int) AnalyzeOption {
	return func(opts *AnalyzeOptions) {
		opts.CurrentShift = Shift{Transpose: transpose, Octave: octave}
	}
}

// WithLocale selects the language of note-group labels.
func WithLocale(tag string) AnalyzeOption {
	return func(opts *AnalyzeOptions) {
		opts.Locale = tag
	}
}

// PlaybackOptions configures a playback manager.
type PlaybackOptions struct {
	Logger       Logger
	KeyboardSink InputSink
	MouseSink    InputSink
	StopTimeout  time.Duration // bound on how long Stop waits for a worker
	Windows      WindowManager
	Target       *WindowInfo   // window focused before each session starts
	FocusDelay   time.Duration // settle time after focusing Target
	OnFinish     func(Category)
}

// PlaybackOption is a function that modifies PlaybackOptions.
type PlaybackOption func(*PlaybackOptions)

// WithPlaybackLogger sets the logger used by the schedulers.
func WithPlaybackLogger(l Logger) PlaybackOption {
	return func(opts *PlaybackOptions) {
		opts.Logger = l
	}
}

// WithSink binds the same sink to both categories.
func WithSink(sink InputSink) PlaybackOption {
	return func(opts *PlaybackOptions) {
		opts.KeyboardSink = sink
		opts.MouseSink = sink
	}
}

// WithKeyboardSink binds the sink used by keyboard sessions.
func WithKeyboardSink(sink InputSink) PlaybackOption {
	return func(opts *PlaybackOptions) {
		opts.KeyboardSink = sink
	}
}

// WithMouseSink binds the sink used by mouse sessions.
func WithMouseSink(sink InputSink) PlaybackOption {
	return func(opts *PlaybackOptions) {
		opts.MouseSink = sink
	}
}

// WithStopTimeout bounds how long Stop blocks waiting for the worker.
func WithStopTimeout(d time.Duration) PlaybackOption {
	return func(opts *PlaybackOptions) {
		opts.StopTimeout = d
	}
}

// WithTargetWindow focuses target through wm before each session starts.
func WithTargetWindow(wm WindowManager, target WindowInfo) PlaybackOption {
	return func(opts *PlaybackOptions) {
		opts.Windows = wm
		opts.Target = &target
	}
}

// WithOnFinish registers a callback invoked when a session ends, whether it
// completed or was stopped.
func WithOnFinish(fn func(Category)) PlaybackOption {
	return func(opts *PlaybackOptions) {
		opts.OnFinish = fn
	}
}

// InputOptions configures OS input sinks and window managers.
type InputOptions struct {
	Logger   Logger
	LogLevel LogLevel
	// PickTimeout bounds interactive coordinate picks.
	PickTimeout time.Duration
}

// InputOption is a function that modifies InputOptions.
type InputOption func(*InputOptions)

// WithInputLogger sets the logger used by input sinks.
func WithInputLogger(l Logger) InputOption {
	return func(opts *InputOptions) {
		opts.Logger = l
	}
}

// WithInputLogLevel sets the logging level for input sinks.
func WithInputLogLevel(level LogLevel) InputOption {
	return func(opts *InputOptions) {
		opts.LogLevel = level
	}
}

// WithPickTimeout bounds how long a coordinate pick waits for a click.
func WithPickTimeout(d time.Duration) InputOption {
	return func(opts *InputOptions) {
		opts.PickTimeout = d
	}
}
