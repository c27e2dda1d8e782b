package playback

import (
	"time"

	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/internal/scheduler"
	"github.com/leandrodaf/midiplay/sdk/contracts"
	"github.com/leandrodaf/midiplay/sdk/input"
)

// DefaultFocusDelay is how long a session waits after focusing its target
// window before the first event.
const DefaultFocusDelay = 50 * time.Millisecond

// applyDefaultOptions sets default values for PlaybackOptions if not explicitly provided.
// A missing sink is replaced by the host platform's sink.
func applyDefaultOptions(opts ...contracts.PlaybackOption) (contracts.PlaybackOptions, error) {
	options := &contracts.PlaybackOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.StopTimeout <= 0 {
		options.StopTimeout = scheduler.DefaultStopTimeout
	}
	if options.FocusDelay <= 0 {
		options.FocusDelay = DefaultFocusDelay
	}

	if options.KeyboardSink == nil || options.MouseSink == nil {
		sink, err := input.NewSink(contracts.WithInputLogger(options.Logger))
		if err != nil {
			return contracts.PlaybackOptions{}, err
		}
		if options.KeyboardSink == nil {
			options.KeyboardSink = sink
		}
		if options.MouseSink == nil {
			options.MouseSink = sink
		}
	}
	return *options, nil
}
