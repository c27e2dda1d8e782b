// Package live turns notes played on a MIDI input device into key combos
// delivered straight to the keyboard sink.
package live

import (
	"context"
	"errors"

	"github.com/leandrodaf/midiplay/internal/keymap"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// DefaultBuffer is the capacity of the capture channel.
const DefaultBuffer = 256

// Config configures a passthrough session.
type Config struct {
	Client    contracts.ClientMIDI
	Sink      contracts.InputSink
	Layout    keymap.Layout
	Logger    contracts.Logger
	Transpose int
	Octave    int
	Buffer    int
}

// Stats counts what a session did with the notes it received.
type Stats struct {
	Delivered int
	Unmapped  int
	Failed    int
}

// Translate maps a captured event to a key payload. Only note starts are
// translated; the pitch is shifted by transpose + 12*octave first.
func Translate(ev contracts.MIDI, layout keymap.Layout, transpose, octave int) (contracts.KeyPayload, bool) {
	if !ev.IsNoteStart() {
		return contracts.KeyPayload{}, false
	}
	n := int(ev.Note) + transpose + 12*octave
	if n < 0 || n > 127 {
		return contracts.KeyPayload{}, false
	}
	combo, ok := layout.Combo(uint8(n))
	if !ok {
		return contracts.KeyPayload{}, false
	}
	return contracts.KeyPayload{Combo: combo}, true
}

// Run captures from cfg.Client until ctx is cancelled. The client must
// already have a device selected; Run stops it before returning.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	var stats Stats
	if cfg.Client == nil || cfg.Sink == nil {
		return stats, errors.New("live passthrough needs a MIDI client and an input sink")
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	log := cfg.Logger

	events := make(chan contracts.MIDI, cfg.Buffer)
	cfg.Client.StartCapture(events)
	defer func() {
		if err := cfg.Client.Stop(); err != nil && log != nil {
			log.Warn("failed to stop MIDI capture", log.Field().Error("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return stats, nil
		case ev := <-events:
			if !ev.IsNoteStart() {
				continue
			}
			payload, ok := Translate(ev, cfg.Layout, cfg.Transpose, cfg.Octave)
			if !ok {
				stats.Unmapped++
				if log != nil {
					log.Debug("note outside key layout", log.Field().Uint8("note", ev.Note))
				}
				continue
			}
			if err := cfg.Sink.Deliver(payload, contracts.DeliveryHint{Index: stats.Delivered + stats.Failed}); err != nil {
				stats.Failed++
				if log != nil {
					log.Warn("input delivery failed",
						log.Field().String("payload", payload.Combo),
						log.Field().Error("error", err))
				}
				continue
			}
			stats.Delivered++
		}
	}
}
