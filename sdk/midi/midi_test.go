package midi

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

func TestApplyDefaultOptions(t *testing.T) {
	opts, err := applyDefaultOptions(contracts.WithLogger(logger.NewNopLogger()))
	if err != nil {
		t.Fatalf("applyDefaultOptions failed: %v", err)
	}
	if opts.CoreMIDIConfig == nil || opts.CoreMIDIConfig.ClientName != DefaultClientName {
		t.Errorf("Expected default CoreMIDI client name, got %+v", opts.CoreMIDIConfig)
	}
	if opts.MIDIEventFilter != nil {
		t.Errorf("Expected no filter by default")
	}
}

func TestApplyDefaultOptionsKeepsFilterAndName(t *testing.T) {
	opts, _ := applyDefaultOptions(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithCoreMIDIConfig(contracts.CoreMIDIConfig{ClientName: "Studio"}),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{Commands: []contracts.MIDICommand{contracts.NoteOnCommand}}),
	)
	if opts.CoreMIDIConfig.ClientName != "Studio" {
		t.Errorf("Expected Studio, got %q", opts.CoreMIDIConfig.ClientName)
	}
	if opts.MIDIEventFilter == nil || len(opts.MIDIEventFilter.Commands) != 1 {
		t.Errorf("Expected the filter to be kept, got %+v", opts.MIDIEventFilter)
	}
}

func TestNewClientForUnsupportedOS(t *testing.T) {
	opts, _ := applyDefaultOptions(contracts.WithLogger(logger.NewNopLogger()))
	if _, err := NewClientFor("linux", &opts); !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("Expected ErrUnsupportedOS, got %v", err)
	}
}
