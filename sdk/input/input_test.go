package input

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/internal/picker"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

func TestFactoriesRejectUnknownOS(t *testing.T) {
	opts := applyDefaultOptions(contracts.WithInputLogger(logger.NewNopLogger()))

	if _, err := NewSinkFor("plan9", &opts); !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("sink: expected ErrUnsupportedOS, got %v", err)
	}
	if _, err := NewWindowManagerFor("plan9", &opts); !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("window manager: expected ErrUnsupportedOS, got %v", err)
	}
	if _, err := NewPointerSourceFor("linux", &opts); !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("pointer source: expected ErrUnsupportedOS, got %v", err)
	}
}

func TestEverySupportedOSHasASink(t *testing.T) {
	opts := applyDefaultOptions(contracts.WithInputLogger(logger.NewNopLogger()))
	for _, goos := range []string{"linux", "darwin"} {
		sink, err := NewSinkFor(goos, &opts)
		if err != nil || sink == nil {
			t.Errorf("%s: NewSinkFor = %v, %v", goos, sink, err)
		}
		wm, err := NewWindowManagerFor(goos, &opts)
		if err != nil || wm == nil {
			t.Errorf("%s: NewWindowManagerFor = %v, %v", goos, wm, err)
		}
	}
}

func TestApplyDefaultOptions(t *testing.T) {
	opts := applyDefaultOptions(contracts.WithInputLogger(logger.NewNopLogger()))
	if opts.PickTimeout != picker.DefaultTimeout {
		t.Errorf("Expected default pick timeout, got %v", opts.PickTimeout)
	}
}
