//go:build darwin
// +build darwin

package inputdarwin

import (
	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// NewSink creates the macOS input sink.
func NewSink(options *contracts.InputOptions) (contracts.InputSink, error) {
	options.Logger.Info("Input sink created for macOS")
	return New(options.Logger, osexec.Exec{}), nil
}
