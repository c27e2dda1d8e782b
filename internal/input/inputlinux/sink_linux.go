//go:build linux
// +build linux

package inputlinux

import (
	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// NewSink creates the X11 input sink.
func NewSink(options *contracts.InputOptions) (contracts.InputSink, error) {
	options.Logger.Info("Input sink created for Linux (xdotool)")
	return New(options.Logger, osexec.Exec{}, nil), nil
}
