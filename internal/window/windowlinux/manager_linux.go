//go:build linux
// +build linux

package windowlinux

import (
	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// NewManager creates the X11 window manager.
func NewManager(options *contracts.InputOptions) (contracts.WindowManager, error) {
	return New(options.Logger, osexec.Exec{}), nil
}
