//go:build darwin
// +build darwin

package windowdarwin

import (
	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// NewManager creates the macOS window manager.
func NewManager(options *contracts.InputOptions) (contracts.WindowManager, error) {
	return New(options.Logger, osexec.Exec{}), nil
}
