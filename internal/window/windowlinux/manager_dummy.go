//go:build !linux
// +build !linux

package windowlinux

import (
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

type dummyManager struct {
	logger contracts.Logger
}

// NewManager initializes a dummy window manager for non-Linux systems.
func NewManager(options *contracts.InputOptions) (contracts.WindowManager, error) {
	return &dummyManager{logger: options.Logger}, nil
}

func (m *dummyManager) List() ([]contracts.WindowInfo, error) {
	m.logger.Warn("List called on dummy window manager")
	return nil, contracts.ErrUnsupportedPlatform
}

func (m *dummyManager) Activate(contracts.WindowInfo) error {
	m.logger.Warn("Activate called on dummy window manager")
	return contracts.ErrUnsupportedPlatform
}
