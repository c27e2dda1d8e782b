//go:build !windows
// +build !windows

package picker

import (
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

type dummySource struct {
	logger contracts.Logger
}

// NewPointerSource initializes a dummy pointer source for non-Windows systems.
func NewPointerSource(options *contracts.InputOptions) (contracts.PointerSource, error) {
	return &dummySource{logger: options.Logger}, nil
}

// Listen reports that global pointer capture is unavailable.
func (s *dummySource) Listen(chan<- contracts.Point, <-chan struct{}) error {
	s.logger.Warn("Listen called on dummy pointer source")
	return contracts.ErrUnsupportedPlatform
}
