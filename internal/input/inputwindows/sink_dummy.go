//go:build !windows
// +build !windows

package inputwindows

import (
	"fmt"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

type dummySink struct {
	logger contracts.Logger
}

// NewSink initializes a dummy input sink for non-Windows systems.
func NewSink(options *contracts.InputOptions) (contracts.InputSink, error) {
	options.Logger.Info("Using dummy input sink for non-Windows system")
	return &dummySink{logger: options.Logger}, nil
}

// Deliver logs a warning and reports that injection is unavailable.
func (s *dummySink) Deliver(payload contracts.Payload, _ contracts.DeliveryHint) error {
	s.logger.Warn("Deliver called on dummy input sink", s.logger.Field().String("payload", fmt.Sprint(payload)))
	return contracts.ErrUnsupportedPlatform
}
