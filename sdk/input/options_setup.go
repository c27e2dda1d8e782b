package input

import (
	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/internal/picker"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// applyDefaultOptions sets default values for InputOptions if not explicitly provided.
func applyDefaultOptions(opts ...contracts.InputOption) contracts.InputOptions {
	options := &contracts.InputOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
		options.Logger.SetLevel(options.LogLevel) // a caller-supplied logger keeps its own level
	}
	if options.PickTimeout <= 0 {
		options.PickTimeout = picker.DefaultTimeout
	}
	return *options
}
