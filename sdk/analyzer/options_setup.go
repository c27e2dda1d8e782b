package analyzer

import (
	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/internal/rangecheck"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// applyDefaultOptions sets default values for AnalyzeOptions if not explicitly provided.
func applyDefaultOptions(opts ...contracts.AnalyzeOption) (contracts.AnalyzeOptions, rangecheck.Limits, error) {
	options := &contracts.AnalyzeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewNopLogger()
	}
	if options.BlackKeyMode == "" {
		options.BlackKeyMode = contracts.BlackKeyNone
	}

	limits := rangecheck.DefaultLimits
	if options.LimitsSet() {
		limits = rangecheck.Limits{Lower: options.LowerLimit, Upper: options.UpperLimit}
	}
	if err := limits.Validate(); err != nil {
		return contracts.AnalyzeOptions{}, limits, err
	}
	options.LowerLimit, options.UpperLimit = limits.Lower, limits.Upper
	return *options, limits, nil
}
