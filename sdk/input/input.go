// Package input selects the host platform's input sink, window manager and
// pointer source.
package input

import (
	"context"

	"github.com/leandrodaf/midiplay/internal/picker"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// NewSink creates the input sink for the running operating system.
func NewSink(opts ...contracts.InputOption) (contracts.InputSink, error) {
	options := applyDefaultOptions(opts...)
	return NewSinkFor(host(), &options)
}

// NewWindowManager creates the window manager for the running operating
// system.
func NewWindowManager(opts ...contracts.InputOption) (contracts.WindowManager, error) {
	options := applyDefaultOptions(opts...)
	return NewWindowManagerFor(host(), &options)
}

// PickCoordinate waits for the next left click on screen and returns its
// position, failing with contracts.ErrPickTimeout after the pick timeout
// (30s unless set with contracts.WithPickTimeout).
func PickCoordinate(ctx context.Context, opts ...contracts.InputOption) (contracts.Point, error) {
	options := applyDefaultOptions(opts...)
	src, err := NewPointerSourceFor(host(), &options)
	if err != nil {
		return contracts.Point{}, err
	}
	return picker.Pick(ctx, src, options.PickTimeout)
}
