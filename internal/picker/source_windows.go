//go:build windows
// +build windows

package picker

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/leandrodaf/midiplay/sdk/contracts"
	"golang.org/x/sys/windows"
)

const (
	VK_LBUTTON   = 0x01
	pollInterval = 10 * time.Millisecond
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
	procGetCursorPos     = user32.NewProc("GetCursorPos")
)

type point struct {
	x int32
	y int32
}

// pointerSource polls the left button state.
type pointerSource struct {
	logger contracts.Logger
}

// NewPointerSource creates a left-click source for Windows.
func NewPointerSource(options *contracts.InputOptions) (contracts.PointerSource, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		return nil, fmt.Errorf("user32 GetAsyncKeyState unavailable: %w", err)
	}
	return &pointerSource{logger: options.Logger}, nil
}

// Listen reports a click on every press edge of the left button.
func (p *pointerSource) Listen(clicks chan<- contracts.Point, stop <-chan struct{}) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	wasDown := buttonDown()
	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
		}

		down := buttonDown()
		if down && !wasDown {
			var pt point
			if r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r == 0 {
				p.logger.Warn("GetCursorPos failed", p.logger.Field().Error("error", err))
			} else {
				select {
				case clicks <- contracts.Point{X: int(pt.x), Y: int(pt.y)}:
				default:
				}
			}
		}
		wasDown = down
	}
}

func buttonDown() bool {
	state, _, _ := procGetAsyncKeyState.Call(VK_LBUTTON)
	return uint16(state)&0x8000 != 0
}
