//go:build windows
// +build windows

package inputwindows

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/midiplay/internal/input/keycombo"
	"github.com/leandrodaf/midiplay/internal/input/trajectory"
	"github.com/leandrodaf/midiplay/sdk/contracts"
	"golang.org/x/sys/windows"
)

// SendInput constants
const (
	INPUT_MOUSE    = 0
	INPUT_KEYBOARD = 1

	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002
	KEYEVENTF_SCANCODE    = 0x0008

	MOUSEEVENTF_LEFTDOWN = 0x0002
	MOUSEEVENTF_LEFTUP   = 0x0004
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// keyboardEvent mirrors INPUT with the KEYBDINPUT arm; padding keeps the
// size equal to the MOUSEINPUT arm.
type keyboardEvent struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

type mouseInput struct {
	dx          int32
	dy          int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type mouseEvent struct {
	inputType uint32
	mi        mouseInput
}

type point struct {
	x int32
	y int32
}

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSendInput    = user32.NewProc("SendInput")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

// Sink injects keyboard and mouse input with SendInput.
type Sink struct {
	logger  contracts.Logger
	planner *trajectory.Planner
	mu      sync.Mutex
}

// NewSink creates the Windows input sink.
func NewSink(options *contracts.InputOptions) (contracts.InputSink, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("user32 SendInput unavailable: %w", err)
	}
	options.Logger.Info("Input sink created for Windows")
	return &Sink{logger: options.Logger, planner: trajectory.NewPlanner(nil)}, nil
}

// Deliver types a key combo or moves and clicks the pointer.
func (s *Sink) Deliver(payload contracts.Payload, hint contracts.DeliveryHint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch p := payload.(type) {
	case contracts.KeyPayload:
		return s.typeCombo(p.Combo)
	case contracts.MousePayload:
		return s.click(p, hint)
	}
	return fmt.Errorf("%w: %T", contracts.ErrUnsupportedPayload, payload)
}

func (s *Sink) typeCombo(combo string) error {
	c, err := keycombo.Parse(combo, false)
	if err != nil {
		return err
	}
	code, ok := ScanCode(c.Key)
	if !ok {
		return fmt.Errorf("%w: %q has no scan code", contracts.ErrUnsupportedKey, c.Key)
	}
	return keycombo.Play(c.Steps(), func(st keycombo.Step) error {
		if st.Modifier != nil {
			modCode, extended := ModifierScanCode(*st.Modifier)
			flags := uint32(KEYEVENTF_SCANCODE)
			if extended {
				flags |= KEYEVENTF_EXTENDEDKEY
			}
			return sendKey(modCode, flags, st.Down)
		}
		return sendKey(code, KEYEVENTF_SCANCODE, st.Down)
	})
}

func sendKey(scan uint16, flags uint32, down bool) error {
	if !down {
		flags |= KEYEVENTF_KEYUP
	}
	in := keyboardEvent{inputType: INPUT_KEYBOARD, ki: keyboardInput{wScan: scan, dwFlags: flags}}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n != 1 {
		return fmt.Errorf("SendInput keyboard failed: %v", err)
	}
	return nil
}

func (s *Sink) click(p contracts.MousePayload, hint contracts.DeliveryHint) error {
	var cur point
	if r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&cur))); r == 0 {
		return fmt.Errorf("GetCursorPos failed: %v", err)
	}

	from := contracts.Point{X: int(cur.x), Y: int(cur.y)}
	plan := s.planner.Plan(from, contracts.Point{X: p.X, Y: p.Y}, hint.TimeToNext)
	s.logger.Debug("Moving pointer",
		s.logger.Field().Int("x", p.X),
		s.logger.Field().Int("y", p.Y),
		s.logger.Field().Int("steps", plan.Profile.Steps))

	return s.planner.Run(plan, setCursorPos, leftClick)
}

func setCursorPos(pt contracts.Point) error {
	if r, _, err := procSetCursorPos.Call(uintptr(int32(pt.X)), uintptr(int32(pt.Y))); r == 0 {
		return fmt.Errorf("SetCursorPos failed: %v", err)
	}
	return nil
}

func leftClick() error {
	events := [2]mouseEvent{
		{inputType: INPUT_MOUSE, mi: mouseInput{dwFlags: MOUSEEVENTF_LEFTDOWN}},
		{inputType: INPUT_MOUSE, mi: mouseInput{dwFlags: MOUSEEVENTF_LEFTUP}},
	}
	n, _, err := procSendInput.Call(2, uintptr(unsafe.Pointer(&events[0])), unsafe.Sizeof(events[0]))
	if n != 2 {
		return fmt.Errorf("SendInput mouse failed: %v", err)
	}
	return nil
}
