//go:build windows
// +build windows

package windowwin

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leandrodaf/midiplay/sdk/contracts"
	"golang.org/x/sys/windows"
)

const SW_RESTORE = 9

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procIsIconic            = user32.NewProc("IsIconic")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
)

// Manager enumerates top-level windows with EnumWindows.
type Manager struct {
	logger contracts.Logger
}

// NewManager creates the Windows window manager.
func NewManager(options *contracts.InputOptions) (contracts.WindowManager, error) {
	return &Manager{logger: options.Logger}, nil
}

// List returns visible top-level windows that have a title.
func (m *Manager) List() ([]contracts.WindowInfo, error) {
	var windowsFound []contracts.WindowInfo

	cb := windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		if !windows.IsWindowVisible(hwnd) {
			return 1
		}
		title := windowTitle(hwnd)
		if strings.TrimSpace(title) == "" {
			return 1
		}

		var pid uint32
		_, _ = windows.GetWindowThreadProcessId(hwnd, &pid)
		iconic, _, _ := procIsIconic.Call(uintptr(hwnd))

		windowsFound = append(windowsFound, contracts.WindowInfo{
			ID:        uint64(hwnd),
			PID:       pid,
			Title:     title,
			AppName:   processName(pid),
			Minimized: iconic != 0,
		})
		return 1
	})

	if err := windows.EnumWindows(cb, nil); err != nil {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	m.logger.Debug("Windows listed", m.logger.Field().Int("count", len(windowsFound)))
	return windowsFound, nil
}

// Activate restores target if minimized and brings it to the foreground.
func (m *Manager) Activate(target contracts.WindowInfo) error {
	hwnd := uintptr(target.ID)
	if hwnd == 0 {
		return fmt.Errorf("activate %q: window has no handle", target.Title)
	}
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		procShowWindow.Call(hwnd, SW_RESTORE)
	}
	if r, _, err := procSetForegroundWindow.Call(hwnd); r == 0 {
		return fmt.Errorf("SetForegroundWindow %#x failed: %v", hwnd, err)
	}
	return nil
}

func windowTitle(hwnd windows.HWND) string {
	buf := make([]uint16, 512)
	n, err := windows.GetWindowText(hwnd, &buf[0], int32(len(buf)))
	if err != nil || n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func processName(pid uint32) string {
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return filepath.Base(windows.UTF16ToString(buf[:size]))
}
