// Package windowdarwin lists and focuses macOS windows through System
// Events scripting.
package windowdarwin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

const scriptTimeout = 10 * time.Second

// listScript prints one tab-separated line per window:
// pid, application name, window title, minimized flag.
const listScript = `set out to ""
tell application "System Events"
	repeat with p in (every process whose background only is false)
		set pid to unix id of p
		set appName to name of p
		repeat with w in (every window of p)
			set isMin to false
			try
				set isMin to value of attribute "AXMinimized" of w
			end try
			set out to out & pid & tab & appName & tab & (name of w) & tab & isMin & linefeed
		end repeat
	end repeat
end tell
return out`

// ActivateScript brings the process with pid to the front.
func ActivateScript(pid uint32) string {
	return fmt.Sprintf(`tell application "System Events" to set frontmost of the first process whose unix id is %d to true`, pid)
}

// ParseList decodes the output of the list script. IDs are assigned in
// output order starting at 1.
func ParseList(out string) []contracts.WindowInfo {
	var windows []contracts.WindowInfo
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(fields) < 4 {
			continue
		}
		pid, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
		if err != nil {
			continue
		}
		windows = append(windows, contracts.WindowInfo{
			ID:        uint64(len(windows) + 1),
			PID:       uint32(pid),
			AppName:   fields[1],
			Title:     fields[2],
			Minimized: strings.TrimSpace(fields[3]) == "true",
		})
	}
	return windows
}

// Manager implements contracts.WindowManager with osascript.
type Manager struct {
	logger contracts.Logger
	runner osexec.Runner
}

// New creates a manager running scripts through runner.
func New(logger contracts.Logger, runner osexec.Runner) *Manager {
	return &Manager{logger: logger, runner: runner}
}

// List returns every window of every foreground application.
func (m *Manager) List() ([]contracts.WindowInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()

	out, err := m.runner.Run(ctx, "osascript", "-e", listScript)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	windows := ParseList(string(out))
	m.logger.Debug("Windows listed", m.logger.Field().Int("count", len(windows)))
	return windows, nil
}

// Activate focuses the application owning target. macOS activates whole
// applications, so only the PID is used.
func (m *Manager) Activate(target contracts.WindowInfo) error {
	if target.PID == 0 {
		return fmt.Errorf("activate %q: window has no process id", target.Title)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()

	if _, err := m.runner.Run(ctx, "osascript", "-e", ActivateScript(target.PID)); err != nil {
		return fmt.Errorf("activate pid %d: %w", target.PID, err)
	}
	return nil
}
