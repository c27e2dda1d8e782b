// Package windowlinux lists and focuses X11 windows with xdotool.
package windowlinux

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

const (
	tool        = "xdotool"
	callTimeout = 5 * time.Second
)

// Manager implements contracts.WindowManager with xdotool.
type Manager struct {
	logger contracts.Logger
	runner osexec.Runner
}

// New creates a manager running xdotool through runner.
func New(logger contracts.Logger, runner osexec.Runner) *Manager {
	return &Manager{logger: logger, runner: runner}
}

func (m *Manager) run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	out, err := m.runner.Run(ctx, tool, args...)
	return strings.TrimSpace(string(out)), err
}

// List returns visible named windows. Windows whose details cannot be read
// are skipped.
func (m *Manager) List() ([]contracts.WindowInfo, error) {
	out, err := m.run("search", "--onlyvisible", "--name", ".")
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}

	var windows []contracts.WindowInfo
	for _, line := range strings.Fields(out) {
		id, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			continue
		}
		title, err := m.run("getwindowname", line)
		if err != nil || title == "" {
			continue
		}
		info := contracts.WindowInfo{ID: id, Title: title}
		if pidOut, err := m.run("getwindowpid", line); err == nil {
			if pid, err := strconv.ParseUint(pidOut, 10, 32); err == nil {
				info.PID = uint32(pid)
			}
		}
		windows = append(windows, info)
	}
	m.logger.Debug("Windows listed", m.logger.Field().Int("count", len(windows)))
	return windows, nil
}

// Activate raises and focuses the window with target.ID.
func (m *Manager) Activate(target contracts.WindowInfo) error {
	if target.ID == 0 {
		return fmt.Errorf("activate %q: window has no id", target.Title)
	}
	if _, err := m.run("windowactivate", "--sync", strconv.FormatUint(target.ID, 10)); err != nil {
		return fmt.Errorf("activate window %d: %w", target.ID, err)
	}
	return nil
}
