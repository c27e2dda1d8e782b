// Package inputdarwin drives System Events through osascript. Keys go out
// as virtual key codes so the active keyboard layout does not matter.
package inputdarwin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/leandrodaf/midiplay/internal/input/keycombo"
	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// scriptTimeout bounds one osascript invocation.
const scriptTimeout = 5 * time.Second

// Script renders the AppleScript that types c.
func Script(c keycombo.Combo) string {
	var b strings.Builder
	b.WriteString(`tell application "System Events" to `)
	if code, ok := KeyCode(c.Key); ok {
		fmt.Fprintf(&b, "key code %d", code)
	} else {
		fmt.Fprintf(&b, "keystroke %s", quote(string(c.Key)))
	}

	if len(c.Modifiers) > 0 {
		mods := make([]string, len(c.Modifiers))
		for i, m := range c.Modifiers {
			mods[i] = modifierName(m)
		}
		fmt.Fprintf(&b, " using {%s}", strings.Join(mods, ", "))
	}
	return b.String()
}

func modifierName(m keycombo.Modifier) string {
	switch m {
	case keycombo.Shift:
		return "shift down"
	case keycombo.Ctrl:
		return "control down"
	case keycombo.Alt:
		return "option down"
	}
	return "command down"
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Sink types key combos with osascript. Pointer payloads are not supported.
type Sink struct {
	logger contracts.Logger
	runner osexec.Runner
	mu     sync.Mutex
}

// New creates a sink that runs scripts through runner.
func New(logger contracts.Logger, runner osexec.Runner) *Sink {
	return &Sink{logger: logger, runner: runner}
}

// Deliver types a key combo. "ctrl" is sent as command, the macOS shortcut
// modifier.
func (s *Sink) Deliver(payload contracts.Payload, _ contracts.DeliveryHint) error {
	p, ok := payload.(contracts.KeyPayload)
	if !ok {
		return fmt.Errorf("%w: %T on macOS", contracts.ErrUnsupportedPayload, payload)
	}

	c, err := keycombo.Parse(p.Combo, true)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()

	script := Script(c)
	if _, err := s.runner.Run(ctx, "osascript", "-e", script); err != nil {
		return fmt.Errorf("osascript key %q: %w", p.Combo, err)
	}
	s.logger.Debug("Key sent", s.logger.Field().String("combo", c.String()))
	return nil
}
