package inputdarwin

import (
	"context"
	"errors"
	"testing"

	"github.com/leandrodaf/midiplay/internal/input/keycombo"
	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

func TestScript(t *testing.T) {
	tests := []struct {
		combo string
		want  string
	}{
		{"a", `tell application "System Events" to key code 0`},
		{"shift+z", `tell application "System Events" to key code 6 using {shift down}`},
		{"ctrl+c", `tell application "System Events" to key code 8 using {command down}`},
		{"alt+shift+5", `tell application "System Events" to key code 23 using {option down, shift down}`},
		{"shift+;", `tell application "System Events" to keystroke ";" using {shift down}`},
		{`"`, `tell application "System Events" to keystroke "\""`},
	}
	for _, tt := range tests {
		c, err := keycombo.Parse(tt.combo, true)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.combo, err)
		}
		if got := Script(c); got != tt.want {
			t.Errorf("Script(%q) =\n  %s\nwant\n  %s", tt.combo, got, tt.want)
		}
	}
}

func TestKeyCodeFoldsCase(t *testing.T) {
	if code, ok := KeyCode('Q'); !ok || code != 0x0C {
		t.Errorf("KeyCode('Q') = %#x, %v", code, ok)
	}
	if _, ok := KeyCode('#'); ok {
		t.Error("Expected no key code for '#'")
	}
}

func TestSinkRunsOsascript(t *testing.T) {
	var calls [][]string
	runner := osexec.RunnerFunc(func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return nil, nil
	})
	s := New(logger.NewNopLogger(), runner)

	if err := s.Deliver(contracts.KeyPayload{Combo: "shift+q"}, contracts.DeliveryHint{}); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if len(calls) != 1 || calls[0][0] != "osascript" || calls[0][1] != "-e" {
		t.Fatalf("unexpected calls %v", calls)
	}
	if calls[0][2] != `tell application "System Events" to key code 12 using {shift down}` {
		t.Errorf("unexpected script %q", calls[0][2])
	}
}

func TestSinkErrors(t *testing.T) {
	boom := errors.New("not authorized")
	s := New(logger.NewNopLogger(), osexec.RunnerFunc(func(context.Context, string, ...string) ([]byte, error) {
		return nil, boom
	}))

	if err := s.Deliver(contracts.MousePayload{X: 1, Y: 1}, contracts.DeliveryHint{}); !errors.Is(err, contracts.ErrUnsupportedPayload) {
		t.Errorf("Expected ErrUnsupportedPayload, got %v", err)
	}
	if err := s.Deliver(contracts.KeyPayload{Combo: "hyper+a"}, contracts.DeliveryHint{}); !errors.Is(err, contracts.ErrUnknownModifier) {
		t.Errorf("Expected ErrUnknownModifier, got %v", err)
	}
	if err := s.Deliver(contracts.KeyPayload{Combo: "a"}, contracts.DeliveryHint{}); !errors.Is(err, boom) {
		t.Errorf("Expected runner error to be wrapped, got %v", err)
	}
}
