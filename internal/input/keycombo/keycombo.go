// Package keycombo parses "mod+mod+key" strings and describes the timed
// press/release sequence used to type them.
package keycombo

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// Modifier is a held key combined with the main key.
type Modifier int

const (
	Shift Modifier = iota
	Ctrl
	Alt
	Meta
)

func (m Modifier) String() string {
	switch m {
	case Shift:
		return "shift"
	case Ctrl:
		return "ctrl"
	case Alt:
		return "alt"
	case Meta:
		return "meta"
	}
	return fmt.Sprintf("modifier(%d)", int(m))
}

// Delays between the steps of a combo.
const (
	ModifierPressGap   = 5 * time.Millisecond
	MainKeySettle      = 10 * time.Millisecond
	MainKeyHold        = time.Millisecond
	ModifierReleaseGap = 30 * time.Millisecond
)

// Combo is a parsed key combination.
type Combo struct {
	Modifiers []Modifier
	Key       rune // lower-cased for ASCII letters
}

// Parse splits s on '+'. Every part but the last must name a modifier; the
// last part must be a single character. When ctrlIsMeta is set, "ctrl" and
// "control" map to Meta, which is how macOS expects shortcuts.
func Parse(s string, ctrlIsMeta bool) (Combo, error) {
	parts := strings.Split(s, "+")
	var c Combo

	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(part) {
		case "shift":
			c.Modifiers = append(c.Modifiers, Shift)
		case "ctrl", "control":
			if ctrlIsMeta {
				c.Modifiers = append(c.Modifiers, Meta)
			} else {
				c.Modifiers = append(c.Modifiers, Ctrl)
			}
		case "alt":
			c.Modifiers = append(c.Modifiers, Alt)
		case "meta", "cmd", "command", "win", "super":
			c.Modifiers = append(c.Modifiers, Meta)
		default:
			return Combo{}, fmt.Errorf("%w: %q in %q", contracts.ErrUnknownModifier, part, s)
		}
	}

	main := parts[len(parts)-1]
	if utf8.RuneCountInString(main) != 1 {
		return Combo{}, fmt.Errorf("%w: main key %q in %q", contracts.ErrUnsupportedKey, main, s)
	}
	r, _ := utf8.DecodeRuneInString(main)
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	c.Key = r
	return c, nil
}

// Has reports whether m is part of the combo.
func (c Combo) Has(m Modifier) bool {
	for _, have := range c.Modifiers {
		if have == m {
			return true
		}
	}
	return false
}

func (c Combo) String() string {
	var b strings.Builder
	for _, m := range c.Modifiers {
		b.WriteString(m.String())
		b.WriteByte('+')
	}
	b.WriteRune(c.Key)
	return b.String()
}

// Step is one action of a typed combo.
type Step struct {
	Modifier *Modifier // nil for the main key
	Down     bool
	// Pause is slept after the step.
	Pause time.Duration
}

// Steps expands the combo into press and release actions with the pauses
// between them: modifiers pressed in order, the main key tapped, then
// modifiers released in reverse order.
func (c Combo) Steps() []Step {
	steps := make([]Step, 0, 2*len(c.Modifiers)+2)
	for i := range c.Modifiers {
		m := c.Modifiers[i]
		steps = append(steps, Step{Modifier: &m, Down: true, Pause: ModifierPressGap})
	}
	if len(c.Modifiers) > 0 {
		steps[len(steps)-1].Pause += MainKeySettle
	}

	after := time.Duration(0)
	if len(c.Modifiers) > 0 {
		after = MainKeySettle
	}
	steps = append(steps,
		Step{Down: true, Pause: MainKeyHold},
		Step{Down: false, Pause: after},
	)

	for i := len(c.Modifiers) - 1; i >= 0; i-- {
		m := c.Modifiers[i]
		steps = append(steps, Step{Modifier: &m, Down: false, Pause: ModifierReleaseGap})
	}
	return steps
}

// Play runs steps in order, calling press for each and sleeping the pauses.
// On the first error it skips ahead to the remaining modifier releases, so no
// modifier stays held, and returns that error.
func Play(steps []Step, press func(Step) error) error {
	for i, st := range steps {
		if err := press(st); err != nil {
			release(steps[i+1:], press)
			return err
		}
		if st.Pause > 0 {
			time.Sleep(st.Pause)
		}
	}
	return nil
}

// release sends every modifier key-up in steps, ignoring failures.
func release(steps []Step, press func(Step) error) {
	for _, st := range steps {
		if st.Modifier != nil && !st.Down {
			_ = press(st)
		}
	}
}
