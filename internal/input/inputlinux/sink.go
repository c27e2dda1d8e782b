// Package inputlinux drives X11 through xdotool.
package inputlinux

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/leandrodaf/midiplay/internal/input/keycombo"
	"github.com/leandrodaf/midiplay/internal/input/trajectory"
	"github.com/leandrodaf/midiplay/internal/osexec"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

const (
	tool        = "xdotool"
	callTimeout = 2 * time.Second
)

// KeyArgs returns the xdotool arguments that type c. Letters and digits go
// through "key" so modifiers apply; any other character can only be typed
// bare.
func KeyArgs(c keycombo.Combo) ([]string, error) {
	alnum := (c.Key >= 'a' && c.Key <= 'z') || (c.Key >= '0' && c.Key <= '9')
	if !alnum {
		if len(c.Modifiers) > 0 {
			return nil, fmt.Errorf("%w: %q with modifiers", contracts.ErrUnsupportedKey, c.Key)
		}
		return []string{"type", "--", string(c.Key)}, nil
	}

	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, keysym(m))
	}
	parts = append(parts, string(c.Key))
	return []string{"key", strings.Join(parts, "+")}, nil
}

func keysym(m keycombo.Modifier) string {
	switch m {
	case keycombo.Shift:
		return "shift"
	case keycombo.Ctrl:
		return "ctrl"
	case keycombo.Alt:
		return "alt"
	}
	return "super"
}

// ParseLocation reads the X and Y lines of "getmouselocation --shell".
func ParseLocation(out []byte) (contracts.Point, error) {
	var (
		pt           contracts.Point
		haveX, haveY bool
	)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			pt.X, haveX = n, true
		case "Y":
			pt.Y, haveY = n, true
		}
	}
	if !haveX || !haveY {
		return contracts.Point{}, fmt.Errorf("unexpected getmouselocation output %q", out)
	}
	return pt, nil
}

// Sink injects input by running xdotool.
type Sink struct {
	logger  contracts.Logger
	runner  osexec.Runner
	planner *trajectory.Planner
	mu      sync.Mutex
}

// New creates a sink that runs xdotool through runner.
func New(logger contracts.Logger, runner osexec.Runner, planner *trajectory.Planner) *Sink {
	if planner == nil {
		planner = trajectory.NewPlanner(nil)
	}
	return &Sink{logger: logger, runner: runner, planner: planner}
}

// Deliver types a key combo or moves and clicks the pointer.
func (s *Sink) Deliver(payload contracts.Payload, hint contracts.DeliveryHint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch p := payload.(type) {
	case contracts.KeyPayload:
		c, err := keycombo.Parse(p.Combo, false)
		if err != nil {
			return err
		}
		args, err := KeyArgs(c)
		if err != nil {
			return err
		}
		return s.run(args...)
	case contracts.MousePayload:
		return s.click(p, hint)
	}
	return fmt.Errorf("%w: %T", contracts.ErrUnsupportedPayload, payload)
}

func (s *Sink) click(p contracts.MousePayload, hint contracts.DeliveryHint) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	out, err := s.runner.Run(ctx, tool, "getmouselocation", "--shell")
	cancel()
	if err != nil {
		return fmt.Errorf("read pointer position: %w", err)
	}
	from, err := ParseLocation(out)
	if err != nil {
		return err
	}

	plan := s.planner.Plan(from, contracts.Point{X: p.X, Y: p.Y}, hint.TimeToNext)
	s.logger.Debug("Moving pointer",
		s.logger.Field().Int("x", p.X),
		s.logger.Field().Int("y", p.Y),
		s.logger.Field().Int("steps", plan.Profile.Steps))

	return s.planner.Run(plan,
		func(pt contracts.Point) error {
			return s.run("mousemove", strconv.Itoa(pt.X), strconv.Itoa(pt.Y))
		},
		func() error { return s.run("click", "1") },
	)
}

func (s *Sink) run(args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if _, err := s.runner.Run(ctx, tool, args...); err != nil {
		return fmt.Errorf("xdotool %s: %w", args[0], err)
	}
	return nil
}
