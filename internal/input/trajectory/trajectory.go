// Package trajectory plans human-looking pointer movements: a quadratic
// bezier path with a randomized control point, a jittered target, and a
// speed profile derived from how soon the next click is due.
package trajectory

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// TargetJitter is the maximum random offset, in pixels, applied to each
// axis of a click target.
const TargetJitter = 5

// Profile controls how a movement is paced.
type Profile struct {
	Steps        int
	StepDelayMin time.Duration
	StepDelayMax time.Duration
	Reaction     time.Duration // pause between arriving and clicking
}

// ProfileFor picks the pacing for a movement of distance pixels when the
// next event is timeToNext seconds away.
func ProfileFor(timeToNext, distance float64) Profile {
	switch {
	case timeToNext < 0.05:
		return Profile{Steps: 1}
	case timeToNext < 0.15:
		return Profile{Steps: 5, StepDelayMax: time.Millisecond, Reaction: 5 * time.Millisecond}
	}
	steps := min(max(int(distance/20), 5), 30)
	return Profile{
		Steps:        steps,
		StepDelayMin: time.Millisecond,
		StepDelayMax: 3 * time.Millisecond,
		Reaction:     20 * time.Millisecond,
	}
}

// Plan is a ready-to-run movement.
type Plan struct {
	Path    []contracts.Point
	Profile Profile
}

// Planner produces randomized plans. It is safe for concurrent use.
type Planner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlanner creates a planner drawing from src; nil uses a random seed.
func NewPlanner(src rand.Source) *Planner {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Planner{rng: rand.New(src)}
}

// intBetween returns a uniform integer in [lo, hi].
func (p *Planner) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.IntN(hi-lo+1)
}

// Plan jitters target and builds the path from the current position.
func (p *Planner) Plan(from, target contracts.Point, timeToNext float64) Plan {
	p.mu.Lock()
	defer p.mu.Unlock()

	to := contracts.Point{
		X: target.X + p.intBetween(-TargetJitter, TargetJitter),
		Y: target.Y + p.intBetween(-TargetJitter, TargetJitter),
	}
	profile := ProfileFor(timeToNext, Distance(from, to))
	return Plan{Path: p.bezier(from, to, profile.Steps), Profile: profile}
}

// Bezier returns steps+1 points from from to to along a quadratic curve
// whose control point is the midpoint shifted by up to
// max(20% of the distance, 10) pixels on each axis.
func (p *Planner) Bezier(from, to contracts.Point, steps int) []contracts.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bezier(from, to, steps)
}

func (p *Planner) bezier(from, to contracts.Point, steps int) []contracts.Point {
	steps = max(steps, 1)
	spread := ControlSpread(from, to)
	cx := (from.X+to.X)/2 + p.intBetween(-spread, spread)
	cy := (from.Y+to.Y)/2 + p.intBetween(-spread, spread)

	path := make([]contracts.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		x := u*u*float64(from.X) + 2*u*t*float64(cx) + t*t*float64(to.X)
		y := u*u*float64(from.Y) + 2*u*t*float64(cy) + t*t*float64(to.Y)
		path = append(path, contracts.Point{X: int(x), Y: int(y)})
	}
	return path
}

// StepDelay draws a pause between path points from the profile range.
func (p *Planner) StepDelay(pr Profile) time.Duration {
	if pr.StepDelayMax <= 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	ms := p.intBetween(int(pr.StepDelayMin/time.Millisecond), int(pr.StepDelayMax/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// ControlSpread is the maximum control-point offset for a move.
func ControlSpread(from, to contracts.Point) int {
	return max(int(Distance(from, to)*0.2), 10)
}

// Distance is the euclidean distance between a and b.
func Distance(a, b contracts.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Run moves along plan with move, pausing between points, waits the
// reaction delay and finally calls click.
func (p *Planner) Run(plan Plan, move func(contracts.Point) error, click func() error) error {
	for _, pt := range plan.Path {
		if err := move(pt); err != nil {
			return err
		}
		if d := p.StepDelay(plan.Profile); d > 0 {
			time.Sleep(d)
		}
	}
	if plan.Profile.Reaction > 0 {
		time.Sleep(plan.Profile.Reaction)
	}
	return click()
}
