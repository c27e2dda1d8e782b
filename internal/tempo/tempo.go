// Package tempo builds tempo maps and converts MIDI ticks to seconds.
package tempo

import (
	"sort"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// Map is an ordered tempo schedule, strictly increasing in tick, with an
// entry at tick 0.
type Map []contracts.TempoChange

// Build sorts changes by tick and collapses same-tick entries, keeping the
// one encountered last. A default 120 BPM entry is prepended when nothing
// sits at tick 0.
func Build(changes []contracts.TempoChange) Map {
	sorted := make([]contracts.TempoChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Tick < sorted[j].Tick
	})

	m := make(Map, 0, len(sorted)+1)
	for _, tc := range sorted {
		if n := len(m); n > 0 && m[n-1].Tick == tc.Tick {
			m[n-1] = tc
			continue
		}
		m = append(m, tc)
	}

	if len(m) == 0 || m[0].Tick > 0 {
		m = append(Map{{Tick: 0, MicrosPerBeat: contracts.DefaultMicrosPerBeat}}, m...)
	}
	return m
}

// Seconds converts an absolute tick to seconds from the start of the file.
func (m Map) Seconds(tick uint32, ticksPerBeat uint16) float64 {
	if ticksPerBeat == 0 {
		return 0
	}
	div := float64(ticksPerBeat) * 1_000_000

	var (
		elapsed  float64
		lastTick uint32
		lastUS   uint32 = contracts.DefaultMicrosPerBeat
	)
	for _, tc := range m {
		if tc.Tick > tick {
			break
		}
		elapsed += float64(tc.Tick-lastTick) * float64(lastUS) / div
		lastTick = tc.Tick
		lastUS = tc.MicrosPerBeat
	}
	elapsed += float64(tick-lastTick) * float64(lastUS) / div
	return elapsed
}

// Converter binds a map to a resolution.
type Converter struct {
	Map          Map
	TicksPerBeat uint16
}

// Seconds converts tick with the bound resolution.
func (c Converter) Seconds(tick uint32) float64 {
	return c.Map.Seconds(tick, c.TicksPerBeat)
}
