// Package notes pairs note starts and ends into timed note intervals.
package notes

import (
	"sort"

	"github.com/leandrodaf/midiplay/internal/decode"
	"github.com/leandrodaf/midiplay/internal/tempo"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// Result is the reconstructed, time-sorted timeline.
type Result struct {
	Events []contracts.NoteEvent
	// Dangling counts notes still open when their track ended. They are
	// never emitted.
	Dangling int
}

type noteKey struct {
	channel uint8
	note    uint8
}

type openNote struct {
	tick     uint32
	velocity uint8
}

// Reconstruct walks every track of song and emits a NoteOn/NoteOff pair per
// closed note. A start on an already open (channel, note) replaces it; an
// end with nothing open is ignored.
func Reconstruct(song *decode.Song, tm tempo.Map) Result {
	var res Result
	conv := tempo.Converter{Map: tm, TicksPerBeat: song.TicksPerBeat}

	for _, track := range song.Tracks {
		open := make(map[noteKey]openNote)
		for _, ev := range track.Events {
			key := noteKey{channel: ev.Channel, note: ev.Note}
			switch ev.Kind {
			case decode.NoteStart:
				open[key] = openNote{tick: ev.Tick, velocity: ev.Velocity}
			case decode.NoteEnd:
				start, ok := open[key]
				if !ok {
					continue
				}
				delete(open, key)

				begin := conv.Seconds(start.tick)
				end := conv.Seconds(ev.Tick)
				res.Events = append(res.Events,
					contracts.NoteEvent{
						Time:     begin,
						Kind:     contracts.NoteOn,
						Note:     ev.Note,
						Channel:  ev.Channel,
						Track:    track.Index,
						Velocity: start.velocity,
						Duration: end - begin,
						End:      end,
					},
					contracts.NoteEvent{
						Time:    end,
						Kind:    contracts.NoteOff,
						Note:    ev.Note,
						Channel: ev.Channel,
						Track:   track.Index,
						End:     end,
					},
				)
			}
		}
		res.Dangling += len(open)
	}

	sort.SliceStable(res.Events, func(i, j int) bool {
		return res.Events[i].Time < res.Events[j].Time
	})
	return res
}
