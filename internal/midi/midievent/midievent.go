// Package midievent decodes raw MIDI bytes delivered by the platform capture
// clients into contracts.MIDI events.
package midievent

import "github.com/leandrodaf/midiplay/sdk/contracts"

// dataLength returns the number of data bytes following a status byte, or -1
// for system exclusive.
func dataLength(status byte) int {
	switch status & 0xF0 {
	case 0x80, 0x90, 0xA0, 0xB0, 0xE0:
		return 2
	case 0xC0, 0xD0:
		return 1
	}
	switch status {
	case 0xF0:
		return -1
	case 0xF1, 0xF3:
		return 1
	case 0xF2:
		return 2
	}
	return 0
}

// Decode splits a packet into channel voice events, honoring running status.
// System messages are skipped; a truncated trailing message is dropped.
func Decode(data []byte, timestamp uint64) []contracts.MIDI {
	var (
		out     []contracts.MIDI
		running byte
	)
	for i := 0; i < len(data); {
		status := data[i]
		if status < 0x80 {
			if running == 0 {
				i++
				continue
			}
			status = running
		} else {
			i++
			if status >= 0xF8 {
				continue // realtime bytes may appear anywhere
			}
			if status >= 0xF0 {
				running = 0
			} else {
				running = status
			}
		}

		n := dataLength(status)
		if n < 0 {
			for i < len(data) && data[i] != 0xF7 {
				i++
			}
			i++
			continue
		}
		if i+n > len(data) {
			break
		}
		if status < 0xF0 {
			ev := contracts.MIDI{
				Timestamp: timestamp,
				Command:   status & 0xF0,
				Channel:   status & 0x0F,
				Note:      data[i],
			}
			if n == 2 {
				ev.Velocity = data[i+1]
			}
			out = append(out, ev)
		}
		i += n
	}
	return out
}

// FromShortMessage unpacks a 32-bit short message as delivered by winmm
// (status in the low byte, then two data bytes).
func FromShortMessage(msg uintptr, timestamp uint64) contracts.MIDI {
	status := byte(msg & 0xFF)
	return contracts.MIDI{
		Timestamp: timestamp,
		Command:   status & 0xF0,
		Channel:   status & 0x0F,
		Note:      byte((msg >> 8) & 0xFF),
		Velocity:  byte((msg >> 16) & 0xFF),
	}
}

// Allowed reports whether filter lets command through. A nil filter allows
// everything.
func Allowed(filter *contracts.MIDIEventFilter, command byte) bool {
	if filter == nil {
		return true
	}
	for _, allowed := range filter.Commands {
		if command == byte(allowed) {
			return true
		}
	}
	return false
}

// Deliver sends ev to ch without blocking. It reports false when the buffer
// is full and the event was dropped.
func Deliver(ch chan contracts.MIDI, ev contracts.MIDI) bool {
	select {
	case ch <- ev:
		return true
	default:
		return false
	}
}
