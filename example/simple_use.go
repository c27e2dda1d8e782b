package main

import (
	"fmt"
	"os"
	"time"

	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/sdk/analyzer"
	"github.com/leandrodaf/midiplay/sdk/contracts"
	"github.com/leandrodaf/midiplay/sdk/playback"
)

// Analyzes the MIDI file given as first argument and types its opening notes
// on the 21-key layout rows (zxcvbnm / asdfghj / qwertyu).
func main() {
	log := logger.NewDevelopmentLogger()

	if len(os.Args) < 2 {
		fmt.Println("usage: simple_use <file.mid>")
		return
	}

	result, err := analyzer.Analyze(os.Args[1],
		contracts.WithAnalyzeLogger(log),
		contracts.WithNoteLimits(48, 83),
		contracts.WithBlackKeyMode(contracts.BlackKeyAutoSharp),
	)
	if err != nil {
		log.Error("Failed to analyze MIDI file", log.Field().Error("error", err))
		return
	}
	fmt.Printf("%d events, range %s..%s, %d notes out of range\n",
		len(result.Events), result.Summary.MinNoteName, result.Summary.MaxNoteName, result.Summary.TotalOverLimitCount)

	rows := map[uint8]string{
		48: "z", 50: "x", 52: "c", 53: "v", 55: "b", 57: "n", 59: "m",
		60: "a", 62: "s", 64: "d", 65: "f", 67: "g", 69: "h", 71: "j",
		72: "q", 74: "w", 76: "e", 77: "r", 79: "t", 81: "y", 83: "u",
	}
	var keys []playback.KeyEvent
	for _, ev := range result.Events {
		key, ok := rows[ev.Note]
		if ev.Kind != contracts.NoteOn || !ok {
			continue
		}
		keys = append(keys, playback.KeyEvent{Time: ev.Time, Key: key, Duration: ev.Duration})
		if len(keys) == 16 {
			break
		}
	}

	manager, err := playback.NewManager(contracts.WithPlaybackLogger(log))
	if err != nil {
		log.Error("Failed to create playback manager", log.Field().Error("error", err))
		return
	}

	fmt.Println("Focus the target window; playing in 3 seconds...")
	time.Sleep(3 * time.Second)

	if err := manager.StartKeys(keys); err != nil {
		log.Error("Failed to start playback", log.Field().Error("error", err))
		return
	}
	<-manager.Done(contracts.Keyboard)
}
