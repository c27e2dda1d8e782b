package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midiplay/internal/keymap"
	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// fakeClient replays a fixed list of events once capture starts.
type fakeClient struct {
	events  []contracts.MIDI
	stopped chan struct{}
	once    sync.Once
}

func (f *fakeClient) Stop() error {
	f.once.Do(func() { close(f.stopped) })
	return nil
}
func (f *fakeClient) ListDevices() ([]contracts.DeviceInfo, error) { return nil, nil }
func (f *fakeClient) SelectDevice(int) error                       { return nil }
func (f *fakeClient) StartCapture(ch chan contracts.MIDI) {
	for _, ev := range f.events {
		ch <- ev
	}
}

func noteOn(note, vel uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOnCommand), Note: note, Velocity: vel}
}

func TestTranslate(t *testing.T) {
	layout := keymap.TwentyOneKey(true)
	tests := []struct {
		name      string
		ev        contracts.MIDI
		transpose int
		octave    int
		want      string
		ok        bool
	}{
		{"white key", noteOn(60, 90), 0, 0, "a", true},
		{"black key", noteOn(61, 90), 0, 0, "shift+a", true},
		{"octave up", noteOn(48, 90), 0, 1, "a", true},
		{"transpose down", noteOn(61, 90), -1, 0, "a", true},
		{"velocity zero", noteOn(60, 0), 0, 0, "", false},
		{"note off", contracts.MIDI{Command: byte(contracts.NoteOffCommand), Note: 60}, 0, 0, "", false},
		{"outside layout", noteOn(100, 90), 0, 0, "", false},
		{"below zero", noteOn(5, 90), 0, -1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.ev, layout, tt.transpose, tt.octave)
			if ok != tt.ok || got.Combo != tt.want {
				t.Errorf("Translate = %q, %v; want %q, %v", got.Combo, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRunDeliversMappedNotes(t *testing.T) {
	client := &fakeClient{
		stopped: make(chan struct{}),
		events: []contracts.MIDI{
			noteOn(60, 100),
			noteOn(60, 0),
			noteOn(100, 100),
			noteOn(72, 100),
			noteOn(64, 100),
		},
	}

	var (
		mu  sync.Mutex
		got []string
	)
	delivered := make(chan struct{}, 8)
	sink := contracts.InputSinkFunc(func(p contracts.Payload, _ contracts.DeliveryHint) error {
		mu.Lock()
		got = append(got, p.String())
		mu.Unlock()
		delivered <- struct{}{}
		if p.String() == "d" {
			return errors.New("window lost focus")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	type outcome struct {
		stats Stats
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		stats, err := Run(ctx, Config{
			Client: client,
			Sink:   sink,
			Layout: keymap.TwentyOneKey(true),
			Logger: logger.NewNopLogger(),
		})
		done <- outcome{stats, err}
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d deliveries arrived", i)
		}
	}
	cancel()

	var res outcome
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if res.err != nil {
		t.Fatalf("Run returned %v", res.err)
	}
	if res.stats != (Stats{Delivered: 2, Unmapped: 1, Failed: 1}) {
		t.Errorf("Unexpected stats: %+v", res.stats)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"a", "q", "d"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d: got %q, want %q", i, got[i], want[i])
		}
	}

	select {
	case <-client.stopped:
	default:
		t.Error("Run must stop the MIDI client")
	}
}

func TestRunRequiresClientAndSink(t *testing.T) {
	if _, err := Run(context.Background(), Config{}); err == nil {
		t.Error("Expected an error without client and sink")
	}
}
