package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrodaf/midiplay/internal/keymap"
	"github.com/leandrodaf/midiplay/internal/live"
	"github.com/leandrodaf/midiplay/internal/tui"
	"github.com/leandrodaf/midiplay/sdk/analyzer"
	"github.com/leandrodaf/midiplay/sdk/contracts"
	"github.com/leandrodaf/midiplay/sdk/input"
	"github.com/leandrodaf/midiplay/sdk/midi"
	"github.com/leandrodaf/midiplay/sdk/playback"
)

func (a *app) analyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var af analysisFlags
	af.register(fs, a.cfg)
	asJSON := fs.Bool("json", false, "print the full analysis as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleArg(fs, "MIDI file")
	if err != nil {
		return err
	}

	opts, err := af.options(a.log)
	if err != nil {
		return err
	}
	res, err := analyzer.Analyze(path, opts...)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprint(a.out, tui.RenderReport(path, res, uint8(af.lower), uint8(af.upper)))
	return nil
}

// sessionFlags are shared by play and mouse.
type sessionFlags struct {
	window string
	delay  time.Duration
	noTUI  bool
}

func (f *sessionFlags) register(fs *flag.FlagSet, a *app) {
	fs.StringVar(&f.window, "window", a.cfg.Target.Title, "title of the window to focus before playing")
	fs.DurationVar(&f.delay, "delay", 3*time.Second, "wait before the first event")
	fs.BoolVar(&f.noTUI, "no-tui", false, "do not show the progress view; stop with Ctrl+C")
}

func (a *app) play(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var (
		af analysisFlags
		sf sessionFlags
	)
	af.register(fs, a.cfg)
	sf.register(fs, a)
	layoutName := fs.String("layout", a.cfg.Layout.Name, "key layout")
	sharps := fs.Bool("sharps", a.cfg.Layout.Sharps, "play black keys as shift+key")
	tracksFlag := fs.String("tracks", "", "comma-separated track indices to play (default all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleArg(fs, "MIDI file")
	if err != nil {
		return err
	}
	tracks, err := parseTracks(*tracksFlag)
	if err != nil {
		return err
	}

	opts, err := af.options(a.log)
	if err != nil {
		return err
	}
	res, err := analyzer.Analyze(path, opts...)
	if err != nil {
		return err
	}

	a.cfg.Layout.Name, a.cfg.Layout.Sharps = *layoutName, *sharps
	layout, err := a.cfg.KeyLayout()
	if err != nil {
		return err
	}
	events, stats := keymap.BuildKeyEvents(res, layout, keymap.BuildOptions{
		Transpose: af.transpose,
		Octave:    af.octave,
		Tracks:    tracks,
	})
	a.log.Info("key events built",
		a.log.Field().String("layout", layout.Name),
		a.log.Field().Int("mapped", stats.Mapped),
		a.log.Field().Int("dropped", stats.Dropped))
	if len(events) == 0 {
		return errors.New("no notes fall inside the key layout; try -transpose or -octave")
	}

	return a.runSession(contracts.Keyboard, path, events, sf)
}

func (a *app) mouse(args []string) error {
	fs := flag.NewFlagSet("mouse", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var sf sessionFlags
	sf.register(fs, a)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleArg(fs, "event file")
	if err != nil {
		return err
	}

	clicks, err := playback.LoadMouseEventsFile(path)
	if err != nil {
		return err
	}
	if len(clicks) == 0 {
		return errors.New("event file has no clicks")
	}
	return a.runSession(contracts.Mouse, path, playback.MouseTimeline(clicks), sf)
}

// runSession plays events in one category and blocks until the session ends
// or the user stops it.
func (a *app) runSession(category contracts.Category, title string, events []contracts.TimedEvent, sf sessionFlags) error {
	sink, err := input.NewSink(contracts.WithInputLogger(a.log))
	if err != nil {
		return err
	}
	opts := []contracts.PlaybackOption{
		contracts.WithPlaybackLogger(a.log),
		contracts.WithSink(sink),
		contracts.WithStopTimeout(time.Duration(a.cfg.StopTimeout)),
	}
	if sf.window != "" {
		target, err := a.findWindow(sf.window)
		if err != nil {
			return err
		}
		opts = append(opts, target)
	}

	mgr, err := playback.NewManager(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if sf.delay > 0 {
		fmt.Fprintf(a.out, "Starting in %s...\n", sf.delay)
		select {
		case <-time.After(sf.delay):
		case <-ctx.Done():
			return nil
		}
	}

	if err := mgr.Start(category, events); err != nil {
		return err
	}
	defer mgr.Stop(category)

	if sf.noTUI {
		select {
		case <-mgr.Done(category):
		case <-ctx.Done():
		}
		return nil
	}

	last := events[len(events)-1]
	model := tui.NewModel(tui.Session{
		Title:    title,
		Events:   len(events),
		Length:   time.Duration((last.Time + last.Duration) * float64(time.Second)),
		Done:     mgr.Done(category),
		Stop:     func() error { return mgr.Stop(category) },
		Category: category.String(),
	})
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// findWindow resolves a title to a WithTargetWindow option.
func (a *app) findWindow(title string) (contracts.PlaybackOption, error) {
	wm, err := input.NewWindowManager(contracts.WithInputLogger(a.log))
	if err != nil {
		return nil, err
	}
	windows, err := wm.List()
	if err != nil {
		return nil, err
	}
	a.cfg.Target.Title = title
	if a.cfg.Target.PID != 0 && title != "" {
		a.cfg.Target.PID = 0
	}
	target, ok := a.cfg.FindWindow(windows)
	if !ok {
		return nil, fmt.Errorf("no window titled %q", title)
	}
	return contracts.WithTargetWindow(wm, target), nil
}

func (a *app) windows(args []string) error {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(a.out)
	asJSON := fs.Bool("json", false, "print as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	wm, err := input.NewWindowManager(contracts.WithInputLogger(a.log))
	if err != nil {
		return err
	}
	windows, err := wm.List()
	if err != nil {
		return err
	}

	if *asJSON {
		return json.NewEncoder(a.out).Encode(windows)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPID\tAPP\tTITLE\tMINIMIZED")
	for _, w := range windows {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%v\n", w.ID, w.PID, w.AppName, w.Title, w.Minimized)
	}
	return tw.Flush()
}

func (a *app) pick(args []string) error {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(a.out)
	timeout := fs.Duration("timeout", 0, "how long to wait for the click (default 30s)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Click anywhere on screen...")
	pt, err := input.PickCoordinate(context.Background(),
		contracts.WithInputLogger(a.log),
		contracts.WithPickTimeout(*timeout))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d %d\n", pt.X, pt.Y)
	return nil
}

func (a *app) devices(args []string) error {
	fs := flag.NewFlagSet("devices", flag.ContinueOnError)
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := midi.NewMIDIClient(contracts.WithLogger(a.log))
	if err != nil {
		return err
	}
	defer client.Stop()

	devices, err := client.ListDevices()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tENTITY\tMANUFACTURER")
	for _, d := range devices {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, d.Name, d.EntityName, d.Manufacturer)
	}
	return tw.Flush()
}

func (a *app) live(args []string) error {
	fs := flag.NewFlagSet("live", flag.ContinueOnError)
	fs.SetOutput(a.out)
	device := fs.Int("device", a.cfg.MIDIDevice, "MIDI input device ID (see devices)")
	transpose := fs.Int("transpose", 0, "transpose in semitones")
	octave := fs.Int("octave", 0, "octave shift")
	layoutName := fs.String("layout", a.cfg.Layout.Name, "key layout")
	sharps := fs.Bool("sharps", a.cfg.Layout.Sharps, "play black keys as shift+key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.cfg.Layout.Name, a.cfg.Layout.Sharps = *layoutName, *sharps
	layout, err := a.cfg.KeyLayout()
	if err != nil {
		return err
	}
	sink, err := input.NewSink(contracts.WithInputLogger(a.log))
	if err != nil {
		return err
	}
	client, err := midi.NewMIDIClient(
		contracts.WithLogger(a.log),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOnCommand},
		}),
	)
	if err != nil {
		return err
	}
	if err := client.SelectDevice(*device); err != nil {
		_ = client.Stop()
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Fprintln(a.out, "Forwarding notes as key presses... Press Ctrl+C to exit.")
	stats, err := live.Run(ctx, live.Config{
		Client:    client,
		Sink:      sink,
		Layout:    layout,
		Logger:    a.log,
		Transpose: *transpose,
		Octave:    *octave,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d notes forwarded, %d outside the layout, %d failed\n", stats.Delivered, stats.Unmapped, stats.Failed)
	return nil
}
