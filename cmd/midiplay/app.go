package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/leandrodaf/midiplay/internal/config"
	"github.com/leandrodaf/midiplay/internal/logger"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// logLevelEnv overrides the configured log level; -log-level wins over both.
const logLevelEnv = "MIDIPLAY_LOG_LEVEL"

var errUsage = errors.New("usage")

// app carries what every subcommand needs.
type app struct {
	cfg *config.Config
	log contracts.Logger
	out io.Writer
}

type command struct {
	summary string
	run     func(a *app, args []string) error
}

var commands = map[string]command{
	"analyze": {"analyze a MIDI file and report its range", (*app).analyze},
	"play":    {"play a MIDI file as key presses", (*app).play},
	"mouse":   {"replay a JSON file of mouse clicks", (*app).mouse},
	"windows": {"list top-level windows", (*app).windows},
	"pick":    {"wait for a left click and print its position", (*app).pick},
	"live":    {"forward notes from a MIDI device as key presses", (*app).live},
	"devices": {"list MIDI input devices", (*app).devices},
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("midiplay", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "path to config.json (default ~/.config/midiplay/config.json)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Usage = func() { usage(out, fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	level, ok := contracts.ParseLogLevel(resolveLogLevel(*logLevel, os.Getenv(logLevelEnv), cfg.LogLevel))
	if !ok {
		return fmt.Errorf("invalid log level %q", resolveLogLevel(*logLevel, os.Getenv(logLevelEnv), cfg.LogLevel))
	}
	log := logger.NewDevelopmentLogger()
	log.SetLevel(level)

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(&app{cfg: cfg, log: log, out: out}, rest)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// resolveLogLevel picks the first non-empty of flag, env and config.
func resolveLogLevel(flagValue, envValue, configValue string) string {
	for _, v := range []string{flagValue, envValue, configValue} {
		if v != "" {
			return strings.ToLower(v)
		}
	}
	return "info"
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: midiplay [flags] <command> [command flags]")
	fmt.Fprintln(out, "\nCommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(out, "\nFlags:")
	fs.PrintDefaults()
}

// parseTracks parses a comma-separated list of track indices.
func parseTracks(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var tracks []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid track index %q", part)
		}
		tracks = append(tracks, n)
	}
	return tracks, nil
}

// analysisFlags registers the flags shared by analyze and play, defaulting
// to the config values.
type analysisFlags struct {
	lower, upper      uint
	blackKey          string
	transpose, octave int
	locale            string
}

func (f *analysisFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.UintVar(&f.lower, "lower", uint(cfg.LowerLimit), "lowest playable MIDI note")
	fs.UintVar(&f.upper, "upper", uint(cfg.UpperLimit), "highest playable MIDI note")
	fs.StringVar(&f.blackKey, "black-key", string(cfg.BlackKeyMode), "black-key mode: none or auto_sharp")
	fs.IntVar(&f.transpose, "transpose", 0, "transpose in semitones")
	fs.IntVar(&f.octave, "octave", 0, "octave shift")
	fs.StringVar(&f.locale, "locale", cfg.Locale, "language of note-group labels (en, zh)")
}

func (f *analysisFlags) options(log contracts.Logger) ([]contracts.AnalyzeOption, error) {
	if f.lower > 127 || f.upper > 127 {
		return nil, fmt.Errorf("%w: %d..%d", contracts.ErrInvalidLimits, f.lower, f.upper)
	}
	mode := contracts.BlackKeyMode(f.blackKey)
	if mode != contracts.BlackKeyNone && mode != contracts.BlackKeyAutoSharp {
		return nil, fmt.Errorf("unknown black-key mode %q", f.blackKey)
	}
	return []contracts.AnalyzeOption{
		contracts.WithAnalyzeLogger(log),
		contracts.WithNoteLimits(uint8(f.lower), uint8(f.upper)),
		contracts.WithBlackKeyMode(mode),
		contracts.WithCurrentShift(f.transpose, f.octave),
		contracts.WithLocale(f.locale),
	}, nil
}

// singleArg returns the one positional argument of fs.
func singleArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one %s", fs.Name(), what)
	}
	return fs.Arg(0), nil
}
