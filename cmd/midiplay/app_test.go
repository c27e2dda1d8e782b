package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leandrodaf/midiplay/internal/smftest"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.json")
}

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		flag, env, cfg, want string
	}{
		{"", "", "", "info"},
		{"", "", "warn", "warn"},
		{"", "DEBUG", "warn", "debug"},
		{"error", "debug", "warn", "error"},
	}
	for _, tt := range tests {
		if got := resolveLogLevel(tt.flag, tt.env, tt.cfg); got != tt.want {
			t.Errorf("resolveLogLevel(%q, %q, %q) = %q, want %q", tt.flag, tt.env, tt.cfg, got, tt.want)
		}
	}
}

func TestParseTracks(t *testing.T) {
	got, err := parseTracks("1, 3,4")
	if err != nil {
		t.Fatalf("parseTracks failed: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 4 {
		t.Errorf("Unexpected tracks: %v", got)
	}
	if got, _ := parseTracks(""); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
	if _, err := parseTracks("1,x"); err == nil {
		t.Error("Expected an error for a bad index")
	}
}

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-config", noConfig(t)}, &out); !errors.Is(err, errUsage) {
		t.Fatalf("Expected errUsage, got %v", err)
	}
	if !strings.Contains(out.String(), "analyze") || !strings.Contains(out.String(), "live") {
		t.Errorf("Usage does not list commands:\n%s", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-config", noConfig(t), "dance"}, &out)
	if err == nil || !strings.Contains(err.Error(), "dance") {
		t.Errorf("Expected an unknown command error, got %v", err)
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-config", noConfig(t), "-log-level", "loud", "windows"}, &out); err == nil {
		t.Error("Expected an invalid log level error")
	}
}

func fixturePath(t *testing.T) string {
	return smftest.WriteFile(t, smftest.Build(480,
		smftest.Track{
			smftest.Name(0, "Lead"),
			smftest.On(0, 0, 60, 100),
			smftest.Off(480, 0, 60),
			smftest.On(0, 0, 95, 100),
			smftest.Off(480, 0, 95),
		},
	))
}

func TestAnalyzeJSON(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-config", noConfig(t), "-log-level", "error", "analyze", "-json", fixturePath(t)}, &out)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var res contracts.AnalysisResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(res.Events) != 4 || len(res.Tracks) != 1 || res.Tracks[0].Name != "Lead" {
		t.Errorf("Unexpected analysis: %+v", res)
	}
	if res.Summary.OverMaxCount != 1 {
		t.Errorf("Expected one note above the default range, got %+v", res.Summary)
	}
}

func TestAnalyzeReportUsesFlagLimits(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-config", noConfig(t), "-log-level", "error", "analyze", "-upper", "100", fixturePath(t)}, &out)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out.String(), "playable 48..100") || !strings.Contains(out.String(), "all notes playable") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing file", []string{"analyze", filepath.Join(t.TempDir(), "x.mid")}, contracts.ErrFileNotFound},
		{"bad limits", []string{"analyze", "-lower", "200", "song.mid"}, contracts.ErrInvalidLimits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			args := append([]string{"-config", noConfig(t), "-log-level", "error"}, tt.args...)
			if err := run(args, &out); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	var out bytes.Buffer
	if err := run([]string{"-config", noConfig(t), "analyze", "-black-key", "flat", "song.mid"}, &out); err == nil {
		t.Error("Expected an error for an unknown black-key mode")
	}
	if err := run([]string{"-config", noConfig(t), "analyze"}, &out); err == nil {
		t.Error("Expected an error without a file argument")
	}
}
