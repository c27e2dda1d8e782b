package osexec

import (
	"context"
	"errors"
	"testing"
)

func TestExecReportsMissingTool(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), "definitely-not-a-real-tool-midiplay")
	if !errors.Is(err, ErrToolMissing) {
		t.Fatalf("Expected ErrToolMissing, got %v", err)
	}
}

func TestRunnerFunc(t *testing.T) {
	var gotName string
	var gotArgs []string
	r := RunnerFunc(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("ok"), nil
	})

	out, err := r.Run(context.Background(), "xdotool", "key", "a")
	if err != nil || string(out) != "ok" {
		t.Fatalf("unexpected result %q, %v", out, err)
	}
	if gotName != "xdotool" || len(gotArgs) != 2 || gotArgs[1] != "a" {
		t.Errorf("unexpected call %s %v", gotName, gotArgs)
	}
}
