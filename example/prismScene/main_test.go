package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akmonengine/prism/frame"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.msgpack")
	var stderr strings.Builder

	err := run([]string{"-count", "3", "-ticks", "2", "-interval", "1ms", "-frames", path}, &stderr)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(stderr.String(), "stopped after") {
		t.Errorf("log output = %q, want a final summary", stderr.String())
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()

	// Cancellation races the next tick, so the stream holds at least two frames
	dec := frame.NewDecoder(file)
	var frames []frame.Frame
	for {
		f, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Decode frame %d: %v", len(frames), err)
		}
		frames = append(frames, f)
	}

	if len(frames) < 2 {
		t.Fatalf("got %d frames, want at least 2", len(frames))
	}
	for i, f := range frames {
		if f.Tick != uint64(i+1) {
			t.Errorf("frame %d tick = %d, want %d", i, f.Tick, i+1)
		}
		if len(f.Prisms) != 3 {
			t.Errorf("frame %d has %d prisms, want 3", i, len(f.Prisms))
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"frames in a missing directory", []string{"-ticks", "1", "-interval", "1ms", "-frames", filepath.Join(t.TempDir(), "missing", "frames.msgpack")}},
		{"invalid depth", []string{"-ticks", "1", "-depth", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.args, io.Discard); err == nil {
				t.Error("run should return an error")
			}
		})
	}
}
