package flightrecorder_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myrjola/fitplan/internal/flightrecorder"
	"github.com/myrjola/fitplan/internal/testhelpers"
)

func TestNew_Validation(t *testing.T) {
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	file := testhelpers.WriteFile(t, t.TempDir(), "plain", []byte("x"))

	tests := []struct {
		name string
		cfg  flightrecorder.Config
	}{
		{name: "no logger", cfg: flightrecorder.Config{Directory: t.TempDir()}},
		{name: "no directory", cfg: flightrecorder.Config{Logger: logger}},
		{name: "directory is a file", cfg: flightrecorder.Config{Logger: logger, Directory: file}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := flightrecorder.New(tt.cfg); err == nil {
				t.Error("New() error = nil")
			}
		})
	}
}

func TestRecorder_Capture(t *testing.T) {
	ctx := t.Context()
	dir := filepath.Join(t.TempDir(), "traces")
	recorder, err := flightrecorder.New(flightrecorder.Config{
		Logger:    testhelpers.NewLogger(testhelpers.NewWriter(t)),
		Directory: dir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err = recorder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer recorder.Stop(ctx)

	path, err := recorder.Capture(ctx, "generate")
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "generate-") || !strings.HasSuffix(name, ".trace") {
		t.Errorf("trace file name = %q, want generate-<timestamp>.trace", name)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat trace: %v", err)
	}
	if info.Size() == 0 {
		t.Error("trace file is empty")
	}
}
