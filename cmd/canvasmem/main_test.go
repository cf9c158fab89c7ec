package main

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/canvasmem"
	"github.com/gogpu/canvasmem/surface"
)

func writeScript(t *testing.T, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draw.lua")
	if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunImageTarget(t *testing.T) {
	script := writeScript(t, `
		setStyle("fillStyle", "red")
		translate(10, 10)
		fillRect(0, 0, 20, 20)
	`)
	output := filepath.Join(t.TempDir(), "out.png")

	var out bytes.Buffer
	cfg := config{script: script, target: "image", width: 40, height: 40, output: output, lang: "en"}
	if err := run(cfg, &out, quietLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(out.String(), "translate") || !strings.Contains(out.String(), "fillRect") {
		t.Errorf("trace missing operations:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "origin=(10.00, 10.00)") {
		t.Errorf("trace missing translated origin:\n%s", out.String())
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if _, _, _, a := img.At(20, 20).RGBA(); a == 0 {
		t.Error("filled pixel is transparent")
	}
}

func TestRunRecordTarget(t *testing.T) {
	script := writeScript(t, `
		moveTo(1, 2)
		lineTo(3, 4)
	`)
	var out bytes.Buffer
	cfg := config{script: script, target: "record", width: 10, height: 10, lang: "en", ops: "moveTo, lineTo"}
	if err := run(cfg, &out, quietLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "recorded 2 commands") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunSelectsTarget(t *testing.T) {
	script := writeScript(t, `fillRect(0, 0, 2, 2)`)
	output := filepath.Join(t.TempDir(), "out.png")
	var out bytes.Buffer
	cfg := config{script: script, width: 4, height: 4, output: output, lang: "en"}
	if err := run(cfg, &out, quietLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "wrote "+output) {
		t.Errorf("expected the image target to be selected, got %q", out.String())
	}
}

func TestRunTracksResetTransformByDefault(t *testing.T) {
	script := writeScript(t, `
		translate(7, 7)
		resetTransform()
	`)
	var out bytes.Buffer
	cfg := config{script: script, target: "record", width: 10, height: 10, lang: "en"}
	if err := run(cfg, &out, quietLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "resetTransform") || !strings.Contains(out.String(), "recorded 2 commands") {
		t.Errorf("resetTransform not forwarded:\n%s", out.String())
	}
}

func TestRunLocalizedNumbers(t *testing.T) {
	script := writeScript(t, `translate(1234.5, 0)`)
	var out bytes.Buffer
	cfg := config{script: script, target: "record", width: 10, height: 10, lang: "de"}
	if err := run(cfg, &out, quietLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "1.234,50") {
		t.Errorf("expected German number formatting, got %q", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	script := writeScript(t, `moveTo(0, 0)`)
	tests := []struct {
		name string
		cfg  config
		want error
	}{
		{"bad op", config{script: script, target: "image", width: 1, height: 1, lang: "en", ops: "moveTo,teleport"}, canvasmem.ErrUnknownOperation},
		{"bad target", config{script: script, target: "plotter", width: 1, height: 1, lang: "en"}, nil},
		{"bad size", config{script: script, width: 0, height: 1, lang: "en"}, surface.ErrNoTarget},
		{"bad lang", config{script: script, target: "image", width: 1, height: 1, lang: "!!"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.cfg, io.Discard, quietLogger())
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
