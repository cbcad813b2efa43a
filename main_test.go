package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/log"
)

func init() {
	log.SetSink(io.Discard)
}

func TestApp_Commands(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.webp")

	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"list scenes", []string{"scenes"}, false},
		{"bvh stats", []string{"bvh", "--scene", "cornell-mesh", "--leaf-size", "2"}, false},
		{"bvh unknown scene", []string{"bvh", "--scene", "nonexistent"}, true},
		{"render", []string{"render", "--scene", "enclosure", "--width", "4", "--height", "4", "--spp", "2", "--out", out}, false},
		{"render bad format", []string{"render", "--scene", "enclosure", "--width", "4", "--height", "4", "--spp", "2", "--out", filepath.Join(dir, "frame.jpg")}, true},
		{"render missing config", []string{"render", "--config", filepath.Join(dir, "missing.json")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newApp().Run(append([]string{"go-pathtracer"}, tt.args...))
			if tt.expectError && err == nil {
				t.Error("Expected an error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}

	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("Expected rendered frame at %s, got %v", out, err)
	}
}

func TestRun_ReportsErrors(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"go-pathtracer", "render", "--scene", "nope"}, &stderr); code != 1 {
		t.Errorf("Expected exit status 1, got %d", code)
	}
	if out := stderr.String(); !strings.Contains(out, "unknown scene") || !strings.Contains(out, "nope") {
		t.Errorf("Expected the error on stderr, got %q", out)
	}

	stderr.Reset()
	if code := run([]string{"go-pathtracer", "scenes"}, &stderr); code != 0 {
		t.Errorf("Expected exit status 0, got %d", code)
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", stderr.String())
	}
}
