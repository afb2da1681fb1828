package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	data := []byte(`
serato_dir: /Volumes/USB/_Serato_
mount_root: /Volumes/USB
concurrency: 4
log_level: debug
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := &Config{
		SeratoDir:   "/Volumes/USB/_Serato_",
		MountRoot:   "/Volumes/USB",
		Concurrency: 4,
		LogLevel:    "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", level, err)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "serato: /x\n", "could not decode"},
		{"negative concurrency", "concurrency: -1\n", "concurrency"},
		{"bad level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected empty config (-want +got):\n%s", diff)
	}

	level, _ := cfg.Level()
	if level != slog.LevelWarn {
		t.Errorf("default level = %v, want warn", level)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	in := &Config{SeratoDir: "/music/_Serato_", Concurrency: 2}

	data, err := in.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	cfg := &Config{SeratoDir: "/a", MountRoot: "/m", Concurrency: 2, LogLevel: "info"}
	cfg.Merge(Config{SeratoDir: "/b", Concurrency: 8})

	want := &Config{SeratoDir: "/b", MountRoot: "/m", Concurrency: 8, LogLevel: "info"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}
