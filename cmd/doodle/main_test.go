package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/config"
	"github.com/example/doodle/internal/host"
	"github.com/example/doodle/internal/notify"
	"github.com/example/doodle/internal/theme"
)

func testRoot(t *testing.T, cfg *config.Config) (*root, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if cfg == nil {
		cfg = config.New()
	}
	var out, errOut bytes.Buffer
	r := &root{
		fs:       flag.NewFlagSet("doodle", flag.ContinueOnError),
		program:  "doodle",
		notifier: notify.New(notify.DefaultPreferences()),
		config:   cfg,
		stdin:    strings.NewReader(""),
		stdout:   &out,
		stderr:   &errOut,
	}
	r.fs.SetOutput(&errOut)
	r.fs.StringVar(&r.themeName, "theme", "", "")
	r.fs.BoolVar(&r.verbose, "v", false, "")
	return r, &out, &errOut
}

func TestUnknownCommandIsUsage(t *testing.T) {
	r, _, _ := testRoot(t, nil)
	err := r.Run([]string{"paint"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "interactive") {
		t.Fatalf("usage should list commands: %q", uerr.Error())
	}
}

func TestRunScriptExports(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "draw.txt")
	if err := os.WriteFile(scriptPath, []byte("tool rect\ndrag 10 10 60 40\nitems\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	out := filepath.Join(dir, "out.png")
	r, stdout, _ := testRoot(t, nil)
	if err := r.Run([]string{"run", "-width", "100", "-height", "80", "-o", out, scriptPath}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("export missing: %v", err)
	}
	if !strings.Contains(stdout.String(), "w=50 h=30") {
		t.Fatalf("items output = %q", stdout.String())
	}
}

func TestRunScriptErrorNamesFile(t *testing.T) {
	r, _, _ := testRoot(t, nil)
	r.stdin = strings.NewReader("tool rect\nwobble\n")
	err := r.Run([]string{"run", "-"})
	if err == nil || !strings.Contains(err.Error(), "-: line 2:") {
		t.Fatalf("expected a located error, got %v", err)
	}
}

func TestInteractiveContinuesAfterErrors(t *testing.T) {
	r, stdout, stderr := testRoot(t, nil)
	r.stdin = strings.NewReader("tool nope\ntool line\ndrag 1 1 20 20\nitems\nexit\n")
	if err := r.Run([]string{"interactive"}); err != nil {
		t.Fatalf("interactive: %v", err)
	}
	if !strings.Contains(stderr.String(), "line 1:") {
		t.Fatalf("error not reported: %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), " path ") {
		t.Fatalf("items not listed: %q", stdout.String())
	}
}

func TestToolsListsRegistry(t *testing.T) {
	r, stdout, _ := testRoot(t, nil)
	if err := r.Run([]string{"tools"}); err != nil {
		t.Fatalf("tools: %v", err)
	}
	for _, name := range []string{"freehand", "cubic", "irregular", "image"} {
		if !strings.Contains(stdout.String(), name) {
			t.Fatalf("tools output missing %s: %q", name, stdout.String())
		}
	}
}

func TestWindowUsesConfig(t *testing.T) {
	cfg := config.New()
	cfg.Canvas = config.Canvas{Width: 320, Height: 200}
	cfg.Tools = config.Tools{PolygonSides: 5, Default: "polygon"}
	cfg.ExportDir = "/tmp/exports"

	var got *host.Window
	original := runWindow
	runWindow = func(w *host.Window) { got = w }
	t.Cleanup(func() { runWindow = original })

	r, _, _ := testRoot(t, cfg)
	if err := r.Run([]string{"window", "-image", "pic.png"}); err != nil {
		t.Fatalf("window: %v", err)
	}
	if got == nil {
		t.Fatalf("window not started")
	}
	if w, h := got.Board.Size(); w != 320 || h != 200 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if got.Board.PolygonSides() != 5 || got.Board.ActiveToolName() != "polygon" {
		t.Fatalf("tool config not applied")
	}
	if got.ExportDir != "/tmp/exports" || got.ImagePath != "pic.png" {
		t.Fatalf("window options = %q %q", got.ExportDir, got.ImagePath)
	}
}

func TestWindowRejectsUnknownTool(t *testing.T) {
	original := runWindow
	runWindow = func(*host.Window) { t.Fatalf("window should not start") }
	t.Cleanup(func() { runWindow = original })

	r, _, _ := testRoot(t, nil)
	if err := r.Run([]string{"window", "-tool", "brush"}); !errors.Is(err, board.ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestThemePrecedence(t *testing.T) {
	cfg := config.New()
	cfg.Theme = "mine"
	mine := theme.Default()
	mine.Name = "mine"
	cfg.Themes["mine"] = mine

	r, _, _ := testRoot(t, cfg)
	if got := r.resolveTheme(); got.Name != "mine" {
		t.Fatalf("config theme not used, got %s", got.Name)
	}

	t.Setenv("DOODLE_THEME", "dark")
	if got := r.resolveTheme(); got.Name == "mine" {
		t.Fatalf("env should win over config")
	}

	r.themeName = "mine"
	if got := r.resolveTheme(); got.Name != "mine" {
		t.Fatalf("flag should win over env, got %s", got.Name)
	}
}

func TestVersion(t *testing.T) {
	r, stdout, _ := testRoot(t, nil)
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := stdout.String(); got != "doodle version dev\n" {
		t.Fatalf("version output = %q", got)
	}
}

func TestConfigPrint(t *testing.T) {
	cfg := config.New()
	cfg.Tools.PolygonSides = 7
	r, stdout, _ := testRoot(t, cfg)
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	if !strings.Contains(stdout.String(), "polygon_sides = 7") {
		t.Fatalf("config output = %q", stdout.String())
	}
}
