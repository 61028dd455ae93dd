package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/config"
	"github.com/example/doodle/internal/notify"
	"github.com/example/doodle/internal/style"
	"github.com/example/doodle/internal/theme"
	"github.com/example/doodle/internal/tools"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
	verbose      bool
	logger       *slog.Logger
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("doodle", flag.ExitOnError),
		program:  "doodle",
		notifier: notify.New(prefs),
		config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.verbose, "v", false, "log debug output to stderr")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.logger = slog.New(slog.DiscardHandler)
	if r.verbose {
		r.logger = slog.New(slog.NewTextHandler(r.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "run":
		cmd, err = parseRunCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme by flag, then DOODLE_THEME, then config.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("DOODLE_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	t, err := r.config.ResolveTheme(name, theme.NewLoader())
	if err != nil {
		if name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// boardOptions turns the loaded configuration into board options. Flag
// values win over configuration when they are set.
func (r *root) boardOptions(width, height int, tool string) ([]board.Option, error) {
	cfg := r.config
	st, err := style.Default().Apply(cfg.Style)
	if err != nil {
		return nil, fmt.Errorf("config style: %w", err)
	}
	if width <= 0 {
		width = cfg.Canvas.Width
	}
	if height <= 0 {
		height = cfg.Canvas.Height
	}
	if tool == "" {
		tool = cfg.Tools.Default
	}
	opts := []board.Option{
		board.WithSize(width, height),
		board.WithStyle(st),
		board.WithTheme(r.activeTheme),
		board.WithLogger(r.logger),
	}
	if cfg.Canvas.History > 0 {
		opts = append(opts, board.WithHistoryCapacity(cfg.Canvas.History))
	}
	if cfg.Tools.PolygonSides > 0 {
		opts = append(opts, board.WithPolygonSides(cfg.Tools.PolygonSides))
	}
	if tool != "" {
		info, ok := tools.Lookup(strings.ToLower(tool))
		if !ok {
			return nil, fmt.Errorf("%w: %q", board.ErrUnknownTool, tool)
		}
		opts = append(opts, board.WithTool(info.Name))
	}
	return opts, nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
