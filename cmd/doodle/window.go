package main

import (
	"flag"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/host"
)

// runWindow starts the UI loop. Tests replace it.
var runWindow = func(w *host.Window) { w.Run() }

type windowCmd struct {
	*root
	fs        *flag.FlagSet
	width     int
	height    int
	tool      string
	image     string
	exportDir string
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	c := &windowCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", 0, "canvas width in pixels (default from config, else 1280)")
	fs.IntVar(&c.height, "height", 0, "canvas height in pixels (default from config, else 720)")
	fs.StringVar(&c.tool, "tool", "", "initial tool")
	fs.StringVar(&c.image, "image", "", "image file placed by the image key instead of the clipboard")
	fs.StringVar(&c.exportDir, "export-dir", "", "directory for Ctrl+S exports (default from config, else the working directory)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *windowCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *windowCmd) Run() error {
	opts, err := c.boardOptions(c.width, c.height, c.tool)
	if err != nil {
		return err
	}
	updates := make(chan struct{}, 1)
	wake := func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}
	b := board.New(append(opts, board.WithWake(wake))...)
	defer b.Close()

	exportDir := c.exportDir
	if exportDir == "" {
		exportDir = c.config.ExportDir
	}
	w := host.New(b,
		host.WithExportDir(exportDir),
		host.WithImagePath(c.image),
		host.WithNotifier(c.notifier),
		host.WithUpdates(updates),
	)
	runWindow(w)
	return nil
}
